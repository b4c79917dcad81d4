// Package batches manages upload batches: the grouping that lets a bulk
// import be reviewed and undone as a unit.
package batches

import (
	"errors"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// Service manages upload batches.
type Service struct {
	conn *store.Connection
}

// NewService creates the batch service.
func NewService(conn *store.Connection) *Service {
	return &Service{conn: conn}
}

// Register creates a batch record. The transactions themselves are inserted
// separately and reference the batch.
func (s *Service) Register(source string, rowCount int) (*models.UploadBatch, error) {
	if rowCount < 0 {
		return nil, engine.Validationf("row count must be non-negative")
	}

	id, err := s.conn.CreateBatch(source, rowCount)
	if err != nil {
		return nil, engine.Storage("register batch", err)
	}
	return &models.UploadBatch{ID: id, Source: source, RowCount: rowCount}, nil
}

// List returns every batch with processed/pending transaction counts.
func (s *Service) List() ([]models.BatchSummary, error) {
	batches, err := s.conn.ListBatches()
	if err != nil {
		return nil, engine.Storage("list batches", err)
	}
	return batches, nil
}

// DeletionResult reports what a batch deletion removed. OrphanedEntries
// counts transactions that had already been reconciled: their entries are
// kept on purpose and now carry a dangling origin.
type DeletionResult struct {
	Deleted         int64 `json:"deleted"`
	OrphanedEntries int64 `json:"orphanedEntries"`
}

// Delete removes a batch and all of its transactions. Entries created from
// already-reconciled transactions are preserved; the result reports how many
// such entries lost their bank-transaction link.
func (s *Service) Delete(id int64) (*DeletionResult, error) {
	deleted, orphaned, err := s.conn.DeleteBatch(id)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, engine.Storage("delete batch", err)
	}
	return &DeletionResult{Deleted: deleted, OrphanedEntries: orphaned}, nil
}
