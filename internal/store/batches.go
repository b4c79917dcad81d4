package store

import (
	"database/sql"
	"fmt"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// CreateBatch registers an upload batch and returns its ID. The transactions
// themselves arrive through BulkInsertBankTransactions.
func (c *Connection) CreateBatch(source string, rowCount int) (int64, error) {
	result, err := c.Exec(
		`INSERT INTO upload_batches (source, row_count) VALUES (?, ?)`,
		source, rowCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create batch: %w", err)
	}
	return result.LastInsertId()
}

// ListBatches returns every batch with its transaction counters, newest first.
func (c *Connection) ListBatches() ([]models.BatchSummary, error) {
	rows, err := c.Query(
		`SELECT b.id, COALESCE(b.source, ''), b.row_count, b.created_at,
		        COUNT(bt.id) AS tx_count,
		        COALESCE(SUM(CASE WHEN bt.entry_id IS NOT NULL THEN 1 ELSE 0 END), 0) AS processed_count,
		        COALESCE(SUM(CASE WHEN bt.entry_id IS NULL THEN 1 ELSE 0 END), 0) AS pending_count
		 FROM upload_batches b
		 LEFT JOIN bank_transactions bt ON bt.batch_id = b.id
		 GROUP BY b.id
		 ORDER BY b.created_at DESC, b.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	batches := []models.BatchSummary{}
	for rows.Next() {
		var b models.BatchSummary
		if err := rows.Scan(&b.ID, &b.Source, &b.RowCount, &b.CreatedAt,
			&b.TxCount, &b.ProcessedCount, &b.PendingCount); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// DeleteBatch removes a batch and all of its transactions. Entries already
// created from reconciled transactions are deliberately preserved; the
// returned orphaned count tells the caller how many such entries lost their
// bank-transaction link.
func (c *Connection) DeleteBatch(id int64) (deleted, orphaned int64, err error) {
	err = c.Transaction(func(tx *sql.Tx) error {
		row := tx.QueryRow(
			`SELECT COUNT(*) FROM bank_transactions WHERE batch_id = ? AND entry_id IS NOT NULL`, id,
		)
		if err := row.Scan(&orphaned); err != nil {
			return fmt.Errorf("failed to count processed transactions: %w", err)
		}

		result, err := tx.Exec(`DELETE FROM bank_transactions WHERE batch_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete batch transactions: %w", err)
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return err
		}

		batchResult, err := tx.Exec(`DELETE FROM upload_batches WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}
		rows, err := batchResult.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return engine.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return deleted, orphaned, nil
}
