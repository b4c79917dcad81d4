// Package ledger owns journal entries and their lines. It enforces the
// balanced-entry invariant on every write and exposes the balance
// aggregation primitive the reports are built from.
package ledger

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// DefaultLargeEntryThreshold flags deletions of entries above this amount so
// callers can warn the user. Configurable per deployment.
const DefaultLargeEntryThreshold = 1_000_000

// DefaultEntryPageSize caps entry listings when the caller gives no limit.
const DefaultEntryPageSize = 100

// Service is the ledger engine.
type Service struct {
	conn           *store.Connection
	largeThreshold float64
}

// NewService creates a ledger on top of an open store connection. A zero
// threshold selects DefaultLargeEntryThreshold.
func NewService(conn *store.Connection, largeThreshold float64) *Service {
	if largeThreshold <= 0 {
		largeThreshold = DefaultLargeEntryThreshold
	}
	return &Service{conn: conn, largeThreshold: largeThreshold}
}

// CreateEntry validates and persists a new entry with all its lines as one
// unit. Returns the new entry ID.
func (s *Service) CreateEntry(date, description string, lines []models.EntryLineInput) (int64, error) {
	if err := validateEntry(date, lines); err != nil {
		return 0, err
	}

	id, err := s.conn.CreateEntry(date, description, lines)
	if err != nil {
		return 0, engine.Storage("create entry", err)
	}
	return id, nil
}

// ReplaceEntry re-validates and swaps the entry's full line set. This is the
// only mutation path for lines; there is no per-line update.
func (s *Service) ReplaceEntry(id int64, date, description string, lines []models.EntryLineInput) error {
	if err := validateEntry(date, lines); err != nil {
		return err
	}

	err := s.conn.ReplaceEntry(id, date, description, lines)
	if errors.Is(err, engine.ErrNotFound) {
		return err
	}
	if err != nil {
		return engine.Storage("replace entry", err)
	}
	return nil
}

// DeletedEntry echoes the removed entry in the deletion summary.
type DeletedEntry struct {
	ID          int64    `json:"id"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Lines       []string `json:"lines"`
}

// DeletionWarnings reports facts the caller should surface to the user.
// They never block the deletion.
type DeletionWarnings struct {
	HasBankTransaction   bool  `json:"hasBankTransaction"`
	IsLargeAmount        bool  `json:"isLargeAmount"`
	AffectedTransactions int64 `json:"affectedTransactions"`
}

// DeletionSummary is the result of DeleteEntry.
type DeletionSummary struct {
	DeletedEntry DeletedEntry     `json:"deletedEntry"`
	Warnings     DeletionWarnings `json:"warnings"`
}

// DeleteEntry removes an entry, cascades to its lines and unlinks any bank
// transaction referencing it. The summary reports whether the entry exceeded
// the large-amount threshold and how many transactions were unlinked.
func (s *Service) DeleteEntry(id int64) (*DeletionSummary, error) {
	entry, err := s.conn.GetEntry(id)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, engine.Storage("load entry before delete", err)
	}

	var totalDebit, totalCredit float64
	lines := make([]string, 0, len(entry.Lines))
	for _, l := range entry.Lines {
		totalDebit += l.Debit
		totalCredit += l.Credit
		amount := l.Credit
		if l.Debit > 0 {
			amount = l.Debit
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", l.AccountCode, l.AccountName, formatAmount(amount)))
	}
	amount := totalDebit
	if totalCredit > amount {
		amount = totalCredit
	}

	affected, err := s.conn.DeleteEntry(id)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, engine.Storage("delete entry", err)
	}

	return &DeletionSummary{
		DeletedEntry: DeletedEntry{
			ID:          entry.ID,
			Date:        entry.Date,
			Description: entry.Description,
			Amount:      amount,
			Lines:       lines,
		},
		Warnings: DeletionWarnings{
			HasBankTransaction:   affected > 0,
			IsLargeAmount:        amount > s.largeThreshold,
			AffectedTransactions: affected,
		},
	}, nil
}

// Entry returns one entry with its lines.
func (s *Service) Entry(id int64) (*models.Entry, error) {
	entry, err := s.conn.GetEntry(id)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, engine.Storage("get entry", err)
	}
	return entry, nil
}

// ListEntries returns entries with nested lines, newest first.
func (s *Service) ListEntries(limit, offset int) ([]*models.Entry, error) {
	if limit <= 0 {
		limit = DefaultEntryPageSize
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := s.conn.ListEntries(limit, offset)
	if err != nil {
		return nil, engine.Storage("list entries", err)
	}
	return entries, nil
}

// Balances is the shared aggregation primitive: per-account debit and credit
// sums over a date range, optionally restricted to account types.
// Zero-activity accounts are omitted unless includeZero is set.
func (s *Service) Balances(r store.DateRange, types []models.AccountType, includeZero bool) ([]models.AccountBalance, error) {
	balances, err := s.conn.AccountBalances(r, types, includeZero)
	if err != nil {
		return nil, engine.Storage("aggregate balances", err)
	}
	return balances, nil
}

// formatAmount renders an amount without trailing zeros, matching how the
// rest of the system displays currency.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
