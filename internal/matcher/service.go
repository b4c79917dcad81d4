// Package matcher reconciles bank transactions: it proposes and confirms
// internal-transfer pairs and bridges a transaction into the ledger when the
// user classifies it manually.
package matcher

import (
	"errors"
	"math"
	"sort"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/ledger"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// Service is the reconciliation matcher.
type Service struct {
	conn   *store.Connection
	ledger *ledger.Service
}

// NewService creates a matcher. The ledger is its single bridge for turning
// a classified transaction into a balanced entry.
func NewService(conn *store.Connection, l *ledger.Service) *Service {
	return &Service{conn: conn, ledger: l}
}

// SuggestPairs scans unreconciled transactions in ascending (date, id) order
// and pairs each one with the first later transaction that matches. The scan
// is greedy first-fit: a consumed transaction is never reconsidered, so the
// result depends on the documented ordering. Suggestions come back sorted by
// descending confidence, ties kept in discovery order.
func (s *Service) SuggestPairs() ([]models.TransferSuggestion, error) {
	txs, err := s.conn.ListUnreconciledTransactions()
	if err != nil {
		return nil, engine.Storage("list unreconciled transactions", err)
	}

	suggestions := []models.TransferSuggestion{}
	used := make(map[int64]bool)

	for i := range txs {
		if used[txs[i].ID] {
			continue
		}
		for j := i + 1; j < len(txs); j++ {
			if used[txs[j].ID] {
				continue
			}
			res, ok := checkMatch(txs[i], txs[j])
			if !ok {
				continue
			}
			suggestions = append(suggestions, models.TransferSuggestion{
				Tx1:        candidate(txs[i]),
				Tx2:        candidate(txs[j]),
				Confidence: res.Confidence,
				Reason:     res.Reason,
				AmountDiff: res.AmountDiff,
			})
			used[txs[i].ID] = true
			used[txs[j].ID] = true
			break
		}
	}

	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].Confidence > suggestions[b].Confidence
	})
	return suggestions, nil
}

// ConfirmPair marks two transactions as one internal transfer. The pair ID is
// the smaller of the two transaction IDs, so repeated confirmation is
// idempotent. Fails when either transaction was already reconciled through an
// entry; the two resolution paths are mutually exclusive.
func (s *Service) ConfirmPair(id1, id2 int64) (int64, error) {
	if id1 == id2 {
		return 0, engine.Validationf("a transfer pair requires two distinct transactions")
	}

	tx1, err := s.getTransaction(id1)
	if err != nil {
		return 0, err
	}
	tx2, err := s.getTransaction(id2)
	if err != nil {
		return 0, err
	}

	if tx1.EntryID != nil || tx2.EntryID != nil {
		return 0, engine.Conflictf("transaction already reconciled to an entry")
	}

	pairID := id1
	if id2 < pairID {
		pairID = id2
	}

	if err := s.conn.SetTransferPair(pairID, id1, id2); err != nil {
		return 0, engine.Storage("confirm transfer pair", err)
	}
	return pairID, nil
}

// CancelPair clears the pairing fields on every transaction carrying pairID.
func (s *Service) CancelPair(pairID int64) error {
	affected, err := s.conn.ClearTransferPair(pairID)
	if err != nil {
		return engine.Storage("cancel transfer pair", err)
	}
	if affected == 0 {
		return engine.ErrNotFound
	}
	return nil
}

// CreateEntryFromTransaction reconciles one transaction by creating a
// balancing two-line entry: abs(amount) debited to debitAccountID and
// credited to creditAccountID, dated and described from the transaction.
func (s *Service) CreateEntryFromTransaction(txID, debitAccountID, creditAccountID int64) (int64, error) {
	if debitAccountID == 0 || creditAccountID == 0 {
		return 0, engine.Validationf("debit and credit accounts are required")
	}

	tx, err := s.getTransaction(txID)
	if err != nil {
		return 0, err
	}
	if tx.EntryID != nil {
		return 0, engine.Conflictf("transaction already has an entry")
	}
	if tx.TransferPairID != nil {
		return 0, engine.Conflictf("transaction is already paired as an internal transfer")
	}

	amount := math.Abs(tx.Amount)
	entryID, err := s.ledger.CreateEntry(tx.Date, tx.Description, []models.EntryLineInput{
		{AccountID: debitAccountID, Debit: amount},
		{AccountID: creditAccountID, Credit: amount},
	})
	if err != nil {
		return 0, err
	}

	// The entry exists at this point. If linking fails the caller learns
	// about the partial state through the storage error.
	if err := s.conn.LinkTransactionEntry(txID, entryID); err != nil {
		return 0, engine.Storage("link transaction to entry", err)
	}
	return entryID, nil
}

func (s *Service) getTransaction(id int64) (*models.BankTransaction, error) {
	tx, err := s.conn.GetBankTransaction(id)
	if errors.Is(err, engine.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, engine.Storage("get bank transaction", err)
	}
	return tx, nil
}

func candidate(tx models.BankTransaction) models.TransferCandidate {
	return models.TransferCandidate{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Company:     tx.Company,
	}
}
