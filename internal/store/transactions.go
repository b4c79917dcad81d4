package store

import (
	"database/sql"
	"fmt"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

const bankTxColumns = `id, date, description, amount,
	COALESCE(company, ''), COALESCE(label, ''),
	batch_id, entry_id, transfer_pair_id, is_internal_transfer`

// ListBankTransactions returns every bank transaction, newest first.
func (c *Connection) ListBankTransactions() ([]models.BankTransaction, error) {
	return c.queryBankTransactions(
		`SELECT ` + bankTxColumns + ` FROM bank_transactions ORDER BY date DESC, id DESC`,
	)
}

// ListUnreconciledTransactions returns transactions with neither an entry nor
// a transfer pair, in ascending (date, id) order. This is the matcher's scan
// order and must not change.
func (c *Connection) ListUnreconciledTransactions() ([]models.BankTransaction, error) {
	return c.queryBankTransactions(
		`SELECT ` + bankTxColumns + ` FROM bank_transactions
		 WHERE entry_id IS NULL AND transfer_pair_id IS NULL
		 ORDER BY date, id`,
	)
}

// GetBankTransaction retrieves one transaction by ID.
func (c *Connection) GetBankTransaction(id int64) (*models.BankTransaction, error) {
	row := c.QueryRow(
		`SELECT `+bankTxColumns+` FROM bank_transactions WHERE id = ?`, id,
	)

	tx, err := scanBankTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank transaction: %w", err)
	}
	return tx, nil
}

// BulkInsertBankTransactions inserts all rows in one transaction and returns
// the inserted count.
func (c *Connection) BulkInsertBankTransactions(inputs []models.BankTransactionInput) (int, error) {
	err := c.Transaction(func(tx *sql.Tx) error {
		for _, in := range inputs {
			_, err := tx.Exec(
				`INSERT INTO bank_transactions (date, description, amount, company, label, batch_id)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				in.Date, in.Description, in.Amount, in.Company, in.Label, in.BatchID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert bank transaction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(inputs), nil
}

// ClearUnreconciled deletes every transaction that has neither an entry nor a
// confirmed transfer pair. Returns the deleted count.
func (c *Connection) ClearUnreconciled() (int64, error) {
	result, err := c.Exec(
		`DELETE FROM bank_transactions WHERE entry_id IS NULL AND transfer_pair_id IS NULL`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear unreconciled transactions: %w", err)
	}
	return result.RowsAffected()
}

// SetTransferPair marks both transactions as one internal-transfer pair.
func (c *Connection) SetTransferPair(pairID, id1, id2 int64) error {
	_, err := c.Exec(
		`UPDATE bank_transactions SET transfer_pair_id = ?, is_internal_transfer = 1
		 WHERE id IN (?, ?)`,
		pairID, id1, id2,
	)
	if err != nil {
		return fmt.Errorf("failed to set transfer pair: %w", err)
	}
	return nil
}

// ClearTransferPair clears the pairing fields on every transaction carrying
// pairID. Returns the number of affected transactions.
func (c *Connection) ClearTransferPair(pairID int64) (int64, error) {
	result, err := c.Exec(
		`UPDATE bank_transactions SET transfer_pair_id = NULL, is_internal_transfer = 0
		 WHERE transfer_pair_id = ?`,
		pairID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clear transfer pair: %w", err)
	}
	return result.RowsAffected()
}

// LinkTransactionEntry records the entry created to reconcile a transaction.
func (c *Connection) LinkTransactionEntry(txID, entryID int64) error {
	result, err := c.Exec(
		`UPDATE bank_transactions SET entry_id = ? WHERE id = ?`, entryID, txID,
	)
	if err != nil {
		return fmt.Errorf("failed to link transaction to entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return engine.ErrNotFound
	}
	return nil
}

func (c *Connection) queryBankTransactions(query string, args ...interface{}) ([]models.BankTransaction, error) {
	rows, err := c.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.BankTransaction{}
	for rows.Next() {
		tx, err := scanBankTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func scanBankTransaction(scan func(...interface{}) error) (*models.BankTransaction, error) {
	var tx models.BankTransaction
	var batchID, entryID, pairID sql.NullInt64
	var internal int

	err := scan(&tx.ID, &tx.Date, &tx.Description, &tx.Amount,
		&tx.Company, &tx.Label, &batchID, &entryID, &pairID, &internal)
	if err != nil {
		return nil, err
	}

	if batchID.Valid {
		tx.BatchID = &batchID.Int64
	}
	if entryID.Valid {
		tx.EntryID = &entryID.Int64
	}
	if pairID.Valid {
		tx.TransferPairID = &pairID.Int64
	}
	tx.IsInternalTransfer = internal != 0
	return &tx, nil
}
