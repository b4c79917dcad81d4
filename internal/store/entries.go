package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// CreateEntry persists an entry header and all of its lines as one unit and
// returns the new entry ID. Balance validation happens in the ledger service
// before this is called.
func (c *Connection) CreateEntry(date, description string, lines []models.EntryLineInput) (int64, error) {
	var entryID int64

	err := c.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(
			`INSERT INTO entries (date, description) VALUES (?, ?)`,
			date, description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		entryID, err = result.LastInsertId()
		if err != nil {
			return err
		}
		return insertLines(tx, entryID, lines)
	})
	if err != nil {
		return 0, err
	}

	return entryID, nil
}

// ReplaceEntry updates the entry header and swaps the full line set in one
// transaction. Returns engine.ErrNotFound when the entry does not exist.
func (c *Connection) ReplaceEntry(id int64, date, description string, lines []models.EntryLineInput) error {
	return c.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(
			`UPDATE entries SET date = ?, description = ? WHERE id = ?`,
			date, description, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return engine.ErrNotFound
		}

		if _, err := tx.Exec(`DELETE FROM entry_lines WHERE entry_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete prior lines: %w", err)
		}
		return insertLines(tx, id, lines)
	})
}

// DeleteEntry removes the entry and its lines and clears the weak entry_id
// reference on any bank transaction pointing at it. Returns the number of
// bank transactions that were unlinked.
func (c *Connection) DeleteEntry(id int64) (int64, error) {
	var affected int64

	err := c.Transaction(func(tx *sql.Tx) error {
		// Unlink before the delete so the foreign key on entry_id never
		// sees a dangling reference.
		unlinked, err := tx.Exec(
			`UPDATE bank_transactions SET entry_id = NULL WHERE entry_id = ?`, id,
		)
		if err != nil {
			return fmt.Errorf("failed to unlink bank transactions: %w", err)
		}
		if affected, err = unlinked.RowsAffected(); err != nil {
			return err
		}

		if _, err := tx.Exec(`DELETE FROM entry_lines WHERE entry_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete entry lines: %w", err)
		}

		result, err := tx.Exec(`DELETE FROM entries WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return engine.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// GetEntry retrieves one entry with its lines, account code/name joined in.
func (c *Connection) GetEntry(id int64) (*models.Entry, error) {
	var e models.Entry
	err := c.QueryRow(
		`SELECT id, date, description, created_at FROM entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.Date, &e.Description, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	rows, err := c.Query(
		`SELECT el.id, el.entry_id, el.account_id, el.debit, el.credit, el.memo,
		        COALESCE(a.code, ''), COALESCE(a.name, '')
		 FROM entry_lines el
		 LEFT JOIN accounts a ON el.account_id = a.id
		 WHERE el.entry_id = ?
		 ORDER BY el.id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry lines: %w", err)
	}
	defer rows.Close()

	e.Lines = []models.EntryLine{}
	for rows.Next() {
		var l models.EntryLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit,
			&l.Memo, &l.AccountCode, &l.AccountName); err != nil {
			return nil, fmt.Errorf("failed to scan entry line: %w", err)
		}
		e.Lines = append(e.Lines, l)
	}
	return &e, rows.Err()
}

// ListEntries returns entries with nested lines ordered by date desc, id desc.
// One query: the page of entry IDs is selected in a subquery, then lines and
// account names are joined in.
func (c *Connection) ListEntries(limit, offset int) ([]*models.Entry, error) {
	rows, err := c.Query(
		`SELECT e.id, e.date, e.description, e.created_at,
		        el.id, el.account_id, el.debit, el.credit, el.memo,
		        a.code, a.name
		 FROM entries e
		 LEFT JOIN entry_lines el ON el.entry_id = e.id
		 LEFT JOIN accounts a ON el.account_id = a.id
		 WHERE e.id IN (
		     SELECT id FROM entries ORDER BY date DESC, id DESC LIMIT ? OFFSET ?
		 )
		 ORDER BY e.date DESC, e.id DESC, el.id ASC`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.Entry
	byID := make(map[int64]*models.Entry)

	for rows.Next() {
		var (
			entryID     int64
			date        string
			description string
			createdAt   string
			lineID      sql.NullInt64
			accountID   sql.NullInt64
			debit       sql.NullFloat64
			credit      sql.NullFloat64
			memo        sql.NullString
			accountCode sql.NullString
			accountName sql.NullString
		)
		if err := rows.Scan(&entryID, &date, &description, &createdAt,
			&lineID, &accountID, &debit, &credit, &memo,
			&accountCode, &accountName); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}

		entry, ok := byID[entryID]
		if !ok {
			entry = &models.Entry{
				ID:          entryID,
				Date:        date,
				Description: description,
				CreatedAt:   createdAt,
				Lines:       []models.EntryLine{},
			}
			byID[entryID] = entry
			entries = append(entries, entry)
		}

		if lineID.Valid {
			entry.Lines = append(entry.Lines, models.EntryLine{
				ID:          lineID.Int64,
				EntryID:     entryID,
				AccountID:   accountID.Int64,
				Debit:       debit.Float64,
				Credit:      credit.Float64,
				Memo:        memo.String,
				AccountCode: accountCode.String,
				AccountName: accountName.String,
			})
		}
	}
	return entries, rows.Err()
}

// AccountBalances returns per-account (sum debit, sum credit) over entries in
// the given range, optionally restricted to account types. Accounts with zero
// activity in range are omitted unless includeZero is set.
func (c *Connection) AccountBalances(r DateRange, types []models.AccountType, includeZero bool) ([]models.AccountBalance, error) {
	pred, predArgs := r.Predicate("e.date")

	var typeFilter string
	if len(types) > 0 {
		typeFilter = " AND a.type IN (?" + strings.Repeat(", ?", len(types)-1) + ")"
	}
	typeArgs := make([]interface{}, 0, len(types))
	for _, t := range types {
		typeArgs = append(typeArgs, string(t))
	}

	var query string
	var args []interface{}

	if includeZero {
		query = `
			SELECT a.id, a.code, a.name, a.type,
			       COALESCE(s.total_debit, 0) AS total_debit,
			       COALESCE(s.total_credit, 0) AS total_credit
			FROM accounts a
			LEFT JOIN (
			    SELECT el.account_id,
			           SUM(el.debit) AS total_debit,
			           SUM(el.credit) AS total_credit
			    FROM entry_lines el
			    JOIN entries e ON el.entry_id = e.id
			    WHERE 1=1` + pred + `
			    GROUP BY el.account_id
			) s ON s.account_id = a.id
			WHERE 1=1` + typeFilter + `
			ORDER BY a.code`
		args = append(args, predArgs...)
		args = append(args, typeArgs...)
	} else {
		query = `
			SELECT a.id, a.code, a.name, a.type,
			       COALESCE(SUM(el.debit), 0) AS total_debit,
			       COALESCE(SUM(el.credit), 0) AS total_credit
			FROM accounts a
			JOIN entry_lines el ON el.account_id = a.id
			JOIN entries e ON el.entry_id = e.id
			WHERE 1=1` + typeFilter + pred + `
			GROUP BY a.id, a.code, a.name, a.type
			HAVING total_debit > 0 OR total_credit > 0
			ORDER BY a.code`
		args = append(args, typeArgs...)
		args = append(args, predArgs...)
	}

	rows, err := c.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	defer rows.Close()

	balances := []models.AccountBalance{}
	for rows.Next() {
		var b models.AccountBalance
		var typ string
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &typ, &b.TotalDebit, &b.TotalCredit); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		b.Type = models.AccountType(typ)
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func insertLines(tx *sql.Tx, entryID int64, lines []models.EntryLineInput) error {
	for _, line := range lines {
		_, err := tx.Exec(
			`INSERT INTO entry_lines (entry_id, account_id, debit, credit, memo)
			 VALUES (?, ?, ?, ?, ?)`,
			entryID, line.AccountID, line.Debit, line.Credit, line.Memo,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry line: %w", err)
		}
	}
	return nil
}
