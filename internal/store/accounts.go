package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// InsertAccount inserts one account and returns its ID. The unique constraint
// on code surfaces through IsUniqueViolation.
func (c *Connection) InsertAccount(code, name string, typ models.AccountType) (int64, error) {
	result, err := c.Exec(
		`INSERT INTO accounts (code, name, type) VALUES (?, ?, ?)`,
		code, name, string(typ),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// SeedAccount inserts an account unless its code already exists. Returns true
// when a row was actually inserted.
func (c *Connection) SeedAccount(code, name string, typ models.AccountType) (bool, error) {
	result, err := c.Exec(
		`INSERT OR IGNORE INTO accounts (code, name, type) VALUES (?, ?, ?)`,
		code, name, string(typ),
	)
	if err != nil {
		return false, fmt.Errorf("failed to seed account %s: %w", code, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ListAccounts returns accounts ordered by code. A non-empty search term
// substring-matches code or name (SQLite LIKE is case-insensitive for ASCII).
func (c *Connection) ListAccounts(search string, limit, offset int) ([]models.Account, error) {
	var rows *sql.Rows
	var err error

	if search != "" {
		pattern := "%" + search + "%"
		rows, err = c.Query(
			`SELECT id, code, name, type, created_at FROM accounts
			 WHERE code LIKE ? OR name LIKE ?
			 ORDER BY code LIMIT ? OFFSET ?`,
			pattern, pattern, limit, offset,
		)
	} else {
		rows, err = c.Query(
			`SELECT id, code, name, type, created_at FROM accounts
			 ORDER BY code LIMIT ? OFFSET ?`,
			limit, offset,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &typ, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Type = models.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// IsUniqueViolation reports whether err is a SQLite unique-constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
