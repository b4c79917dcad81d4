// Package accounts owns the chart of accounts: registration, lookup and
// default-chart seeding.
package accounts

import (
	"strings"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// DefaultListLimit caps account listings when the caller gives no limit.
const DefaultListLimit = 500

// Service is the account registry.
type Service struct {
	conn *store.Connection
}

// NewService creates the registry on top of an open store connection.
func NewService(conn *store.Connection) *Service {
	return &Service{conn: conn}
}

// Register creates one account. The code must be unique; the type is fixed
// for the life of the account.
func (s *Service) Register(code, name string, typ models.AccountType) (*models.Account, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, engine.Validationf("account code is required")
	}
	if name == "" {
		return nil, engine.Validationf("account name is required")
	}
	if !typ.Valid() {
		return nil, engine.Validationf("unknown account type %q", typ)
	}

	id, err := s.conn.InsertAccount(code, name, typ)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, engine.Conflictf("duplicate account code %s", code)
		}
		return nil, engine.Storage("register account", err)
	}

	return &models.Account{ID: id, Code: code, Name: name, Type: typ}, nil
}

// List returns accounts ordered by code. A non-empty search term matches code
// or name as a case-insensitive substring.
func (s *Service) List(search string, limit, offset int) ([]models.Account, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.conn.ListAccounts(strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, engine.Storage("list accounts", err)
	}
	return accounts, nil
}
