package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

func setupRegistry(t *testing.T) *Service {
	t.Helper()

	conn, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewService(conn)
}

func TestRegister(t *testing.T) {
	svc := setupRegistry(t)

	acc, err := svc.Register("1101", "現金", models.AccountTypeAsset)
	require.NoError(t, err)
	assert.NotZero(t, acc.ID)
	assert.Equal(t, "1101", acc.Code)
	assert.Equal(t, "現金", acc.Name)
	assert.Equal(t, models.AccountTypeAsset, acc.Type)
}

func TestRegisterTrimsWhitespace(t *testing.T) {
	svc := setupRegistry(t)

	acc, err := svc.Register("  1101 ", " 現金 ", models.AccountTypeAsset)
	require.NoError(t, err)
	assert.Equal(t, "1101", acc.Code)
	assert.Equal(t, "現金", acc.Name)
}

func TestRegisterValidation(t *testing.T) {
	svc := setupRegistry(t)

	tests := []struct {
		name    string
		code    string
		accName string
		typ     models.AccountType
	}{
		{"empty code", "", "現金", models.AccountTypeAsset},
		{"blank code", "   ", "現金", models.AccountTypeAsset},
		{"empty name", "1101", "", models.AccountTypeAsset},
		{"unknown type", "1101", "現金", "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.code, tt.accName, tt.typ)
			assert.True(t, engine.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestRegisterDuplicateCode(t *testing.T) {
	svc := setupRegistry(t)

	_, err := svc.Register("1101", "現金", models.AccountTypeAsset)
	require.NoError(t, err)

	_, err = svc.Register("1101", "另一個現金", models.AccountTypeAsset)
	assert.True(t, engine.IsConflict(err), "expected conflict error, got %v", err)
}

func TestList(t *testing.T) {
	svc := setupRegistry(t)

	for _, a := range []struct {
		code string
		name string
		typ  models.AccountType
	}{
		{"4101", "營業收入", models.AccountTypeRevenue},
		{"1101", "現金", models.AccountTypeAsset},
		{"1102", "銀行存款", models.AccountTypeAsset},
	} {
		_, err := svc.Register(a.code, a.name, a.typ)
		require.NoError(t, err)
	}

	accounts, err := svc.List("", 0, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "1101", accounts[0].Code)
	assert.Equal(t, "1102", accounts[1].Code)
	assert.Equal(t, "4101", accounts[2].Code)

	// Substring search against code or name.
	accounts, err = svc.List("銀行", 0, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1102", accounts[0].Code)

	accounts, err = svc.List("11", 0, 0)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	// Pagination.
	accounts, err = svc.List("", 2, 2)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "4101", accounts[0].Code)
}

const testChart = `accounts:
  - { code: "1101", name: "現金", type: asset }
  - { code: "2101", name: "應付帳款", type: liability }
  - { code: "4101", name: "營業收入", type: revenue }
`

func writeChart(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedFromFile(t *testing.T) {
	svc := setupRegistry(t)
	path := writeChart(t, testChart)

	inserted, err := svc.SeedFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	accounts, err := svc.List("", 0, 0)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)

	// Seeding again inserts nothing and changes nothing.
	inserted, err = svc.SeedFromFile(path)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestSeedPreservesCustomizedAccounts(t *testing.T) {
	svc := setupRegistry(t)

	_, err := svc.Register("1101", "庫存現金", models.AccountTypeAsset)
	require.NoError(t, err)

	inserted, err := svc.SeedFromFile(writeChart(t, testChart))
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	accounts, err := svc.List("1101", 0, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "庫存現金", accounts[0].Name)
}

func TestLoadChartValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", `accounts: [{ code: "1101", type: asset }]`},
		{"missing code", `accounts: [{ name: "現金", type: asset }]`},
		{"bad type", `accounts: [{ code: "1101", name: "現金", type: stock }]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadChart(writeChart(t, tt.content))
			assert.True(t, engine.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestLoadChartMissingFile(t *testing.T) {
	_, err := LoadChart(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
