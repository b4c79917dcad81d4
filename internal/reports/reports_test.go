package reports

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/ledger"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

type fixture struct {
	reports *Service
	ledger  *ledger.Service
	ids     map[string]int64
}

func setupReports(t *testing.T) *fixture {
	t.Helper()

	conn, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ids := map[string]int64{}
	for _, a := range []struct {
		code string
		name string
		typ  models.AccountType
	}{
		{"1101", "現金", models.AccountTypeAsset},
		{"1102", "銀行存款", models.AccountTypeAsset},
		{"2101", "應付帳款", models.AccountTypeLiability},
		{"3101", "股本", models.AccountTypeEquity},
		{"4101", "營業收入", models.AccountTypeRevenue},
		{"6102", "租金費用", models.AccountTypeExpense},
	} {
		id, err := conn.InsertAccount(a.code, a.name, a.typ)
		require.NoError(t, err)
		ids[a.code] = id
	}

	l := ledger.NewService(conn, 0)
	return &fixture{reports: NewService(l), ledger: l, ids: ids}
}

func (f *fixture) entry(t *testing.T, date string, lines []models.EntryLineInput) {
	t.Helper()
	_, err := f.ledger.CreateEntry(date, "", lines)
	require.NoError(t, err)
}

func TestTrialBalance(t *testing.T) {
	f := setupReports(t)

	f.entry(t, "2024-01-05", []models.EntryLineInput{
		{AccountID: f.ids["1101"], Debit: 120000},
		{AccountID: f.ids["4101"], Credit: 120000},
	})
	f.entry(t, "2024-01-20", []models.EntryLineInput{
		{AccountID: f.ids["6102"], Debit: 45000},
		{AccountID: f.ids["1101"], Credit: 45000},
	})

	tb, err := f.reports.TrialBalance(store.DateRange{})
	require.NoError(t, err)
	require.Len(t, tb.Accounts, 3)

	byCode := map[string]TrialBalanceRow{}
	for _, row := range tb.Accounts {
		byCode[row.Code] = row
	}

	cash := byCode["1101"]
	assert.Equal(t, float64(75000), cash.Balance)
	assert.Equal(t, float64(75000), cash.DebitBalance)
	assert.Zero(t, cash.CreditBalance)

	sales := byCode["4101"]
	assert.Equal(t, float64(120000), sales.Balance)
	assert.Equal(t, float64(120000), sales.CreditBalance)
	assert.Zero(t, sales.DebitBalance)

	rent := byCode["6102"]
	assert.Equal(t, float64(45000), rent.DebitBalance)

	assert.Equal(t, float64(120000), tb.Totals.Debit)
	assert.Equal(t, float64(120000), tb.Totals.Credit)
	assert.True(t, tb.Totals.Balanced)
}

func TestTrialBalanceNegativeBalanceFlipsColumn(t *testing.T) {
	f := setupReports(t)

	// Cash goes negative: the debit-normal balance lands in the credit column.
	f.entry(t, "2024-01-05", []models.EntryLineInput{
		{AccountID: f.ids["6102"], Debit: 5000},
		{AccountID: f.ids["1101"], Credit: 5000},
	})

	tb, err := f.reports.TrialBalance(store.DateRange{})
	require.NoError(t, err)

	byCode := map[string]TrialBalanceRow{}
	for _, row := range tb.Accounts {
		byCode[row.Code] = row
	}

	cash := byCode["1101"]
	assert.Equal(t, float64(-5000), cash.Balance)
	assert.Zero(t, cash.DebitBalance)
	assert.Equal(t, float64(5000), cash.CreditBalance)
	assert.True(t, tb.Totals.Balanced)
}

func TestBalanceSheet(t *testing.T) {
	f := setupReports(t)

	f.entry(t, "2024-01-01", []models.EntryLineInput{
		{AccountID: f.ids["1102"], Debit: 500000},
		{AccountID: f.ids["3101"], Credit: 500000},
	})
	f.entry(t, "2024-01-05", []models.EntryLineInput{
		{AccountID: f.ids["1101"], Debit: 120000},
		{AccountID: f.ids["4101"], Credit: 120000},
	})
	f.entry(t, "2024-01-20", []models.EntryLineInput{
		{AccountID: f.ids["6102"], Debit: 45000},
		{AccountID: f.ids["1101"], Credit: 45000},
	})

	bs, err := f.reports.BalanceSheet("")
	require.NoError(t, err)

	assert.Equal(t, "至今", bs.AsOfDate)
	assert.Equal(t, float64(575000), bs.Totals.Assets)
	assert.Zero(t, bs.Totals.Liabilities)

	// Net income 75000 shows up as a synthetic equity line.
	require.Len(t, bs.Equity, 2)
	assert.Equal(t, "本期損益", bs.Equity[1].Code)
	assert.Equal(t, "本期淨利（損）", bs.Equity[1].Name)
	assert.Equal(t, float64(75000), bs.Equity[1].Balance)

	assert.Equal(t, float64(575000), bs.Totals.Equity)
	assert.Equal(t, float64(575000), bs.Totals.LiabilitiesAndEquity)
	assert.True(t, bs.Totals.Balanced)
}

func TestBalanceSheetAsOfDate(t *testing.T) {
	f := setupReports(t)

	f.entry(t, "2024-01-01", []models.EntryLineInput{
		{AccountID: f.ids["1102"], Debit: 500000},
		{AccountID: f.ids["3101"], Credit: 500000},
	})
	f.entry(t, "2024-02-05", []models.EntryLineInput{
		{AccountID: f.ids["1101"], Debit: 120000},
		{AccountID: f.ids["4101"], Credit: 120000},
	})

	bs, err := f.reports.BalanceSheet("2024-01-31")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-31", bs.AsOfDate)
	assert.Equal(t, float64(500000), bs.Totals.Assets)
	// No activity on revenue accounts before the cutoff, no synthetic line.
	require.Len(t, bs.Equity, 1)
	assert.Equal(t, "3101", bs.Equity[0].Code)
	assert.True(t, bs.Totals.Balanced)
}

func TestIncomeStatement(t *testing.T) {
	f := setupReports(t)

	f.entry(t, "2024-01-05", []models.EntryLineInput{
		{AccountID: f.ids["1101"], Debit: 120000},
		{AccountID: f.ids["4101"], Credit: 120000},
	})
	f.entry(t, "2024-01-20", []models.EntryLineInput{
		{AccountID: f.ids["6102"], Debit: 45000},
		{AccountID: f.ids["1101"], Credit: 45000},
	})

	is, err := f.reports.IncomeStatement(store.DateRange{Start: "2024-01-01", End: "2024-01-31"})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", is.Period.Start)
	assert.Equal(t, "2024-01-31", is.Period.End)

	require.Len(t, is.Revenues, 1)
	assert.Equal(t, "4101", is.Revenues[0].Code)
	assert.Equal(t, float64(120000), is.Revenues[0].Amount)

	require.Len(t, is.Expenses, 1)
	assert.Equal(t, float64(45000), is.Expenses[0].Amount)

	assert.Equal(t, float64(120000), is.Totals.Revenue)
	assert.Equal(t, float64(45000), is.Totals.Expense)
	assert.Equal(t, float64(75000), is.Totals.NetIncome)
	assert.True(t, is.Totals.Profitable)
}

func TestIncomeStatementOpenPeriodAndLoss(t *testing.T) {
	f := setupReports(t)

	f.entry(t, "2024-01-20", []models.EntryLineInput{
		{AccountID: f.ids["6102"], Debit: 45000},
		{AccountID: f.ids["1101"], Credit: 45000},
	})

	is, err := f.reports.IncomeStatement(store.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, "期初", is.Period.Start)
	assert.Equal(t, "至今", is.Period.End)
	assert.Equal(t, float64(-45000), is.Totals.NetIncome)
	assert.False(t, is.Totals.Profitable)
}

func TestIncomeStatementEmptyLedger(t *testing.T) {
	f := setupReports(t)

	is, err := f.reports.IncomeStatement(store.DateRange{})
	require.NoError(t, err)

	assert.Empty(t, is.Revenues)
	assert.Empty(t, is.Expenses)
	assert.Zero(t, is.Totals.NetIncome)
	// Zero net income still reads as profitable.
	assert.True(t, is.Totals.Profitable)
}

func TestBalanceSheetWithLiability(t *testing.T) {
	f := setupReports(t)

	f.entry(t, "2024-01-01", []models.EntryLineInput{
		{AccountID: f.ids["1102"], Debit: 300000},
		{AccountID: f.ids["2101"], Credit: 300000},
	})

	bs, err := f.reports.BalanceSheet("")
	require.NoError(t, err)

	assert.Equal(t, float64(300000), bs.Totals.Assets)
	assert.Equal(t, float64(300000), bs.Totals.Liabilities)
	assert.Zero(t, bs.Totals.Equity)
	assert.True(t, bs.Totals.Balanced)
}
