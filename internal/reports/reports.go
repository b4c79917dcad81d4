// Package reports derives the three financial statements from the ledger's
// balance aggregation primitive. All sign conventions flow through one
// normal-balance rule: asset and expense accounts are debit-normal, the rest
// are credit-normal.
package reports

import (
	"math"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/ledger"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// balancedTolerance bounds the rounding drift a report may show while still
// reporting itself as balanced.
const balancedTolerance = 0.01

// Synthetic equity line injected into the balance sheet for the current
// period's result.
const (
	currentPeriodCode = "本期損益"
	currentPeriodName = "本期淨利（損）"
)

// Service builds reports on top of the ledger.
type Service struct {
	ledger *ledger.Service
}

// NewService creates a report generator.
func NewService(l *ledger.Service) *Service {
	return &Service{ledger: l}
}

// signedBalance normalizes raw sums by the account's normal balance side:
// debit − credit for debit-normal types, credit − debit otherwise.
func signedBalance(b models.AccountBalance) float64 {
	if b.Type.DebitNormal() {
		return b.TotalDebit - b.TotalCredit
	}
	return b.TotalCredit - b.TotalDebit
}

// TrialBalanceRow is one account in the trial balance.
type TrialBalanceRow struct {
	ID            int64              `json:"id"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	Type          models.AccountType `json:"type"`
	TotalDebit    float64            `json:"total_debit"`
	TotalCredit   float64            `json:"total_credit"`
	Balance       float64            `json:"balance"`
	DebitBalance  float64            `json:"debit_balance"`
	CreditBalance float64            `json:"credit_balance"`
}

// TrialBalanceTotals sums the projected columns.
type TrialBalanceTotals struct {
	Debit    float64 `json:"debit"`
	Credit   float64 `json:"credit"`
	Balanced bool    `json:"balanced"`
}

// TrialBalance lists every active account with its normalized balance
// projected into debit/credit columns.
type TrialBalance struct {
	Accounts []TrialBalanceRow  `json:"accounts"`
	Totals   TrialBalanceTotals `json:"totals"`
}

// TrialBalance builds the trial balance over the given range. A positive
// normalized balance lands in the account's normal column; a negative one
// flips to the opposite column.
func (s *Service) TrialBalance(r store.DateRange) (*TrialBalance, error) {
	balances, err := s.ledger.Balances(r, nil, false)
	if err != nil {
		return nil, err
	}

	accounts := make([]TrialBalanceRow, 0, len(balances))
	var totalDebit, totalCredit float64

	for _, b := range balances {
		balance := signedBalance(b)
		debitNormal := b.Type.DebitNormal()

		var debitBalance, creditBalance float64
		switch {
		case balance > 0 && debitNormal:
			debitBalance = balance
		case balance < 0 && !debitNormal:
			debitBalance = -balance
		}
		switch {
		case balance > 0 && !debitNormal:
			creditBalance = balance
		case balance < 0 && debitNormal:
			creditBalance = -balance
		}

		accounts = append(accounts, TrialBalanceRow{
			ID:            b.ID,
			Code:          b.Code,
			Name:          b.Name,
			Type:          b.Type,
			TotalDebit:    b.TotalDebit,
			TotalCredit:   b.TotalCredit,
			Balance:       balance,
			DebitBalance:  debitBalance,
			CreditBalance: creditBalance,
		})
		totalDebit += debitBalance
		totalCredit += creditBalance
	}

	return &TrialBalance{
		Accounts: accounts,
		Totals: TrialBalanceTotals{
			Debit:    totalDebit,
			Credit:   totalCredit,
			Balanced: math.Abs(totalDebit-totalCredit) < balancedTolerance,
		},
	}, nil
}

// LineItem is one account line in a balance-sheet section.
type LineItem struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// BalanceSheetTotals checks the accounting equation.
type BalanceSheetTotals struct {
	Assets               float64 `json:"assets"`
	Liabilities          float64 `json:"liabilities"`
	Equity               float64 `json:"equity"`
	LiabilitiesAndEquity float64 `json:"liabilitiesAndEquity"`
	Balanced             bool    `json:"balanced"`
}

// BalanceSheet is the statement of financial position as of a cutoff date.
type BalanceSheet struct {
	AsOfDate    string             `json:"asOfDate"`
	Assets      []LineItem         `json:"assets"`
	Liabilities []LineItem         `json:"liabilities"`
	Equity      []LineItem         `json:"equity"`
	Totals      BalanceSheetTotals `json:"totals"`
}

// BalanceSheet builds the balance sheet as of asOfDate (empty means no
// cutoff). Net income over the same period is injected as a synthetic equity
// line when nonzero, which is what keeps the equation closed before any
// formal period close.
func (s *Service) BalanceSheet(asOfDate string) (*BalanceSheet, error) {
	r := store.DateRange{End: asOfDate}

	balances, err := s.ledger.Balances(r, []models.AccountType{
		models.AccountTypeAsset, models.AccountTypeLiability, models.AccountTypeEquity,
	}, false)
	if err != nil {
		return nil, err
	}

	assets := []LineItem{}
	liabilities := []LineItem{}
	equity := []LineItem{}

	for _, b := range balances {
		item := LineItem{Code: b.Code, Name: b.Name, Balance: signedBalance(b)}
		switch b.Type {
		case models.AccountTypeAsset:
			assets = append(assets, item)
		case models.AccountTypeLiability:
			liabilities = append(liabilities, item)
		case models.AccountTypeEquity:
			equity = append(equity, item)
		}
	}

	netIncome, err := s.netIncome(r)
	if err != nil {
		return nil, err
	}
	if netIncome != 0 {
		equity = append(equity, LineItem{
			Code:    currentPeriodCode,
			Name:    currentPeriodName,
			Balance: netIncome,
		})
	}

	var totalAssets, totalLiabilities, totalEquity float64
	for _, a := range assets {
		totalAssets += a.Balance
	}
	for _, l := range liabilities {
		totalLiabilities += l.Balance
	}
	for _, e := range equity {
		totalEquity += e.Balance
	}

	display := asOfDate
	if display == "" {
		display = "至今"
	}

	return &BalanceSheet{
		AsOfDate:    display,
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      equity,
		Totals: BalanceSheetTotals{
			Assets:               totalAssets,
			Liabilities:          totalLiabilities,
			Equity:               totalEquity,
			LiabilitiesAndEquity: totalLiabilities + totalEquity,
			Balanced:             math.Abs(totalAssets-(totalLiabilities+totalEquity)) < balancedTolerance,
		},
	}, nil
}

// StatementItem is one account line in the income statement.
type StatementItem struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// StatementPeriod echoes the requested range.
type StatementPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IncomeStatementTotals rolls revenue and expense into net income.
type IncomeStatementTotals struct {
	Revenue    float64 `json:"revenue"`
	Expense    float64 `json:"expense"`
	NetIncome  float64 `json:"netIncome"`
	Profitable bool    `json:"profitable"`
}

// IncomeStatement is the profit-and-loss statement over a date range.
type IncomeStatement struct {
	Period   StatementPeriod       `json:"period"`
	Revenues []StatementItem       `json:"revenues"`
	Expenses []StatementItem       `json:"expenses"`
	Totals   IncomeStatementTotals `json:"totals"`
}

// IncomeStatement builds the income statement over the given range. Revenue
// amounts are credit − debit, expense amounts debit − credit; zero net income
// still counts as profitable.
func (s *Service) IncomeStatement(r store.DateRange) (*IncomeStatement, error) {
	balances, err := s.ledger.Balances(r, []models.AccountType{
		models.AccountTypeRevenue, models.AccountTypeExpense,
	}, false)
	if err != nil {
		return nil, err
	}

	revenues := []StatementItem{}
	expenses := []StatementItem{}
	var totalRevenue, totalExpense float64

	for _, b := range balances {
		amount := signedBalance(b)
		item := StatementItem{Code: b.Code, Name: b.Name, Amount: amount}
		switch b.Type {
		case models.AccountTypeRevenue:
			revenues = append(revenues, item)
			totalRevenue += amount
		case models.AccountTypeExpense:
			expenses = append(expenses, item)
			totalExpense += amount
		}
	}

	netIncome := totalRevenue - totalExpense

	period := StatementPeriod{Start: r.Start, End: r.End}
	if period.Start == "" {
		period.Start = "期初"
	}
	if period.End == "" {
		period.End = "至今"
	}

	return &IncomeStatement{
		Period:   period,
		Revenues: revenues,
		Expenses: expenses,
		Totals: IncomeStatementTotals{
			Revenue:    totalRevenue,
			Expense:    totalExpense,
			NetIncome:  netIncome,
			Profitable: netIncome >= 0,
		},
	}, nil
}

// netIncome computes (revenue credits − revenue debits) − (expense debits −
// expense credits) over the range, for the balance-sheet equity roll-up.
func (s *Service) netIncome(r store.DateRange) (float64, error) {
	balances, err := s.ledger.Balances(r, []models.AccountType{
		models.AccountTypeRevenue, models.AccountTypeExpense,
	}, false)
	if err != nil {
		return 0, err
	}

	var revenue, expense float64
	for _, b := range balances {
		switch b.Type {
		case models.AccountTypeRevenue:
			revenue += b.TotalCredit - b.TotalDebit
		case models.AccountTypeExpense:
			expense += b.TotalDebit - b.TotalCredit
		}
	}
	return revenue - expense, nil
}
