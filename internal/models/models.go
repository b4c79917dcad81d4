// Package models defines the domain records shared by the store, the engine
// services, and the HTTP API.
package models

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether the account type carries a debit-normal balance.
// Asset and expense accounts grow on the debit side; liability, equity and
// revenue accounts grow on the credit side.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is one row of the chart of accounts. Type is immutable once created.
type Account struct {
	ID        int64       `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	CreatedAt string      `json:"created_at,omitempty"`
}

// Entry is a journal entry. Lines always balance within the fixed tolerance;
// an unbalanced entry is never persisted.
type Entry struct {
	ID          int64       `json:"id"`
	Date        string      `json:"date"` // YYYY-MM-DD
	Description string      `json:"description"`
	CreatedAt   string      `json:"created_at,omitempty"`
	Lines       []EntryLine `json:"lines"`
}

// EntryLine is a single debit or credit against one account. The entry owns
// its lines; the account reference is lookup-only.
type EntryLine struct {
	ID          int64   `json:"id"`
	EntryID     int64   `json:"entry_id"`
	AccountID   int64   `json:"account_id"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Memo        string  `json:"memo"`
	AccountCode string  `json:"account_code,omitempty"`
	AccountName string  `json:"account_name,omitempty"`
}

// EntryLineInput is the caller-supplied shape of a line on create/replace.
type EntryLineInput struct {
	AccountID int64   `json:"account_id"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
	Memo      string  `json:"memo"`
}

// BankTransaction is one imported statement row. Amount is signed: positive
// for inflows, negative for outflows. EntryID and TransferPairID are the two
// mutually exclusive resolution paths.
type BankTransaction struct {
	ID                 int64   `json:"id"`
	Date               string  `json:"date"`
	Description        string  `json:"description"`
	Amount             float64 `json:"amount"`
	Company            string  `json:"company,omitempty"`
	Label              string  `json:"label,omitempty"`
	BatchID            *int64  `json:"batch_id,omitempty"`
	EntryID            *int64  `json:"entry_id,omitempty"`
	TransferPairID     *int64  `json:"transfer_pair_id,omitempty"`
	IsInternalTransfer bool    `json:"is_internal_transfer"`
}

// BankTransactionInput is the caller-supplied shape for bulk insertion.
type BankTransactionInput struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Company     string  `json:"company,omitempty"`
	Label       string  `json:"label,omitempty"`
	BatchID     *int64  `json:"batch_id,omitempty"`
}

// UploadBatch groups bank transactions ingested together for bulk review and
// undo. Deleting a batch removes its transactions but never the entries
// already created from reconciled ones.
type UploadBatch struct {
	ID        int64  `json:"id"`
	Source    string `json:"source"`
	RowCount  int    `json:"row_count"`
	CreatedAt string `json:"created_at,omitempty"`
}

// BatchSummary is a batch plus its transaction counters.
type BatchSummary struct {
	UploadBatch
	TxCount        int `json:"tx_count"`
	ProcessedCount int `json:"processed_count"`
	PendingCount   int `json:"pending_count"`
}

// AccountBalance is the per-account aggregation primitive every report is
// built from: raw debit and credit sums over a date range.
type AccountBalance struct {
	ID          int64       `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	TotalDebit  float64     `json:"total_debit"`
	TotalCredit float64     `json:"total_credit"`
}

// TransferCandidate is the slice of a bank transaction echoed inside a
// pairing suggestion.
type TransferCandidate struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Company     string  `json:"company,omitempty"`
}

// TransferSuggestion is one proposed internal-transfer pairing.
type TransferSuggestion struct {
	Tx1        TransferCandidate `json:"tx1"`
	Tx2        TransferCandidate `json:"tx2"`
	Confidence float64           `json:"confidence"`
	Reason     string            `json:"reason"`
	AmountDiff float64           `json:"amountDiff"`
}
