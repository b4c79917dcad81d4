package api

import (
	"encoding/json"
	"net/http"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/matcher"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// TransactionsHandler handles bank-transaction endpoints.
type TransactionsHandler struct {
	conn    *store.Connection
	matcher *matcher.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(conn *store.Connection, m *matcher.Service) *TransactionsHandler {
	return &TransactionsHandler{conn: conn, matcher: m}
}

// List handles GET /bank-transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	txs, err := h.conn.ListBankTransactions()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

// BulkInsert handles POST /bank-transactions.
func (h *TransactionsHandler) BulkInsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transactions []models.BankTransactionInput `json:"transactions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if len(req.Transactions) == 0 {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing transactions")
		return
	}

	count, err := h.conn.BulkInsertBankTransactions(req.Transactions)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

// Clear handles DELETE /bank-transactions: it drops every transaction not yet
// reconciled through either path.
func (h *TransactionsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.conn.ClearUnreconciled()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

// CreateEntry handles POST /bank-transactions/{id}/create-entry.
func (h *TransactionsHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req struct {
		DebitAccountID  int64 `json:"debit_account_id"`
		CreditAccountID int64 `json:"credit_account_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	entryID, err := h.matcher.CreateEntryFromTransaction(id, req.DebitAccountID, req.CreditAccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"entryId": entryID})
}
