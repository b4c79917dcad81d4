package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/accounts"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// AccountsHandler handles chart-of-accounts endpoints.
type AccountsHandler struct {
	registry *accounts.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(registry *accounts.Service) *AccountsHandler {
	return &AccountsHandler{registry: registry}
}

// List handles GET /accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	result, err := h.registry.List(q.Get("search"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Create handles POST /accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string             `json:"code"`
		Name string             `json:"name"`
		Type models.AccountType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	account, err := h.registry.Register(req.Code, req.Name, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}
