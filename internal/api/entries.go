package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/ledger"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// EntriesHandler handles journal entry endpoints.
type EntriesHandler struct {
	ledger *ledger.Service
}

// NewEntriesHandler creates a new EntriesHandler.
func NewEntriesHandler(l *ledger.Service) *EntriesHandler {
	return &EntriesHandler{ledger: l}
}

// entryRequest is the shared body of create and replace.
type entryRequest struct {
	Date        string                  `json:"date"`
	Description string                  `json:"description"`
	Lines       []models.EntryLineInput `json:"lines"`
}

// List handles GET /entries.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	entries, err := h.ledger.ListEntries(limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Create handles POST /entries.
func (h *EntriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	id, err := h.ledger.CreateEntry(req.Date, req.Description, req.Lines)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

// Replace handles PUT /entries/{id}.
func (h *EntriesHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if err := h.ledger.ReplaceEntry(id, req.Date, req.Description, req.Lines); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Delete handles DELETE /entries/{id}. The response carries the deletion
// summary so the caller can warn about large amounts or unlinked bank
// transactions.
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	summary, err := h.ledger.DeleteEntry(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"deletedEntry": summary.DeletedEntry,
		"warnings":     summary.Warnings,
	})
}

// parseID reads the {id} URL parameter, writing a 400 on failure.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid ID")
		return 0, false
	}
	return id, true
}
