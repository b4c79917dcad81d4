package api

import (
	"encoding/json"
	"net/http"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/batches"
)

// BatchesHandler handles upload batch endpoints.
type BatchesHandler struct {
	batches *batches.Service
}

// NewBatchesHandler creates a new BatchesHandler.
func NewBatchesHandler(b *batches.Service) *BatchesHandler {
	return &BatchesHandler{batches: b}
}

// List handles GET /batches.
func (h *BatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.batches.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"batches": result})
}

// Create handles POST /batches.
func (h *BatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source   string `json:"source"`
		RowCount int    `json:"row_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	batch, err := h.batches.Register(req.Source, req.RowCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

// Delete handles DELETE /batches/{id}. Still-unreconciled transactions go
// with the batch; entries created from reconciled ones are preserved.
func (h *BatchesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	result, err := h.batches.Delete(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         result.Deleted,
		"orphanedEntries": result.OrphanedEntries,
	})
}
