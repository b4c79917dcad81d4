package api

import (
	"encoding/json"
	"net/http"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/matcher"
)

// TransferMatchHandler handles internal-transfer pairing endpoints.
type TransferMatchHandler struct {
	matcher *matcher.Service
}

// NewTransferMatchHandler creates a new TransferMatchHandler.
func NewTransferMatchHandler(m *matcher.Service) *TransferMatchHandler {
	return &TransferMatchHandler{matcher: m}
}

// Suggest handles GET /transfer-match.
func (h *TransferMatchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.matcher.SuggestPairs()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

// Confirm handles POST /transfer-match.
func (h *TransferMatchHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tx1ID int64 `json:"tx1_id"`
		Tx2ID int64 `json:"tx2_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	pairID, err := h.matcher.ConfirmPair(req.Tx1ID, req.Tx2ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pairId":  pairID,
	})
}

// Cancel handles DELETE /transfer-match.
func (h *TransferMatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PairID int64 `json:"pair_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	if err := h.matcher.CancelPair(req.PairID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
