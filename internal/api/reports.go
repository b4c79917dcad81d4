package api

import (
	"net/http"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/reports"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// ReportsHandler handles report generation endpoints.
type ReportsHandler struct {
	reports *reports.Service
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(r *reports.Service) *ReportsHandler {
	return &ReportsHandler{reports: r}
}

// Get handles GET /reports?type=...&startDate=&endDate=&asOfDate=.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng := store.DateRange{Start: q.Get("startDate"), End: q.Get("endDate")}

	var body interface{}
	var err error

	switch q.Get("type") {
	case "trial-balance":
		body, err = h.reports.TrialBalance(rng)
	case "balance-sheet":
		body, err = h.reports.BalanceSheet(q.Get("asOfDate"))
	case "income-statement":
		body, err = h.reports.IncomeStatement(rng)
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter",
			"type must be one of trial-balance, balance-sheet, income-statement")
		return
	}

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}
