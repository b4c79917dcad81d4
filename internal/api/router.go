package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/accounts"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/batches"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/ledger"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/matcher"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/reports"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// Services bundles everything the router needs.
type Services struct {
	Conn     *store.Connection
	Registry *accounts.Service
	Ledger   *ledger.Service
	Matcher  *matcher.Service
	Reports  *reports.Service
	Batches  *batches.Service
}

// NewRouter wires every engine operation onto its route.
func NewRouter(s Services) chi.Router {
	accountsHandler := NewAccountsHandler(s.Registry)
	entriesHandler := NewEntriesHandler(s.Ledger)
	transactionsHandler := NewTransactionsHandler(s.Conn, s.Matcher)
	transferMatchHandler := NewTransferMatchHandler(s.Matcher)
	reportsHandler := NewReportsHandler(s.Reports)
	batchesHandler := NewBatchesHandler(s.Batches)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", accountsHandler.List)
		r.Post("/", accountsHandler.Create)
	})

	r.Route("/entries", func(r chi.Router) {
		r.Get("/", entriesHandler.List)
		r.Post("/", entriesHandler.Create)
		r.Put("/{id}", entriesHandler.Replace)
		r.Delete("/{id}", entriesHandler.Delete)
	})

	r.Route("/bank-transactions", func(r chi.Router) {
		r.Get("/", transactionsHandler.List)
		r.Post("/", transactionsHandler.BulkInsert)
		r.Delete("/", transactionsHandler.Clear)
		r.Post("/{id}/create-entry", transactionsHandler.CreateEntry)
	})

	r.Route("/transfer-match", func(r chi.Router) {
		r.Get("/", transferMatchHandler.Suggest)
		r.Post("/", transferMatchHandler.Confirm)
		r.Delete("/", transferMatchHandler.Cancel)
	})

	r.Get("/reports", reportsHandler.Get)

	r.Route("/batches", func(r chi.Router) {
		r.Get("/", batchesHandler.List)
		r.Post("/", batchesHandler.Create)
		r.Delete("/{id}", batchesHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
