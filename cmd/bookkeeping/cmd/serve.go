package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/accounts"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/api"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/batches"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/config"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/ledger"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/matcher"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/reports"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bookkeeping HTTP server",
	Long: `Start the HTTP server exposing accounts, entries, bank transactions,
transfer matching, reports and upload batches.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(getConfigFile())
		exitOnError(err, "failed to load configuration")

		conn, err := store.Open(cfg.DBPath)
		exitOnError(err, "failed to open database")
		defer conn.Close()

		registry := accounts.NewService(conn)
		ledgerSvc := ledger.NewService(conn, cfg.LargeEntryThreshold)

		if cfg.ChartPath != "" {
			inserted, err := registry.SeedFromFile(cfg.ChartPath)
			exitOnError(err, "failed to seed chart of accounts")
			slog.Info("chart of accounts seeded", "path", cfg.ChartPath, "inserted", inserted)
		}

		router := api.NewRouter(api.Services{
			Conn:     conn,
			Registry: registry,
			Ledger:   ledgerSvc,
			Matcher:  matcher.NewService(conn, ledgerSvc),
			Reports:  reports.NewService(ledgerSvc),
			Batches:  batches.NewService(conn),
		})

		server := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			slog.Info("starting bookkeeping server", "port", cfg.Port, "db", cfg.DBPath)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("server error", "error", err)
				os.Exit(1)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("forced shutdown", "error", err)
			os.Exit(1)
		}
		slog.Info("server stopped")
	},
}
