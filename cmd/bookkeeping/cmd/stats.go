package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/config"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display ledger statistics",
	Long: `Display statistics about the ledger database.

Shows:
- Total number of accounts
- Total number of journal entries
- Total number of bank transactions and how many remain unreconciled
- Number of confirmed internal transfers
- Number of upload batches

Example:
  bookkeeping stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	slog.Debug("Opening database", "path", cfg.DBPath)

	conn, err := store.Open(cfg.DBPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	stats, err := conn.GetStats()
	exitOnError(err, "failed to get statistics")

	fmt.Println("\n=== Ledger Statistics ===")
	fmt.Printf("Accounts:            %d\n", stats.Accounts)
	fmt.Printf("Journal entries:     %d\n", stats.Entries)
	fmt.Printf("Bank transactions:   %d\n", stats.BankTransactions)
	fmt.Printf("  unreconciled:      %d\n", stats.Unreconciled)
	fmt.Printf("Internal transfers:  %d\n", stats.InternalTransfers)
	fmt.Printf("Upload batches:      %d\n", stats.Batches)
	fmt.Println()
}
