package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/accounts"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/config"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/store"
)

var seedChartPath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the chart of accounts from a YAML file",
	Long: `Seed the chart of accounts. Accounts whose codes already exist are
left untouched, so the command is safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(getConfigFile())
		exitOnError(err, "failed to load configuration")

		chartPath := seedChartPath
		if chartPath == "" {
			chartPath = cfg.ChartPath
		}
		if chartPath == "" {
			exitOnError(fmt.Errorf("no chart file given (use --chart or CHART_PATH)"), "failed to seed")
		}

		conn, err := store.Open(cfg.DBPath)
		exitOnError(err, "failed to open database")
		defer conn.Close()

		registry := accounts.NewService(conn)
		inserted, err := registry.SeedFromFile(chartPath)
		exitOnError(err, "failed to seed chart of accounts")

		fmt.Printf("Seeded %d new account(s) from %s\n", inserted, chartPath)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedChartPath, "chart", "", "chart of accounts YAML file")
}
