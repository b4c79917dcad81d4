package store

import "fmt"

// Stats summarizes the ledger for the stats command.
type Stats struct {
	Accounts          int
	Entries           int
	BankTransactions  int
	Unreconciled      int
	InternalTransfers int
	Batches           int
}

// GetStats counts the main relations.
func (c *Connection) GetStats() (*Stats, error) {
	var stats Stats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM accounts`, &stats.Accounts},
		{`SELECT COUNT(*) FROM entries`, &stats.Entries},
		{`SELECT COUNT(*) FROM bank_transactions`, &stats.BankTransactions},
		{`SELECT COUNT(*) FROM bank_transactions WHERE entry_id IS NULL AND transfer_pair_id IS NULL`, &stats.Unreconciled},
		{`SELECT COUNT(*) FROM bank_transactions WHERE is_internal_transfer = 1`, &stats.InternalTransfers},
		{`SELECT COUNT(*) FROM upload_batches`, &stats.Batches},
	}

	for _, cnt := range counts {
		if err := c.QueryRow(cnt.query).Scan(cnt.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}
	return &stats, nil
}
