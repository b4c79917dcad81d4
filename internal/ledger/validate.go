package ledger

import (
	"math"

	"github.com/shunichi-ikebuchi/bookkeeping/internal/engine"
	"github.com/shunichi-ikebuchi/bookkeeping/internal/models"
)

// BalanceTolerance is the maximum allowed difference between total debits and
// total credits of one entry, in currency units.
const BalanceTolerance = 0.01

// validateEntry enforces the double-entry invariant before anything is
// written. A line carries either a debit or a credit, never both, and the
// line set must balance within the fixed tolerance.
func validateEntry(date string, lines []models.EntryLineInput) error {
	if date == "" {
		return engine.Validationf("entry date is required")
	}
	if len(lines) == 0 {
		return engine.Validationf("an entry requires at least one line")
	}

	var totalDebit, totalCredit float64
	for i, line := range lines {
		if line.Debit < 0 || line.Credit < 0 {
			return engine.Validationf("line %d: debit and credit must be non-negative", i+1)
		}
		if line.Debit > 0 && line.Credit > 0 {
			return engine.Validationf("line %d: a line carries either a debit or a credit, not both", i+1)
		}
		if line.AccountID == 0 {
			return engine.Validationf("line %d: account is required", i+1)
		}
		totalDebit += line.Debit
		totalCredit += line.Credit
	}

	if math.Abs(totalDebit-totalCredit) > BalanceTolerance {
		return engine.Validationf(
			"debits and credits do not balance (debit %.2f, credit %.2f)",
			totalDebit, totalCredit,
		)
	}
	return nil
}
