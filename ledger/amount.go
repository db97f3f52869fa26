package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum difference between credit and debit
// totals a transaction may carry, in currency units.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// ParseAmount parses a user-supplied amount string. Non-numeric input
// coerces to zero rather than erroring, so that validation can report it
// as a violation instead of silently dropping the line.
func ParseAmount(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Balanced reports whether credit and debit totals agree within
// BalanceTolerance.
func Balanced(credit, debit decimal.Decimal) bool {
	return credit.Sub(debit).Abs().LessThanOrEqual(BalanceTolerance)
}
