package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateDraft checks every rule a draft transaction must satisfy before
// it may be stored. It always inspects every line and returns the full
// ordered list of violations: per-row rules first (rows indexed from 1),
// then the global balance rule. An empty slice means the draft is valid.
func ValidateDraft(lines []DraftLine) []error {
	if len(lines) == 0 {
		return []error{&EmptyTransactionError{}}
	}

	var errs []error
	for i, line := range lines {
		row := i + 1
		if strings.TrimSpace(line.Account) == "" {
			errs = append(errs, &RowError{Row: row, Message: "account is required"})
		}
		if strings.TrimSpace(line.Description) == "" {
			errs = append(errs, &RowError{Row: row, Message: "description is required"})
		}
		if !line.Amount.IsPositive() {
			errs = append(errs, &RowError{Row: row, Message: "amount must be greater than zero"})
		}
	}

	credit, debit := draftTotals(lines)
	if !Balanced(credit, debit) {
		errs = append(errs, &ImbalanceError{CreditTotal: credit, DebitTotal: debit})
	}

	return errs
}

// RenumberLines reassigns the serial numbers of lines to a dense 1..N
// sequence in slice order. It is invoked after every mutation of a line
// list rather than maintained incrementally, so the sequence can never
// drift.
func RenumberLines(lines []Line) []Line {
	renumbered := make([]Line, len(lines))
	for i, line := range lines {
		line.Serial = i + 1
		renumbered[i] = line
	}
	return renumbered
}

// LineTotals computes the credit and debit totals of a line list.
func LineTotals(lines []Line) (credit, debit decimal.Decimal) {
	credit, debit = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Side == Credit {
			credit = credit.Add(line.Amount)
		} else {
			debit = debit.Add(line.Amount)
		}
	}
	return credit, debit
}

func draftTotals(lines []DraftLine) (credit, debit decimal.Decimal) {
	credit, debit = decimal.Zero, decimal.Zero
	for _, line := range lines {
		if line.Side == Credit {
			credit = credit.Add(line.Amount)
		} else {
			debit = debit.Add(line.Amount)
		}
	}
	return credit, debit
}
