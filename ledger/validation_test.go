package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func amt(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// TestValidateDraft_Balanced verifies a balanced two-line draft passes.
func TestValidateDraft_Balanced(t *testing.T) {
	errs := ValidateDraft([]DraftLine{
		{Account: "Cash", Description: "rent", Amount: amt("500"), Side: Credit},
		{Account: "Office", Description: "rent", Amount: amt("500"), Side: Debit},
	})
	assert.Equal(t, 0, len(errs))
}

// TestValidateDraft_WithinTolerance verifies a 0.01 imbalance is accepted
// and anything larger is not.
func TestValidateDraft_WithinTolerance(t *testing.T) {
	errs := ValidateDraft([]DraftLine{
		{Account: "A", Description: "x", Amount: amt("100.00"), Side: Credit},
		{Account: "B", Description: "x", Amount: amt("99.99"), Side: Debit},
	})
	assert.Equal(t, 0, len(errs))

	errs = ValidateDraft([]DraftLine{
		{Account: "A", Description: "x", Amount: amt("100.00"), Side: Credit},
		{Account: "B", Description: "x", Amount: amt("99.98"), Side: Debit},
	})
	assert.Equal(t, 1, len(errs))
}

// TestValidateDraft_Imbalance verifies an unbalanced draft produces a
// single aggregate violation naming both totals.
func TestValidateDraft_Imbalance(t *testing.T) {
	errs := ValidateDraft([]DraftLine{
		{Account: "A", Description: "x", Amount: amt("100"), Side: Credit},
		{Account: "B", Description: "y", Amount: amt("90"), Side: Debit},
	})
	assert.Equal(t, 1, len(errs))

	imbalance, ok := errs[0].(*ImbalanceError)
	assert.True(t, ok)
	assert.True(t, imbalance.CreditTotal.Equal(amt("100")))
	assert.True(t, imbalance.DebitTotal.Equal(amt("90")))
	assert.Contains(t, imbalance.Error(), "100")
	assert.Contains(t, imbalance.Error(), "90")
}

// TestValidateDraft_CollectsAllViolations verifies validation does not
// stop at the first problem: one invalid row plus an imbalance yields
// exactly two messages.
func TestValidateDraft_CollectsAllViolations(t *testing.T) {
	errs := ValidateDraft([]DraftLine{
		{Account: "A", Description: "salary", Amount: amt("100"), Side: Credit},
		{Account: "B", Description: "  ", Amount: amt("50"), Side: Debit},
		{Account: "C", Description: "fees", Amount: amt("45"), Side: Debit},
	})
	assert.Equal(t, 2, len(errs))

	row, ok := errs[0].(*RowError)
	assert.True(t, ok)
	assert.Equal(t, 2, row.Row)

	_, ok = errs[1].(*ImbalanceError)
	assert.True(t, ok)
}

// TestValidateDraft_RowRules verifies each per-row rule is reported
// separately with a 1-based row index.
func TestValidateDraft_RowRules(t *testing.T) {
	errs := ValidateDraft([]DraftLine{
		{Account: "", Description: "ok", Amount: amt("10"), Side: Credit},
		{Account: "B", Description: "", Amount: amt("10"), Side: Debit},
		{Account: "C", Description: "ok", Amount: decimal.Zero, Side: Credit},
	})

	// Three row violations plus the imbalance the zero amount causes.
	assert.Equal(t, 4, len(errs))
	assert.Contains(t, errs[0].Error(), "row 1")
	assert.Contains(t, errs[0].Error(), "account")
	assert.Contains(t, errs[1].Error(), "row 2")
	assert.Contains(t, errs[1].Error(), "description")
	assert.Contains(t, errs[2].Error(), "row 3")
	assert.Contains(t, errs[2].Error(), "amount")
}

// TestValidateDraft_NegativeAmount verifies amounts below zero violate
// the positive-amount rule.
func TestValidateDraft_NegativeAmount(t *testing.T) {
	errs := ValidateDraft([]DraftLine{
		{Account: "A", Description: "x", Amount: amt("-5"), Side: Credit},
		{Account: "B", Description: "x", Amount: amt("-5"), Side: Debit},
	})
	assert.Equal(t, 2, len(errs))
}

// TestValidateDraft_Empty verifies a draft with no lines is not
// constructible.
func TestValidateDraft_Empty(t *testing.T) {
	errs := ValidateDraft(nil)
	assert.Equal(t, 1, len(errs))

	_, ok := errs[0].(*EmptyTransactionError)
	assert.True(t, ok)
}

// TestRenumberLines verifies serials form a dense 1..N sequence
// regardless of their previous values.
func TestRenumberLines(t *testing.T) {
	lines := []Line{
		{Serial: 7, Account: "A"},
		{Serial: 2, Account: "B"},
		{Serial: 99, Account: "C"},
	}

	renumbered := RenumberLines(lines)
	for i, line := range renumbered {
		assert.Equal(t, i+1, line.Serial)
	}
	// Original slice untouched.
	assert.Equal(t, 7, lines[0].Serial)
}

// TestRenumberLines_AfterRemoval verifies removing a middle row leaves no
// gap once renumbered.
func TestRenumberLines_AfterRemoval(t *testing.T) {
	lines := RenumberLines([]Line{{Account: "A"}, {Account: "B"}, {Account: "C"}})
	lines = append(lines[:1], lines[2:]...)
	lines = RenumberLines(lines)

	assert.Equal(t, 2, len(lines))
	assert.Equal(t, 1, lines[0].Serial)
	assert.Equal(t, 2, lines[1].Serial)
	assert.Equal(t, "C", lines[1].Account)
}

// TestLineTotals verifies credit and debit sums accumulate per side.
func TestLineTotals(t *testing.T) {
	credit, debit := LineTotals([]Line{
		{Amount: amt("100.50"), Side: Credit},
		{Amount: amt("50.25"), Side: Debit},
		{Amount: amt("49.75"), Side: Credit},
		{Amount: amt("100.00"), Side: Debit},
	})
	assert.True(t, credit.Equal(amt("150.25")))
	assert.True(t, debit.Equal(amt("150.25")))
}
