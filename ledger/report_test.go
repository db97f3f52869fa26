package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func testAccounts() []Account {
	return []Account{
		{ID: "a1", Name: "A", Type: "Asset", Owner: true},
		{ID: "b1", Name: "B", Type: "Expense"},
	}
}

func txnOn(date string, lines ...Line) Transaction {
	return Transaction{
		ID:    "txn-" + date,
		Date:  MustParseDate(date),
		Lines: RenumberLines(lines),
	}
}

// TestGenerateReport_OwnerFilter covers the worked owner-accounts
// example: one balanced transaction, owner filter on, and only the owner
// account reported.
func TestGenerateReport_OwnerFilter(t *testing.T) {
	transactions := []Transaction{
		txnOn("2024-01-05",
			Line{Account: "A", Description: "rent", Amount: amt("500"), Side: Credit},
			Line{Account: "B", Description: "rent", Amount: amt("500"), Side: Debit},
		),
	}

	reports, summary := GenerateReport(testAccounts(), transactions, ReportFilter{OwnerOnly: true})

	assert.Equal(t, 1, len(reports))
	assert.Equal(t, "A", reports[0].Account.Name)
	assert.True(t, reports[0].TotalCredit.Equal(amt("500")))
	assert.True(t, reports[0].TotalDebit.IsZero())
	assert.True(t, reports[0].Net.Equal(amt("500")))

	assert.Equal(t, 1, summary.AccountCount)
	assert.True(t, summary.TotalCredit.Equal(amt("500")))
	assert.True(t, summary.TotalDebit.IsZero())
}

// TestGenerateReport_ExcludesInactiveAccounts verifies accounts with no
// matching lines in the window are left out entirely.
func TestGenerateReport_ExcludesInactiveAccounts(t *testing.T) {
	transactions := []Transaction{
		txnOn("2024-02-01",
			Line{Account: "A", Description: "fee", Amount: amt("10"), Side: Credit},
			Line{Account: "A", Description: "fee", Amount: amt("10"), Side: Debit},
		),
	}

	reports, summary := GenerateReport(testAccounts(), transactions, ReportFilter{})

	assert.Equal(t, 1, len(reports))
	assert.Equal(t, "A", reports[0].Account.Name)
	assert.Equal(t, 1, summary.AccountCount)
}

// TestGenerateReport_AccountIDPrecedence verifies a selected account
// overrides the owner-only restriction even when both are set.
func TestGenerateReport_AccountIDPrecedence(t *testing.T) {
	transactions := []Transaction{
		txnOn("2024-01-05",
			Line{Account: "A", Description: "rent", Amount: amt("500"), Side: Credit},
			Line{Account: "B", Description: "rent", Amount: amt("500"), Side: Debit},
		),
	}

	reports, _ := GenerateReport(testAccounts(), transactions, ReportFilter{
		AccountID: "b1",
		OwnerOnly: true,
	})

	assert.Equal(t, 1, len(reports))
	assert.Equal(t, "B", reports[0].Account.Name)
	assert.True(t, reports[0].TotalDebit.Equal(amt("500")))
}

// TestGenerateReport_PermutationInvariant verifies net amounts do not
// depend on the order transactions are scanned in.
func TestGenerateReport_PermutationInvariant(t *testing.T) {
	t1 := txnOn("2024-01-01",
		Line{Account: "A", Description: "one", Amount: amt("100"), Side: Credit},
		Line{Account: "B", Description: "one", Amount: amt("100"), Side: Debit},
	)
	t2 := txnOn("2024-01-02",
		Line{Account: "A", Description: "two", Amount: amt("40"), Side: Debit},
		Line{Account: "B", Description: "two", Amount: amt("40"), Side: Credit},
	)
	t3 := txnOn("2024-01-03",
		Line{Account: "A", Description: "three", Amount: amt("15"), Side: Credit},
		Line{Account: "B", Description: "three", Amount: amt("15"), Side: Debit},
	)

	forward, _ := GenerateReport(testAccounts(), []Transaction{t1, t2, t3}, ReportFilter{})
	backward, _ := GenerateReport(testAccounts(), []Transaction{t3, t1, t2}, ReportFilter{})

	assert.Equal(t, len(forward), len(backward))
	for i := range forward {
		assert.Equal(t, forward[i].Account.Name, backward[i].Account.Name)
		assert.True(t, forward[i].Net.Equal(backward[i].Net))
		assert.True(t, forward[i].TotalCredit.Equal(backward[i].TotalCredit))
		assert.True(t, forward[i].TotalDebit.Equal(backward[i].TotalDebit))
	}
}

// TestGenerateReport_EntriesDateDescending verifies entries are newest
// first, with equal dates keeping scan order.
func TestGenerateReport_EntriesDateDescending(t *testing.T) {
	transactions := []Transaction{
		txnOn("2024-01-01",
			Line{Account: "A", Description: "old", Amount: amt("10"), Side: Credit},
			Line{Account: "B", Description: "old", Amount: amt("10"), Side: Debit},
		),
		txnOn("2024-03-01",
			Line{Account: "A", Description: "tie-first", Amount: amt("20"), Side: Credit},
			Line{Account: "B", Description: "tie-first", Amount: amt("20"), Side: Debit},
		),
		{
			ID:   "tie-second",
			Date: MustParseDate("2024-03-01"),
			Lines: RenumberLines([]Line{
				{Account: "A", Description: "tie-second", Amount: amt("30"), Side: Credit},
				{Account: "B", Description: "tie-second", Amount: amt("30"), Side: Debit},
			}),
		},
	}

	reports, _ := GenerateReport(testAccounts(), transactions, ReportFilter{AccountID: "a1"})

	assert.Equal(t, 1, len(reports))
	entries := reports[0].Entries
	assert.Equal(t, 3, len(entries))
	assert.Equal(t, "tie-first", entries[0].Description)
	assert.Equal(t, "tie-second", entries[1].Description)
	assert.Equal(t, "old", entries[2].Description)
}

// TestGenerateReport_DeletedAccountLines verifies lines referencing a
// name no registry account carries simply match nothing; the remaining
// accounts still report.
func TestGenerateReport_DeletedAccountLines(t *testing.T) {
	transactions := []Transaction{
		txnOn("2024-01-05",
			Line{Account: "Ghost", Description: "old transfer", Amount: amt("75"), Side: Credit},
			Line{Account: "A", Description: "old transfer", Amount: amt("75"), Side: Debit},
		),
	}

	reports, summary := GenerateReport(testAccounts(), transactions, ReportFilter{})

	assert.Equal(t, 1, len(reports))
	assert.Equal(t, "A", reports[0].Account.Name)
	assert.True(t, summary.TotalCredit.IsZero())
	assert.True(t, summary.TotalDebit.Equal(amt("75")))
}

// TestGenerateReport_SummarySpansEmittedOnly verifies the summary
// aggregates exactly the accounts that produced reports.
func TestGenerateReport_SummarySpansEmittedOnly(t *testing.T) {
	transactions := []Transaction{
		txnOn("2024-01-05",
			Line{Account: "A", Description: "rent", Amount: amt("500"), Side: Credit},
			Line{Account: "B", Description: "rent", Amount: amt("500"), Side: Debit},
		),
	}

	_, ownerSummary := GenerateReport(testAccounts(), transactions, ReportFilter{OwnerOnly: true})
	_, fullSummary := GenerateReport(testAccounts(), transactions, ReportFilter{})

	assert.Equal(t, 1, ownerSummary.AccountCount)
	assert.True(t, ownerSummary.TotalDebit.IsZero())

	assert.Equal(t, 2, fullSummary.AccountCount)
	assert.True(t, fullSummary.TotalDebit.Equal(amt("500")))
	assert.True(t, fullSummary.Net.IsZero())
}
