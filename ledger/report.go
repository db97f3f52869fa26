package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// ReportFilter restricts which accounts a report covers. The date window
// is applied by the transaction source, not here: GenerateReport trusts
// that the transaction set it receives already matches Start/End, which
// are carried only so callers can echo the window back in output.
//
// A set AccountID restricts the report to exactly that account and takes
// precedence over OwnerOnly.
type ReportFilter struct {
	Start     *Date
	End       *Date
	AccountID string
	OwnerOnly bool
}

// Entry is one matched transaction line in an account report.
type Entry struct {
	TransactionID  string          `json:"transactionId"`
	TransactionSeq int64           `json:"sequentialTransactionId"`
	Date           Date            `json:"date"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Side           Side            `json:"type"`
}

// AccountReport is the derived financial position of one account over the
// filtered transaction window. Entries are ordered by transaction date
// descending; equal dates keep scan order.
type AccountReport struct {
	Account     Account         `json:"account"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	Net         decimal.Decimal `json:"netAmount"`
	Entries     []Entry         `json:"entries"`
}

// ReportSummary aggregates across exactly the accounts that produced a
// non-empty report.
type ReportSummary struct {
	AccountCount int             `json:"accountCount"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	Net          decimal.Decimal `json:"netAmount"`
}

// GenerateReport produces per-account summaries and a global summary over
// the given transaction set. It is a pure function of its inputs: reports
// hold no reference back into the ledger and must be regenerated, never
// patched, when the underlying transactions change.
//
// A line matches an account when its stored account name equals the
// account's current name. Accounts with zero matching lines in the window
// are excluded from the output entirely.
func GenerateReport(accounts []Account, transactions []Transaction, filter ReportFilter) ([]AccountReport, ReportSummary) {
	summary := ReportSummary{
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		Net:         decimal.Zero,
	}

	var reports []AccountReport
	for _, account := range accounts {
		if !filter.includes(account) {
			continue
		}

		report := aggregateAccount(account, transactions)
		if len(report.Entries) == 0 {
			continue
		}

		reports = append(reports, report)
		summary.AccountCount++
		summary.TotalCredit = summary.TotalCredit.Add(report.TotalCredit)
		summary.TotalDebit = summary.TotalDebit.Add(report.TotalDebit)
		summary.Net = summary.Net.Add(report.Net)
	}

	return reports, summary
}

func (f ReportFilter) includes(account Account) bool {
	if f.AccountID != "" {
		return account.ID == f.AccountID
	}
	if f.OwnerOnly {
		return account.Owner
	}
	return true
}

func aggregateAccount(account Account, transactions []Transaction) AccountReport {
	report := AccountReport{
		Account:     account,
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
	}

	for _, txn := range transactions {
		for _, line := range txn.Lines {
			if line.Account != account.Name {
				continue
			}

			report.Entries = append(report.Entries, Entry{
				TransactionID:  txn.ID,
				TransactionSeq: txn.Seq,
				Date:           txn.Date,
				Description:    line.Description,
				Amount:         line.Amount,
				Side:           line.Side,
			})
			if line.Side == Credit {
				report.TotalCredit = report.TotalCredit.Add(line.Amount)
			} else {
				report.TotalDebit = report.TotalDebit.Add(line.Amount)
			}
		}
	}

	report.Net = report.TotalCredit.Sub(report.TotalDebit)

	// Date descending; ties keep scan order.
	slices.SortStableFunc(report.Entries, func(a, b Entry) int {
		switch {
		case a.Date.Equal(b.Date):
			return 0
		case a.Date.After(b.Date.Time):
			return -1
		default:
			return 1
		}
	})

	return report
}
