package ledger

import "golang.org/x/exp/slices"

// RecentWindow is how many recent transactions the dashboard shows.
const RecentWindow = 5

// Dashboard holds the coarse counts and recent-transaction slice shown on
// the landing view. Pure projection; no validation and no side effects.
type Dashboard struct {
	AccountCount      int           `json:"accountCount"`
	OwnerAccountCount int           `json:"ownerAccountCount"`
	TransactionCount  int           `json:"transactionCount"`
	AccountTypeCount  int           `json:"accountTypeCount"`
	Recent            []Transaction `json:"recentTransactions"`
}

// Summarize derives a dashboard from the given accounts, transactions and
// account types. Recent transactions are ordered by date descending;
// equal dates keep input order.
func Summarize(accounts []Account, transactions []Transaction, types []AccountType) Dashboard {
	d := Dashboard{
		AccountCount:     len(accounts),
		TransactionCount: len(transactions),
		AccountTypeCount: len(types),
	}
	for _, account := range accounts {
		if account.Owner {
			d.OwnerAccountCount++
		}
	}

	recent := make([]Transaction, len(transactions))
	copy(recent, transactions)
	slices.SortStableFunc(recent, func(a, b Transaction) int {
		switch {
		case a.Date.Equal(b.Date):
			return 0
		case a.Date.After(b.Date.Time):
			return -1
		default:
			return 1
		}
	})
	if len(recent) > RecentWindow {
		recent = recent[:RecentWindow]
	}
	d.Recent = recent

	return d
}
