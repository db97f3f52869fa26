package ledger

import "context"

// Store is the storage collaborator the registry and ledger operate
// against. Implementations must make SaveTransaction atomic: either the
// whole transaction with all its lines is persisted, or nothing is.
//
// Stores return *NotFoundError for unknown ids; any other failure is
// wrapped by the caller into an *UpstreamError.
type Store interface {
	AccountTypes(ctx context.Context) ([]AccountType, error)

	Accounts(ctx context.Context) ([]Account, error)
	SaveAccount(ctx context.Context, account Account) (Account, error)
	UpdateAccount(ctx context.Context, account Account) (Account, error)
	DeleteAccount(ctx context.Context, id string) error

	Transactions(ctx context.Context, filter TransactionFilter) (TransactionPage, error)
	SaveTransaction(ctx context.Context, txn Transaction) (Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// TransactionFilter selects transactions from a store. Start and End form
// an inclusive calendar-date window; a nil bound is open. Page numbering
// starts at 1; Page zero disables paging and returns the full result set.
type TransactionFilter struct {
	Start   *Date
	End     *Date
	Page    int
	PerPage int
}

// DefaultPerPage is the page size used when a filter requests paging
// without naming a size.
const DefaultPerPage = 50

// TransactionPage is one page of transactions plus paging metadata.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	TotalPages   int           `json:"totalPages"`
	CurrentPage  int           `json:"currentPage"`
	Total        int           `json:"total"`
}

// InWindow reports whether a date falls inside the filter's inclusive
// window.
func (f TransactionFilter) InWindow(date Date) bool {
	if f.Start != nil && date.Before(f.Start.Time) && !date.Equal(*f.Start) {
		return false
	}
	if f.End != nil && date.After(f.End.Time) && !date.Equal(*f.End) {
		return false
	}
	return true
}
