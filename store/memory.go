package store

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/exp/slices"

	"daybook/ledger"
)

// Memory is a mutex-guarded in-process store. A single mutex covers every
// operation, so validate-then-commit sequences driven by the ledger see a
// consistent snapshot and saves never interleave.
type Memory struct {
	mu           sync.Mutex
	types        []ledger.AccountType
	accounts     []ledger.Account
	transactions []ledger.Transaction
	accountSeq   int64
	txnSeq       int64
}

var _ ledger.Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store seeded with the given
// account types, or the defaults when none are given.
func NewMemory(types ...ledger.AccountType) *Memory {
	if len(types) == 0 {
		types = ledger.DefaultAccountTypes()
	}
	return &Memory{types: types}
}

func (m *Memory) AccountTypes(ctx context.Context) ([]ledger.AccountType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.types), nil
}

func (m *Memory) Accounts(ctx context.Context) ([]ledger.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.accounts), nil
}

func (m *Memory) SaveAccount(ctx context.Context, account ledger.Account) (ledger.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accountSeq++
	account.Seq = m.accountSeq
	m.accounts = append(m.accounts, account)
	return account, nil
}

func (m *Memory) UpdateAccount(ctx context.Context, account ledger.Account) (ledger.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.accounts {
		if existing.ID == account.ID {
			account.Seq = existing.Seq
			m.accounts[i] = account
			return account, nil
		}
	}
	return ledger.Account{}, &ledger.NotFoundError{Kind: "account", ID: account.ID}
}

func (m *Memory) DeleteAccount(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.accounts {
		if existing.ID == id {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "account", ID: id}
}

func (m *Memory) Transactions(ctx context.Context, filter ledger.TransactionFilter) (ledger.TransactionPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []ledger.Transaction
	for _, txn := range m.transactions {
		if filter.InWindow(txn.Date) {
			matched = append(matched, cloneTransaction(txn))
		}
	}

	// Most recent first; within a date, latest insert first.
	slices.SortStableFunc(matched, func(a, b ledger.Transaction) int {
		switch {
		case a.Date.Equal(b.Date):
			return int(b.Seq - a.Seq)
		case a.Date.After(b.Date.Time):
			return -1
		default:
			return 1
		}
	})

	offset, limit, totalPages, currentPage := pageBounds(len(matched), filter.Page, filter.PerPage)
	page := ledger.TransactionPage{
		Transactions: matched[offset : offset+limit],
		TotalPages:   totalPages,
		CurrentPage:  currentPage,
		Total:        len(matched),
	}
	if page.Transactions == nil {
		page.Transactions = []ledger.Transaction{}
	}
	return page, nil
}

func (m *Memory) SaveTransaction(ctx context.Context, txn ledger.Transaction) (ledger.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txnSeq++
	txn.Seq = m.txnSeq
	txn.Status = ledger.StatusCompleted
	m.transactions = append(m.transactions, cloneTransaction(txn))
	return txn, nil
}

func (m *Memory) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.transactions {
		if existing.ID == id {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return nil
		}
	}
	return &ledger.NotFoundError{Kind: "transaction", ID: id}
}

// SeedAccountType registers an additional account type. Intended for
// tests that need types beyond the defaults.
func (m *Memory) SeedAccountType(t ledger.AccountType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.types {
		if strings.EqualFold(existing.Name, t.Name) {
			return
		}
	}
	m.types = append(m.types, t)
}

func cloneTransaction(txn ledger.Transaction) ledger.Transaction {
	txn.Lines = slices.Clone(txn.Lines)
	return txn
}
