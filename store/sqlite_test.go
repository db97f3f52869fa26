package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"daybook/ledger"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "daybook.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// TestSQLite_Migrations verifies a fresh database comes up migrated and
// seeded with the default account types.
func TestSQLite_Migrations(t *testing.T) {
	db := openTestDB(t)

	types, err := db.AccountTypes(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, len(ledger.DefaultAccountTypes()), len(types))
}

// TestSQLite_AccountRoundTrip verifies save, list, update and delete
// against the real database.
func TestSQLite_AccountRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	saved, err := db.SaveAccount(ctx, ledger.Account{
		ID:        "a1",
		Name:      "Main Checking",
		Type:      "Asset",
		AccountNo: "12-345",
		Owner:     true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), saved.Seq)

	accounts, err := db.Accounts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(accounts))
	assert.Equal(t, "Main Checking", accounts[0].Name)
	assert.Equal(t, "12-345", accounts[0].AccountNo)
	assert.True(t, accounts[0].Owner)

	saved.Branch = "Downtown"
	updated, err := db.UpdateAccount(ctx, saved)
	assert.NoError(t, err)
	assert.Equal(t, saved.Seq, updated.Seq)

	assert.NoError(t, db.DeleteAccount(ctx, "a1"))

	var notFound *ledger.NotFoundError
	assert.True(t, errors.As(db.DeleteAccount(ctx, "a1"), &notFound))
}

// TestSQLite_TransactionRoundTrip verifies a transaction and its lines
// survive a write and read back intact, with the store-assigned sequence
// and completed status.
func TestSQLite_TransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	amount := decimal.RequireFromString("1200.50")
	saved, err := db.SaveTransaction(ctx, ledger.Transaction{
		ID:    "t1",
		Date:  ledger.MustParseDate("2024-04-01"),
		Total: amount,
		Lines: []ledger.Line{
			{Serial: 1, Account: "Cash", Description: "rent", Amount: amount, Side: ledger.Credit},
			{Serial: 2, Account: "Rent", Description: "rent", Amount: amount, Side: ledger.Debit},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), saved.Seq)
	assert.Equal(t, ledger.StatusCompleted, saved.Status)

	page, err := db.Transactions(ctx, ledger.TransactionFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	txn := page.Transactions[0]
	assert.Equal(t, "t1", txn.ID)
	assert.Equal(t, "2024-04-01", txn.Date.String())
	assert.True(t, txn.Total.Equal(amount))
	assert.Equal(t, 2, len(txn.Lines))
	assert.Equal(t, "Cash", txn.Lines[0].Account)
	assert.Equal(t, ledger.Credit, txn.Lines[0].Side)
	assert.True(t, txn.Lines[1].Amount.Equal(amount))
}

// TestSQLite_DeleteTransaction_CascadesLines verifies deleting a
// transaction removes its lines through the foreign key cascade, and a
// repeat delete reports not found.
func TestSQLite_DeleteTransaction_CascadesLines(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	amount := decimal.RequireFromString("10")
	_, err := db.SaveTransaction(ctx, ledger.Transaction{
		ID:   "t1",
		Date: ledger.MustParseDate("2024-04-01"),
		Lines: []ledger.Line{
			{Serial: 1, Account: "Cash", Description: "x", Amount: amount, Side: ledger.Credit},
			{Serial: 2, Account: "Rent", Description: "x", Amount: amount, Side: ledger.Debit},
		},
		Total: amount,
	})
	assert.NoError(t, err)

	assert.NoError(t, db.DeleteTransaction(ctx, "t1"))

	lines, err := db.transactionLines(ctx, "t1")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(lines))

	var notFound *ledger.NotFoundError
	assert.True(t, errors.As(db.DeleteTransaction(ctx, "t1"), &notFound))
}

// TestSQLite_Transactions_WindowAndPaging verifies the SQL-side window
// and LIMIT/OFFSET paging agree with the metadata.
func TestSQLite_Transactions_WindowAndPaging(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	amount := decimal.RequireFromString("10")
	for i, date := range []string{"2024-01-01", "2024-01-15", "2024-02-01", "2024-02-15"} {
		_, err := db.SaveTransaction(ctx, ledger.Transaction{
			ID:    string(rune('a' + i)),
			Date:  ledger.MustParseDate(date),
			Total: amount,
			Lines: []ledger.Line{
				{Serial: 1, Account: "Cash", Description: "x", Amount: amount, Side: ledger.Credit},
				{Serial: 2, Account: "Rent", Description: "x", Amount: amount, Side: ledger.Debit},
			},
		})
		assert.NoError(t, err)
	}

	start := ledger.MustParseDate("2024-01-15")
	page, err := db.Transactions(ctx, ledger.TransactionFilter{Start: &start, Page: 1, PerPage: 2})
	assert.NoError(t, err)

	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, len(page.Transactions))
	assert.Equal(t, "2024-02-15", page.Transactions[0].Date.String())
	assert.Equal(t, "2024-02-01", page.Transactions[1].Date.String())
}

// TestSQLite_Reopen verifies data written in one session is visible after
// closing and reopening the same file.
func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daybook.db")

	db, err := OpenSQLite(path)
	assert.NoError(t, err)
	_, err = db.SaveAccount(ctx, ledger.Account{ID: "a1", Name: "Cash", Type: "Asset"})
	assert.NoError(t, err)
	assert.NoError(t, db.Close())

	reopened, err := OpenSQLite(path)
	assert.NoError(t, err)
	defer reopened.Close()

	accounts, err := reopened.Accounts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(accounts))
	assert.Equal(t, "Cash", accounts[0].Name)
}
