package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"daybook/ledger"
)

// SQLite is the durable store. Transactions and their lines are written
// inside a single database transaction, so a create is all-or-nothing and
// concurrent creates never interleave partial line writes.
type SQLite struct {
	db   *sql.DB
	path string
}

var _ ledger.Store = (*SQLite)(nil)

// OpenSQLite opens (creating if necessary) the database at path and runs
// pending migrations.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path, used by the web server's watch
// mode.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) AccountTypes(ctx context.Context) ([]ledger.AccountType, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM account_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query account types: %w", err)
	}
	defer rows.Close()

	var types []ledger.AccountType
	for rows.Next() {
		var t ledger.AccountType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scan account type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (s *SQLite) Accounts(ctx context.Context) ([]ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, name, type, account_no, branch, address, contact, is_owner
		FROM accounts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.Seq, &a.ID, &a.Name, &a.Type, &a.AccountNo, &a.Branch, &a.Address, &a.Contact, &a.Owner); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *SQLite) SaveAccount(ctx context.Context, account ledger.Account) (ledger.Account, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, account_no, branch, address, contact, is_owner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.Name, account.Type, account.AccountNo,
		account.Branch, account.Address, account.Contact, account.Owner)
	if err != nil {
		return ledger.Account{}, fmt.Errorf("insert account: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return ledger.Account{}, fmt.Errorf("account sequence: %w", err)
	}
	account.Seq = seq
	return account, nil
}

func (s *SQLite) UpdateAccount(ctx context.Context, account ledger.Account) (ledger.Account, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, type = ?, account_no = ?, branch = ?, address = ?, contact = ?, is_owner = ?
		WHERE id = ?`,
		account.Name, account.Type, account.AccountNo, account.Branch,
		account.Address, account.Contact, account.Owner, account.ID)
	if err != nil {
		return ledger.Account{}, fmt.Errorf("update account: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return ledger.Account{}, err
	} else if affected == 0 {
		return ledger.Account{}, &ledger.NotFoundError{Kind: "account", ID: account.ID}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM accounts WHERE id = ?`, account.ID).Scan(&account.Seq); err != nil {
		return ledger.Account{}, fmt.Errorf("account sequence: %w", err)
	}
	return account, nil
}

func (s *SQLite) DeleteAccount(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return &ledger.NotFoundError{Kind: "account", ID: id}
	}
	return nil
}

func (s *SQLite) Transactions(ctx context.Context, filter ledger.TransactionFilter) (ledger.TransactionPage, error) {
	where, args := transactionWindow(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return ledger.TransactionPage{}, fmt.Errorf("count transactions: %w", err)
	}

	offset, limit, totalPages, currentPage := pageBounds(total, filter.Page, filter.PerPage)

	query := `SELECT seq, id, date, total, status FROM transactions` + where + ` ORDER BY date DESC, seq DESC`
	queryArgs := args
	if filter.Page > 0 {
		query += ` LIMIT ? OFFSET ?`
		queryArgs = append(queryArgs, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return ledger.TransactionPage{}, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []ledger.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return ledger.TransactionPage{}, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return ledger.TransactionPage{}, err
	}

	for i := range transactions {
		lines, err := s.transactionLines(ctx, transactions[i].ID)
		if err != nil {
			return ledger.TransactionPage{}, err
		}
		transactions[i].Lines = lines
	}

	return ledger.TransactionPage{
		Transactions: transactions,
		TotalPages:   totalPages,
		CurrentPage:  currentPage,
		Total:        total,
	}, nil
}

func (s *SQLite) SaveTransaction(ctx context.Context, txn ledger.Transaction) (ledger.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	txn.Status = ledger.StatusCompleted

	result, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, date, total, status) VALUES (?, ?, ?, ?)`,
		txn.ID, txn.Date.String(), txn.Total.String(), txn.Status.String())
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction sequence: %w", err)
	}
	txn.Seq = seq

	for _, line := range txn.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transaction_lines (transaction_id, serial, account, description, amount, side)
			VALUES (?, ?, ?, ?, ?, ?)`,
			txn.ID, line.Serial, line.Account, line.Description, line.Amount.String(), line.Side.String()); err != nil {
			return ledger.Transaction{}, fmt.Errorf("insert line %d: %w", line.Serial, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ledger.Transaction{}, fmt.Errorf("commit transaction: %w", err)
	}
	return txn, nil
}

func (s *SQLite) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected, err := result.RowsAffected(); err != nil {
		return err
	} else if affected == 0 {
		return &ledger.NotFoundError{Kind: "transaction", ID: id}
	}
	return nil
}

func (s *SQLite) transactionLines(ctx context.Context, txnID string) ([]ledger.Line, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT serial, account, description, amount, side
		FROM transaction_lines WHERE transaction_id = ? ORDER BY serial`, txnID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.Line
	for rows.Next() {
		var line ledger.Line
		var amount, side string
		if err := rows.Scan(&line.Serial, &line.Account, &line.Description, &amount, &side); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if line.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("line amount %q: %w", amount, err)
		}
		if line.Side, err = ledger.ParseSide(side); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func transactionWindow(filter ledger.TransactionFilter) (where string, args []any) {
	var clauses []string
	if filter.Start != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.Start.String())
	}
	if filter.End != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, filter.End.String())
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where = " WHERE " + clauses[0]
	for _, clause := range clauses[1:] {
		where += " AND " + clause
	}
	return where, args
}

func scanTransaction(rows *sql.Rows) (ledger.Transaction, error) {
	var txn ledger.Transaction
	var date, total, status string
	if err := rows.Scan(&txn.Seq, &txn.ID, &date, &total, &status); err != nil {
		return ledger.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	var err error
	if txn.Date, err = ledger.ParseDate(date); err != nil {
		return ledger.Transaction{}, err
	}
	if txn.Total, err = decimal.NewFromString(total); err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction total %q: %w", total, err)
	}
	if txn.Status, err = ledger.ParseStatus(status); err != nil {
		return ledger.Transaction{}, err
	}
	return txn, nil
}
