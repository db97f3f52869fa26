// Package ledger implements a double-entry bookkeeping core: an account
// registry, a transaction ledger that enforces the balance invariant, and
// pure read-side projections (account reports and a dashboard summary).
//
// Every transaction is composed of one or more lines, each tagged debit or
// credit. The ledger validates that credit and debit totals agree within a
// fixed tolerance before anything is stored, collecting all violations
// instead of stopping at the first. All monetary arithmetic uses decimal
// values to avoid binary floating point drift.
//
// Example usage:
//
//	book := ledger.NewLedger(store)
//	txn, err := book.CreateTransaction(ctx, date, []ledger.DraftLine{
//	    {Account: "Cash", Description: "rent", Amount: amount, Side: ledger.Credit},
//	    {Account: "Office", Description: "rent", Amount: amount, Side: ledger.Debit},
//	})
//	if err != nil {
//	    var verr *ledger.ValidationErrors
//	    if errors.As(err, &verr) {
//	        for _, msg := range verr.Messages() {
//	            fmt.Println(msg)
//	        }
//	    }
//	}
package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side marks a transaction line as a debit or a credit.
type Side int

const (
	Debit Side = iota
	Credit
)

// String returns the wire representation of the side.
func (s Side) String() string {
	if s == Credit {
		return "credit"
	}
	return "debit"
}

// ParseSide parses "debit" or "credit" (case-insensitive).
func ParseSide(value string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debit":
		return Debit, nil
	case "credit":
		return Credit, nil
	default:
		return Debit, fmt.Errorf("invalid side %q, expected \"debit\" or \"credit\"", value)
	}
}

func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Side) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseSide(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Status is the lifecycle state of a stored transaction.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// ParseStatus parses a transaction status from its wire representation.
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending, nil
	case "completed":
		return StatusCompleted, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return StatusPending, fmt.Errorf("invalid status %q", value)
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseStatus(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Date is a calendar date without a time component.
// It marshals as "2006-01-02" and additionally accepts full RFC 3339
// timestamps when parsing, since the transaction create boundary receives
// ISO timestamps.
type Date struct {
	time.Time
}

// NewDate constructs a date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" date or an RFC 3339 timestamp,
// truncating any time component.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// MustParseDate parses a date and panics on error. Use only in tests.
func MustParseDate(value string) Date {
	d, err := ParseDate(value)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Equal reports whether two dates fall on the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.YearDay() == other.YearDay()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AccountType classifies accounts. Types are seeded data and immutable
// once referenced by an account.
type AccountType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DefaultAccountTypes returns the account types a fresh store is seeded
// with.
func DefaultAccountTypes() []AccountType {
	return []AccountType{
		{ID: "asset", Name: "Asset", Description: "Resources owned by the entity"},
		{ID: "liability", Name: "Liability", Description: "Obligations owed to others"},
		{ID: "equity", Name: "Equity", Description: "Owner's residual interest"},
		{ID: "income", Name: "Income", Description: "Revenue earned"},
		{ID: "expense", Name: "Expense", Description: "Costs incurred"},
	}
}

// Account is a registry entry. Name is the join key: transaction lines
// reference accounts by name string, not by id.
type Account struct {
	ID        string `json:"id"`
	Seq       int64  `json:"sequentialAccountId"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	AccountNo string `json:"accountNo,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Owner     bool   `json:"isOwnerAccount"`
}

// Line is one account-tagged amount within a transaction. Serial is a
// dense 1-based ordinal within the parent transaction; it is presentation
// order, not an identity.
type Line struct {
	Serial      int             `json:"serialNumber"`
	Account     string          `json:"account"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Side        Side            `json:"type"`
}

// Transaction is a finalized, balanced set of lines on a single date.
type Transaction struct {
	ID     string          `json:"id"`
	Seq    int64           `json:"sequentialTransactionId"`
	Date   Date            `json:"date"`
	Lines  []Line          `json:"details"`
	Total  decimal.Decimal `json:"totalAmount"`
	Status Status          `json:"status"`
}
