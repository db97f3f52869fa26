package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationErrors wraps the ordered list of rule violations collected for
// a single create or update call. Validation never stops at the first
// violation; every detectable problem is reported together.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping.
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

// Messages returns the human-readable message for each violation, in
// validation order.
func (e *ValidationErrors) Messages() []string {
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Error()
	}
	return messages
}

// FieldError is a violation of a single-field rule on an account input.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RowError is a violation of a per-line rule. Rows are indexed from 1.
type RowError struct {
	Row     int
	Message string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ImbalanceError is the single aggregate violation of the double-entry
// balance invariant. It names both totals.
type ImbalanceError struct {
	CreditTotal decimal.Decimal
	DebitTotal  decimal.Decimal
}

func (e *ImbalanceError) Error() string {
	diff := e.CreditTotal.Sub(e.DebitTotal).Abs()
	return fmt.Sprintf("transaction does not balance: credits %s, debits %s (difference %s)",
		e.CreditTotal.String(), e.DebitTotal.String(), diff.String())
}

// EmptyTransactionError is returned for a draft with no lines.
type EmptyTransactionError struct{}

func (e *EmptyTransactionError) Error() string {
	return "transaction must contain at least one line"
}

// NotFoundError is returned when an operation references an id absent
// from the store.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// UpstreamError wraps a failure of the storage collaborator. It is
// propagated to the caller as-is; the core performs no retries and no
// partial commits.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream failure: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
