package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Ledger owns transaction lifetimes. It validates drafts against the
// double-entry balance invariant before anything reaches the store, and
// relies on the store to persist a transaction with all of its lines
// atomically.
//
// There is no transaction update: editing is modelled as delete plus
// re-create (see DESIGN.md).
type Ledger struct {
	store Store
}

// NewLedger creates a ledger over the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Transactions returns transactions matching the filter, paged according
// to its Page/PerPage fields.
func (l *Ledger) Transactions(ctx context.Context, filter TransactionFilter) (TransactionPage, error) {
	page, err := l.store.Transactions(ctx, filter)
	if err != nil {
		return TransactionPage{}, &UpstreamError{Op: "list transactions", Err: err}
	}
	return page, nil
}

// CreateTransaction validates a draft and, only if every rule passes,
// persists the resulting transaction. Validation collects all violations:
// per-row rules for every line, then the global balance rule. On failure
// nothing is stored and the returned error unwraps to the full ordered
// violation list.
//
// On success the lines carry a dense 1..N serial sequence in submission
// order, the total is the common balanced credit/debit total, and the
// status is whatever the store assigned on commit (Pending unless the
// store marks durable transactions Completed).
func (l *Ledger) CreateTransaction(ctx context.Context, date Date, drafts []DraftLine) (Transaction, error) {
	if errs := ValidateDraft(drafts); len(errs) > 0 {
		return Transaction{}, &ValidationErrors{Errors: errs}
	}

	lines := make([]Line, len(drafts))
	for i, draft := range drafts {
		lines[i] = Line{
			Account:     draft.Account,
			Description: draft.Description,
			Amount:      draft.Amount,
			Side:        draft.Side,
		}
	}
	lines = RenumberLines(lines)

	credit, _ := LineTotals(lines)
	txn := Transaction{
		ID:     uuid.NewString(),
		Date:   date,
		Lines:  lines,
		Total:  credit,
		Status: StatusPending,
	}

	stored, err := l.store.SaveTransaction(ctx, txn)
	if err != nil {
		return Transaction{}, &UpstreamError{Op: "create transaction", Err: err}
	}
	return stored, nil
}

// DeleteTransaction removes a transaction unconditionally. Transactions
// are the root aggregate; nothing references them.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return &UpstreamError{Op: "delete transaction", Err: err}
	}
	return nil
}
