package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AccountInput carries the fields a caller may set when creating or
// updating an account. Optional fields are trimmed; fields that are empty
// after trimming are omitted rather than stored as empty strings.
type AccountInput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	AccountNo string `json:"accountNo,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Owner     bool   `json:"isOwnerAccount"`
}

// Registry owns account and account-type lifetimes. It validates inputs
// against the known account types and delegates persistence to its store.
//
// Deleting an account is a pure registry operation: it removes the account
// from future selection but never rewrites historical transaction lines,
// which keep the account name they were created with.
type Registry struct {
	store Store
}

// NewRegistry creates a registry over the given store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// AccountTypes returns all known account types.
func (r *Registry) AccountTypes(ctx context.Context) ([]AccountType, error) {
	types, err := r.store.AccountTypes(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "list account types", Err: err}
	}
	return types, nil
}

// Accounts returns all registered accounts.
func (r *Registry) Accounts(ctx context.Context) ([]Account, error) {
	accounts, err := r.store.Accounts(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "list accounts", Err: err}
	}
	return accounts, nil
}

// CreateAccount validates the input and stores a new account. All
// violations are collected into a single *ValidationErrors.
func (r *Registry) CreateAccount(ctx context.Context, input AccountInput) (Account, error) {
	account, err := r.buildAccount(ctx, "", input)
	if err != nil {
		return Account{}, err
	}
	account.ID = uuid.NewString()

	stored, err := r.store.SaveAccount(ctx, account)
	if err != nil {
		return Account{}, &UpstreamError{Op: "create account", Err: err}
	}
	return stored, nil
}

// UpdateAccount validates the input and replaces the fields of an
// existing account.
func (r *Registry) UpdateAccount(ctx context.Context, id string, input AccountInput) (Account, error) {
	account, err := r.buildAccount(ctx, id, input)
	if err != nil {
		return Account{}, err
	}
	account.ID = id

	stored, err := r.store.UpdateAccount(ctx, account)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return Account{}, err
		}
		return Account{}, &UpstreamError{Op: "update account", Err: err}
	}
	return stored, nil
}

// DeleteAccount removes an account from the registry. Historical
// transaction lines referencing it are untouched; they keep the stored
// name string as a snapshot.
func (r *Registry) DeleteAccount(ctx context.Context, id string) error {
	if err := r.store.DeleteAccount(ctx, id); err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return err
		}
		return &UpstreamError{Op: "delete account", Err: err}
	}
	return nil
}

// buildAccount validates an input and assembles the account to store.
// The id parameter identifies the account being updated ("" on create) so
// the name uniqueness check can skip it.
func (r *Registry) buildAccount(ctx context.Context, id string, input AccountInput) (Account, error) {
	var errs []error

	name := strings.TrimSpace(input.Name)
	if name == "" {
		errs = append(errs, &FieldError{Field: "name", Message: "is required"})
	}

	typeName := strings.TrimSpace(input.Type)
	if typeName == "" {
		errs = append(errs, &FieldError{Field: "type", Message: "is required"})
	} else {
		known, err := r.typeKnown(ctx, typeName)
		if err != nil {
			return Account{}, err
		}
		if !known {
			errs = append(errs, &FieldError{Field: "type", Message: fmt.Sprintf("unknown account type %q", typeName)})
		}
	}

	if name != "" {
		taken, err := r.nameTaken(ctx, id, name)
		if err != nil {
			return Account{}, err
		}
		if taken {
			errs = append(errs, &FieldError{Field: "name", Message: fmt.Sprintf("an account named %q already exists", name)})
		}
	}

	if len(errs) > 0 {
		return Account{}, &ValidationErrors{Errors: errs}
	}

	return Account{
		Name:      name,
		Type:      typeName,
		AccountNo: strings.TrimSpace(input.AccountNo),
		Branch:    strings.TrimSpace(input.Branch),
		Address:   strings.TrimSpace(input.Address),
		Contact:   strings.TrimSpace(input.Contact),
		Owner:     input.Owner,
	}, nil
}

func (r *Registry) typeKnown(ctx context.Context, name string) (bool, error) {
	types, err := r.store.AccountTypes(ctx)
	if err != nil {
		return false, &UpstreamError{Op: "resolve account type", Err: err}
	}
	for _, t := range types {
		if strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Registry) nameTaken(ctx context.Context, id, name string) (bool, error) {
	accounts, err := r.store.Accounts(ctx)
	if err != nil {
		return false, &UpstreamError{Op: "check account name", Err: err}
	}
	for _, a := range accounts {
		if a.ID != id && strings.EqualFold(a.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
