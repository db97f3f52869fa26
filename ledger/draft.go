package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// DraftLine is a transaction line as submitted by a caller, before
// validation. Account holds the canonical account name; the wire
// representation may carry either a bare name string or a full account
// object, both of which resolve to the name here.
type DraftLine struct {
	Account     string
	Description string
	Amount      decimal.Decimal
	Side        Side
}

// TransactionDraft is the create-transaction request shape: a date plus
// one or more draft lines.
type TransactionDraft struct {
	Date    Date        `json:"date"`
	Details []DraftLine `json:"details"`
}

// draftLineJSON mirrors the wire shape of a draft line. Amount is kept
// raw so that non-numeric input coerces to zero (a violation) instead of
// failing the decode.
type draftLineJSON struct {
	Account     json.RawMessage `json:"account"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Side        Side            `json:"type"`
}

// accountRef resolves the polymorphic account reference: either a bare
// name string or an object carrying a name field.
func accountRef(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("invalid account reference %s", raw)
	}
	return obj.Name, nil
}

func (l *DraftLine) UnmarshalJSON(data []byte) error {
	var wire draftLineJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	account, err := accountRef(wire.Account)
	if err != nil {
		return err
	}

	amount := decimal.Zero
	if raw := bytes.TrimSpace(wire.Amount); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		value := string(raw)
		if unquoted, ok := unquote(raw); ok {
			value = unquoted
		}
		amount = ParseAmount(value)
	}

	l.Account = account
	l.Description = wire.Description
	l.Amount = amount
	l.Side = wire.Side
	return nil
}

func (l DraftLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Account     string          `json:"account"`
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		Side        Side            `json:"type"`
	}{l.Account, l.Description, l.Amount, l.Side})
}

func unquote(raw []byte) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
