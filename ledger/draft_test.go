package ledger

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// TestDraftLine_AccountAsString decodes the compact wire form where the
// account is a bare name.
func TestDraftLine_AccountAsString(t *testing.T) {
	var line DraftLine
	err := json.Unmarshal([]byte(`{"account":"Cash","description":"rent","amount":500,"type":"credit"}`), &line)
	assert.NoError(t, err)

	assert.Equal(t, "Cash", line.Account)
	assert.Equal(t, "rent", line.Description)
	assert.True(t, line.Amount.Equal(amt("500")))
	assert.Equal(t, Credit, line.Side)
}

// TestDraftLine_AccountAsObject decodes the expanded wire form where the
// account is a full object; only the name survives.
func TestDraftLine_AccountAsObject(t *testing.T) {
	var line DraftLine
	err := json.Unmarshal([]byte(`{"account":{"id":"a1","name":"Cash","type":"Asset"},"description":"rent","amount":"500.25","type":"debit"}`), &line)
	assert.NoError(t, err)

	assert.Equal(t, "Cash", line.Account)
	assert.True(t, line.Amount.Equal(amt("500.25")))
	assert.Equal(t, Debit, line.Side)
}

// TestDraftLine_AmountCoercion verifies malformed and missing amounts
// decode to zero so validation can report them, instead of failing the
// decode outright.
func TestDraftLine_AmountCoercion(t *testing.T) {
	for _, wire := range []string{
		`{"account":"Cash","description":"x","amount":"abc","type":"credit"}`,
		`{"account":"Cash","description":"x","amount":null,"type":"credit"}`,
		`{"account":"Cash","description":"x","type":"credit"}`,
	} {
		var line DraftLine
		err := json.Unmarshal([]byte(wire), &line)
		assert.NoError(t, err)
		assert.True(t, line.Amount.IsZero())
	}
}

// TestDraftLine_NullAccount decodes a null account reference as an empty
// name, leaving the violation to validation.
func TestDraftLine_NullAccount(t *testing.T) {
	var line DraftLine
	err := json.Unmarshal([]byte(`{"account":null,"description":"x","amount":1,"type":"debit"}`), &line)
	assert.NoError(t, err)
	assert.Equal(t, "", line.Account)
}

// TestDraftLine_InvalidSide verifies an unknown side value fails the
// decode with a descriptive error.
func TestDraftLine_InvalidSide(t *testing.T) {
	var line DraftLine
	err := json.Unmarshal([]byte(`{"account":"Cash","description":"x","amount":1,"type":"sideways"}`), &line)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

// TestTransactionDraft_Decode decodes a full create request, including an
// RFC 3339 date.
func TestTransactionDraft_Decode(t *testing.T) {
	var draft TransactionDraft
	err := json.Unmarshal([]byte(`{
		"date": "2024-05-01T10:30:00Z",
		"details": [
			{"account":"Cash","description":"sale","amount":120,"type":"debit"},
			{"account":"Revenue","description":"sale","amount":120,"type":"credit"}
		]
	}`), &draft)
	assert.NoError(t, err)

	assert.Equal(t, "2024-05-01", draft.Date.String())
	assert.Equal(t, 2, len(draft.Details))
	assert.Equal(t, "Revenue", draft.Details[1].Account)
}
