package ledger

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// TestParseDate_CalendarDate verifies plain dates parse and format
// round-trip.
func TestParseDate_CalendarDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-05", d.String())
}

// TestParseDate_Timestamp verifies RFC 3339 timestamps are accepted and
// truncated to the calendar date.
func TestParseDate_Timestamp(t *testing.T) {
	d, err := ParseDate("2024-01-05T14:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-05", d.String())
}

// TestParseDate_Invalid verifies garbage input errors.
func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("05/01/2024")
	assert.Error(t, err)
}

// TestDate_JSONRoundTrip verifies dates marshal as "2006-01-02" strings.
func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParseDate("2024-03-17")

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2024-03-17"`, string(data))

	var parsed Date
	assert.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d))
}

// TestSide_Parse verifies both sides parse case-insensitively and unknown
// values error.
func TestSide_Parse(t *testing.T) {
	side, err := ParseSide("Credit")
	assert.NoError(t, err)
	assert.Equal(t, Credit, side)

	side, err = ParseSide("debit")
	assert.NoError(t, err)
	assert.Equal(t, Debit, side)

	_, err = ParseSide("sideways")
	assert.Error(t, err)
}

// TestSide_JSON verifies sides marshal to their wire strings.
func TestSide_JSON(t *testing.T) {
	data, err := json.Marshal(Credit)
	assert.NoError(t, err)
	assert.Equal(t, `"credit"`, string(data))

	var side Side
	assert.NoError(t, json.Unmarshal([]byte(`"debit"`), &side))
	assert.Equal(t, Debit, side)

	assert.Error(t, json.Unmarshal([]byte(`"unknown"`), &side))
}

// TestStatus_Parse verifies all three lifecycle states round-trip.
func TestStatus_Parse(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusCompleted, StatusCancelled} {
		parsed, err := ParseStatus(status.String())
		assert.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)
}

// TestDefaultAccountTypes verifies the seed set carries unique names.
func TestDefaultAccountTypes(t *testing.T) {
	types := DefaultAccountTypes()
	assert.Equal(t, 5, len(types))

	seen := map[string]bool{}
	for _, at := range types {
		assert.False(t, seen[at.Name], "duplicate type %s", at.Name)
		seen[at.Name] = true
	}
}
