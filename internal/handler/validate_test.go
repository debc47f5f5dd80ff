package handler

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"number", `9.99`, "9.99", true},
		{"integer", `15`, "15", true},
		{"quoted string", `"12.50"`, "12.50", true},
		{"exponent", `1.5e2`, "150", true},
		{"negative", `-3.10`, "-3.10", true},
		{"word", `"free"`, "", false},
		{"object", `{"amount":1}`, "", false},
		{"array", `[1]`, "", false},
		{"bool", `true`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePrice(json.RawMessage(tt.raw))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.True(t, decimal.RequireFromString(tt.want).Equal(got),
					"want %s, got %s", tt.want, got)
			}
		})
	}
}

// The textual representation is parsed directly: a value like 355.53 stays
// exact instead of picking up float64 noise.
func TestParsePrice_NoFloatDrift(t *testing.T) {
	got, ok := parsePrice(json.RawMessage(`355.53`))
	require.True(t, ok)
	assert.Equal(t, "355.53", got.String())

	three := got.Mul(decimal.NewFromInt(3))
	assert.Equal(t, "1066.59", three.String())
}

func TestValidationError_Message(t *testing.T) {
	ve := ValidationError{
		Missing: []string{"user_id", "product_id"},
		Invalid: []string{"price"},
	}
	assert.Equal(t, "missing required fields: user_id, product_id; malformed fields: price", ve.Error())

	onlyMissing := ValidationError{Missing: []string{"user_id"}}
	assert.Equal(t, "missing required fields: user_id", onlyMissing.Error())
}

func TestIsNull(t *testing.T) {
	assert.True(t, isNull(nil))
	assert.True(t, isNull(json.RawMessage(`null`)))
	assert.True(t, isNull(json.RawMessage(` `)))
	assert.False(t, isNull(json.RawMessage(`0`)))
	assert.False(t, isNull(json.RawMessage(`""`)))
}
