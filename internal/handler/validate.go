package handler

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError reports every missing or malformed field of a request in
// one pass, so clients can fix the whole payload at once.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "malformed fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) ok() bool {
	return len(e.Missing) == 0 && len(e.Invalid) == 0
}

// parsePrice converts a raw JSON value into an exact decimal. Both JSON
// numbers and numeric strings are accepted, and the textual representation is
// parsed directly so the value never passes through binary floating point.
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Decimal{}, false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Decimal{}, false
		}
		raw = []byte(s)
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// stringField records name as missing when v is nil, otherwise returns *v.
func stringField(ve *ValidationError, name string, v *string) string {
	if v == nil {
		ve.Missing = append(ve.Missing, name)
		return ""
	}
	return *v
}

// isNull reports whether a raw JSON value is absent or an explicit null.
func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
