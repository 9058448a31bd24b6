// Package normalize holds small canonicalization helpers applied to user
// input before it is validated or persisted.
package normalize

import (
	"errors"
	"strings"
)

// Email lowercases and trims an email address. Empty input stays empty.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// ErrInvalidPhone is returned by Phone when the digit count is out of range.
var ErrInvalidPhone = errors.New("phone number must be 10-15 digits (excluding + prefix)")

// Phone strips all non-digit characters from a raw phone number, preserving
// a leading "+" if the original input started with one, and validates that
// the remaining digit count is between 10 and 15 inclusive.
//
// Phone is idempotent: normalizing an already-normalized number returns the
// same string.
func Phone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	plus := strings.HasPrefix(trimmed, "+")

	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < 10 || len(digits) > 15 {
		if plus {
			return "+" + digits, ErrInvalidPhone
		}
		return digits, ErrInvalidPhone
	}

	if plus {
		return "+" + digits, nil
	}
	return digits, nil
}
