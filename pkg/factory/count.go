package factory

import (
	"strconv"
	"strings"

	merrors "github.com/go-drift/memlab/pkg/errors"
)

// ParseCount validates the raw contents of the view-count field.
//
// Only ASCII digits are accepted; signs, decimals and exponents are rejected
// rather than coerced, so "1e3" and "-5" are errors and not 1000 and 5.
func ParseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &merrors.InvalidViewCountError{Input: raw, Reason: "empty"}
	}
	if !IsDigits(s) {
		return 0, &merrors.InvalidViewCountError{Input: raw, Reason: "not a whole number"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &merrors.InvalidViewCountError{Input: raw, Reason: "too large"}
	}
	if n <= 0 {
		return 0, &merrors.InvalidViewCountError{Input: raw, Reason: "must be positive"}
	}
	return n, nil
}

// IsDigits reports whether s is non-empty and made of ASCII digits only. The
// count field uses it to reject keystrokes at entry time.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
