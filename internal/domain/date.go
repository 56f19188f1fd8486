package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted due date format. Values in this layout
// compare correctly as plain strings.
const DateLayout = "2006-01-02"

// NormalizeDate trims s and checks it is a YYYY-MM-DD calendar date.
// A blank input is returned as "" (unset).
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return s, nil
}

// DateAfter reports whether a is later than b. Unset dates are never after anything.
func DateAfter(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a > b
}
