package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidHours is returned for hour inputs that are not a non-negative number.
var ErrInvalidHours = errors.New("planned hours must be a non-negative number")

// ParseHours converts a user-entered hours value. A blank input means unset.
func ParseHours(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHours, s)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHours, s)
	}
	return &v, nil
}

// RoundHours rounds to one decimal place.
func RoundHours(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatHours renders hours with exactly one decimal, e.g. "5.0".
func FormatHours(v float64) string {
	return strconv.FormatFloat(RoundHours(v), 'f', 1, 64)
}

// FormatHoursInput renders a user-entered value without padding, e.g. "2" or "1.25".
func FormatHoursInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
