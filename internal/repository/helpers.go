package repository

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseID converts a domain id to the integer key used by the web app.
func parseID(kind, id string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return v, nil
}

func formatID(v int64) string {
	return strconv.FormatInt(v, 10)
}

// nullableString returns nil (SQL NULL) for an empty string.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableFloat returns nil (SQL NULL) for a nil pointer.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableParent converts a parent reference to a column value.
func nullableParent(id string) (any, error) {
	if id == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parent id %q is not numeric", id)
	}
	return v, nil
}

// hoursFromColumn reads planned_hours, which SQLite may hold as REAL,
// INTEGER or TEXT. Anything non-numeric loads as unset.
func hoursFromColumn(v any) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int64:
		f = float64(x)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case []byte:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIntToBool(v sql.NullInt64) bool {
	return v.Valid && v.Int64 != 0
}
