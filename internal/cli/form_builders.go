package cli

import (
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/charmbracelet/huh"
)

func validateOptionalDate(s string) error {
	_, err := domain.NormalizeDate(s)
	return err
}

func validateHours(s string) error {
	_, err := domain.ParseHours(s)
	return err
}

// dateInput returns a huh.Input for an optional YYYY-MM-DD date.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

// hoursInput returns a huh.Input for optional non-negative planned hours.
func hoursInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2.5").
		Value(value).
		Validate(validateHours)
}

// themedForm wraps groups in a form with the editor theme.
func themedForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(lifemapHuhTheme()).WithShowHelp(false)
}
