package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Overdue reports whether an unfinished task's due date is before today.
func Overdue(dueDate string, completed bool, today time.Time) bool {
	if dueDate == "" || completed {
		return false
	}
	return domain.DateAfter(today.Format(domain.DateLayout), dueDate)
}

// HumanDate renders a YYYY-MM-DD date as "Jun 10, 2024". Unparseable input
// is returned unchanged.
func HumanDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// DirtyMarker renders the unsaved-changes indicator.
func DirtyMarker(dirty bool) string {
	if !dirty {
		return ""
	}
	return StyleYellowBold.Render("● unsaved")
}
