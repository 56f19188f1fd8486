package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one visible task row.
type TreeItem struct {
	Title     string
	Level     int // 1 for top-level tasks
	IsLast    bool
	Completed bool
	Selected  bool

	// HasChildren and Collapsed drive the ▸/▾ marker.
	HasChildren bool
	Collapsed   bool

	Hours   string // rendered hours, "" when unset
	Derived bool   // hours are the sum of the children
	DueDate string
	Overdue bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders task rows as an indented tree using box-drawing
// connectors. Completed rows get a green ✔ and a dimmed title; the
// selected row is highlighted. Hours and due date badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		for i := 1; i < item.Level; i++ {
			prefix += treePipe
		}
		if item.IsLast {
			prefix += treeCorner
		} else {
			prefix += treeBranch
		}

		marker := "  "
		if item.HasChildren {
			if item.Collapsed {
				marker = "▸ "
			} else {
				marker = "▾ "
			}
		}

		title := item.Title
		check := StyleDim.Render("○ ")
		if item.Completed {
			check = StyleGreen.Render("✔ ")
			title = Dim(title)
		}
		if item.Selected {
			title = StyleSelected.Render(item.Title)
		}

		content := Dim(prefix) + StyleDim.Render(marker) + check + title
		lines[idx].content = content
		lines[idx].badge = renderBadges(item)

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

func renderBadges(item TreeItem) string {
	var parts []string
	if item.Hours != "" {
		h := fmt.Sprintf("[ %sh ]", item.Hours)
		if item.Derived {
			parts = append(parts, StyleDim.Render(h))
		} else {
			parts = append(parts, StyleBlue.Render(h))
		}
	}
	if item.DueDate != "" {
		d := "due " + item.DueDate
		if item.Overdue {
			parts = append(parts, StyleRed.Render(d))
		} else {
			parts = append(parts, StylePurple.Render(d))
		}
	}
	return strings.Join(parts, " ")
}
