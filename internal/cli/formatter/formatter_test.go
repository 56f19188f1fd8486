package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/lifemap/internal/tree"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRenderTree_ConnectorsAndBadges(t *testing.T) {
	out := ansi.Strip(RenderTree([]TreeItem{
		{Title: "Plan", Level: 1, HasChildren: true, Hours: "5.0", Derived: true, DueDate: "2024-06-10"},
		{Title: "Outline", Level: 2, Hours: "2", Completed: true},
		{Title: "Draft", Level: 2, IsLast: true, Hours: "3"},
		{Title: "Review", Level: 1, IsLast: true, HasChildren: true, Collapsed: true},
	}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "├─ ▾ ○ Plan"))
	assert.Contains(t, lines[0], "[ 5.0h ] due 2024-06-10")
	assert.True(t, strings.HasPrefix(lines[1], "│  ├─   ✔ Outline"))
	assert.True(t, strings.HasPrefix(lines[2], "│  └─   ○ Draft"))
	assert.True(t, strings.HasPrefix(lines[3], "└─ ▸ ○ Review"))

	// Badges line up.
	assert.Equal(t, strings.Index(lines[1], "["), strings.Index(lines[2], "["))
}

func TestRenderTree_Empty(t *testing.T) {
	assert.Empty(t, RenderTree(nil))
}

func TestRenderProgress_Clamps(t *testing.T) {
	assert.Contains(t, ansi.Strip(RenderProgress(1.5, 4)), "[████] 100%")
	assert.Contains(t, ansi.Strip(RenderProgress(-1, 4)), "[░░░░]   0%")
	assert.Contains(t, ansi.Strip(RenderProgress(0.5, 1)), "[█░]  50%")
}

func TestRemainingBadge(t *testing.T) {
	assert.Equal(t, "Remaining: 0.0hrs", ansi.Strip(RemainingBadge(tree.Summary{}, 10)))
	assert.Contains(t, ansi.Strip(RemainingBadge(tree.Summary{Total: 5, Remaining: 0}, 10)), "All done")

	got := ansi.Strip(RemainingBadge(tree.Summary{Total: 4, Remaining: 3}, 4))
	assert.Contains(t, got, "Remaining: 3.0hrs")
	assert.Contains(t, got, "[█░░░]  25%")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := ansi.Strip(RenderTable([]string{"ID", "NAME"}, [][]string{
		{"1", StyleGreen.Render("Thesis")},
		{"12", "Move"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "ID  NAME", lines[0])
	assert.Equal(t, "──  ──────", lines[1])
	assert.Equal(t, "1   Thesis", lines[2])
	assert.Equal(t, "12  Move", lines[3])
}

func TestOverdue(t *testing.T) {
	today := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)
	assert.True(t, Overdue("2024-06-10", false, today))
	assert.False(t, Overdue("2024-06-10", true, today))
	assert.False(t, Overdue("2024-06-11", false, today))
	assert.False(t, Overdue("", false, today))
}

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "Jun 10, 2024", HumanDate("2024-06-10"))
	assert.Equal(t, "soon", HumanDate("soon"))
}

func TestRenderMarkdown(t *testing.T) {
	assert.Empty(t, RenderMarkdown("   ", 40))
	out := ansi.Strip(RenderMarkdown("**bold** move", 40))
	assert.Contains(t, out, "bold move")
	assert.NotContains(t, out, "**")
}

func TestAlert(t *testing.T) {
	assert.Equal(t, "! Check dates", ansi.Strip(Alert(AlertWarning, "Check dates")))
	assert.Equal(t, "✔ Saved", ansi.Strip(Alert(AlertSuccess, "Saved")))
}

func TestRenderBox_HasTitle(t *testing.T) {
	out := ansi.Strip(RenderBox("Task", "body"))
	assert.Contains(t, out, "TASK")
	assert.Contains(t, out, "body")
	assert.Greater(t, lipgloss.Height(out), 3)
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Saving")
	stop()
	stop()
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))
}
