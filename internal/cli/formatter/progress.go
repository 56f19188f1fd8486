package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lifemap/internal/tree"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RemainingBadge renders the project summary: a green check once every
// planned hour is done, otherwise the remaining hours with a progress bar.
// A project with no planned hours shows only the dim remaining label.
func RemainingBadge(s tree.Summary, barWidth int) string {
	if s.Total > 0 && s.Done() {
		return StyleGreen.Render("✔ All done") + Dim(" ("+tree.Summary{Remaining: s.Total}.Display()+" planned)")
	}
	label := StyleYellowBold.Render("Remaining: " + s.Display())
	if s.Total <= 0 {
		return Dim("Remaining: " + s.Display())
	}
	return label + "  " + RenderProgress(1-s.Remaining/s.Total, barWidth)
}
