package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App     *App
	Session service.EditorService

	// Ctx is cancelled when the program exits, aborting an in-flight save.
	Ctx context.Context

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and the footer
// (separator, summary, alert and key hints).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-6, 1)
}

// report turns an operation error into an alert. Warnings are shown as is;
// unresolvable ids were already logged by the session and stay silent.
func (s *SharedState) report(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	if w, ok := service.AsWarning(err); ok {
		text := w.Message
		if n := len(w.Details); n > 0 {
			text = fmt.Sprintf("%s (+%d more)", text, n)
		}
		return alert(formatter.AlertWarning, text)
	}
	if errors.Is(err, service.ErrNodeNotFound) {
		return nil
	}
	return alert(formatter.AlertError, err.Error())
}
