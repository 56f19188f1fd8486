package cli

import (
	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/contract"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages used by views to request transitions and report outcomes.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// refreshViewMsg asks every view to rebuild from the session.
type refreshViewMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// alertMsg sets the one-line message under the tree.
type alertMsg struct {
	level formatter.AlertLevel
	text  string
}

// saveRequestedMsg asks the app to start a save.
type saveRequestedMsg struct{}

// saveDoneMsg carries the outcome of the save request.
type saveDoneMsg struct {
	resp *contract.SaveResponse
	err  error
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func alert(level formatter.AlertLevel, text string) tea.Cmd {
	return func() tea.Msg { return alertMsg{level: level, text: text} }
}
