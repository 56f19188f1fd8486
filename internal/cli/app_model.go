package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/alexanderramin/lifemap/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const quitConfirmText = "Unsaved changes. Press q again to quit without saving."

// appModel is the root bubbletea Model for the editor.
// It manages a view stack, the save spinner and the alert line.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
	quitArmed bool

	alert    string
	saving   bool
	saveSpin spinner.Model
}

func newAppModel(ctx context.Context, app *App, session service.EditorService) appModel {
	state := &SharedState{
		App:     app,
		Session: session,
		Ctx:     ctx,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return appModel{
		state:     state,
		viewStack: []View{newTreeView(state)},
		saveSpin:  sp,
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		return m, m.broadcast(msg)

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case alertMsg:
		m.alert = formatter.Alert(msg.level, msg.text)
		return m, nil

	case saveRequestedMsg:
		return m.startSave()

	case saveDoneMsg:
		return m.finishSave(msg)

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.saveSpin, cmd = m.saveSpin.Update(msg)
		return m, cmd
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// broadcast forwards msg to every view on the stack so views below the top
// rebuild after edits made above them.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Forms receive every key, including q and esc.
	if v := m.activeView(); v != nil && v.ID() == ViewForm {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	armed := m.quitArmed
	m.quitArmed = false

	switch {
	case msg.String() == "q":
		if m.state.Session.Dirty() && !armed {
			m.quitArmed = true
			m.alert = formatter.Alert(formatter.AlertWarning, quitConfirmText)
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			return m, nil
		}
		m.alert = ""
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// ── saving ───────────────────────────────────────────────────────────────────

func (m appModel) startSave() (tea.Model, tea.Cmd) {
	session := m.state.Session
	req, err := session.PrepareSave(m.state.Ctx)
	if err != nil {
		return m, m.state.report(err)
	}
	m.saving = true
	m.alert = ""
	return m, tea.Batch(m.saveSpin.Tick, sendSave(m.state.Ctx, session, req))
}

// sendSave runs the request off the update loop. Send touches no session
// state, so it is safe while the loop keeps rendering.
func sendSave(ctx context.Context, session service.EditorService, req contract.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := session.Send(ctx, req)
		return saveDoneMsg{resp: resp, err: err}
	}
}

func (m appModel) finishSave(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if err := m.state.Session.CompleteSave(m.state.Ctx, msg.resp, msg.err); err != nil {
		return m, tea.Batch(m.state.report(err), refreshViews())
	}
	text := "Tasks saved."
	if msg.resp != nil && msg.resp.Message != "" {
		text = msg.resp.Message
	}
	m.alert = formatter.Alert(formatter.AlertSuccess, text)
	return m, refreshViews()
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderFooter())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

func (m *appModel) renderHeader() string {
	header := formatter.StylePurple.Render("lifemap")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}
	if d := formatter.DirtyMarker(m.state.Session.Dirty()); d != "" {
		header += "  " + d
	}

	return header + "\n" + m.separator()
}

func (m *appModel) renderFooter() string {
	lines := []string{m.separator(), formatter.RemainingBadge(m.state.Session.Summary(), 20)}

	switch {
	case m.saving:
		lines = append(lines, m.saveSpin.View()+" "+formatter.Dim("Saving tasks..."))
	case m.alert != "":
		lines = append(lines, m.alert)
	default:
		lines = append(lines, "")
	}

	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	lines = append(lines, strings.Join(hints, "  "))

	return strings.Join(lines, "\n")
}

func (m *appModel) separator() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}
