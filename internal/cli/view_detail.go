package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/tree"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailView shows one task's fields with its description rendered as
// markdown in a scrollable viewport.
type detailView struct {
	state *SharedState
	id    string
	vp    viewport.Model
}

func newDetailView(state *SharedState, n *domain.TaskNode) *detailView {
	v := &detailView{state: state, id: n.ID, vp: viewport.New(max(state.Width, 40), state.ContentHeight())}
	v.refresh()
	return v
}

func (v *detailView) ID() ViewID { return ViewDetail }

func (v *detailView) Title() string {
	if n, err := v.state.Session.Node(v.id); err == nil {
		return n.DisplayName()
	}
	return "Task"
}

func (v *detailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *detailView) Init() tea.Cmd { return nil }

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		// A save may have renamed a local id; the task is gone otherwise.
		if _, err := v.state.Session.Node(v.id); err != nil {
			return v, popView()
		}
		v.refresh()
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "e" {
			if n, err := v.state.Session.Node(v.id); err == nil {
				return v, editTaskCmd(v.state, n)
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *detailView) refresh() {
	n, err := v.state.Session.Node(v.id)
	if err != nil {
		return
	}
	v.vp.SetContent(renderTaskDetail(n, v.vp.Width))
}

func renderTaskDetail(n *domain.TaskNode, width int) string {
	status := formatter.Dim("○ open")
	if n.IsCompleted {
		status = formatter.StyleGreen.Render("✔ done")
	}

	hours := domain.CoalesceStr(tree.FormatField(n), "—")
	if n.HoursLocked {
		hours += formatter.Dim(" (sum of subtasks)")
	}

	due := "—"
	if n.DueDate != "" {
		due = formatter.HumanDate(n.DueDate)
	}

	fields := []string{
		fmt.Sprintf("%s  %s", formatter.Dim("Status  "), status),
		fmt.Sprintf("%s  %s", formatter.Dim("Hours   "), hours),
		fmt.Sprintf("%s  %s", formatter.Dim("Due     "), due),
		fmt.Sprintf("%s  %d", formatter.Dim("Subtasks"), len(n.Children)),
	}
	if n.IsLocal() {
		fields = append(fields, formatter.Dim("Not saved yet."))
	}

	var b strings.Builder
	b.WriteString(formatter.RenderBox(n.DisplayName(), strings.Join(fields, "\n")))
	b.WriteString("\n\n")
	if md := formatter.RenderMarkdown(n.Description, max(width-4, 20)); md != "" {
		b.WriteString(md)
	} else {
		b.WriteString("  " + formatter.Dim("No description."))
	}
	return b.String()
}

func (v *detailView) View() string {
	return v.vp.View()
}
