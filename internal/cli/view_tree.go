package cli

import (
	"strings"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type treeKeyMap struct {
	Up, Down, Top, Bottom  key.Binding
	Toggle, Collapse, Open key.Binding
	AddSub, AddTop, Edit   key.Binding
	Delete, Reparent       key.Binding
	MoveUp, MoveDown       key.Binding
	Indent, Outdent        key.Binding
	Save, Reload           key.Binding
}

func defaultTreeKeys() treeKeyMap {
	return treeKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		Collapse: key.NewBinding(key.WithKeys("enter", "m"), key.WithHelp("enter", "fold")),
		Open:     key.NewBinding(key.WithKeys("o", "v"), key.WithHelp("o", "details")),
		AddSub:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add subtask")),
		AddTop:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add task")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Reparent: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "move to")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Indent:   key.NewBinding(key.WithKeys("tab", ">"), key.WithHelp("tab", "indent")),
		Outdent:  key.NewBinding(key.WithKeys("shift+tab", "<"), key.WithHelp("S-tab", "outdent")),
		Save:     key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

// treeView is the editor's home view: the project's task tree with a cursor.
type treeView struct {
	state    *SharedState
	keys     treeKeyMap
	nodes    []*domain.TaskNode
	cursor   int
	selected string
	vp       viewport.Model
}

func newTreeView(state *SharedState) *treeView {
	v := &treeView{
		state: state,
		keys:  defaultTreeKeys(),
		vp:    viewport.New(0, 0),
	}
	v.rebuild()
	return v
}

func (v *treeView) ID() ViewID { return ViewTree }

func (v *treeView) Title() string {
	if p := v.state.Session.Project(); p != nil {
		return p.DisplayName()
	}
	return "Tasks"
}

func (v *treeView) ShortHelp() []key.Binding {
	k := v.keys
	return []key.Binding{k.Toggle, k.AddSub, k.AddTop, k.Edit, k.Delete, k.MoveUp, k.Indent, k.Outdent, k.Collapse, k.Save, key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))}
}

func (v *treeView) Init() tea.Cmd { return nil }

// current returns the node under the cursor, or nil for an empty tree.
func (v *treeView) current() *domain.TaskNode {
	if v.cursor < 0 || v.cursor >= len(v.nodes) {
		return nil
	}
	return v.nodes[v.cursor]
}

func (v *treeView) currentID() string {
	if n := v.current(); n != nil {
		return n.ID
	}
	return ""
}

// rebuild recomputes the visible rows and keeps the cursor on the selected
// task when it is still visible.
func (v *treeView) rebuild() {
	v.nodes = visibleNodes(v.state.Session.Root(), false)
	v.cursor = min(v.cursor, max(len(v.nodes)-1, 0))
	for i, n := range v.nodes {
		if n.ID == v.selected {
			v.cursor = i
			break
		}
	}
	v.selected = v.currentID()
}

func (v *treeView) selectID(id string) {
	v.selected = id
	v.rebuild()
}

func (v *treeView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.rebuild()
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *treeView) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := v.keys
	ctx := v.state.Ctx
	session := v.state.Session
	id := v.currentID()

	switch {
	case key.Matches(msg, k.Up):
		v.moveCursor(-1)
	case key.Matches(msg, k.Down):
		v.moveCursor(1)
	case key.Matches(msg, k.Top):
		v.moveCursor(-len(v.nodes))
	case key.Matches(msg, k.Bottom):
		v.moveCursor(len(v.nodes))

	case key.Matches(msg, k.Save):
		return func() tea.Msg { return saveRequestedMsg{} }
	case key.Matches(msg, k.Reload):
		return v.reload()

	case key.Matches(msg, k.AddTop):
		return v.add("")
	}

	// The remaining keys act on the selected task.
	if id == "" {
		if key.Matches(msg, k.AddSub) {
			return v.add("")
		}
		return nil
	}

	switch {
	case key.Matches(msg, k.Toggle):
		n := v.current()
		return v.after(session.SetCompletion(ctx, id, !n.IsCompleted))
	case key.Matches(msg, k.Collapse):
		_, err := session.ToggleMinimized(ctx, id)
		return v.after(err)
	case key.Matches(msg, k.Open):
		return pushView(newDetailView(v.state, v.current()))
	case key.Matches(msg, k.AddSub):
		return v.add(id)
	case key.Matches(msg, k.Edit):
		return editTaskCmd(v.state, v.current())
	case key.Matches(msg, k.Delete):
		return deleteTaskCmd(v.state, v.current())
	case key.Matches(msg, k.Reparent):
		return reparentTaskCmd(v.state, v.current())
	case key.Matches(msg, k.MoveUp):
		return v.after(session.MoveUp(ctx, id))
	case key.Matches(msg, k.MoveDown):
		return v.after(session.MoveDown(ctx, id))
	case key.Matches(msg, k.Indent):
		return v.after(session.Indent(ctx, id))
	case key.Matches(msg, k.Outdent):
		return v.after(session.Outdent(ctx, id))
	}
	return nil
}

func (v *treeView) moveCursor(delta int) {
	if len(v.nodes) == 0 {
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), len(v.nodes)-1)
	v.selected = v.currentID()
}

// after rebuilds the rows following an edit and reports its error.
func (v *treeView) after(err error) tea.Cmd {
	v.rebuild()
	return v.state.report(err)
}

func (v *treeView) add(parentID string) tea.Cmd {
	child, err := v.state.Session.AddChild(v.state.Ctx, parentID)
	if err != nil {
		return v.after(err)
	}
	v.selectID(child.ID)
	return editTaskCmd(v.state, child)
}

func (v *treeView) reload() tea.Cmd {
	if !v.state.Session.Dirty() {
		return v.after(v.state.Session.Reload(v.state.Ctx))
	}
	return reloadConfirmCmd(v.state)
}

func (v *treeView) View() string {
	if len(v.nodes) == 0 {
		return "\n  " + formatter.Dim("No tasks yet. Press a to add one.")
	}

	content := formatter.RenderTree(treeItems(v.nodes, v.selected, v.state.App.now()))
	if v.state.Height <= 0 {
		return content
	}

	v.vp.Width = v.state.Width
	v.vp.Height = v.state.ContentHeight()
	v.vp.SetContent(strings.TrimRight(content, "\n"))
	if v.cursor < v.vp.YOffset {
		v.vp.SetYOffset(v.cursor)
	} else if v.cursor >= v.vp.YOffset+v.vp.Height {
		v.vp.SetYOffset(v.cursor - v.vp.Height + 1)
	}
	return v.vp.View()
}
