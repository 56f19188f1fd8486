package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/domain"
	"github.com/alexanderramin/lifemap/internal/service"
	"github.com/alexanderramin/lifemap/internal/tree"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// lifemapHuhTheme returns a huh theme matching the Gruvbox palette.
func lifemapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskEdit holds the form values of one task.
type taskEdit struct {
	Name        string
	Description string
	Hours       string
	DueDate     string
	leaf        bool
}

func newTaskEdit(n *domain.TaskNode) *taskEdit {
	return &taskEdit{
		Name:        n.Name,
		Description: n.Description,
		Hours:       tree.FormatField(n),
		DueDate:     n.DueDate,
		leaf:        n.IsLeaf(),
	}
}

func taskEditForm(in *taskEdit) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Name").Placeholder(domain.UntitledTask).Value(&in.Name),
		huh.NewText().Title("Description").Description("Markdown is rendered in the detail view.").Lines(4).Value(&in.Description),
	}
	if in.leaf {
		fields = append(fields, hoursInput("Planned hours (blank for none)", &in.Hours))
	} else {
		fields = append(fields, huh.NewNote().
			Title("Planned hours").
			Description(domain.CoalesceStr(in.Hours, "0.0")+" (sum of subtasks)"))
	}
	fields = append(fields, dateInput("Due date (YYYY-MM-DD, blank for none)", &in.DueDate))
	return themedForm(huh.NewGroup(fields...))
}

// applyTaskEdit writes every field through the session. All fields are
// attempted; the first failure is returned.
func applyTaskEdit(ctx context.Context, session service.EditorService, id string, in *taskEdit) error {
	errs := []error{
		session.SetName(ctx, id, strings.TrimSpace(in.Name)),
		session.SetDescription(ctx, id, in.Description),
	}
	if in.leaf {
		errs = append(errs, session.SetHours(ctx, id, in.Hours))
	}
	errs = append(errs, session.SetDueDate(ctx, id, in.DueDate))
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func editTaskCmd(state *SharedState, n *domain.TaskNode) tea.Cmd {
	in := newTaskEdit(n)
	id := n.ID
	return startWizardCmd(state, "Edit "+n.DisplayName(), taskEditForm(in), func() tea.Cmd {
		return state.report(applyTaskEdit(state.Ctx, state.Session, id, in))
	})
}

func deleteTaskCmd(state *SharedState, n *domain.TaskNode) tea.Cmd {
	confirm := false
	desc := "This cannot be undone after saving."
	if sub := len(n.Descendants()); sub > 0 {
		desc = fmt.Sprintf("This also deletes %d subtask(s). %s", sub, desc)
	}
	form := themedForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", n.DisplayName())).
			Description(desc).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirm),
	))
	id := n.ID
	return startWizardCmd(state, "Delete", form, func() tea.Cmd {
		if !confirm {
			return nil
		}
		return state.report(state.Session.DeleteNode(state.Ctx, id))
	})
}

// moveTargets lists the tasks n may be moved under, top level first. Tasks
// inside n's own subtree are left out; depth is checked by the session.
func moveTargets(root, n *domain.TaskNode) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(top level)", "")}
	for _, c := range root.Children {
		c.Walk(func(t *domain.TaskNode) bool {
			if n.Contains(t) {
				return false
			}
			label := strings.Repeat("  ", t.Level-1) + t.DisplayName()
			opts = append(opts, huh.NewOption(label, t.ID))
			return true
		})
	}
	return opts
}

func reparentTaskCmd(state *SharedState, n *domain.TaskNode) tea.Cmd {
	target := n.ParentID
	if p := n.Parent(); p != nil && p.IsRoot() {
		target = ""
	}
	form := themedForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Move %q under", n.DisplayName())).
			Options(moveTargets(state.Session.Root(), n)...).
			Value(&target),
	))
	id := n.ID
	return startWizardCmd(state, "Move", form, func() tea.Cmd {
		return state.report(state.Session.Reparent(state.Ctx, id, target))
	})
}

func reloadConfirmCmd(state *SharedState) tea.Cmd {
	confirm := false
	form := themedForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Discard unsaved changes and reload?").
			Affirmative("Reload").
			Negative("Cancel").
			Value(&confirm),
	))
	return startWizardCmd(state, "Reload", form, func() tea.Cmd {
		if !confirm {
			return nil
		}
		if err := state.Session.Reload(state.Ctx); err != nil {
			return state.report(err)
		}
		return alert(formatter.AlertInfo, "Reloaded.")
	})
}
