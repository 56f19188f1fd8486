package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/lifemap/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the collaborators shared by all commands.
type App struct {
	Saver    service.Saver
	Observer service.UseCaseObserver
	Logger   *slog.Logger

	// DefaultDB is the database opened when neither --db nor --from is given.
	DefaultDB string

	// IsInteractive decides whether the bare command opens the editor or
	// prints the tree.
	IsInteractive func() bool

	// RunProgram runs the editor program. Tests replace it.
	RunProgram func(ctx context.Context, m tea.Model) error

	// Now is the clock used for overdue markers.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewRootCmd creates the top-level "lifemap" command and registers all
// subcommands against the provided App. Source flags are persistent so
// every subcommand accepts them.
func NewRootCmd(app *App) *cobra.Command {
	var src sourceOptions

	root := &cobra.Command{
		Use:           "lifemap",
		Short:         "Edit a LifeMap project's task tree from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runEdit(cmd, app, &src)
			}
			return runShow(cmd, app, &src, false)
		},
	}
	addSourceFlags(root.PersistentFlags(), &src)

	root.AddCommand(
		newEditCmd(app, &src),
		newShowCmd(app, &src),
		newExportCmd(app, &src),
		newValidateCmd(app, &src),
		newSaveCmd(app, &src),
		newProjectsCmd(app, &src),
	)

	return root
}
