package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(app *App, src *sourceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive tree editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, src)
		},
	}
}

func runEdit(cmd *cobra.Command, app *App, src *sourceOptions) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	session, closer, err := openSession(ctx, app, src)
	if err != nil {
		return err
	}
	defer closer()

	run := app.RunProgram
	if run == nil {
		run = runProgram
	}
	return run(ctx, newAppModel(ctx, app, session))
}

func runProgram(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
