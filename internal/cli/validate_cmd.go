package cli

import (
	"fmt"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *App, src *sourceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that no subtask is due after its parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closer, err := openSession(commandContext(cmd), app, src)
			if err != nil {
				return err
			}
			defer closer()

			out := cmd.OutOrStdout()
			violations := session.Validate()
			if len(violations) == 0 {
				fmt.Fprintln(out, formatter.Alert(formatter.AlertSuccess, "No due-date problems."))
				return nil
			}
			for _, v := range violations {
				fmt.Fprintln(out, formatter.Alert(formatter.AlertError,
					fmt.Sprintf("%s (%s > %s)", v.Error(), v.DueDate, v.ParentDueDate)))
			}
			return fmt.Errorf("%d due-date violation(s)", len(violations))
		},
	}
}
