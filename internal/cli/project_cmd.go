package cli

import (
	"fmt"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/repository"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App, src *sourceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := openDatabase(app, src)
			if err != nil {
				return err
			}
			defer h.Close()

			projects, err := repository.NewSQLiteProjectRepo(h.DB).List(commandContext(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, formatter.Dim("No projects."))
				return nil
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					p.ID,
					p.DisplayName(),
					formatter.HumanDate(p.StartDate),
					formatter.HumanDate(p.EndDate),
				})
			}
			fmt.Fprint(out, formatter.RenderTable([]string{"ID", "NAME", "START", "END"}, rows))
			return nil
		},
	}
}
