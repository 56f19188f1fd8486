package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/service"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App, src *sourceOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the task tree with hours and due dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, src, all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Expand minimized tasks")
	return cmd
}

func runShow(cmd *cobra.Command, app *App, src *sourceOptions, all bool) error {
	session, closer, err := openSession(commandContext(cmd), app, src)
	if err != nil {
		return err
	}
	defer closer()

	writeTree(cmd.OutOrStdout(), app, session, all)
	return nil
}

func writeTree(w io.Writer, app *App, session service.EditorService, all bool) {
	fmt.Fprintln(w, formatter.Header(session.Project().DisplayName()))
	nodes := visibleNodes(session.Root(), all)
	if len(nodes) == 0 {
		fmt.Fprintln(w, formatter.Dim("No tasks yet."))
	} else {
		fmt.Fprint(w, formatter.RenderTree(treeItems(nodes, "", app.now())))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatter.RemainingBadge(session.Summary(), 20))
}
