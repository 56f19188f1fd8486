package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/lifemap/internal/cli/formatter"
	"github.com/alexanderramin/lifemap/internal/contract"
	"github.com/spf13/cobra"
)

func newSaveCmd(app *App, src *sourceOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Send the loaded tree to the save endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			session, closer, err := openSession(ctx, app, src)
			if err != nil {
				return err
			}
			defer closer()

			req := session.Payload()
			stop := formatter.StartSpinner(cmd.ErrOrStderr(),
				fmt.Sprintf("Saving %d tasks...", contract.CountTasks(req.Tasks)))
			resp, err := session.Submit(ctx)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Alert(formatter.AlertSuccess, resp.Message))
			for _, local := range sortedKeys(resp.NewIDs) {
				fmt.Fprintf(out, "  %s → %s\n", formatter.Dim(local), resp.NewIDs[local])
			}
			return nil
		},
	}
}

func sortedKeys(m map[string]contract.ItemID) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
