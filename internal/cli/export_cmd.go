package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/lifemap/internal/importer"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App, src *sourceOptions) *cobra.Command {
	var out, format string
	var payload bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the tree as a snapshot file or save request body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closer, err := openSession(commandContext(cmd), app, src)
			if err != nil {
				return err
			}
			defer closer()

			var data []byte
			if payload {
				data, err = json.MarshalIndent(session.Payload(), "", "  ")
				if err != nil {
					return fmt.Errorf("encoding payload: %w", err)
				}
				data = append(data, '\n')
			} else {
				f, err := exportFormat(format, out)
				if err != nil {
					return err
				}
				snap := importer.FromTree(session.Project(), session.Root(), session.DeletedIDs())
				if data, err = importer.EncodeSnapshot(snap, f); err != nil {
					return fmt.Errorf("encoding snapshot: %w", err)
				}
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from --out, else json)")
	cmd.Flags().BoolVar(&payload, "payload", false, "Write the POST /save-tasks body instead of a snapshot")
	return cmd
}

func exportFormat(flag, out string) (importer.Format, error) {
	switch {
	case flag != "":
		f := importer.Format(flag)
		if f != importer.FormatJSON && f != importer.FormatYAML {
			return "", fmt.Errorf("%w: %q", importer.ErrUnknownFormat, flag)
		}
		return f, nil
	case out != "":
		return importer.DetectFormat(out)
	default:
		return importer.FormatJSON, nil
	}
}
