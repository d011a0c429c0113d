package cli

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/backup/export"
	"github.com/bookwormapp/bookworm-server/internal/config"
)

func exportCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the catalog database to an XML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}
			defer a.close()

			exporter, err := do.Invoke[*export.Exporter](a.injector)
			if err != nil {
				return err
			}

			result, err := exporter.Export(ctx, a.store, a.config.Export.Dir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d row(s) across %d table(s) to %s (%d bytes)\n",
				result.Rows, result.Tables, result.Path, result.Size)
			return nil
		},
	}
}
