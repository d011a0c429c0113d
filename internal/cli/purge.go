package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
)

func purgeCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every book, author, and annotation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("purge deletes the entire catalog; re-run with --yes to confirm")
			}

			a, err := newApp(ov)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.PurgeAll(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Catalog purged")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deleting the entire catalog")

	return cmd
}
