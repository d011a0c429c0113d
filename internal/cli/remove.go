package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
)

func removeCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a book from the catalog",
		Long: `Remove a book from the catalog.

The book's user data is removed with it, and authors left without any
books are cleaned up. Removing an id that does not exist is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}

			a, err := newApp(ov)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.store.DeleteBook(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed book %d\n", id)
			return nil
		},
	}
}
