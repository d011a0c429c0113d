package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
	"github.com/bookwormapp/bookworm-server/internal/store"
)

func listCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	var sortToken string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}
			defer a.close()

			sort := store.ParseSortOrder(sortToken)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPUBLISHER\tREAD\tRATING")

			var count int
			for row, err := range a.store.ListCatalog(ctx, sort) {
				if err != nil {
					return err
				}
				read := ""
				if row.Read {
					read = "yes"
				}
				title := row.Title
				if row.Subtitle != "" {
					title += ": " + row.Subtitle
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
					row.BookID, title, row.Publisher, read, row.Rating)
				count++
			}

			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d book(s)\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortToken, "sort", "",
		"sort order: title-asc, title-desc, rating-asc, rating-desc")

	return cmd
}
