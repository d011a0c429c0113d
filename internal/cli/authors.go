package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
)

func authorsCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "authors [name]",
		Short: "List authors, or the books of one author",
		Long: `Without arguments, list every author in the catalog. With a name
(matched case-insensitively), list that author's books.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				books, err := a.store.GetBooksByAuthor(ctx, args[0])
				if err != nil {
					return err
				}
				if len(books) == 0 {
					fmt.Fprintf(out, "No books found for %q\n", args[0])
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTITLE\tAUTHORS")
				for _, b := range books {
					fmt.Fprintf(w, "%d\t%s\t%s\n",
						b.ID, b.Title, strings.Join(b.AuthorNames(), ", "))
				}
				return w.Flush()
			}

			authors, err := a.store.ListAuthors(ctx)
			if err != nil {
				return err
			}
			for _, author := range authors {
				fmt.Fprintln(out, author.Name)
			}
			fmt.Fprintf(out, "\n%d author(s)\n", len(authors))
			return nil
		},
	}
}
