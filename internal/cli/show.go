package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
)

func showCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a book's full details",
		Args:  cobra.ExactArgs(1),
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

			book, err := a.store.GetBook(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			field := func(label, value string) {
				if value != "" {
					fmt.Fprintf(out, "%-12s %s\n", label+":", value)
				}
			}

			field("ID", strconv.FormatInt(book.ID, 10))
			field("Title", book.Title)
			field("Subtitle", book.Subtitle)
			field("Authors", strings.Join(book.AuthorNames(), ", "))
			field("Publisher", book.Publisher)
			if book.PublishedAt != 0 {
				field("Published", time.Unix(book.PublishedAt, 0).UTC().Format("2006-01-02"))
			}
			field("ISBN-10", book.ISBN10)
			field("ISBN-13", book.ISBN13)
			field("Format", book.Format)
			field("Subject", book.Subject)
			field("Description", book.Description)

			if book.UserData.Read {
				field("Read", "yes")
			} else {
				field("Read", "no")
			}
			field("Rating", strconv.Itoa(book.UserData.Rating)+"/5")
			field("Blurb", book.UserData.Blurb)

			return nil
		},
	}
}
