package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
	"github.com/bookwormapp/bookworm-server/internal/di/providers"
	"github.com/bookwormapp/bookworm-server/internal/domain"
)

func addCommand(ctx context.Context, ov *config.Overrides) *cobra.Command {
	var (
		isbn        string
		title       string
		authors     []string
		subtitle    string
		publisher   string
		description string
		format      string
		subject     string
		published   string
		read        bool
		rating      int
		blurb       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Long: `Add a book to the catalog.

With --isbn the book's metadata is fetched from Google Books; any other
flags given override the fetched values. Without --isbn at least --title
is required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ov)
			if err != nil {
				return err
			}
			defer a.close()

			book := &domain.Book{}

			if isbn != "" {
				client, err := do.Invoke[*providers.GoogleBooksClientHandle](a.injector)
				if err != nil {
					return err
				}
				fetched, err := client.LookupISBN(ctx, isbn)
				if err != nil {
					return fmt.Errorf("fetch metadata: %w", err)
				}
				if fetched == nil {
					return fmt.Errorf("no metadata found for ISBN %s", isbn)
				}
				book = fetched
			}

			if title != "" {
				book.Title = title
			}
			if len(authors) > 0 {
				book.Authors = book.Authors[:0]
				for _, name := range authors {
					book.Authors = append(book.Authors, domain.Author{Name: name})
				}
			}
			if subtitle != "" {
				book.Subtitle = subtitle
			}
			if publisher != "" {
				book.Publisher = publisher
			}
			if description != "" {
				book.Description = description
			}
			if format != "" {
				book.Format = format
			}
			if subject != "" {
				book.Subject = subject
			}
			if published != "" {
				t, err := time.Parse("2006-01-02", published)
				if err != nil {
					return fmt.Errorf("invalid --published date %q, want YYYY-MM-DD", published)
				}
				book.PublishedAt = t.Unix()
			}
			book.UserData = domain.UserData{Read: read, Rating: rating, Blurb: blurb}

			id, err := a.store.InsertBook(ctx, book)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %q (id %d)\n", book.Title, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "fetch metadata for this ISBN")
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringArrayVar(&authors, "author", nil, "author name (repeatable)")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "book subtitle")
	cmd.Flags().StringVar(&publisher, "publisher", "", "publisher name")
	cmd.Flags().StringVar(&description, "description", "", "book description")
	cmd.Flags().StringVar(&format, "format", "", "book format")
	cmd.Flags().StringVar(&subject, "subject", "", "book subject")
	cmd.Flags().StringVar(&published, "published", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&read, "read", false, "mark the book as read")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating from 0 to 5")
	cmd.Flags().StringVar(&blurb, "blurb", "", "personal note about the book")

	return cmd
}
