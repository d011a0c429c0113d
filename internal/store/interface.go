// Package store defines the persistence interface for the BookWorm catalog.
package store

import (
	"context"
	"iter"

	"github.com/bookwormapp/bookworm-server/internal/domain"
)

// Store defines the interface for all catalog persistence operations.
//
// All multi-statement mutations execute as a single atomic transaction:
// either every write becomes visible or none do. Reads are not wrapped in a
// transaction and may interleave with commits, but never observe a partial
// mutation.
type Store interface {
	// Lifecycle
	Close() error

	// Books
	InsertBook(ctx context.Context, book *domain.Book) (int64, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id int64) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	GetBooksByAuthor(ctx context.Context, name string) ([]*domain.Book, error)

	// Authors
	GetAuthor(ctx context.Context, id int64) (*domain.Author, error)
	GetAuthorByName(ctx context.Context, name string) (*domain.Author, error)
	ListAuthors(ctx context.Context) ([]*domain.Author, error)

	// Catalog listing
	ListCatalog(ctx context.Context, sort SortOrder) iter.Seq2[*CatalogRow, error]

	// Export support
	Tables(ctx context.Context) ([]string, error)
	StreamRows(ctx context.Context, table string) iter.Seq2[*TableRow, error]

	// Maintenance
	PurgeAll(ctx context.Context) error
}
