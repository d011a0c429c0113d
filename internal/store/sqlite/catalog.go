package sqlite

import (
	"context"
	"database/sql"
	"iter"

	"github.com/bookwormapp/bookworm-server/internal/errors"
	"github.com/bookwormapp/bookworm-server/internal/store"
)

var _ store.Store = (*Store)(nil)

// catalogColumns is the joined book/user-data projection for the catalog
// listing. Must match the scan order in scanCatalogRow.
const catalogColumns = `b.id, b.title, b.subtitle, b.publisher, b.published_at, b.format,
	u.read_status, u.rating, u.blurb`

// orderClause maps a sort order to its ORDER BY clause. Unknown orders yield
// no clause. Clauses are fixed strings, never caller input.
func orderClause(sort store.SortOrder) string {
	switch sort {
	case store.SortTitleAsc:
		return ` ORDER BY b.title COLLATE NOCASE ASC`
	case store.SortTitleDesc:
		return ` ORDER BY b.title COLLATE NOCASE DESC`
	case store.SortRatingDesc:
		return ` ORDER BY u.rating DESC, b.title COLLATE NOCASE ASC`
	case store.SortRatingAsc:
		return ` ORDER BY u.rating ASC, b.title COLLATE NOCASE ASC`
	default:
		return ``
	}
}

// scanCatalogRow scans a joined row into a store.CatalogRow.
func scanCatalogRow(scanner interface{ Scan(dest ...any) error }) (*store.CatalogRow, error) {
	var r store.CatalogRow

	var (
		subtitle  sql.NullString
		publisher sql.NullString
		format    sql.NullString
		read      int
		blurb     sql.NullString
	)

	err := scanner.Scan(
		&r.BookID,
		&r.Title,
		&subtitle,
		&publisher,
		&r.PublishedAt,
		&format,
		&read,
		&r.Rating,
		&blurb,
	)
	if err != nil {
		return nil, err
	}

	if subtitle.Valid {
		r.Subtitle = subtitle.String
	}
	if publisher.Valid {
		r.Publisher = publisher.String
	}
	if format.Valid {
		r.Format = format.String
	}
	r.Read = read != 0
	if blurb.Valid {
		r.Blurb = blurb.String
	}

	return &r, nil
}

// ListCatalog returns a lazy, restartable iterator over the joined
// book/user-data catalog. The caller may stop consuming at any point; the
// underlying cursor is released and no transaction is held open. Iterating
// the returned sequence again re-runs the query.
func (s *Store) ListCatalog(ctx context.Context, sort store.SortOrder) iter.Seq2[*store.CatalogRow, error] {
	query := `
		SELECT ` + catalogColumns + `
		FROM books b
		JOIN book_user_data u ON u.book_id = b.id` + orderClause(sort)

	return func(yield func(*store.CatalogRow, error) bool) {
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			yield(nil, errors.Persistence("query catalog").WithCause(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}

			r, err := scanCatalogRow(rows)
			if err != nil {
				if !yield(nil, errors.Persistence("scan catalog row").WithCause(err)) {
					return
				}
				continue
			}
			if !yield(r, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, errors.Persistence("iterate catalog").WithCause(err))
		}
	}
}
