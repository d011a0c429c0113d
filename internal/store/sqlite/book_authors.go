package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookwormapp/bookworm-server/internal/domain"
	"github.com/bookwormapp/bookworm-server/internal/errors"
)

// querier is the common subset of *sql.DB and *sql.Tx used by read helpers.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// insertBookAuthors inserts one link row per resolved author id. The id set
// is already deduplicated, so no pair is inserted twice within one call.
func insertBookAuthors(ctx context.Context, tx *sql.Tx, bookID int64, authorIDs []int64) error {
	for _, authorID := range authorIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO book_authors (book_id, author_id) VALUES (?, ?)`, bookID, authorID)
		if err != nil {
			return errors.Persistence("insert book author link").WithCause(err)
		}
	}
	return nil
}

// linkedAuthorIDs returns the author ids currently linked to a book, within
// the caller's transaction.
func linkedAuthorIDs(ctx context.Context, q querier, bookID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT author_id FROM book_authors WHERE book_id = ?`, bookID)
	if err != nil {
		return nil, errors.Persistence("select book author links").WithCause(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Persistence("scan author id").WithCause(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("iterate author ids").WithCause(err)
	}
	return ids, nil
}

// loadBookAuthors returns the authors linked to a book, ordered by name.
func loadBookAuthors(ctx context.Context, q querier, bookID int64) ([]domain.Author, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT a.id, a.name
		FROM authors a
		JOIN book_authors ba ON ba.author_id = a.id
		WHERE ba.book_id = ?
		ORDER BY a.name COLLATE NOCASE ASC`, bookID)
	if err != nil {
		return nil, errors.Persistence("select book authors").WithCause(err)
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, errors.Persistence("scan book author").WithCause(err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("iterate book authors").WithCause(err)
	}
	return authors, nil
}
