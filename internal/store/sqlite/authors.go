package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bookwormapp/bookworm-server/internal/domain"
	"github.com/bookwormapp/bookworm-server/internal/errors"
)

// authorColumns is the ordered list of columns selected in author queries.
// Must match the scan order in scanAuthor.
const authorColumns = `id, name`

// scanAuthor scans a sql.Row (or sql.Rows via its Scan method) into a domain.Author.
func scanAuthor(scanner interface{ Scan(dest ...any) error }) (*domain.Author, error) {
	var a domain.Author
	if err := scanner.Scan(&a.ID, &a.Name); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAuthor retrieves an author by id.
// Returns a not-found error if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE id = ?`, id)

	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("author %d not found", id)
	}
	if err != nil {
		return nil, errors.Persistence("select author").WithCause(err)
	}
	return a, nil
}

// GetAuthorByName retrieves an author by exact case-insensitive name match.
// Returns a not-found error if no author with that name exists.
func (s *Store) GetAuthorByName(ctx context.Context, name string) (*domain.Author, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE name = ? COLLATE NOCASE`, name)

	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("author %q not found", name)
	}
	if err != nil {
		return nil, errors.Persistence("select author by name").WithCause(err)
	}
	return a, nil
}

// ListAuthors returns all authors ordered by name (case-insensitive).
func (s *Store) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+authorColumns+` FROM authors ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, errors.Persistence("select authors").WithCause(err)
	}
	defer rows.Close()

	var authors []*domain.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, errors.Persistence("scan author").WithCause(err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("iterate authors").WithCause(err)
	}
	return authors, nil
}

// resolveAuthorIDs maps each embedded author name to an author id within the
// given transaction, inserting new authors as needed. Names equal under
// case-insensitive comparison collapse to one id; the result preserves first
// appearance order.
func resolveAuthorIDs(ctx context.Context, tx *sql.Tx, authors []domain.Author) ([]int64, error) {
	seen := make(map[string]bool, len(authors))
	ids := make([]int64, 0, len(authors))

	for _, a := range authors {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		id, err := resolveAuthorID(ctx, tx, strings.TrimSpace(a.Name))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveAuthorID looks an author up by case-insensitive name, inserting a
// new row when no match exists. A unique violation on insert means another
// writer created the row first; the conflicting row is reused rather than
// surfacing the constraint error.
func resolveAuthorID(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM authors WHERE name = ? COLLATE NOCASE`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, errors.Persistence("select author id").WithCause(err)
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO authors (name) VALUES (?)`, name)
	if err != nil {
		if isUniqueViolation(err) {
			err = tx.QueryRowContext(ctx,
				`SELECT id FROM authors WHERE name = ? COLLATE NOCASE`, name).Scan(&id)
			if err != nil {
				return 0, errors.Conflictf("author %q exists but cannot be resolved", name).WithCause(err)
			}
			return id, nil
		}
		return 0, errors.Persistence("insert author").WithCause(err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, errors.Persistence("insert author id").WithCause(err)
	}
	return id, nil
}

// deleteOrphanedAuthors removes each candidate author that has no remaining
// link rows. Runs inside the caller's transaction so a crash can never leave
// a stale orphan behind.
func deleteOrphanedAuthors(ctx context.Context, tx *sql.Tx, candidates []int64) error {
	for _, id := range candidates {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM authors
			WHERE id = ?
			  AND NOT EXISTS (SELECT 1 FROM book_authors WHERE author_id = authors.id)`, id)
		if err != nil {
			return errors.Persistence("delete orphaned author").WithCause(err)
		}
	}
	return nil
}
