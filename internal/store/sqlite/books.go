package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookwormapp/bookworm-server/internal/domain"
	"github.com/bookwormapp/bookworm-server/internal/errors"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, isbn10, isbn13, title, subtitle, publisher, description, format, subject, published_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		isbn10    sql.NullString
		isbn13    sql.NullString
		subtitle  sql.NullString
		publisher sql.NullString
		desc      sql.NullString
		format    sql.NullString
		subject   sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&isbn10,
		&isbn13,
		&b.Title,
		&subtitle,
		&publisher,
		&desc,
		&format,
		&subject,
		&b.PublishedAt,
	)
	if err != nil {
		return nil, err
	}

	// Optional string fields.
	if isbn10.Valid {
		b.ISBN10 = isbn10.String
	}
	if isbn13.Valid {
		b.ISBN13 = isbn13.String
	}
	if subtitle.Valid {
		b.Subtitle = subtitle.String
	}
	if publisher.Valid {
		b.Publisher = publisher.String
	}
	if desc.Valid {
		b.Description = desc.String
	}
	if format.Valid {
		b.Format = format.String
	}
	if subject.Valid {
		b.Subject = subject.String
	}

	return &b, nil
}

// InsertBook inserts a book with its author links and user data in one
// transaction, creating authors as needed. It returns the generated book id.
func (s *Store) InsertBook(ctx context.Context, b *domain.Book) (int64, error) {
	if err := s.validate.Validate(b); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Persistence("begin insert book").WithCause(err)
	}
	defer tx.Rollback()

	// Resolve authors first so the link set is final before the book row
	// exists. Duplicate names in the input collapse to one id.
	authorIDs, err := resolveAuthorIDs(ctx, tx, b.Authors)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO books (isbn10, isbn13, title, subtitle, publisher, description, format, subject, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullString(b.ISBN10),
		nullString(b.ISBN13),
		b.Title,
		nullString(b.Subtitle),
		nullString(b.Publisher),
		nullString(b.Description),
		nullString(b.Format),
		nullString(b.Subject),
		b.PublishedAt,
	)
	if err != nil {
		return 0, errors.Persistence("insert book").WithCause(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Persistence("insert book id").WithCause(err)
	}

	if err := insertBookAuthors(ctx, tx, id, authorIDs); err != nil {
		return 0, err
	}
	if err := upsertUserData(ctx, tx, id, b.UserData); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Persistence("commit insert book").WithCause(err)
	}

	b.ID = id
	s.logger.Debug("inserted book", "id", id, "title", b.Title, "authors", len(authorIDs))
	return id, nil
}

// UpdateBook revises an existing book, its author links, and its user data in
// one transaction. The link set is fully replaced and authors left without
// any link afterwards are removed. Returns a not-found error when no book
// with the given id exists; nothing is upserted.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	if err := s.validate.Validate(b); err != nil {
		return err
	}
	if b.ID == 0 {
		return errors.Validation("book id is required for update")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Persistence("begin update book").WithCause(err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM books WHERE id = ?`, b.ID).Scan(&one)
	if err == sql.ErrNoRows {
		return errors.NotFoundf("book %d not found", b.ID)
	}
	if err != nil {
		return errors.Persistence("check book exists").WithCause(err)
	}

	// The previous link set is the candidate set for orphan cleanup.
	previous, err := linkedAuthorIDs(ctx, tx, b.ID)
	if err != nil {
		return err
	}

	authorIDs, err := resolveAuthorIDs(ctx, tx, b.Authors)
	if err != nil {
		return err
	}

	// Full replace of the link set rather than a diff.
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = ?`, b.ID); err != nil {
		return errors.Persistence("delete book author links").WithCause(err)
	}
	if err := insertBookAuthors(ctx, tx, b.ID, authorIDs); err != nil {
		return err
	}

	if err := upsertUserData(ctx, tx, b.ID, b.UserData); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET
			isbn10 = ?,
			isbn13 = ?,
			title = ?,
			subtitle = ?,
			publisher = ?,
			description = ?,
			format = ?,
			subject = ?,
			published_at = ?
		WHERE id = ?`,
		nullString(b.ISBN10),
		nullString(b.ISBN13),
		b.Title,
		nullString(b.Subtitle),
		nullString(b.Publisher),
		nullString(b.Description),
		nullString(b.Format),
		nullString(b.Subject),
		b.PublishedAt,
		b.ID,
	)
	if err != nil {
		return errors.Persistence("update book").WithCause(err)
	}

	if err := deleteOrphanedAuthors(ctx, tx, previous); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Persistence("commit update book").WithCause(err)
	}

	s.logger.Debug("updated book", "id", b.ID, "title", b.Title)
	return nil
}

// DeleteBook removes a book, its author links, and its user data in one
// transaction, then removes any of its authors left without links. Deleting
// an absent book is a no-op.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Persistence("begin delete book").WithCause(err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM books WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return errors.Persistence("check book exists").WithCause(err)
	}

	previous, err := linkedAuthorIDs(ctx, tx, id)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = ?`, id); err != nil {
		return errors.Persistence("delete book author links").WithCause(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_user_data WHERE book_id = ?`, id); err != nil {
		return errors.Persistence("delete book user data").WithCause(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return errors.Persistence("delete book").WithCause(err)
	}

	if err := deleteOrphanedAuthors(ctx, tx, previous); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Persistence("commit delete book").WithCause(err)
	}

	s.logger.Debug("deleted book", "id", id)
	return nil
}

// GetBook retrieves a fully hydrated book (authors and user data included).
// Returns a not-found error if the id does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("book %d not found", id)
	}
	if err != nil {
		return nil, errors.Persistence("select book").WithCause(err)
	}

	return s.hydrateBook(ctx, b)
}

// ListBooks returns every book in the catalog, fully hydrated, ordered by
// title (case-insensitive).
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title COLLATE NOCASE ASC`)
	if err != nil {
		return nil, errors.Persistence("select books").WithCause(err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, errors.Persistence("scan book").WithCause(err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("iterate books").WithCause(err)
	}

	for _, b := range books {
		if _, err := s.hydrateBook(ctx, b); err != nil {
			return nil, err
		}
	}
	return books, nil
}

// GetBooksByAuthor returns every book linked to the author with the given
// name (case-insensitive). An unknown author yields an empty result, not an
// error.
func (s *Store) GetBooksByAuthor(ctx context.Context, name string) ([]*domain.Book, error) {
	author, err := s.GetAuthorByName(ctx, name)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id
		FROM books b
		JOIN book_authors ba ON ba.book_id = b.id
		WHERE ba.author_id = ?
		ORDER BY b.title COLLATE NOCASE ASC`, author.ID)
	if err != nil {
		return nil, errors.Persistence("select books by author").WithCause(err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Persistence("scan book id").WithCause(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("iterate book ids").WithCause(err)
	}

	books := make([]*domain.Book, 0, len(ids))
	for _, id := range ids {
		b, err := s.GetBook(ctx, id)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, nil
}

// hydrateBook attaches the author set and user data to a scanned book row.
func (s *Store) hydrateBook(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	authors, err := loadBookAuthors(ctx, s.db, b.ID)
	if err != nil {
		return nil, err
	}
	b.Authors = authors

	ud, err := loadUserData(ctx, s.db, b.ID)
	if err != nil {
		return nil, err
	}
	b.UserData = ud

	return b, nil
}
