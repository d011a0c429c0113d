package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookwormapp/bookworm-server/internal/domain"
	"github.com/bookwormapp/bookworm-server/internal/errors"
)

// loadUserData returns the user data row for a book. A missing row yields
// the defaults: unread, rating 0, no blurb.
func loadUserData(ctx context.Context, q querier, bookID int64) (domain.UserData, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT read_status, rating, blurb FROM book_user_data WHERE book_id = ?`, bookID)
	if err != nil {
		return domain.UserData{}, errors.Persistence("select book user data").WithCause(err)
	}
	defer rows.Close()

	var ud domain.UserData
	if rows.Next() {
		var read int
		var blurb sql.NullString
		if err := rows.Scan(&read, &ud.Rating, &blurb); err != nil {
			return domain.UserData{}, errors.Persistence("scan book user data").WithCause(err)
		}
		ud.Read = read != 0
		if blurb.Valid {
			ud.Blurb = blurb.String
		}
	}
	if err := rows.Err(); err != nil {
		return domain.UserData{}, errors.Persistence("iterate book user data").WithCause(err)
	}
	return ud, nil
}

// upsertUserData writes the single user data row for a book within the
// caller's transaction. An insert hitting the unique book_id index means the
// row already exists (the caller's own prior data); it is updated in place
// instead of surfacing the constraint violation.
func upsertUserData(ctx context.Context, tx *sql.Tx, bookID int64, ud domain.UserData) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO book_user_data (book_id, read_status, rating, blurb)
		VALUES (?, ?, ?, ?)`,
		bookID,
		boolToInt(ud.Read),
		ud.Rating,
		nullString(ud.Blurb),
	)
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return errors.Persistence("insert book user data").WithCause(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE book_user_data SET read_status = ?, rating = ?, blurb = ?
		WHERE book_id = ?`,
		boolToInt(ud.Read),
		ud.Rating,
		nullString(ud.Blurb),
		bookID,
	)
	if err != nil {
		return errors.Persistence("update book user data").WithCause(err)
	}
	return nil
}
