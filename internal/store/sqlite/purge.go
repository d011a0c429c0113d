package sqlite

import (
	"context"

	"github.com/bookwormapp/bookworm-server/internal/errors"
)

// PurgeAll deletes every row from all four catalog tables in one transaction,
// then reclaims storage. Irreversible; callers are expected to confirm first.
func (s *Store) PurgeAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Persistence("begin purge").WithCause(err)
	}
	defer tx.Rollback()

	// Link and annotation rows first so foreign keys stay satisfied.
	for _, table := range []string{"book_authors", "book_user_data", "books", "authors"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM "`+table+`"`); err != nil {
			return errors.Persistencef("purge %s", table).WithCause(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Persistence("commit purge").WithCause(err)
	}

	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return errors.Persistence("vacuum after purge").WithCause(err)
	}

	s.logger.Info("purged all catalog data")
	return nil
}
