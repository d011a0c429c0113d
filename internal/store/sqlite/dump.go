package sqlite

import (
	"context"
	"database/sql"
	"iter"
	"slices"

	"github.com/bookwormapp/bookworm-server/internal/errors"
	"github.com/bookwormapp/bookworm-server/internal/store"
)

// Tables returns the names of all user tables, excluding the engine's own
// bookkeeping tables, ordered by name.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, errors.Persistence("select table names").WithCause(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Persistence("scan table name").WithCause(err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Persistence("iterate table names").WithCause(err)
	}
	return tables, nil
}

// StreamRows returns an iterator over every row of the named table, each row
// carrying the ordered column names and stringified values (NULL as "").
// The table name is checked against the schema before being interpolated.
func (s *Store) StreamRows(ctx context.Context, table string) iter.Seq2[*store.TableRow, error] {
	return func(yield func(*store.TableRow, error) bool) {
		tables, err := s.Tables(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		if !slices.Contains(tables, table) {
			yield(nil, errors.NotFoundf("table %q not found", table))
			return
		}

		rows, err := s.db.QueryContext(ctx, `SELECT * FROM "`+table+`"`)
		if err != nil {
			yield(nil, errors.Persistence("query table").WithCause(err))
			return
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			yield(nil, errors.Persistence("read table columns").WithCause(err))
			return
		}

		for rows.Next() {
			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}

			cells := make([]sql.NullString, len(columns))
			dest := make([]any, len(columns))
			for i := range cells {
				dest[i] = &cells[i]
			}
			if err := rows.Scan(dest...); err != nil {
				if !yield(nil, errors.Persistence("scan table row").WithCause(err)) {
					return
				}
				continue
			}

			values := make([]string, len(columns))
			for i, cell := range cells {
				if cell.Valid {
					values[i] = cell.String
				}
			}

			if !yield(&store.TableRow{Columns: columns, Values: values}, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, errors.Persistence("iterate table rows").WithCause(err))
		}
	}
}
