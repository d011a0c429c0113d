package sqlite

import (
	"context"
	"slices"
	"testing"

	"github.com/bookwormapp/bookworm-server/internal/errors"
	"github.com/bookwormapp/bookworm-server/internal/store"
)

func TestTables(t *testing.T) {
	s := newTestStore(t)

	tables, err := s.Tables(context.Background())
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}

	want := []string{"authors", "book_authors", "book_user_data", "books"}
	if !slices.Equal(tables, want) {
		t.Errorf("Tables: got %v, want %v", tables, want)
	}
	for _, name := range tables {
		if len(name) >= 7 && name[:7] == "sqlite_" {
			t.Errorf("bookkeeping table %q leaked into listing", name)
		}
	}
}

func TestStreamRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := makeTestBook("Dune", "Frank Herbert")
	b.ISBN13 = "9780441013593"
	if _, err := s.InsertBook(ctx, b); err != nil {
		t.Fatalf("InsertBook: %v", err)
	}

	var rows []*store.TableRow
	for row, err := range s.StreamRows(ctx, "books") {
		if err != nil {
			t.Fatalf("StreamRows: %v", err)
		}
		rows = append(rows, row)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row.Columns) != len(row.Values) {
		t.Fatalf("columns/values length mismatch: %d vs %d", len(row.Columns), len(row.Values))
	}

	cell := func(column string) string {
		t.Helper()
		i := slices.Index(row.Columns, column)
		if i < 0 {
			t.Fatalf("column %q missing from %v", column, row.Columns)
		}
		return row.Values[i]
	}
	if cell("title") != "Dune" {
		t.Errorf("title: got %q", cell("title"))
	}
	if cell("isbn13") != "9780441013593" {
		t.Errorf("isbn13: got %q", cell("isbn13"))
	}
	// NULL columns come back as the empty string.
	if cell("subtitle") != "" {
		t.Errorf("subtitle: expected empty string for NULL, got %q", cell("subtitle"))
	}
}

func TestStreamRows_UnknownTable(t *testing.T) {
	s := newTestStore(t)

	for _, err := range s.StreamRows(context.Background(), "no_such_table") {
		if !errors.Is(err, errors.ErrNotFound) {
			t.Fatalf("expected not-found for unknown table, got %v", err)
		}
		return
	}
	t.Fatal("expected a single error from the iterator")
}

func TestStreamRows_RejectsInjection(t *testing.T) {
	s := newTestStore(t)

	for _, err := range s.StreamRows(context.Background(), `books"; DROP TABLE books; --`) {
		if !errors.Is(err, errors.ErrNotFound) {
			t.Fatalf("expected not-found for non-schema table name, got %v", err)
		}
		break
	}

	tables, err := s.Tables(context.Background())
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if !slices.Contains(tables, "books") {
		t.Fatal("books table missing after malicious table name")
	}
}
