package export

import (
	"context"
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormapp/bookworm-server/internal/domain"
	"github.com/bookwormapp/bookworm-server/internal/logger"
	"github.com/bookwormapp/bookworm-server/internal/store/sqlite"
)

type xmlDatabase struct {
	XMLName xml.Name   `xml:"database"`
	Name    string     `xml:"name,attr"`
	Tables  []xmlTable `xml:"table"`
}

type xmlTable struct {
	Name string   `xml:"name,attr"`
	Rows []xmlRow `xml:"row"`
}

type xmlRow struct {
	Cols []xmlCol `xml:"col"`
}

type xmlCol struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

func (t xmlTable) col(rowIdx int, name string) (string, bool) {
	for _, c := range t.Rows[rowIdx].Cols {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	log := logger.New(logger.Config{Writer: io.Discard, Level: slog.LevelDebug})
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := &domain.Book{
		Title:   "Dune",
		ISBN13:  "9780441013593",
		Authors: []domain.Author{{Name: "Frank Herbert"}},
		UserData: domain.UserData{
			Read:   true,
			Rating: 5,
			Blurb:  "Spice & sandworms <unfiltered>",
		},
	}
	_, err := s.InsertBook(ctx, book)
	require.NoError(t, err)

	dir := t.TempDir()
	exporter := New(logger.New(logger.Config{Writer: io.Discard}))

	result, err := exporter.Export(ctx, s, dir)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Tables)
	assert.Equal(t, 4, result.Rows) // one row in each of books, authors, book_authors, book_user_data
	assert.Greater(t, result.Size, int64(0))
	assert.True(t, strings.HasPrefix(filepath.Base(result.Path), "catalog-export-"))
	assert.True(t, strings.HasSuffix(result.Path, ".xml"))

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)

	var doc xmlDatabase
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, "catalog", doc.Name)

	tables := make(map[string]xmlTable, len(doc.Tables))
	for _, tab := range doc.Tables {
		tables[tab.Name] = tab
	}
	require.Contains(t, tables, "books")
	require.Contains(t, tables, "authors")
	require.Contains(t, tables, "book_authors")
	require.Contains(t, tables, "book_user_data")

	books := tables["books"]
	require.Len(t, books.Rows, 1)
	title, ok := books.col(0, "title")
	require.True(t, ok)
	assert.Equal(t, "Dune", title)

	// Markup in column values must round-trip through escaping.
	userData := tables["book_user_data"]
	require.Len(t, userData.Rows, 1)
	blurb, ok := userData.col(0, "blurb")
	require.True(t, ok)
	assert.Equal(t, "Spice & sandworms <unfiltered>", blurb)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestExport_EmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	exporter := New(logger.New(logger.Config{Writer: io.Discard}))

	result, err := exporter.Export(context.Background(), s, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Tables)
	assert.Equal(t, 0, result.Rows)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)

	var doc xmlDatabase
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Len(t, doc.Tables, 4)
	for _, tab := range doc.Tables {
		assert.Empty(t, tab.Rows, "table %s", tab.Name)
	}
}

func TestExport_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	_, err := s.InsertBook(context.Background(), &domain.Book{Title: "Dune"})
	require.NoError(t, err)

	dir := t.TempDir()
	exporter := New(logger.New(logger.Config{Writer: io.Discard}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = exporter.Export(ctx, s, dir)
	require.Error(t, err)

	// Failed exports leave no partial file behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
