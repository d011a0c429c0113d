package googlebooks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwormapp/bookworm-server/internal/logger"
)

const duneFeed = `<?xml version='1.0' encoding='UTF-8'?>
<feed xmlns='http://www.w3.org/2005/Atom' xmlns:dc='http://purl.org/dc/terms' xmlns:openSearch='http://a9.com/-/spec/opensearchrss/1.0/'>
  <openSearch:totalResults>1</openSearch:totalResults>
  <entry>
    <title>Dune</title>
    <dc:creator>Frank Herbert</dc:creator>
    <dc:date>1990-09-01</dc:date>
    <dc:description>Science fiction&#39;s supreme masterpiece.</dc:description>
    <dc:format>535 pages</dc:format>
    <dc:format>book</dc:format>
    <dc:identifier>d8SduHVU-rEC</dc:identifier>
    <dc:identifier>ISBN:0441172717</dc:identifier>
    <dc:identifier>ISBN:9780441172719</dc:identifier>
    <dc:publisher>Penguin</dc:publisher>
    <dc:subject>Fiction</dc:subject>
    <dc:title>Dune</dc:title>
  </entry>
</feed>`

const emptyFeed = `<?xml version='1.0' encoding='UTF-8'?>
<feed xmlns='http://www.w3.org/2005/Atom' xmlns:openSearch='http://a9.com/-/spec/opensearchrss/1.0/'>
  <openSearch:totalResults>0</openSearch:totalResults>
</feed>`

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Writer: io.Discard})
}

func TestLookupISBN(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/atom+xml")
		io.WriteString(w, duneFeed)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())

	book, err := c.LookupISBN(context.Background(), "978-0-441-17271-9")
	require.NoError(t, err)
	require.NotNil(t, book)

	assert.Equal(t, "isbn:9780441172719", gotQuery)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, "Penguin", book.Publisher)
	assert.Equal(t, "Science fiction's supreme masterpiece.", book.Description)
	assert.Equal(t, "535 pages, book", book.Format)
	assert.Equal(t, "Fiction", book.Subject)
	assert.Equal(t, "0441172717", book.ISBN10)
	assert.Equal(t, "9780441172719", book.ISBN13)

	require.Len(t, book.Authors, 1)
	assert.Equal(t, "Frank Herbert", book.Authors[0].Name)

	want := time.Date(1990, 9, 1, 0, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, want, book.PublishedAt)
}

func TestLookupISBN_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, emptyFeed)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())

	book, err := c.LookupISBN(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestLookupISBN_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, testLogger())

	_, err := c.LookupISBN(context.Background(), "9780441172719")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestLookupISBN_EmptyISBN(t *testing.T) {
	c := NewClient("", 0, testLogger())

	_, err := c.LookupISBN(context.Background(), "  ")
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"1990-09-01", time.Date(1990, 9, 1, 0, 0, 0, 0, time.UTC).Unix()},
		{"1990-09", time.Date(1990, 9, 1, 0, 0, 0, 0, time.UTC).Unix()},
		{"1990", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC).Unix()},
		{"", 0},
		{"not a date", 0},
	}
	for _, tt := range tests {
		if got := parseDate(tt.value); got != tt.want {
			t.Errorf("parseDate(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
