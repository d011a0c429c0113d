package googlebooks

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bookwormapp/bookworm-server/internal/domain"
)

// LookupISBN queries the volume feed for a single ISBN and maps the first
// matching entry to a catalog book. Returns (nil, nil) when the feed has no
// match for the ISBN.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	isbn = strings.ReplaceAll(strings.TrimSpace(isbn), "-", "")
	if isbn == "" {
		return nil, fmt.Errorf("empty isbn")
	}

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", "isbn:"+isbn)

	feedURL := c.endpoint + "?" + params.Encode()

	c.logger.Debug("looking up volume",
		"isbn", isbn,
		"url", feedURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup failed: status %d", resp.StatusCode)
	}

	var feed volumeFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	c.logger.Debug("volume feed results",
		"isbn", isbn,
		"count", len(feed.Entries),
	)

	if len(feed.Entries) == 0 {
		return nil, nil
	}

	return entryToBook(&feed.Entries[0]), nil
}

// entryToBook maps a feed entry to a catalog book.
func entryToBook(entry *volumeEntry) *domain.Book {
	b := &domain.Book{
		Title:       strings.TrimSpace(entry.Title),
		Publisher:   strings.TrimSpace(entry.Publisher),
		Description: strings.Join(entry.Descriptions, "\n"),
		Format:      strings.Join(entry.Format, ", "),
		PublishedAt: parseDate(entry.Date),
	}

	if len(entry.Subjects) > 0 {
		b.Subject = strings.TrimSpace(entry.Subjects[0])
	}

	for _, creator := range entry.Creators {
		name := strings.TrimSpace(creator)
		if name == "" {
			continue
		}
		b.Authors = append(b.Authors, domain.Author{Name: name})
	}

	for _, identifier := range entry.Identifiers {
		value, ok := strings.CutPrefix(identifier, "ISBN:")
		if !ok {
			continue
		}
		value = strings.ReplaceAll(strings.TrimSpace(value), "-", "")
		switch len(value) {
		case 10:
			b.ISBN10 = value
		case 13:
			b.ISBN13 = value
		}
	}

	return b
}

// parseDate converts a feed date to a Unix timestamp. The feed publishes
// full dates, year-month, or bare years. Unparseable dates map to zero.
func parseDate(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Unix()
		}
	}
	return 0
}
