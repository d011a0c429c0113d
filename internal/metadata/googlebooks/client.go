// Package googlebooks looks up book metadata in the Google Books volume feed.
package googlebooks

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bookwormapp/bookworm-server/internal/logger"
)

// DefaultEndpoint is the public Google Books volume feed.
const DefaultEndpoint = "https://books.google.com/books/feeds/volumes"

// Client provides access to the Google Books feed for ISBN lookups.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *logger.Logger
	endpoint    string
}

// NewClient creates a new Google Books client. An empty endpoint selects
// DefaultEndpoint; a zero timeout defaults to 30 seconds.
// Rate limited to 1 request per second with a small burst, to stay well
// under the feed's per-client quota.
func NewClient(endpoint string, timeout time.Duration, log *logger.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:      log.With("component", "googlebooks"),
		endpoint:    endpoint,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
