package tickerlens

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch downloads the page at url and returns its raw HTML.
	// The context controls timeout and cancellation. Fetch failures are
	// retryable and never fatal to batch operations.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
