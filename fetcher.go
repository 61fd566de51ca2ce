package crawldown

import "context"

// Fetcher retrieves the body of a URL as text.
// Any transport concern (timeouts, headers, politeness) belongs to the
// implementation; the crawl engine imposes none of its own.
type Fetcher interface {
	// Fetch retrieves the body at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
