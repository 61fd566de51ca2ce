package crawldown

import "log/slog"

// DefaultMaxConnections is the batch width used when Config leaves
// MaxConnections unset.
const DefaultMaxConnections = 5

// Config controls a crawl.
//
// The zero value is usable but silent and strict; DefaultConfig returns
// the documented defaults (5 connections, break on error, logging to
// slog.Default).
type Config struct {
	// Selector optionally narrows extraction to the inner content of
	// the first element matching this CSS selector. A configured
	// selector that matches nothing is an error, not an empty page.
	Selector string

	// MaxConnections is the number of concurrent fetches per batch.
	// Values below 1 are treated as DefaultMaxConnections.
	MaxConnections int

	// Exclude lists filename patterns to drop from the frontier.
	// A name with an extension must match the path's last segment
	// exactly; a bare name matches the segment with its extension
	// stripped. Matching is case-insensitive.
	Exclude []string

	// BreakOnError aborts the whole crawl on the first fetch failure.
	// When false, failed fetches are logged and skipped.
	BreakOnError bool

	// Logger receives progress and error diagnostics. A nil logger
	// disables them; diagnostics are not part of the functional
	// contract.
	Logger *slog.Logger
}

// DefaultConfig returns the default crawl configuration.
func DefaultConfig() Config {
	return Config{
		MaxConnections: DefaultMaxConnections,
		BreakOnError:   true,
		Logger:         slog.Default(),
	}
}
