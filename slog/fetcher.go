// Package slog provides logging decorators for crawldown interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/awalczyk/crawldown"
)

// Ensure LoggingFetcher implements crawldown.Fetcher.
var _ crawldown.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request debug logging.
type LoggingFetcher struct {
	next   crawldown.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crawldown.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging the URL, duration,
// and body size or error.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	body, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	f.logger.Debug("fetch",
		"url", url,
		"duration", time.Since(begin),
		"bytes", len(body),
	)
	return body, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
