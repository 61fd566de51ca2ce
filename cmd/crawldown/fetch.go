package main

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/awalczyk/crawldown"
	"github.com/awalczyk/crawldown/crawl"
	"github.com/awalczyk/crawldown/fs"
)

// FetchCmd runs a crawl and consumes its page stream.
type FetchCmd struct {
	URL     string
	Out     string
	Preview bool
}

// Run starts the crawl and writes pages as they arrive. The stream is
// consumed incrementally so output appears while the crawl is still
// running.
func (c *FetchCmd) Run(ctx context.Context, crawler *crawl.Crawler, stdout, stderr io.Writer) error {
	stream, err := crawler.Crawl(ctx, c.URL)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", crawldown.ErrorMessage(err))
		return err
	}

	writer := fs.NewWriter(c.Out)
	saved := 0

	for page := range stream.Pages() {
		if c.Preview {
			fmt.Fprintln(stdout, page.URL)
			continue
		}

		relPath, err := writer.WritePage(&page)
		if err != nil {
			fmt.Fprintf(stderr, "error saving %s: %v\n", page.URL, err)
			return err
		}
		saved++
		fmt.Fprintf(stdout, "[%d] %s -> %s\n", saved, truncateURL(page.URL, 60), relPath)
	}

	if err := stream.Err(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", crawldown.ErrorMessage(err))
		return err
	}

	if !c.Preview {
		fmt.Fprintf(stdout, "Saved %d pages\n", saved)
	}
	return nil
}

// truncateURL shortens a URL for display by showing only the path.
// This makes progress more useful when many URLs share the same host prefix.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
