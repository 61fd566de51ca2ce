// Package crawl provides the crawl engine: frontier management, mode
// dispatch, bounded-concurrency batch scheduling, link scope and dedup
// filtering, and the page stream contract.
//
// The HTTP transport, HTML parsing, markdown rendering, and the
// repository-hosting API are external collaborators supplied through
// the interfaces in the root package.
package crawl

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/awalczyk/crawldown"
	"golang.org/x/sync/errgroup"
)

// Crawler drives a crawl from a start URL to a stream of pages.
// All collaborator fields must be set before calling Crawl; Trees may
// be nil when repository-tree URLs are never crawled.
type Crawler struct {
	Fetcher   crawldown.Fetcher
	Extractor crawldown.Extractor
	Converter crawldown.Converter
	Links     crawldown.LinkExtractor
	Trees     crawldown.TreeLister
	Config    crawldown.Config
}

// workResult holds the outcome of fetching one frontier entry.
type workResult struct {
	url      string
	text     string
	links    []string
	fetchErr error // transport failure, recoverable per BreakOnError
	err      error // extraction or conversion failure, always fatal
}

// Crawl normalizes the start URL, classifies the crawl mode, seeds the
// frontier, and returns the page stream. In repository-tree mode the
// full listing is resolved before the stream starts, so listing
// failures surface here rather than through the stream.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*Stream, error) {
	base, err := NormalizeBase(startURL)
	if err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, crawldown.Errorf(crawldown.EINVALID, "invalid base URL %q: %v", base, err)
	}

	mode, ref := DetectMode(startURL)
	if err := c.validate(mode); err != nil {
		return nil, err
	}

	frontier := NewFrontier()
	switch mode {
	case RepositoryTree:
		urls, err := c.resolveTree(ctx, ref)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			frontier.Push(u)
		}
	default:
		seed, err := url.Parse(startURL)
		if err != nil {
			return nil, crawldown.Errorf(crawldown.EINVALID, "invalid start URL %q: %v", startURL, err)
		}
		seedPath := seed.Path
		if seedPath == "" {
			seedPath = "/"
		}
		frontier.Push(seedPath)
	}

	if l := c.Config.Logger; l != nil {
		l.Info("crawl started",
			"url", startURL,
			"mode", mode.String(),
			"seeds", frontier.Len(),
		)
	}

	s := newStream()
	go c.run(ctx, s, mode, baseURL, frontier)
	return s, nil
}

// validate checks that the collaborators required by the mode are set.
func (c *Crawler) validate(mode Mode) error {
	if c.Fetcher == nil {
		return crawldown.Errorf(crawldown.EINVALID, "fetcher is required")
	}
	if mode == RepositoryTree {
		if c.Trees == nil {
			return crawldown.Errorf(crawldown.EINVALID, "tree lister is required for repository-tree crawls")
		}
		return nil
	}
	if c.Links == nil || c.Extractor == nil || c.Converter == nil {
		return crawldown.Errorf(crawldown.EINVALID, "link extractor, extractor and converter are required for generic crawls")
	}
	return nil
}

// resolveTree enumerates the complete frontier for a repository-tree
// crawl: every blob under the root subpath with a markdown extension,
// minus exclusion-filter matches, mapped to its raw-content URL.
// No incremental link discovery happens in this mode.
func (c *Crawler) resolveTree(ctx context.Context, ref TreeRef) ([]string, error) {
	entries, err := c.Trees.ListTree(ctx, ref.Owner, ref.Repo, ref.Ref)
	if err != nil {
		return nil, err
	}

	prefix := ref.Root
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var urls []string
	for _, e := range entries {
		if e.Type != "blob" {
			continue
		}
		if prefix != "" && !strings.HasPrefix(e.Path, prefix) {
			continue
		}
		if !strings.EqualFold(path.Ext(e.Path), ".md") {
			continue
		}
		if Excluded(e.Path, c.Config.Exclude) {
			continue
		}
		urls = append(urls, c.Trees.RawURL(ref.Owner, ref.Repo, ref.Ref, e.Path))
	}
	return urls, nil
}

// run is the batch scheduler. It advances a cursor over the frontier,
// fetching each batch concurrently behind a full-batch barrier, then
// handles results in frontier order: non-empty pages are yielded and
// newly discovered in-scope links appended. The cursor advances by
// batch size regardless of per-entry failures; failed entries are
// consumed, not retried.
func (c *Crawler) run(ctx context.Context, s *Stream, mode Mode, baseURL *url.URL, frontier *Frontier) {
	defer close(s.pages)

	width := c.Config.MaxConnections
	if width < 1 {
		width = crawldown.DefaultMaxConnections
	}

	pages := 0
	cursor := 0
	for cursor < frontier.Len() {
		batch := frontier.Batch(cursor, width)
		results := make([]workResult, len(batch))

		// Barrier: every member settles before any result is handled,
		// so the frontier only grows between batches.
		g, gctx := errgroup.WithContext(ctx)
		for i, entry := range batch {
			g.Go(func() error {
				results[i] = c.fetchOne(gctx, mode, baseURL, entry)
				return nil
			})
		}
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			s.err = err
			return
		}

		for _, r := range results {
			if r.fetchErr != nil {
				if c.Config.BreakOnError {
					s.err = r.fetchErr
					return
				}
				if l := c.Config.Logger; l != nil {
					l.Warn("fetch failed", "url", r.url, "error", r.fetchErr)
				}
				continue
			}
			if r.err != nil {
				s.err = r.err
				return
			}
			if r.text != "" {
				select {
				case s.pages <- crawldown.Page{URL: r.url, Text: r.text}:
					pages++
				case <-ctx.Done():
					s.err = ctx.Err()
					return
				}
			}
			for _, link := range r.links {
				frontier.Push(link)
			}
		}

		cursor += len(batch)
	}

	if l := c.Config.Logger; l != nil {
		l.Info("crawl complete", "pages", pages, "urls", frontier.Len())
	}
}

// fetchOne retrieves a single frontier entry and extracts its text
// and, in generic mode, its outbound links.
func (c *Crawler) fetchOne(ctx context.Context, mode Mode, baseURL *url.URL, entry string) workResult {
	result := workResult{url: entry}

	ref, err := url.Parse(entry)
	if err != nil {
		result.fetchErr = crawldown.Errorf(crawldown.EINVALID, "invalid frontier entry %q: %v", entry, err)
		return result
	}
	abs := baseURL.ResolveReference(ref).String()
	result.url = abs

	body, err := c.Fetcher.Fetch(ctx, abs)
	if err != nil {
		result.fetchErr = err
		return result
	}

	// Repository-tree entries are raw markdown already; links were
	// fully resolved by the tree resolver up front.
	if mode == RepositoryTree {
		result.text = body
		return result
	}

	if body == "" {
		return result
	}

	if links, err := c.Links.ExtractLinks(body, abs); err == nil {
		result.links = c.filterLinks(links, baseURL.String())
	}

	content, err := c.Extractor.Extract(body, c.Config.Selector)
	if err != nil {
		result.err = err
		return result
	}
	if strings.TrimSpace(content) == "" {
		return result
	}

	markdown, err := c.Converter.Convert(content)
	if err != nil {
		result.err = err
		return result
	}
	result.text = markdown

	return result
}

// filterLinks keeps only discovered links whose absolute form is
// prefixed by the crawl's base URL, reduces them to their path
// component, drops exclusion-filter matches, and de-duplicates within
// the page while preserving document order.
func (c *Crawler) filterLinks(links []string, base string) []string {
	seen := make(map[string]struct{}, len(links))
	var out []string
	for _, link := range links {
		if !strings.HasPrefix(link, base) {
			continue
		}
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		p := u.Path
		if Excluded(p, c.Config.Exclude) {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
