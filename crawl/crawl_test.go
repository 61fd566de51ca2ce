package crawl_test

import (
	"context"
	"sync"
	"testing"

	"github.com/awalczyk/crawldown"
	"github.com/awalczyk/crawldown/crawl"
	"github.com/awalczyk/crawldown/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a stream and returns the delivered pages and the
// stream's terminal error.
func collect(s *crawl.Stream) ([]crawldown.Page, error) {
	var pages []crawldown.Page
	for page := range s.Pages() {
		pages = append(pages, page)
	}
	return pages, s.Err()
}

// countingFetcher returns canned bodies keyed by URL and records how
// often each URL was fetched.
type countingFetcher struct {
	mu     sync.Mutex
	bodies map[string]string
	errs   map[string]error
	calls  map[string]int
}

func newCountingFetcher(bodies map[string]string, errs map[string]error) *countingFetcher {
	return &countingFetcher{bodies: bodies, errs: errs, calls: make(map[string]int)}
}

func (f *countingFetcher) mock() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls[url]++
			if err, ok := f.errs[url]; ok {
				return "", err
			}
			body, ok := f.bodies[url]
			if !ok {
				return "", crawldown.Errorf(crawldown.ENOTFOUND, "no canned body for %s", url)
			}
			return body, nil
		},
	}
}

func (f *countingFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// passthroughPipeline returns an extractor that ignores the selector
// and a converter that prefixes bodies, to keep page text observable.
func passthroughPipeline() (*mock.Extractor, *mock.Converter) {
	extractor := &mock.Extractor{
		ExtractFn: func(html, _ string) (string, error) { return html, nil },
	}
	converter := &mock.Converter{
		ConvertFn: func(html string) (string, error) { return "md:" + html, nil },
	}
	return extractor, converter
}

func TestCrawler_RepositoryTree(t *testing.T) {
	t.Parallel()

	lister := &mock.TreeLister{
		ListTreeFn: func(_ context.Context, owner, repo, ref string) ([]crawldown.TreeEntry, error) {
			return []crawldown.TreeEntry{
				{Path: "docs/a.md", Type: "blob"},
				{Path: "docs/sub", Type: "tree"},
				{Path: "docs/diagram.png", Type: "blob"},
				{Path: "docs/Guide.MD", Type: "blob"},
				{Path: "docs/LICENSE.md", Type: "blob"},
				{Path: "other/skip.md", Type: "blob"},
				{Path: "docs/empty.md", Type: "blob"},
			}, nil
		},
	}

	raw := func(path string) string { return "https://raw.example.com/o/r/main/" + path }

	t.Run("enumerates the whole frontier up front and yields in order", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(map[string]string{
			raw("docs/a.md"):     "# A",
			raw("docs/Guide.MD"): "# Guide",
			raw("docs/empty.md"): "",
		}, nil)

		c := &crawl.Crawler{
			Fetcher: fetcher.mock(),
			Trees:   lister,
			Config:  crawldown.Config{MaxConnections: 2, BreakOnError: true, Exclude: []string{"license"}},
		}

		s, err := c.Crawl(context.Background(), "https://github.com/o/r/tree/main/docs")
		require.NoError(t, err)

		pages, err := collect(s)

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, crawldown.Page{URL: raw("docs/a.md"), Text: "# A"}, pages[0])
		assert.Equal(t, crawldown.Page{URL: raw("docs/Guide.MD"), Text: "# Guide"}, pages[1])

		// Non-blobs, non-markdown, out-of-subpath and excluded entries
		// never reach the fetcher; the empty body yields no page.
		assert.Equal(t, 3, fetcher.total())
	})

	t.Run("listing failure surfaces before the stream starts", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: newCountingFetcher(nil, nil).mock(),
			Trees: &mock.TreeLister{
				ListTreeFn: func(_ context.Context, _, _, _ string) ([]crawldown.TreeEntry, error) {
					return nil, crawldown.Errorf(crawldown.EUNAVAILABLE, "api down")
				},
			},
			// BreakOnError suppression never applies to the listing.
			Config: crawldown.Config{MaxConnections: 2, BreakOnError: false},
		}

		_, err := c.Crawl(context.Background(), "https://github.com/o/r/tree/main")

		require.Error(t, err)
		assert.Equal(t, crawldown.EUNAVAILABLE, crawldown.ErrorCode(err))
	})
}

func TestCrawler_GenericSite(t *testing.T) {
	t.Parallel()

	t.Run("discovers in-scope links once and yields in frontier order", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(map[string]string{
			"https://example.com/docs/intro": "<intro>",
			"https://example.com/docs/a":     "<a>",
		}, nil)

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_, pageURL string) ([]string, error) {
				if pageURL == "https://example.com/docs/intro" {
					return []string{
						"https://example.com/docs/a",
						"https://example.com/docs/a",      // duplicate within page
						"https://other.com/elsewhere",     // out of scope
						"https://example.com/blog/post",   // outside base prefix
					}, nil
				}
				return nil, nil
			},
		}

		extractor, converter := passthroughPipeline()
		c := &crawl.Crawler{
			Fetcher:   fetcher.mock(),
			Extractor: extractor,
			Converter: converter,
			Links:     links,
			Config:    crawldown.Config{MaxConnections: 2, BreakOnError: true},
		}

		s, err := c.Crawl(context.Background(), "https://example.com/docs/intro")
		require.NoError(t, err)

		pages, err := collect(s)

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "https://example.com/docs/intro", pages[0].URL)
		assert.Equal(t, "md:<intro>", pages[0].Text)
		assert.Equal(t, "https://example.com/docs/a", pages[1].URL)
		assert.Equal(t, "md:<a>", pages[1].Text)
		assert.Equal(t, 2, fetcher.total())
	})

	t.Run("index document dedups against its directory", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(map[string]string{
			"https://example.com/docs/": "<root>",
		}, nil)

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_, _ string) ([]string, error) {
				return []string{"https://example.com/docs/index.html"}, nil
			},
		}

		extractor, converter := passthroughPipeline()
		c := &crawl.Crawler{
			Fetcher:   fetcher.mock(),
			Extractor: extractor,
			Converter: converter,
			Links:     links,
			Config:    crawldown.Config{MaxConnections: 5, BreakOnError: true},
		}

		s, err := c.Crawl(context.Background(), "https://example.com/docs/")
		require.NoError(t, err)

		pages, err := collect(s)

		require.NoError(t, err)
		assert.Len(t, pages, 1)
		assert.Equal(t, 1, fetcher.total())
	})

	t.Run("empty body yields no page and no link discovery", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(map[string]string{
			"https://example.com/docs/intro": "",
		}, nil)

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_, _ string) ([]string, error) {
				t.Error("links must not be extracted from an empty body")
				return nil, nil
			},
		}

		extractor, converter := passthroughPipeline()
		c := &crawl.Crawler{
			Fetcher:   fetcher.mock(),
			Extractor: extractor,
			Converter: converter,
			Links:     links,
			Config:    crawldown.Config{MaxConnections: 5, BreakOnError: true},
		}

		s, err := c.Crawl(context.Background(), "https://example.com/docs/intro")
		require.NoError(t, err)

		pages, err := collect(s)

		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("selector matching nothing aborts the crawl", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(map[string]string{
			"https://example.com/docs/intro": "<html>",
		}, nil)

		extractor := &mock.Extractor{
			ExtractFn: func(_, selector string) (string, error) {
				return "", crawldown.Errorf(crawldown.ENOTFOUND, "selector %q matched no elements", selector)
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_, _ string) ([]string, error) { return nil, nil },
		}

		c := &crawl.Crawler{
			Fetcher:   fetcher.mock(),
			Extractor: extractor,
			Converter: converter,
			Links:     links,
			// Extraction errors are fatal even with BreakOnError off.
			Config: crawldown.Config{MaxConnections: 5, BreakOnError: false, Selector: "main"},
		}

		s, err := c.Crawl(context.Background(), "https://example.com/docs/intro")
		require.NoError(t, err)

		pages, err := collect(s)

		require.Error(t, err)
		assert.Equal(t, crawldown.ENOTFOUND, crawldown.ErrorCode(err))
		assert.Empty(t, pages)
	})
}

func TestCrawler_BreakOnError(t *testing.T) {
	t.Parallel()

	lister := &mock.TreeLister{
		ListTreeFn: func(_ context.Context, _, _, _ string) ([]crawldown.TreeEntry, error) {
			return []crawldown.TreeEntry{
				{Path: "a.md", Type: "blob"},
				{Path: "b.md", Type: "blob"},
				{Path: "c.md", Type: "blob"},
			}, nil
		},
	}
	raw := func(path string) string { return "https://raw.example.com/o/r/main/" + path }

	t.Run("false skips the failed entry and continues", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(
			map[string]string{raw("a.md"): "A", raw("c.md"): "C"},
			map[string]error{raw("b.md"): crawldown.Errorf(crawldown.EUNAVAILABLE, "boom")},
		)

		c := &crawl.Crawler{
			Fetcher: fetcher.mock(),
			Trees:   lister,
			Config:  crawldown.Config{MaxConnections: 1, BreakOnError: false},
		}

		s, err := c.Crawl(context.Background(), "https://github.com/o/r/tree/main")
		require.NoError(t, err)

		pages, err := collect(s)

		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, "A", pages[0].Text)
		assert.Equal(t, "C", pages[1].Text)
		// Each entry is consumed exactly once; failures are not retried.
		assert.Equal(t, 3, fetcher.total())
	})

	t.Run("true terminates the stream with no pages past the failure", func(t *testing.T) {
		t.Parallel()

		fetcher := newCountingFetcher(
			map[string]string{raw("a.md"): "A", raw("c.md"): "C"},
			map[string]error{raw("b.md"): crawldown.Errorf(crawldown.EUNAVAILABLE, "boom")},
		)

		c := &crawl.Crawler{
			Fetcher: fetcher.mock(),
			Trees:   lister,
			Config:  crawldown.Config{MaxConnections: 3, BreakOnError: true},
		}

		s, err := c.Crawl(context.Background(), "https://github.com/o/r/tree/main")
		require.NoError(t, err)

		pages, err := collect(s)

		require.Error(t, err)
		assert.Equal(t, crawldown.EUNAVAILABLE, crawldown.ErrorCode(err))
		require.Len(t, pages, 1)
		assert.Equal(t, "A", pages[0].Text)
	})
}

func TestCrawler_Validation(t *testing.T) {
	t.Parallel()

	t.Run("fetcher is required", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{}

		_, err := c.Crawl(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Equal(t, crawldown.EINVALID, crawldown.ErrorCode(err))
	})

	t.Run("tree lister is required for tree URLs", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{Fetcher: newCountingFetcher(nil, nil).mock()}

		_, err := c.Crawl(context.Background(), "https://github.com/o/r/tree/main")

		require.Error(t, err)
		assert.Equal(t, crawldown.EINVALID, crawldown.ErrorCode(err))
	})

	t.Run("pipeline collaborators are required for generic URLs", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{Fetcher: newCountingFetcher(nil, nil).mock()}

		_, err := c.Crawl(context.Background(), "https://example.com/docs/")

		require.Error(t, err)
		assert.Equal(t, crawldown.EINVALID, crawldown.ErrorCode(err))
	})

	t.Run("malformed start URL", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{Fetcher: newCountingFetcher(nil, nil).mock()}

		_, err := c.Crawl(context.Background(), "not a url")

		require.Error(t, err)
		assert.Equal(t, crawldown.EINVALID, crawldown.ErrorCode(err))
	})
}

func TestCrawler_ContextCancellation(t *testing.T) {
	t.Parallel()

	fetcher := newCountingFetcher(map[string]string{
		"https://example.com/docs/intro": "<intro>",
	}, nil)
	extractor, converter := passthroughPipeline()
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(_, _ string) ([]string, error) { return nil, nil },
	}

	c := &crawl.Crawler{
		Fetcher:   fetcher.mock(),
		Extractor: extractor,
		Converter: converter,
		Links:     links,
		Config:    crawldown.Config{MaxConnections: 1, BreakOnError: true},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := c.Crawl(ctx, "https://example.com/docs/intro")
	require.NoError(t, err)

	pages, err := collect(s)

	assert.Empty(t, pages)
	assert.ErrorIs(t, err, context.Canceled)
}
