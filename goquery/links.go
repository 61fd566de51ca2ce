package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczyk/crawldown"
)

// Ensure LinkExtractor implements crawldown.LinkExtractor at compile time.
var _ crawldown.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor enumerates anchor targets from HTML pages.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns anchor targets resolved against
// pageURL, in document order, de-duplicated. Same-page fragments,
// non-HTTP schemes, and unparsable references are silently skipped.
func (l *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, crawldown.Errorf(crawldown.EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crawldown.Errorf(crawldown.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		u := resolved.String()
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		links = append(links, u)
	})

	return links, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
