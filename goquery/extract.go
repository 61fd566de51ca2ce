// Package goquery implements the document-parser collaborators on top
// of github.com/PuerkitoBio/goquery: selector-based content narrowing
// and anchor enumeration.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/awalczyk/crawldown"
)

// Ensure Extractor implements crawldown.Extractor at compile time.
var _ crawldown.Extractor = (*Extractor)(nil)

// Extractor narrows HTML documents to a configured sub-tree.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the inner HTML of the first element matching the
// selector. An empty selector returns the input unchanged. A selector
// that matches nothing is an ENOTFOUND error so a misconfigured
// selector doesn't silently produce empty pages.
func (e *Extractor) Extract(html, selector string) (string, error) {
	if selector == "" {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", crawldown.Errorf(crawldown.EINVALID, "failed to parse HTML: %v", err)
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", crawldown.Errorf(crawldown.ENOTFOUND, "selector %q matched no elements", selector)
	}

	inner, err := sel.Html()
	if err != nil {
		return "", crawldown.Errorf(crawldown.EINTERNAL, "failed to render selection: %v", err)
	}
	return inner, nil
}
