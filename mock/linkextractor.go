package mock

import "github.com/awalczyk/crawldown"

var _ crawldown.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of crawldown.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, pageURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html, pageURL string) ([]string, error) {
	return l.ExtractLinksFn(html, pageURL)
}
