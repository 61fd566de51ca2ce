package mock

import "github.com/awalczyk/crawldown"

var _ crawldown.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crawldown.Extractor.
type Extractor struct {
	ExtractFn func(html, selector string) (string, error)
}

func (e *Extractor) Extract(html, selector string) (string, error) {
	return e.ExtractFn(html, selector)
}
