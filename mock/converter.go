package mock

import "github.com/awalczyk/crawldown"

var _ crawldown.Converter = (*Converter)(nil)

// Converter is a mock implementation of crawldown.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
