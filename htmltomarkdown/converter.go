// Package htmltomarkdown implements the markdown-renderer collaborator
// on top of github.com/JohannesKaufmann/html-to-markdown/v2.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/awalczyk/crawldown"
)

// Ensure Converter implements crawldown.Converter at compile time.
var _ crawldown.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
// It is configured once at construction and safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter. Script elements are dropped
// before rendering.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	conv.Register.TagType("script", converter.TagTypeRemove, converter.PriorityStandard)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", crawldown.Errorf(crawldown.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
