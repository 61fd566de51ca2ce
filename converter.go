package crawldown

// Converter converts HTML to Markdown.
// Implementations are configured once at startup and shared read-only
// across all workers; Convert must be safe for concurrent use.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
