package crawldown

// LinkExtractor enumerates outbound links from an HTML page.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the anchor targets resolved
	// to absolute URLs against pageURL, in document order, without
	// duplicates. Pure same-page fragments and references that fail to
	// parse are silently discarded.
	ExtractLinks(html, pageURL string) ([]string, error)
}
