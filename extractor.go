package crawldown

// Extractor narrows an HTML document to the content worth converting.
type Extractor interface {
	// Extract returns the inner HTML of the first element matching the
	// CSS selector. An empty selector returns the input unchanged.
	// A non-empty selector that matches nothing is an error.
	Extract(html, selector string) (string, error)
}
