package crawldown

// Page is a single crawled document: the absolute location it was
// retrieved from and its extracted text as markdown.
//
// A page is produced at most once per fetched, non-empty-bodied
// frontier entry. Once yielded to the consumer the crawler has no
// further interest in it.
type Page struct {
	URL  string
	Text string // Markdown
}
