package crawl

import "github.com/awalczyk/crawldown"

// Stream is the lazy, finite, non-restartable sequence of pages
// produced by a crawl. The consumer may begin processing pages before
// the crawl finishes.
//
// Pages arrive in frontier order within a batch, and batches in strict
// frontier order. The channel closes when the crawl completes or
// aborts; Err reports the terminating error once the channel is
// closed. Pages delivered before a fatal error remain delivered; the
// stream simply stops.
type Stream struct {
	pages chan crawldown.Page
	err   error
}

func newStream() *Stream {
	return &Stream{pages: make(chan crawldown.Page)}
}

// Pages returns the page channel. Range over it until it closes, then
// check Err.
func (s *Stream) Pages() <-chan crawldown.Page {
	return s.pages
}

// Err returns the error that terminated the stream, or nil on natural
// completion. Only valid after the Pages channel has closed.
func (s *Stream) Err() error {
	return s.err
}
