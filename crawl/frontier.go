package crawl

import "strings"

// Frontier is the ordered, append-only sequence of discovered paths.
// It grows only by appending and is never reordered or shrunk, so a
// cursor into it stays valid as it grows.
//
// The frontier is owned exclusively by the scheduling loop, which
// mutates it only between batches; it is not safe for concurrent use
// and needs no locking.
type Frontier struct {
	entries []string
	seen    map[string]struct{}
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Push appends a path unless an existing entry already matches it
// under the dedup equivalence. Returns false for duplicates.
func (f *Frontier) Push(path string) bool {
	key := dedupKey(path)
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	f.entries = append(f.entries, path)
	return true
}

// Len returns the current frontier length.
func (f *Frontier) Len() int {
	return len(f.entries)
}

// Batch returns the slice [from, from+width) clamped to the current
// length. The slice aliases the frontier; callers must not mutate it.
func (f *Frontier) Batch(from, width int) []string {
	to := from + width
	if to > len(f.entries) {
		to = len(f.entries)
	}
	if from >= to {
		return nil
	}
	return f.entries[from:to]
}

// dedupKey canonicalizes a path for dedup matching: two paths are
// equivalent if textually identical, or if one is the other with a
// trailing /index.html or /index.htm replaced by a trailing slash.
// This keeps directory roots and their explicit index documents from
// occupying two frontier slots.
func dedupKey(path string) string {
	for _, suffix := range []string{"/index.html", "/index.htm"} {
		if strings.HasSuffix(path, suffix) {
			return strings.TrimSuffix(path, suffix) + "/"
		}
	}
	return path
}
