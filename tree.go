package crawldown

import "context"

// TreeEntry is a single entry in a repository tree listing.
type TreeEntry struct {
	// Path is the entry's path relative to the repository root.
	Path string

	// Type is the entry kind as reported by the hosting API,
	// e.g. "blob" for files and "tree" for directories.
	Type string
}

// TreeLister retrieves the complete recursive file listing of a
// repository ref from a hosting API and knows how to address the raw
// content of individual entries.
type TreeLister interface {
	// ListTree returns all entries reachable from ref, recursively,
	// in the order reported by the API.
	ListTree(ctx context.Context, owner, repo, ref string) ([]TreeEntry, error)

	// RawURL composes the direct-content retrieval URL for a listed
	// entry against the hosting provider's raw-content host.
	RawURL(owner, repo, ref, path string) string
}
