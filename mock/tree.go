package mock

import (
	"context"

	"github.com/awalczyk/crawldown"
)

var _ crawldown.TreeLister = (*TreeLister)(nil)

// TreeLister is a mock implementation of crawldown.TreeLister.
type TreeLister struct {
	ListTreeFn func(ctx context.Context, owner, repo, ref string) ([]crawldown.TreeEntry, error)
	RawURLFn   func(owner, repo, ref, path string) string
}

func (t *TreeLister) ListTree(ctx context.Context, owner, repo, ref string) ([]crawldown.TreeEntry, error) {
	return t.ListTreeFn(ctx, owner, repo, ref)
}

func (t *TreeLister) RawURL(owner, repo, ref, path string) string {
	if t.RawURLFn == nil {
		return "https://raw.example.com/" + owner + "/" + repo + "/" + ref + "/" + path
	}
	return t.RawURLFn(owner, repo, ref, path)
}
