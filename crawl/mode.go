package crawl

import (
	"net/url"
	"strings"
)

// Mode classifies a crawl at its start location. The classification
// happens exactly once per crawl; it is never re-evaluated per page.
type Mode int

const (
	// GenericSite follows in-scope hyperlinks from the seed page.
	GenericSite Mode = iota

	// RepositoryTree enumerates a hosted repository's markdown files
	// up front via the hosting API instead of following links.
	RepositoryTree
)

// String returns the mode name for diagnostics.
func (m Mode) String() string {
	if m == RepositoryTree {
		return "repository-tree"
	}
	return "generic-site"
}

// treeHost is the repository-hosting host recognized by DetectMode.
const treeHost = "github.com"

// TreeRef identifies a repository subtree: owner, repo, ref, and an
// optional root subpath limiting the listing.
type TreeRef struct {
	Owner string
	Repo  string
	Ref   string
	Root  string
}

// DetectMode classifies a start URL. It returns RepositoryTree with
// the parsed reference when the URL (ignoring query and fragment)
// matches https://github.com/<owner>/<repo>/tree/<ref>[/<subpath>],
// and GenericSite otherwise.
//
// Classification runs on the raw start URL rather than the normalized
// base so the ref and subpath segments survive.
func DetectMode(rawURL string) (Mode, TreeRef) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != treeHost {
		return GenericSite, TreeRef{}
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 4 || segs[2] != "tree" {
		return GenericSite, TreeRef{}
	}
	for _, s := range segs[:4] {
		if s == "" {
			return GenericSite, TreeRef{}
		}
	}

	return RepositoryTree, TreeRef{
		Owner: segs[0],
		Repo:  segs[1],
		Ref:   segs[3],
		Root:  strings.Join(segs[4:], "/"),
	}
}
