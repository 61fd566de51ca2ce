package crawl

import (
	"net/url"
	"strings"

	"github.com/awalczyk/crawldown"
)

// NormalizeBase canonicalizes a start URL into the crawl's base URL.
// Query and fragment are stripped. A final path segment after the last
// separator is truncated so the base ends at its containing directory;
// a path that already ends at a separator (or the root) is kept as is.
//
// The result is used both to resolve relative links and as the
// scope-containment prefix for discovered links.
func NormalizeBase(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", crawldown.Errorf(crawldown.EINVALID, "invalid start URL %q: %v", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", crawldown.Errorf(crawldown.EINVALID, "start URL %q must be absolute", rawURL)
	}

	u.RawQuery = ""
	u.Fragment = ""

	if idx := strings.LastIndex(u.Path, "/"); idx >= 0 {
		// Keep the containing directory, dropping any final segment.
		u.Path = u.Path[:idx+1]
	} else {
		u.Path = "/"
	}

	return u.String(), nil
}
