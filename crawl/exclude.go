package crawl

import (
	"path"
	"strings"
)

// Excluded reports whether a candidate path is dropped by the
// configured exclusion names.
//
// Paths carrying a fragment marker are always excluded. Otherwise the
// path's last segment (a trailing separator is ignored) is compared
// case-insensitively against each name: a name with an extension must
// equal the segment exactly, a bare name must equal the segment with
// its extension stripped. The first match wins.
func Excluded(candidate string, exclude []string) bool {
	if strings.Contains(candidate, "#") {
		return true
	}
	if len(exclude) == 0 {
		return false
	}

	seg := strings.ToLower(path.Base(strings.TrimSuffix(candidate, "/")))

	for _, name := range exclude {
		name = strings.ToLower(name)
		if path.Ext(name) != "" {
			if name == seg {
				return true
			}
			continue
		}
		if name == strings.TrimSuffix(seg, path.Ext(seg)) {
			return true
		}
	}
	return false
}
