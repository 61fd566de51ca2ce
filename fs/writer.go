// Package fs provides file-based output for crawled pages.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/awalczyk/crawldown"
	"github.com/cespare/xxhash/v2"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Root or trailing slash becomes index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	if strings.EqualFold(filepath.Ext(path), ".md") {
		return path, nil
	}
	return path + ".md", nil
}

// FormatPage formats a page with YAML frontmatter: source URL, crawl
// date, and an xxhash content hash for change detection downstream.
func FormatPage(page *crawldown.Page, crawled time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ncrawled: ")
	b.WriteString(crawled.Format("2006-01-02"))
	b.WriteString("\nhash: ")
	b.WriteString(fmt.Sprintf("%x", xxhash.Sum64String(page.Text)))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Text)
	return b.String()
}

// Writer writes pages as markdown files under a base directory.
// It writes each page as it arrives, so it can consume a page stream
// incrementally.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// WritePage writes one page to disk as a markdown file and returns the
// path it was written to, relative to the base directory.
func (w *Writer) WritePage(page *crawldown.Page) (string, error) {
	if page.URL == "" {
		return "", crawldown.Errorf(crawldown.EINVALID, "page URL required")
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	content := FormatPage(page, w.now())
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return relPath, nil
}
