// Package github implements the repository-listing collaborator
// against the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/awalczyk/crawldown"
)

// Default API and raw-content hosts.
const (
	DefaultBaseURL    = "https://api.github.com"
	DefaultRawBaseURL = "https://raw.githubusercontent.com"
)

// Ensure Client implements crawldown.TreeLister at compile time.
var _ crawldown.TreeLister = (*Client)(nil)

// Client lists repository trees via the GitHub git/trees API.
type Client struct {
	client  *http.Client
	baseURL string
	rawURL  string
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API requests.
// Defaults to http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) {
		g.client = c
	}
}

// WithBaseURL overrides the API host, e.g. for tests or GitHub
// Enterprise.
func WithBaseURL(u string) Option {
	return func(g *Client) {
		g.baseURL = u
	}
}

// WithRawBaseURL overrides the raw-content host.
func WithRawBaseURL(u string) Option {
	return func(g *Client) {
		g.rawURL = u
	}
}

// WithToken sets a bearer token for authenticated requests, raising
// the API rate limit and allowing private repositories.
func WithToken(token string) Option {
	return func(g *Client) {
		g.token = token
	}
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client:  http.DefaultClient,
		baseURL: DefaultBaseURL,
		rawURL:  DefaultRawBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// treeResponse mirrors the git/trees API response.
type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
	Truncated bool `json:"truncated"`
}

// ListTree returns the complete recursive file listing for a ref.
func (c *Client) ListTree(ctx context.Context, owner, repo, ref string) ([]crawldown.TreeEntry, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.baseURL, owner, repo, ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crawldown.Errorf(crawldown.EINVALID, "invalid tree request: %v", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, crawldown.Errorf(crawldown.EUNAVAILABLE, "tree listing for %s/%s@%s: %v", owner, repo, ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, crawldown.Errorf(crawldown.ENOTFOUND, "repository tree %s/%s@%s not found", owner, repo, ref)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, crawldown.Errorf(crawldown.EUNAVAILABLE, "tree listing for %s/%s@%s: HTTP %d", owner, repo, ref, resp.StatusCode)
	}

	var tr treeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, crawldown.Errorf(crawldown.EINTERNAL, "decoding tree listing: %v", err)
	}
	if tr.Truncated {
		return nil, crawldown.Errorf(crawldown.EUNAVAILABLE, "tree listing for %s/%s@%s is truncated by the API", owner, repo, ref)
	}

	entries := make([]crawldown.TreeEntry, 0, len(tr.Tree))
	for _, e := range tr.Tree {
		entries = append(entries, crawldown.TreeEntry{Path: e.Path, Type: e.Type})
	}
	return entries, nil
}

// RawURL composes the direct-content retrieval URL for a listed entry.
func (c *Client) RawURL(owner, repo, ref, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.rawURL, owner, repo, ref, path)
}
