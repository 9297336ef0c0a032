package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client is a minimal wrapper around GitHub's REST API v3.
// It is intentionally light—just the endpoints the scan loop requires.
type Client struct {
	http    *http.Client
	baseURL string
}

// Release holds the fields the tracker cares about from a GitHub release.
type Release struct {
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
	Body        string `json:"body"` // release notes, rendered as the changelog
}

// NewClient returns a ready-to-use GitHub API client.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// NewClientWithBaseURL is used by tests to point at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// LatestRelease fetches the newest published release for owner/name.
// token may be an empty string, but you will be subject to very low
// rate-limits.
func (c *Client) LatestRelease(ctx context.Context, owner, name, token string) (Release, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, url.PathEscape(owner), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Release{}, err
	}
	c.addHeaders(req, token)

	var release Release
	if err := c.do(req, &release); err != nil {
		return Release{}, err
	}
	return release, nil
}

// ValidateToken checks a personal access token by hitting the user endpoint.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return err
	}
	c.addHeaders(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github: token validation failed: %s", resp.Status)
	}
	return nil
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", "relwatch")
}

// do executes the HTTP request and decodes JSON into v.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("github: unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
