// Package apiclient is a minimal wrapper around the relwatch REST API.
// It is intentionally light: one method per route, bearer token attached to
// everything except the auth endpoints, and errors mapped onto the shared
// taxonomy so callers can branch with errors.Is.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"relwatch/internal/models"
	"relwatch/internal/track"
)

// Client talks to a relwatch server. Retry and backoff are deliberately not
// implemented here; the transport owns that if anyone ever needs it.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

// New returns a ready-to-use API client. token may be empty until login.
func New(baseURL string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SetToken installs the bearer token obtained from Login for the session.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListRepositories fetches the full tracked list.
func (c *Client) ListRepositories(ctx context.Context) ([]models.RepositoryRecord, error) {
	var recs []models.RepositoryRecord
	if err := c.do(ctx, http.MethodGet, "/repositories", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// CreateRepository registers a new repository and returns the server-assigned
// record. url must already be validated and normalized.
func (c *Client) CreateRepository(ctx context.Context, url, name, version string) (models.RepositoryRecord, error) {
	body := map[string]string{"url": url, "name": name, "version": version}
	var rec models.RepositoryRecord
	err := c.do(ctx, http.MethodPost, "/repositories", body, &rec)
	return rec, err
}

// DeleteRepository removes a tracked repository.
func (c *Client) DeleteRepository(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/repositories/"+id, nil, nil)
}

// UpdateVersion pins a new current version.
func (c *Client) UpdateVersion(ctx context.Context, id, version string) (models.RepositoryRecord, error) {
	body := map[string]string{"currentVersion": version}
	var rec models.RepositoryRecord
	err := c.do(ctx, http.MethodPatch, "/repositories/"+id, body, &rec)
	return rec, err
}

// MarkUpdated acknowledges the latest release for the record.
func (c *Client) MarkUpdated(ctx context.Context, id string) (models.RepositoryRecord, error) {
	var rec models.RepositoryRecord
	err := c.do(ctx, http.MethodPost, "/repositories/"+id+"/mark-updated", nil, &rec)
	return rec, err
}

// Changelog fetches the stored release notes as markdown.
func (c *Client) Changelog(ctx context.Context, id string) (string, error) {
	var out struct {
		Content string `json:"content"`
	}
	if err := c.do(ctx, http.MethodGet, "/repositories/"+id+"/changelog", nil, &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// TriggerScan kicks off a manual scan.
func (c *Client) TriggerScan(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/scan-updates", nil, nil)
}

// ScanStatus reads the last/next scan labels.
func (c *Client) ScanStatus(ctx context.Context) (models.ScanStatus, error) {
	var st models.ScanStatus
	err := c.do(ctx, http.MethodGet, "/scan-status", nil, &st)
	return st, err
}

// Settings fetches the server settings.
func (c *Client) Settings(ctx context.Context) (models.Settings, error) {
	var s models.Settings
	err := c.do(ctx, http.MethodGet, "/settings", nil, &s)
	return s, err
}

// SaveSettings overwrites the server settings wholesale.
func (c *Client) SaveSettings(ctx context.Context, s models.Settings) error {
	return c.do(ctx, http.MethodPost, "/settings", s, nil)
}

// NotificationSettings fetches the webhook configuration.
func (c *Client) NotificationSettings(ctx context.Context) (models.NotificationSettings, error) {
	var s models.NotificationSettings
	err := c.do(ctx, http.MethodGet, "/notifications", nil, &s)
	return s, err
}

// SaveNotificationSettings overwrites the webhook configuration wholesale.
func (c *Client) SaveNotificationSettings(ctx context.Context, s models.NotificationSettings) error {
	return c.do(ctx, http.MethodPost, "/notifications", s, nil)
}

// TestNotification asks the server to fire a test webhook message.
func (c *Client) TestNotification(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/test", nil, nil)
}

// ValidateKey checks a GitHub API key against the server.
func (c *Client) ValidateKey(ctx context.Context, apiKey string) error {
	return c.do(ctx, http.MethodPost, "/validate-key", map[string]string{"apiKey": apiKey}, nil)
}

// Login authenticates and installs the session token on success.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// do executes one round-trip: encode body, attach headers, map the status
// code onto the error taxonomy, decode into v when given.
func (c *Client) do(ctx context.Context, method, path string, body, v interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" && !strings.HasPrefix(path, "/auth/") {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", track.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", track.ErrNotFound, method, path)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s %s", track.ErrConflict, method, path)
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: unexpected status %s", track.ErrTransport, resp.Status)
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
