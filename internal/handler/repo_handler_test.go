package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relwatch/internal/models"
	"relwatch/internal/service"
	"relwatch/internal/track"
)

// fakeTracker implements service.TrackerService with canned responses.
type fakeTracker struct {
	recs []models.RepositoryRecord
}

func (f *fakeTracker) List(context.Context) ([]models.RepositoryRecord, error) {
	return f.recs, nil
}

func (f *fakeTracker) Add(_ context.Context, rawURL, name, version string) (models.RepositoryRecord, error) {
	if rawURL == "not a url" {
		return models.RepositoryRecord{}, fmt.Errorf("%w: bad input", track.ErrValidation)
	}
	rec := models.RepositoryRecord{ID: "new", URL: rawURL, Name: name, CurrentVersion: version}
	f.recs = append(f.recs, rec)
	return rec, nil
}

func (f *fakeTracker) Delete(context.Context, string) error { return nil }

func (f *fakeTracker) UpdateVersion(_ context.Context, id, version string) (models.RepositoryRecord, error) {
	for _, r := range f.recs {
		if r.ID == id {
			r.CurrentVersion = version
			return r, nil
		}
	}
	return models.RepositoryRecord{}, fmt.Errorf("%w: repository %s", track.ErrNotFound, id)
}

func (f *fakeTracker) MarkUpdated(_ context.Context, id string) (models.RepositoryRecord, error) {
	return f.UpdateVersion(context.Background(), id, "v2.0.0")
}

func (f *fakeTracker) Changelog(context.Context, string) (string, error) {
	return "## notes", nil
}

var _ service.TrackerService = (*fakeTracker)(nil)

func newApp(tracker service.TrackerService) *fiber.App {
	app := fiber.New()
	NewRepoHandler(tracker).Register(app)
	return app
}

func TestListRepositories(t *testing.T) {
	app := newApp(&fakeTracker{recs: []models.RepositoryRecord{
		{ID: "1", Name: "octocat/Hello-World"},
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/repositories", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var recs []models.RepositoryRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "octocat/Hello-World", recs[0].Name)
}

func TestAddRepository(t *testing.T) {
	app := newApp(&fakeTracker{})

	body, _ := json.Marshal(map[string]string{
		"url": "https://github.com/octocat/Hello-World", "version": "v1.0.0",
	})
	req := httptest.NewRequest(http.MethodPost, "/repositories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec models.RepositoryRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "new", rec.ID)
}

func TestAddRepositoryValidationError(t *testing.T) {
	app := newApp(&fakeTracker{})

	body, _ := json.Marshal(map[string]string{"url": "not a url"})
	req := httptest.NewRequest(http.MethodPost, "/repositories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateVersionNotFound(t *testing.T) {
	app := newApp(&fakeTracker{})

	body, _ := json.Marshal(map[string]string{"currentVersion": "v2.0.0"})
	req := httptest.NewRequest(http.MethodPatch, "/repositories/ghost", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMarkUpdated(t *testing.T) {
	app := newApp(&fakeTracker{recs: []models.RepositoryRecord{
		{ID: "1", CurrentVersion: "v1.0.0", LatestRelease: "v2.0.0"},
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/repositories/1/mark-updated", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rec models.RepositoryRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	assert.Equal(t, "v2.0.0", rec.CurrentVersion)
}

func TestChangelog(t *testing.T) {
	app := newApp(&fakeTracker{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/repositories/1/changelog", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "## notes", out["content"])
}
