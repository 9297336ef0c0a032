package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relwatch/internal/github"
	"relwatch/internal/models"
)

func TestScanUpdatesChangedRepositories(t *testing.T) {
	repos := &memRepoStore{recs: []models.RepositoryRecord{
		{ID: "1", Name: "octocat/Hello-World", URL: "https://github.com/octocat/Hello-World",
			CurrentVersion: "v1.0.0", LatestRelease: "v1.0.0", NotifiedVersion: "v1.0.0"},
		{ID: "2", Name: "golang/go", URL: "https://github.com/golang/go",
			CurrentVersion: "go1.24.0", LatestRelease: "go1.24.0", NotifiedVersion: "go1.24.0"},
	}}
	releases := &fakeReleases{releases: map[string]github.Release{
		"octocat/Hello-World": {TagName: "v1.1.0", PublishedAt: "2026-08-15T08:00:00Z", Body: "notes"},
		"golang/go":           {TagName: "go1.24.0"},
	}}
	settings := &memSettingsStore{}
	notifier := &recordingNotifier{}

	m := NewMonitor(repos, settings, releases, notifier, noToken)
	require.NoError(t, m.Scan(context.Background(), ScanManual))

	// Changed repo got its fields refreshed.
	rec, err := repos.FindByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", rec.LatestRelease)
	assert.Equal(t, "Aug 15 2026", rec.PublishedAt)
	assert.Equal(t, "notes", rec.Changelog)
	assert.Equal(t, "v1.1.0", rec.NotifiedVersion)
	// The pin is untouched; the user still has to acknowledge.
	assert.Equal(t, "v1.0.0", rec.CurrentVersion)

	// Unchanged repo untouched.
	rec2, _ := repos.FindByID(context.Background(), "2")
	assert.Equal(t, "go1.24.0", rec2.LatestRelease)

	// One summary for the one changed repo, manual scan type.
	require.Len(t, notifier.summaries, 1)
	assert.Contains(t, notifier.summaries[0], "octocat/Hello-World")
	assert.Contains(t, notifier.summaries[0], "v1.0.0 → v1.1.0")
	assert.NotContains(t, notifier.summaries[0], "golang/go")
	assert.Equal(t, ScanManual, notifier.scanTypes[0])

	// Last scan recorded.
	assert.NotEmpty(t, settings.settings.LastScan)
}

func TestScanDeduplicatesNotifications(t *testing.T) {
	repos := &memRepoStore{recs: []models.RepositoryRecord{
		// Already notified for v1.1.0 but latest_release not yet moved
		// (a previous cycle died between notify and save).
		{ID: "1", Name: "octocat/Hello-World", LatestRelease: "v1.0.0", NotifiedVersion: "v1.1.0"},
	}}
	releases := &fakeReleases{releases: map[string]github.Release{
		"octocat/Hello-World": {TagName: "v1.1.0"},
	}}
	notifier := &recordingNotifier{}

	m := NewMonitor(repos, &memSettingsStore{}, releases, notifier, noToken)
	require.NoError(t, m.Scan(context.Background(), ScanScheduled))

	// Fields updated but no second notification for the same version.
	rec, _ := repos.FindByID(context.Background(), "1")
	assert.Equal(t, "v1.1.0", rec.LatestRelease)
	assert.Empty(t, notifier.summaries)
}

func TestScanSkipsFailedFetches(t *testing.T) {
	repos := &memRepoStore{recs: []models.RepositoryRecord{
		{ID: "1", Name: "octocat/Hello-World", LatestRelease: "v1.0.0"},
	}}
	releases := &fakeReleases{err: errors.New("rate limited")}
	notifier := &recordingNotifier{}

	m := NewMonitor(repos, &memSettingsStore{}, releases, notifier, noToken)
	require.NoError(t, m.Scan(context.Background(), ScanScheduled))

	rec, _ := repos.FindByID(context.Background(), "1")
	assert.Equal(t, "v1.0.0", rec.LatestRelease)
	assert.Empty(t, notifier.summaries)
}
