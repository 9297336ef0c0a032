package service

import (
	"context"
	"strconv"
	"strings"

	"relwatch/internal/github"
	"relwatch/internal/models"
	"relwatch/internal/repository"
)

// In-memory stand-ins for the Mongo-backed stores.

type memRepoStore struct {
	recs   []models.RepositoryRecord
	nextID int
}

func (m *memRepoStore) List(context.Context) ([]models.RepositoryRecord, error) {
	out := make([]models.RepositoryRecord, len(m.recs))
	copy(out, m.recs)
	return out, nil
}

func (m *memRepoStore) FindByID(_ context.Context, id string) (models.RepositoryRecord, error) {
	for _, r := range m.recs {
		if r.ID == id {
			return r, nil
		}
	}
	return models.RepositoryRecord{}, repository.ErrNotFound
}

func (m *memRepoStore) ExistsByURL(_ context.Context, url string) (bool, error) {
	for _, r := range m.recs {
		if strings.EqualFold(r.URL, url) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepoStore) Create(_ context.Context, rec models.RepositoryRecord) (models.RepositoryRecord, error) {
	m.nextID++
	rec.ID = strconv.Itoa(m.nextID)
	m.recs = append(m.recs, rec)
	return rec, nil
}

func (m *memRepoStore) Update(_ context.Context, rec models.RepositoryRecord) error {
	for i, r := range m.recs {
		if r.ID == rec.ID {
			m.recs[i] = rec
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memRepoStore) Delete(_ context.Context, id string) error {
	for i, r := range m.recs {
		if r.ID == id {
			m.recs = append(m.recs[:i], m.recs[i+1:]...)
			return nil
		}
	}
	return nil
}

type memSettingsStore struct {
	settings models.Settings
}

func (m *memSettingsStore) Get(context.Context) (models.Settings, error) {
	return m.settings, nil
}

func (m *memSettingsStore) Save(_ context.Context, s models.Settings) error {
	m.settings = s
	return nil
}

func (m *memSettingsStore) SetLastScan(_ context.Context, label string) error {
	m.settings.LastScan = label
	return nil
}

type memNotificationStore struct {
	settings models.NotificationSettings
}

func (m *memNotificationStore) Get(context.Context) (models.NotificationSettings, error) {
	return m.settings, nil
}

func (m *memNotificationStore) Save(_ context.Context, s models.NotificationSettings) error {
	m.settings = s
	return nil
}

// fakeReleases serves canned releases keyed by "owner/name".
type fakeReleases struct {
	releases map[string]github.Release
	err      error
	calls    int
}

func (f *fakeReleases) LatestRelease(_ context.Context, owner, name, _ string) (github.Release, error) {
	f.calls++
	if f.err != nil {
		return github.Release{}, f.err
	}
	return f.releases[owner+"/"+name], nil
}

// recordingNotifier captures summaries instead of posting them.
type recordingNotifier struct {
	summaries []string
	scanTypes []string
}

func (r *recordingNotifier) SendUpdateSummary(_ context.Context, details, scanType string) error {
	r.summaries = append(r.summaries, details)
	r.scanTypes = append(r.scanTypes, scanType)
	return nil
}

func (r *recordingNotifier) SendTest(context.Context) error { return nil }

func noToken(context.Context) string { return "" }
