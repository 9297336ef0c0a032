package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"relwatch/internal/logging"
	"relwatch/internal/models"
	"relwatch/internal/repository"
	"relwatch/internal/track"
	"relwatch/internal/validate"
)

// TrackerService owns the server-side lifecycle of tracked repositories:
// creation with an initial release scan, version pinning, acknowledgement
// and deletion.
type TrackerService interface {
	List(ctx context.Context) ([]models.RepositoryRecord, error)
	Add(ctx context.Context, rawURL, name, version string) (models.RepositoryRecord, error)
	Delete(ctx context.Context, id string) error
	UpdateVersion(ctx context.Context, id, version string) (models.RepositoryRecord, error)
	MarkUpdated(ctx context.Context, id string) (models.RepositoryRecord, error)
	Changelog(ctx context.Context, id string) (string, error)
}

type trackerService struct {
	repos    RepoStore
	settings SettingsStore
	releases ReleaseSource
	token    TokenSource
}

// TokenSource supplies the decrypted GitHub API token, or "" when none is
// configured.
type TokenSource func(ctx context.Context) string

// NewTrackerService returns a concrete implementation.
func NewTrackerService(repos RepoStore, settings SettingsStore, releases ReleaseSource, token TokenSource) TrackerService {
	return &trackerService{repos: repos, settings: settings, releases: releases, token: token}
}

func (s *trackerService) List(ctx context.Context) ([]models.RepositoryRecord, error) {
	return s.repos.List(ctx)
}

// Add validates and normalizes the input, rejects duplicates, runs the
// initial release scan and persists the new record. An empty or "latest"
// version pin resolves to the fetched release so a freshly added repository
// starts in the acknowledged state.
func (s *trackerService) Add(ctx context.Context, rawURL, name, version string) (models.RepositoryRecord, error) {
	url, err := validate.RepoInput(rawURL)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	pin, err := validate.Version(version)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	if name == "" {
		name = validate.RepoName(url)
	}

	exists, err := s.repos.ExistsByURL(ctx, url)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	if exists {
		return models.RepositoryRecord{}, fmt.Errorf("%w: %s is already tracked", track.ErrConflict, url)
	}

	logging.Logger.Infof("Initial scan started for %s", name)
	owner, repo := splitName(name)
	release, err := s.releases.LatestRelease(ctx, owner, repo, s.token(ctx))
	if err != nil {
		logging.Logger.Warnf("Failed to fetch release info for %s: %v", name, err)
		return models.RepositoryRecord{}, fmt.Errorf("failed to retrieve latest release: %w", err)
	}

	current := pin
	if current == models.LatestVersion {
		current = release.TagName
	}

	rec := models.RepositoryRecord{
		URL:            url,
		Name:           name,
		CurrentVersion: current,
		LatestRelease:  release.TagName,
		PublishedAt:    formatReleaseDate(release.PublishedAt),
		LastUpdated:    formatReleaseDate(release.PublishedAt),
		Changelog:      release.Body,
		// Already known at creation; don't renotify it on the next scan.
		NotifiedVersion: release.TagName,
	}
	created, err := s.repos.Create(ctx, rec)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	logging.Logger.Infof("Latest release for %s: %s - %s", name, release.TagName, created.PublishedAt)
	return created, nil
}

// Delete removes a tracked repository. Deleting an absent id is idempotent.
func (s *trackerService) Delete(ctx context.Context, id string) error {
	return s.repos.Delete(ctx, id)
}

// UpdateVersion pins a new current version. Empty or blank input stores the
// "latest" sentinel resolved against the last observed release, matching the
// acknowledgement semantics of the dashboard.
func (s *trackerService) UpdateVersion(ctx context.Context, id, version string) (models.RepositoryRecord, error) {
	rec, err := s.repos.FindByID(ctx, id)
	if err != nil {
		return models.RepositoryRecord{}, mapNotFound(err, id)
	}

	v := strings.TrimSpace(version)
	if v == "" || v == models.LatestVersion {
		rec.CurrentVersion = rec.LatestRelease
	} else {
		if _, err := validate.Version(v); err != nil {
			return models.RepositoryRecord{}, err
		}
		rec.CurrentVersion = v
	}

	if err := s.repos.Update(ctx, rec); err != nil {
		return models.RepositoryRecord{}, mapNotFound(err, id)
	}
	return rec, nil
}

// MarkUpdated acknowledges the latest release. When no update is available
// the record is returned unchanged; the confirmation may have raced a scan.
func (s *trackerService) MarkUpdated(ctx context.Context, id string) (models.RepositoryRecord, error) {
	rec, err := s.repos.FindByID(ctx, id)
	if err != nil {
		return models.RepositoryRecord{}, mapNotFound(err, id)
	}
	if !track.UpdateAvailable(rec) {
		return rec, nil
	}
	rec.CurrentVersion = rec.LatestRelease
	if err := s.repos.Update(ctx, rec); err != nil {
		return models.RepositoryRecord{}, mapNotFound(err, id)
	}
	return rec, nil
}

// Changelog returns the stored release notes for the repository.
func (s *trackerService) Changelog(ctx context.Context, id string) (string, error) {
	rec, err := s.repos.FindByID(ctx, id)
	if err != nil {
		return "", mapNotFound(err, id)
	}
	if rec.Changelog == "" {
		return "No changelog available for this repository.", nil
	}
	return rec.Changelog, nil
}

func mapNotFound(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: repository %s", track.ErrNotFound, id)
	}
	return err
}

func splitName(name string) (owner, repo string) {
	if parts := strings.SplitN(name, "/", 2); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return name, ""
}

func formatReleaseDate(date string) string {
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return parsed.Format("Jan 02 2006")
}
