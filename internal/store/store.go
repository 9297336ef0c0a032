// Package store owns the client-side list of tracked repositories. All
// mutations are optimistic: the local list changes first, the backend call
// confirms, and a transport failure restores the exact pre-mutation state.
// The store is an explicit object handed to whoever renders the list; there
// is no package-level state.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"relwatch/internal/models"
	"relwatch/internal/track"
	"relwatch/internal/validate"
)

// Backend is the slice of the REST API the store mutates through. Implemented
// by apiclient.Client.
type Backend interface {
	CreateRepository(ctx context.Context, url, name, version string) (models.RepositoryRecord, error)
	DeleteRepository(ctx context.Context, id string) error
	UpdateVersion(ctx context.Context, id, version string) (models.RepositoryRecord, error)
	MarkUpdated(ctx context.Context, id string) (models.RepositoryRecord, error)
}

// Store holds the authoritative in-memory record list. It is written from a
// single event-loop context; overlapping in-flight network calls are resolved
// by last-completion-wins, and a mutation for an id that has since been
// removed patches nothing.
type Store struct {
	backend Backend
	records []models.RepositoryRecord
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Records returns a copy of the current list.
func (s *Store) Records() []models.RepositoryRecord {
	out := make([]models.RepositoryRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Replace reconciles the store wholesale from a fresh list fetch.
func (s *Store) Replace(recs []models.RepositoryRecord) {
	s.records = make([]models.RepositoryRecord, len(recs))
	copy(s.records, recs)
}

// Add validates and normalizes the raw input, rejects duplicates before any
// network call (so a rapid double-submit creates exactly one record), then
// appends the server-assigned record on success.
func (s *Store) Add(ctx context.Context, rawInput, rawVersion string) (models.RepositoryRecord, error) {
	url, err := validate.RepoInput(rawInput)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	version, err := validate.Version(rawVersion)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	if validate.DuplicateURL(s.records, url) {
		return models.RepositoryRecord{}, fmt.Errorf("%w: %s is already tracked", track.ErrConflict, url)
	}

	rec, err := s.backend.CreateRepository(ctx, url, validate.RepoName(url), version)
	if err != nil {
		return models.RepositoryRecord{}, err
	}
	if ctx.Err() != nil {
		// The view that asked for this is gone; drop the response.
		return models.RepositoryRecord{}, ctx.Err()
	}
	s.records = append(s.records, rec)
	return rec, nil
}

// Remove deletes the record with the given id. Removing an absent id is a
// no-op, since a concurrent delete or scan may already have raced it away.
// The local removal is rolled back if the backend call fails with anything
// other than not-found.
func (s *Store) Remove(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	snapshot := s.snapshot()
	s.records = append(s.records[:idx:idx], s.records[idx+1:]...)

	err := s.backend.DeleteRepository(ctx, id)
	if err != nil && !isNotFound(err) {
		s.restore(snapshot)
		return err
	}
	return nil
}

// UpdateVersion pins a new current version on the record. Empty or blank
// input normalizes to the "latest" sentinel. An unknown id is a NotFoundError
// surfaced to the caller: it means the local view is stale and should be
// refreshed.
func (s *Store) UpdateVersion(ctx context.Context, id, newVersion string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: repository %s", track.ErrNotFound, id)
	}

	version := strings.TrimSpace(newVersion)
	if version == "" {
		version = models.LatestVersion
	}

	snapshot := s.snapshot()
	s.records[idx].CurrentVersion = version

	updated, err := s.backend.UpdateVersion(ctx, id, version)
	if err != nil {
		s.restore(snapshot)
		return err
	}
	s.patch(ctx, updated)
	return nil
}

// MarkUpdated acknowledges the latest release: currentVersion becomes
// latestRelease. When no update is available (the confirmation may race a
// scan that already moved latestRelease again) this is a no-op, not an error.
func (s *Store) MarkUpdated(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 || !track.UpdateAvailable(s.records[idx]) {
		return nil
	}

	snapshot := s.snapshot()
	s.records[idx].CurrentVersion = s.records[idx].LatestRelease

	updated, err := s.backend.MarkUpdated(ctx, id)
	if err != nil {
		s.restore(snapshot)
		return err
	}
	s.patch(ctx, updated)
	return nil
}

// patch applies a confirmed record by id. If the record vanished while the
// call was in flight, or the caller navigated away, nothing is written.
func (s *Store) patch(ctx context.Context, rec models.RepositoryRecord) {
	if ctx.Err() != nil {
		return
	}
	if idx := s.indexOf(rec.ID); idx >= 0 {
		s.records[idx] = rec
	}
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []models.RepositoryRecord {
	snap := make([]models.RepositoryRecord, len(s.records))
	copy(snap, s.records)
	return snap
}

func (s *Store) restore(snap []models.RepositoryRecord) {
	s.records = snap
}

func isNotFound(err error) bool {
	return errors.Is(err, track.ErrNotFound)
}
