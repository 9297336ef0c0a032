// Package track holds the pure version-tracking rules: deciding whether an
// update is available for a record and ordering records for display. No
// function here performs I/O or mutates its input.
package track

import (
	"strings"

	"relwatch/internal/models"
)

// UpdateAvailable reports whether the tracked current version differs from
// the latest observed release. The comparison is byte-for-byte, not semantic:
// "v1.0" and "1.0" are different versions on purpose, so a pinned "v1.0"
// against a published "1.0" keeps showing as an update. A record with no
// current version or no observed release never has an update available.
func UpdateAvailable(rec models.RepositoryRecord) bool {
	if rec.CurrentVersion == "" || rec.LatestRelease == "" {
		return false
	}
	return rec.CurrentVersion != rec.LatestRelease
}

// SortForDisplay partitions records so that everything with an update
// available comes first. The partition is stable: records with equal priority
// keep their original relative order, so the list does not shuffle between
// polling refreshes.
func SortForDisplay(recs []models.RepositoryRecord) []models.RepositoryRecord {
	out := make([]models.RepositoryRecord, 0, len(recs))
	for _, r := range recs {
		if UpdateAvailable(r) {
			out = append(out, r)
		}
	}
	for _, r := range recs {
		if !UpdateAvailable(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByName returns the records whose name contains query, matched
// case-insensitively. An empty query returns all records; original order is
// preserved either way.
func FilterByName(recs []models.RepositoryRecord, query string) []models.RepositoryRecord {
	if query == "" {
		return recs
	}
	q := strings.ToLower(query)
	out := make([]models.RepositoryRecord, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}
