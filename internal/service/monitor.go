package service

import (
	"context"
	"fmt"
	"strings"

	"relwatch/internal/logging"
)

// Scan types reported in notifications and logs.
const (
	ScanScheduled = "Scheduled"
	ScanManual    = "Manual"
)

// Monitor walks every tracked repository, refreshes the latest observed
// release and sends one webhook summary for everything that changed.
type Monitor struct {
	repos    RepoStore
	settings SettingsStore
	releases ReleaseSource
	notifier Notifier
	token    TokenSource
}

func NewMonitor(repos RepoStore, settings SettingsStore, releases ReleaseSource, notifier Notifier, token TokenSource) *Monitor {
	return &Monitor{repos: repos, settings: settings, releases: releases, notifier: notifier, token: token}
}

// Scan runs one full pass. A repository whose release fetch fails is skipped,
// not fatal: the next cycle retries it. Update detection is strict string
// inequality on the stored latest release; notifications are deduplicated per
// version via the notified-version marker.
func (m *Monitor) Scan(ctx context.Context, scanType string) error {
	repos, err := m.repos.List(ctx)
	if err != nil {
		logging.Logger.Errorf("Failed to retrieve repositories: %v", err)
		return err
	}
	logging.Logger.Infof("%s scan started for %d repositories", scanType, len(repos))

	token := m.token(ctx)
	var updates []string

	for i := range repos {
		owner, name := splitName(repos[i].Name)
		release, err := m.releases.LatestRelease(ctx, owner, name, token)
		if err != nil || release.TagName == "" {
			continue
		}

		if repos[i].LatestRelease == release.TagName {
			continue
		}
		previous := repos[i].LatestRelease

		if repos[i].NotifiedVersion != release.TagName {
			updates = append(updates, fmt.Sprintf("- [%s](%s): %s → %s", repos[i].Name, repos[i].URL, previous, release.TagName))
			repos[i].NotifiedVersion = release.TagName
		}

		repos[i].LatestRelease = release.TagName
		repos[i].PublishedAt = formatReleaseDate(release.PublishedAt)
		repos[i].LastUpdated = formatReleaseDate(release.PublishedAt)
		repos[i].Changelog = release.Body

		if err := m.repos.Update(ctx, repos[i]); err != nil {
			logging.Logger.Errorf("Failed to update repository %s: %v", repos[i].Name, err)
			return err
		}
	}

	if len(updates) > 0 {
		summary := strings.Join(updates, "\n")
		logging.Logger.Infof("Updated repositories:\n%s", summary)
		if err := m.notifier.SendUpdateSummary(ctx, summary, scanType); err != nil {
			logging.Logger.Errorf("Failed to send update notification: %v", err)
		}
	} else {
		logging.Logger.Info("All repositories are up to date.")
	}

	if err := m.settings.SetLastScan(ctx, NowScanLabel()); err != nil {
		logging.Logger.Errorf("Failed to record last scan time: %v", err)
	}
	logging.Logger.Infof("%s scan completed", scanType)
	return nil
}
