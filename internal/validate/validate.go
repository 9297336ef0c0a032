// Package validate holds the local input checks that run before any network
// call: repository URL normalization, version format, webhook settings and
// cron expressions. Every function returns either a fully normalized value or
// an error wrapping track.ErrValidation, never a partial result.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"

	"relwatch/internal/models"
	"relwatch/internal/track"
)

var (
	// Full GitHub URL, scheme and www. optional, anything after owner/repo
	// stripped during normalization.
	repoURLRe = regexp.MustCompile(`^(?:https://)?(?:www\.)?github\.com/([\w.-]+)/([\w.-]+)(?:/.*)?$`)

	// Bare "owner/repo" shorthand. No further slashes allowed.
	repoShortRe = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)$`)

	versionRe = regexp.MustCompile(`^v?\d+(?:\.\d+)*(?:-[A-Za-z0-9.]+)?$`)

	// Strict allow-list: the value is handed straight to Discord, so only
	// the canonical webhook shape passes. discordapp.com is not accepted.
	webhookRe = regexp.MustCompile(`^https://discord\.com/api/webhooks/\d+/[\w-]+$`)
)

// Avatar extension allow-list is case-sensitive, matching the behavior the
// dashboard always had. ".PNG" is rejected.
var avatarExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// RepoInput normalizes free-form "owner/repo or URL" text to the canonical
// https://github.com/<owner>/<repo> form. First match wins: full URL form
// (trailing path stripped, www. dropped, https forced), then the bare
// owner/repo shorthand. Anything else is rejected outright.
func RepoInput(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: repository is required", track.ErrValidation)
	}
	if m := repoURLRe.FindStringSubmatch(s); m != nil {
		return "https://github.com/" + m[1] + "/" + m[2], nil
	}
	if m := repoShortRe.FindStringSubmatch(s); m != nil {
		return "https://github.com/" + m[1] + "/" + m[2], nil
	}
	return "", fmt.Errorf("%w: %q is not a GitHub repository URL or owner/repo", track.ErrValidation, s)
}

// RepoName derives the "<owner>/<repo>" display name from a canonical URL.
func RepoName(canonicalURL string) string {
	return strings.TrimPrefix(canonicalURL, "https://github.com/")
}

// Version checks a user-supplied version pin. Empty input is always valid and
// normalizes to the "latest" sentinel.
func Version(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return models.LatestVersion, nil
	}
	if !versionRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q is not a valid version", track.ErrValidation, s)
	}
	return s, nil
}

// DuplicateURL reports whether candidate already exists among the given
// records, compared case-insensitively against the stored canonical URLs.
func DuplicateURL(existing []models.RepositoryRecord, candidate string) bool {
	for _, r := range existing {
		if strings.EqualFold(r.URL, candidate) {
			return true
		}
	}
	return false
}

// WebhookURL validates a Discord webhook URL against the strict allow-list
// pattern.
func WebhookURL(raw string) error {
	if !webhookRe.MatchString(strings.TrimSpace(raw)) {
		return fmt.Errorf("%w: invalid Discord webhook URL", track.ErrValidation)
	}
	return nil
}

// AvatarURL accepts an empty value or a direct image URL.
func AvatarURL(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, ext := range avatarExtensions {
		if strings.HasSuffix(s, ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: avatar URL must point to a direct image", track.ErrValidation)
}

// Message requires non-blank notification text.
func Message(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: notification message is required", track.ErrValidation)
	}
	return nil
}

// CronExpr checks a standard five-field cron expression.
func CronExpr(raw string) error {
	if _, err := cron.ParseStandard(raw); err != nil {
		return fmt.Errorf("%w: invalid cron expression %q", track.ErrValidation, raw)
	}
	return nil
}

// NotificationSettings runs the full settings check and returns the first
// failure, so handlers can reject before touching the store.
func NotificationSettings(s models.NotificationSettings) error {
	if err := WebhookURL(s.WebhookURL); err != nil {
		return err
	}
	if err := AvatarURL(s.AvatarURL); err != nil {
		return err
	}
	return Message(s.Message)
}
