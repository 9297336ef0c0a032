package service

import (
	"context"
	"fmt"

	"relwatch/internal/logging"
	"relwatch/internal/models"
	"relwatch/internal/secret"
	"relwatch/internal/validate"
)

// TokenValidator checks a GitHub API key against the live API before it is
// accepted.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) error
}

// SettingsService reads and writes the singleton server settings. The GitHub
// API key is sealed before it touches the store and opened on the way out.
type SettingsService struct {
	store     SettingsStore
	box       *secret.Box
	validator TokenValidator
}

func NewSettingsService(store SettingsStore, box *secret.Box, validator TokenValidator) *SettingsService {
	return &SettingsService{store: store, box: box, validator: validator}
}

// Get returns the settings with the API key decrypted for display.
func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	if settings.GitHubAPIKey != "" {
		key, err := s.box.Open(settings.GitHubAPIKey)
		if err != nil {
			logging.Logger.Warnf("Failed to decrypt stored API key: %v", err)
			key = ""
		}
		settings.GitHubAPIKey = key
	}
	return settings, nil
}

// SaveInput is the settings write payload. ResetKey clears the stored API
// key regardless of the key field.
type SaveInput struct {
	Theme        string `json:"theme"`
	CronSchedule string `json:"cronSchedule"`
	GitHubAPIKey string `json:"githubApiKey"`
	ResetKey     bool   `json:"isReset"`
}

// Save applies the payload. The returned bool reports whether the cron
// schedule changed so the caller can reschedule the scan job.
func (s *SettingsService) Save(ctx context.Context, input SaveInput) (bool, error) {
	if input.CronSchedule != "" {
		if err := validate.CronExpr(input.CronSchedule); err != nil {
			return false, err
		}
	}

	settings, err := s.store.Get(ctx)
	if err != nil {
		return false, err
	}

	cronChanged := input.CronSchedule != "" && input.CronSchedule != settings.CronSchedule
	if cronChanged {
		settings.CronSchedule = input.CronSchedule
	}
	if input.Theme != "" {
		settings.Theme = input.Theme
	}

	switch {
	case input.ResetKey:
		settings.GitHubAPIKey = ""
		logging.Logger.Warn("GitHub API key has been reset.")
	case input.GitHubAPIKey != "":
		if err := s.validator.ValidateToken(ctx, input.GitHubAPIKey); err != nil {
			return false, fmt.Errorf("invalid GitHub API key: %w", err)
		}
		sealed, err := s.box.Seal(input.GitHubAPIKey)
		if err != nil {
			return false, err
		}
		settings.GitHubAPIKey = sealed
		logging.Logger.Info("New GitHub API key validated and saved.")
	}

	if err := s.store.Save(ctx, settings); err != nil {
		return false, err
	}
	return cronChanged, nil
}

// Token returns the decrypted API token for scan use, or "" when unset or
// undecryptable. Satisfies TokenSource.
func (s *SettingsService) Token(ctx context.Context) string {
	settings, err := s.store.Get(ctx)
	if err != nil || settings.GitHubAPIKey == "" {
		return ""
	}
	token, err := s.box.Open(settings.GitHubAPIKey)
	if err != nil {
		return ""
	}
	return token
}
