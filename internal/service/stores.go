package service

import (
	"context"

	"relwatch/internal/github"
	"relwatch/internal/models"
)

// Storage interfaces implemented by the repository package. Services depend
// on these, tests substitute in-memory fakes.

type RepoStore interface {
	List(ctx context.Context) ([]models.RepositoryRecord, error)
	FindByID(ctx context.Context, id string) (models.RepositoryRecord, error)
	ExistsByURL(ctx context.Context, url string) (bool, error)
	Create(ctx context.Context, rec models.RepositoryRecord) (models.RepositoryRecord, error)
	Update(ctx context.Context, rec models.RepositoryRecord) error
	Delete(ctx context.Context, id string) error
}

type SettingsStore interface {
	Get(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, settings models.Settings) error
	SetLastScan(ctx context.Context, label string) error
}

type NotificationStore interface {
	Get(ctx context.Context) (models.NotificationSettings, error)
	Save(ctx context.Context, settings models.NotificationSettings) error
}

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ReleaseSource abstracts the GitHub client for the scan loop.
type ReleaseSource interface {
	LatestRelease(ctx context.Context, owner, name, token string) (github.Release, error)
}
