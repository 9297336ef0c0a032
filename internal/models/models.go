package models

// RepositoryRecord is one tracked GitHub repository. The id is assigned by
// the server at creation time and never changes afterwards.
type RepositoryRecord struct {
	ID             string `bson:"_id,omitempty" json:"id"`
	URL            string `bson:"url" json:"url"`   // canonical https://github.com/<owner>/<repo>
	Name           string `bson:"name" json:"name"` // "<owner>/<repo>", derived from URL
	CurrentVersion string `bson:"current_version" json:"currentVersion"`
	LatestRelease  string `bson:"latest_release" json:"latestRelease"`
	PublishedAt    string `bson:"published_at" json:"publishedAt"`
	LastUpdated    string `bson:"last_updated" json:"lastUpdated"`

	// Server-side bookkeeping, never sent to clients.
	Changelog       string `bson:"changelog" json:"-"`
	NotifiedVersion string `bson:"notified_version" json:"-"`
}

// LatestVersion is the sentinel CurrentVersion meaning "track latest, no
// explicit pin".
const LatestVersion = "latest"

// Settings is the singleton server configuration document. The GitHub API
// key is stored AES-GCM encrypted; handlers decrypt it on the way out.
type Settings struct {
	ID           string `bson:"_id,omitempty" json:"-"`
	Theme        string `bson:"theme" json:"theme"`
	CronSchedule string `bson:"cron_schedule" json:"cronSchedule"`
	GitHubAPIKey string `bson:"github_api_key" json:"githubApiKey"`
	LastScan     string `bson:"last_scan" json:"-"`
	// Per-install salt for sealing the API key; never leaves the server.
	Salt string `bson:"salt" json:"-"`
}

// NotificationSettings is the singleton webhook configuration. Field names
// are the one canonical schema; clients must not rely on alternate casings.
type NotificationSettings struct {
	ID         string `bson:"_id,omitempty" json:"-"`
	WebhookURL string `bson:"webhook_url" json:"webhookUrl"`
	BotName    string `bson:"bot_name" json:"botName"`
	AvatarURL  string `bson:"avatar_url" json:"avatarUrl"`
	Message    string `bson:"message" json:"message"`
	// Optional secondary channel.
	SlackToken   string `bson:"slack_token" json:"slackToken"`
	SlackChannel string `bson:"slack_channel" json:"slackChannel"`
}

// ScanStatus reports the humanized last/next scan labels. Produced by the
// scheduler bookkeeping; read-only for clients.
type ScanStatus struct {
	LastScan string `json:"lastScan"`
	NextScan string `json:"nextScan"`
}

// User is a dashboard login. Password holds the bcrypt hash.
type User struct {
	ID       string `bson:"_id,omitempty" json:"id"`
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"-"`
}
