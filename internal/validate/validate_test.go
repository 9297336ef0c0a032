package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relwatch/internal/models"
	"relwatch/internal/track"
)

func TestRepoInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Bare Owner Repo", "octocat/Hello-World", "https://github.com/octocat/Hello-World", false},
		{"Full URL", "https://github.com/octocat/Hello-World", "https://github.com/octocat/Hello-World", false},
		{"Subpath Stripped", "https://github.com/octocat/Hello-World/issues/5", "https://github.com/octocat/Hello-World", false},
		{"WWW Stripped", "www.github.com/octocat/Hello-World", "https://github.com/octocat/Hello-World", false},
		{"Scheme Added", "github.com/golang/go", "https://github.com/golang/go", false},
		{"Trailing Slash Stripped", "https://github.com/golang/go/", "https://github.com/golang/go", false},
		{"Surrounding Whitespace", "  octocat/Hello-World  ", "https://github.com/octocat/Hello-World", false},
		{"Dotted Repo Name", "dotnet/core.sdk", "https://github.com/dotnet/core.sdk", false},
		{"Not A URL", "not a url", "", true},
		{"Wrong Host", "https://gitlab.com/octocat/Hello-World", "", true},
		{"Too Many Segments Bare", "a/b/c", "", true},
		{"Empty", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepoInput(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, track.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "octocat/Hello-World", RepoName("https://github.com/octocat/Hello-World"))
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Plain", "1.2.3", "1.2.3", false},
		{"V Prefix", "v2.0.0", "v2.0.0", false},
		{"Prerelease", "v2.0.0-beta.1", "v2.0.0-beta.1", false},
		{"Single Number", "7", "7", false},
		{"Empty Normalizes To Latest", "", models.LatestVersion, false},
		{"Whitespace Normalizes To Latest", "   ", models.LatestVersion, false},
		{"Garbage", "version one", "", true},
		{"Trailing Dot", "1.2.", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Version(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, track.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDuplicateURL(t *testing.T) {
	existing := []models.RepositoryRecord{
		{URL: "https://github.com/octocat/Hello-World"},
	}
	assert.True(t, DuplicateURL(existing, "https://github.com/OctoCat/hello-world"))
	assert.False(t, DuplicateURL(existing, "https://github.com/octocat/Other"))
	assert.False(t, DuplicateURL(nil, "https://github.com/octocat/Hello-World"))
}

func TestWebhookURL(t *testing.T) {
	assert.NoError(t, WebhookURL("https://discord.com/api/webhooks/123456789/abc-DEF_123"))

	for name, url := range map[string]string{
		"Wrong Host":       "https://discordapp.com/api/webhooks/123/abc",
		"Missing Token":    "https://discord.com/api/webhooks/123",
		"Query Parameters": "https://discord.com/api/webhooks/123/abc?wait=true",
		"HTTP Scheme":      "http://discord.com/api/webhooks/123/abc",
		"Empty":            "",
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, WebhookURL(url), track.ErrValidation)
		})
	}
}

func TestAvatarURL(t *testing.T) {
	assert.NoError(t, AvatarURL(""))
	assert.NoError(t, AvatarURL("https://cdn.example.com/bot.png"))
	assert.NoError(t, AvatarURL("https://cdn.example.com/bot.webp"))
	// Extension match is case-sensitive, as it always was.
	assert.ErrorIs(t, AvatarURL("https://cdn.example.com/bot.PNG"), track.ErrValidation)
	assert.ErrorIs(t, AvatarURL("https://cdn.example.com/bot.svg"), track.ErrValidation)
}

func TestMessage(t *testing.T) {
	assert.NoError(t, Message("release update"))
	assert.ErrorIs(t, Message("   "), track.ErrValidation)
}

func TestCronExpr(t *testing.T) {
	assert.NoError(t, CronExpr("0 */12 * * *"))
	assert.NoError(t, CronExpr("@daily"))
	assert.ErrorIs(t, CronExpr("every 5 minutes"), track.ErrValidation)
}

func TestNotificationSettings(t *testing.T) {
	valid := models.NotificationSettings{
		WebhookURL: "https://discord.com/api/webhooks/123/abc",
		BotName:    "Relwatch Bot",
		Message:    "Webhook is working!",
	}
	assert.NoError(t, NotificationSettings(valid))

	bad := valid
	bad.AvatarURL = "https://cdn.example.com/bot.bmp"
	assert.ErrorIs(t, NotificationSettings(bad), track.ErrValidation)
}
