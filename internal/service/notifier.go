package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"relwatch/internal/logging"
	"relwatch/internal/models"
)

// Notifier delivers scan results to the configured channels.
type Notifier interface {
	SendUpdateSummary(ctx context.Context, details, scanType string) error
	SendTest(ctx context.Context) error
}

// WebhookNotifier posts to a Discord webhook, and optionally mirrors the
// summary to a Slack channel when a token is configured.
type WebhookNotifier struct {
	store NotificationStore
	http  *http.Client
	now   func() time.Time
}

func NewWebhookNotifier(store NotificationStore) *WebhookNotifier {
	return &WebhookNotifier{
		store: store,
		http:  &http.Client{Timeout: 10 * time.Second},
		now:   time.Now,
	}
}

type embedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title       string      `json:"title"`
	Color       int         `json:"color"`
	Description string      `json:"description"`
	Footer      embedFooter `json:"footer"`
	Author      embedAuthor `json:"author"`
}

type discordPayload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Content   string  `json:"content"`
	Embeds    []embed `json:"embeds"`
}

// SendUpdateSummary posts one embed listing every repository that changed.
// No webhook configured is not an error; the notification is just skipped.
func (n *WebhookNotifier) SendUpdateSummary(ctx context.Context, details, scanType string) error {
	settings, err := n.store.Get(ctx)
	if err != nil {
		return err
	}
	if settings.WebhookURL == "" {
		logging.Logger.Info("No Discord webhook URL is set; skipping notification.")
		return nil
	}

	payload := discordPayload{
		Username:  settings.BotName,
		AvatarURL: settings.AvatarURL,
		Embeds: []embed{{
			Title:       "Repository Updates Available",
			Color:       3447003,
			Description: details,
			Footer:      embedFooter{Text: fmt.Sprintf("%s Scan • Today at %s", scanType, n.now().Format("3:04 PM"))},
			Author:      embedAuthor{Name: settings.BotName, IconURL: settings.AvatarURL},
		}},
	}
	if err := n.post(ctx, settings.WebhookURL, payload); err != nil {
		return err
	}

	n.mirrorToSlack(settings, details)
	logging.Logger.Info("Discord notification sent.")
	return nil
}

// SendTest fires the configured message so the user can verify the webhook.
func (n *WebhookNotifier) SendTest(ctx context.Context) error {
	settings, err := n.store.Get(ctx)
	if err != nil {
		return err
	}
	if settings.WebhookURL == "" {
		return fmt.Errorf("webhook URL is not set")
	}

	payload := discordPayload{
		Username:  settings.BotName,
		AvatarURL: settings.AvatarURL,
		Content:   settings.Message + " (Test notification)",
	}
	return n.post(ctx, settings.WebhookURL, payload)
}

func (n *WebhookNotifier) post(ctx context.Context, webhookURL string, payload discordPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook delivery failed with status %d", resp.StatusCode)
	}
	return nil
}

// mirrorToSlack best-effort copies the summary to Slack. Failures are logged,
// never propagated: Discord is the primary channel.
func (n *WebhookNotifier) mirrorToSlack(settings models.NotificationSettings, details string) {
	if settings.SlackToken == "" || settings.SlackChannel == "" {
		return
	}
	client := slack.New(settings.SlackToken)
	_, _, err := client.PostMessage(
		settings.SlackChannel,
		slack.MsgOptionText("Repository updates available:\n"+details, false),
	)
	if err != nil {
		logging.Logger.Errorf("Failed to send Slack message: %v", err)
	}
}
