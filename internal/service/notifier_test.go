package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relwatch/internal/models"
)

func TestSendUpdateSummaryPostsEmbed(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := &memNotificationStore{settings: models.NotificationSettings{
		WebhookURL: srv.URL,
		BotName:    "Relwatch Bot",
		AvatarURL:  "https://cdn.example.com/bot.png",
	}}

	n := NewWebhookNotifier(store)
	err := n.SendUpdateSummary(context.Background(), "- [a/b](https://github.com/a/b): v1 → v2", ScanManual)
	require.NoError(t, err)

	assert.Equal(t, "Relwatch Bot", got.Username)
	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Repository Updates Available", got.Embeds[0].Title)
	assert.Contains(t, got.Embeds[0].Description, "v1 → v2")
	assert.Contains(t, got.Embeds[0].Footer.Text, "Manual Scan")
}

func TestSendUpdateSummarySkipsWhenUnconfigured(t *testing.T) {
	n := NewWebhookNotifier(&memNotificationStore{})
	assert.NoError(t, n.SendUpdateSummary(context.Background(), "details", ScanScheduled))
}

func TestSendTest(t *testing.T) {
	var got discordPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	store := &memNotificationStore{settings: models.NotificationSettings{
		WebhookURL: srv.URL,
		BotName:    "Relwatch Bot",
		Message:    "Webhook is working!",
	}}

	require.NoError(t, NewWebhookNotifier(store).SendTest(context.Background()))
	assert.Equal(t, "Webhook is working! (Test notification)", got.Content)
}

func TestSendTestWithoutWebhook(t *testing.T) {
	err := NewWebhookNotifier(&memNotificationStore{}).SendTest(context.Background())
	assert.Error(t, err)
}

func TestDeliveryFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	store := &memNotificationStore{settings: models.NotificationSettings{
		WebhookURL: srv.URL,
		Message:    "hi",
	}}
	err := NewWebhookNotifier(store).SendTest(context.Background())
	assert.Error(t, err)
}
