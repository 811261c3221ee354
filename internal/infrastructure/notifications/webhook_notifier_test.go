package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/pkg/config"
)

func TestNewNotifier(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.NotificationConfig
		webhook bool
	}{
		{name: "nil config", cfg: nil, webhook: false},
		{name: "no url", cfg: &config.NotificationConfig{}, webhook: false},
		{name: "url set", cfg: &config.NotificationConfig{WebhookURL: "http://example.test/hook"}, webhook: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isWebhook := NewNotifier(tt.cfg).(*WebhookNotifier)
			assert.Equal(t, tt.webhook, isWebhook)
		})
	}
}

func TestWebhookNotifier_Notify(t *testing.T) {
	var received webhookPayload
	var authHeader, typeHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		typeHeader = r.Header.Get("X-Event-Type")
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "secret", time.Second)
	event := entities.NewReferralEvent(entities.ReferralEventTypeProviderSelected, "ref-1", "prov-1", nil)

	require.NoError(t, notifier.Notify(context.Background(), event))
	assert.Equal(t, "Bearer secret", authHeader)
	assert.Equal(t, string(entities.ReferralEventTypeProviderSelected), typeHeader)
	require.NotNil(t, received.Event)
	assert.Equal(t, event.ID, received.Event.ID)
	assert.Equal(t, "prov-1", received.Event.ProviderID)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "", time.Second)
	err := notifier.Notify(context.Background(), entities.NewReferralEvent(entities.ReferralEventTypeMatched, "ref-1", "", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLogNotifier_Notify(t *testing.T) {
	event := entities.NewReferralEvent(entities.ReferralEventTypeStatusChanged, "ref-1", "", map[string]interface{}{"status": "completed"})
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), event))
}
