package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/pkg/config"
)

// WebhookNotifier posts referral events as JSON to a coordinator endpoint
type WebhookNotifier struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewNotifier returns a webhook notifier when a URL is configured, otherwise
// a notifier that only logs.
func NewNotifier(cfg *config.NotificationConfig) providers.Notifier {
	if cfg == nil || cfg.WebhookURL == "" {
		return &LogNotifier{}
	}
	return NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookToken, time.Duration(cfg.TimeoutSeconds)*time.Second)
}

// NewWebhookNotifier creates a webhook notifier
func NewWebhookNotifier(url, token string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// webhookPayload is the body posted for every event
type webhookPayload struct {
	Event  *entities.ReferralEvent `json:"event"`
	SentAt time.Time               `json:"sent_at"`
}

// Notify posts the event; any non-2xx answer is an error
func (w *WebhookNotifier) Notify(ctx context.Context, event *entities.ReferralEvent) error {
	body, err := json.Marshal(webhookPayload{Event: event, SentAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", string(event.EventType))
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// LogNotifier writes events to the application log
type LogNotifier struct{}

// Notify logs the event
func (LogNotifier) Notify(ctx context.Context, event *entities.ReferralEvent) error {
	log.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Str("referral_id", event.ReferralID).
		Str("provider_id", event.ProviderID).
		Interface("changed_fields", event.ChangedFields).
		Msg("Referral event")
	return nil
}
