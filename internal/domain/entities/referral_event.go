package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReferralEventType represents the type of referral or provider event
type ReferralEventType string

const (
	ReferralEventTypeMatched          ReferralEventType = "referral.matched"
	ReferralEventTypeProviderSelected ReferralEventType = "referral.provider_selected"
	ReferralEventTypeStatusChanged    ReferralEventType = "referral.status_changed"
	ReferralEventTypeProviderResponse ReferralEventType = "referral.provider_response"
	ProviderEventTypeCreated          ReferralEventType = "provider.created"
	ProviderEventTypeUpdated          ReferralEventType = "provider.updated"
)

// ReferralEvent is published after a matching run or lifecycle change.
// Subscribers (notifications, cache invalidation) act on it asynchronously.
type ReferralEvent struct {
	ID            string                 `json:"id"`
	EventType     ReferralEventType      `json:"event_type"`
	ReferralID    string                 `json:"referral_id,omitempty"`
	ProviderID    string                 `json:"provider_id,omitempty"`
	Timestamp     time.Time              `json:"timestamp"`
	ChangedFields map[string]interface{} `json:"changed_fields,omitempty"`
}

// NewReferralEvent creates a new event stamped with a fresh id and the current time
func NewReferralEvent(eventType ReferralEventType, referralID, providerID string, changedFields map[string]interface{}) *ReferralEvent {
	return &ReferralEvent{
		ID:            uuid.New().String(),
		EventType:     eventType,
		ReferralID:    referralID,
		ProviderID:    providerID,
		Timestamp:     time.Now().UTC(),
		ChangedFields: changedFields,
	}
}
