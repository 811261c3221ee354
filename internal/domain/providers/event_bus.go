package providers

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to referral events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ReferralEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ReferralEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelProviderUpdates carries provider.updated events
	EventChannelProviderUpdates = "provider:updates"

	// EventChannelReferralEvents carries match, selection and status events
	EventChannelReferralEvents = "referral:events"

	// EventChannelReferralPrefix is the prefix for referral-specific channels
	EventChannelReferralPrefix = "referral:"
)

// GetReferralChannel returns the channel name for a specific referral
func GetReferralChannel(referralID string) string {
	return EventChannelReferralPrefix + referralID
}
