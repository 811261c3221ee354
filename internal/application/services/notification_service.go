package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
)

// notifiedEvents are forwarded to the notifier; status changes caused by
// matching or selection are covered by the event that triggered them.
var notifiedEvents = map[entities.ReferralEventType]bool{
	entities.ReferralEventTypeMatched:          true,
	entities.ReferralEventTypeProviderSelected: true,
	entities.ReferralEventTypeProviderResponse: true,
	entities.ReferralEventTypeStatusChanged:    true,
}

// NotificationService forwards referral events to an external notifier
type NotificationService struct {
	notifier providers.Notifier
	eventBus providers.EventBus
	timeout  time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifier providers.Notifier, eventBus providers.EventBus, timeout time.Duration) *NotificationService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationService{
		notifier: notifier,
		eventBus: eventBus,
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start subscribes to the referral event channel
func (n *NotificationService) Start() error {
	eventChan, err := n.eventBus.Subscribe(n.ctx, providers.EventChannelReferralEvents)
	if err != nil {
		return fmt.Errorf("failed to subscribe to referral events: %w", err)
	}

	n.wg.Add(1)
	go n.processEvents(eventChan)
	log.Info().Msg("Notification service started")
	return nil
}

// Stop stops the service and waits for in-flight deliveries
func (n *NotificationService) Stop() {
	n.cancel()
	n.wg.Wait()
	log.Info().Msg("Notification service stopped")
}

func (n *NotificationService) processEvents(eventChan <-chan *entities.ReferralEvent) {
	defer n.wg.Done()
	for {
		select {
		case <-n.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || !notifiedEvents[event.EventType] {
				continue
			}
			n.deliver(event)
		}
	}
}

func (n *NotificationService) deliver(event *entities.ReferralEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.notifier.Notify(ctx, event); err != nil {
		log.Error().Err(err).
			Str("event_id", event.ID).
			Str("event_type", string(event.EventType)).
			Str("referral_id", event.ReferralID).
			Msg("Failed to deliver referral notification")
		return
	}
	log.Debug().Str("event_id", event.ID).Str("event_type", string(event.EventType)).Msg("Referral notification delivered")
}
