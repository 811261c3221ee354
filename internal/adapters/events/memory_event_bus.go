package events

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
)

// MemoryEventBus delivers events within a single process. It backs the CLI
// and tests, where no Redis is available.
type MemoryEventBus struct {
	fanout *fanout
}

// NewMemoryEventBus creates an in-process event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{fanout: newFanout()}
}

// Publish delivers the event to current subscribers of channel
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, event *entities.ReferralEvent) error {
	b.fanout.broadcast(channel, event)
	return nil
}

// Subscribe subscribes to events on a channel until ctx is done
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ReferralEvent, error) {
	ch, _ := b.fanout.add(channel)
	go func() {
		<-ctx.Done()
		b.fanout.remove(channel, ch)
	}()
	return ch, nil
}

// Unsubscribe drops every subscriber of a channel
func (b *MemoryEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.fanout.closeChannel(channel)
	return nil
}

// Close drops every subscriber
func (b *MemoryEventBus) Close() error {
	b.fanout.mu.RLock()
	channels := make([]string, 0, len(b.fanout.subscribers))
	for channel := range b.fanout.subscribers {
		channels = append(channels, channel)
	}
	b.fanout.mu.RUnlock()

	for _, channel := range channels {
		b.fanout.closeChannel(channel)
	}
	return nil
}
