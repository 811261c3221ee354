package events

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// fanout tracks local subscriber channels per bus channel. Slow subscribers
// lose events instead of blocking delivery to the others.
type fanout struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.ReferralEvent]struct{}
}

func newFanout() *fanout {
	return &fanout{subscribers: make(map[string]map[chan *entities.ReferralEvent]struct{})}
}

func (f *fanout) add(channel string) (chan *entities.ReferralEvent, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subscribers[channel] == nil {
		f.subscribers[channel] = make(map[chan *entities.ReferralEvent]struct{})
	}
	ch := make(chan *entities.ReferralEvent, subscriberBuffer)
	f.subscribers[channel][ch] = struct{}{}
	return ch, len(f.subscribers[channel])
}

// remove closes one subscriber and reports how many are left on the channel
func (f *fanout) remove(channel string, ch chan *entities.ReferralEvent) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs, ok := f.subscribers[channel]
	if !ok {
		return 0, false
	}
	if _, ok := subs[ch]; !ok {
		return len(subs), false
	}

	delete(subs, ch)
	close(ch)
	if len(subs) == 0 {
		delete(f.subscribers, channel)
	}
	return len(subs), true
}

func (f *fanout) closeChannel(channel string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subscribers[channel] {
		close(ch)
	}
	delete(f.subscribers, channel)
}

func (f *fanout) broadcast(channel string, event *entities.ReferralEvent) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	delivered := 0
	for ch := range f.subscribers[channel] {
		select {
		case ch <- event:
			delivered++
		default:
			log.Warn().
				Str("channel", channel).
				Str("event_id", event.ID).
				Msg("Subscriber channel full, skipping event")
		}
	}
	return delivered
}
