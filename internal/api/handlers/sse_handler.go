package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
)

const heartbeatInterval = 30 * time.Second

// SSEHandler streams referral events to coordinators over Server-Sent Events
type SSEHandler struct {
	eventBus providers.EventBus
	clients  map[string]map[chan *entities.ReferralEvent]bool // channel -> clients
	mu       sync.RWMutex
	done     chan struct{}
	once     sync.Once
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus) *SSEHandler {
	return &SSEHandler{
		eventBus: eventBus,
		clients:  make(map[string]map[chan *entities.ReferralEvent]bool),
		done:     make(chan struct{}),
	}
}

// Shutdown ends every open stream. Register it with http.Server.RegisterOnShutdown.
func (h *SSEHandler) Shutdown() {
	h.once.Do(func() { close(h.done) })
}

// StreamReferralUpdates streams events for one referral
// GET /api/stream/referrals/{id}
func (h *SSEHandler) StreamReferralUpdates(w http.ResponseWriter, r *http.Request) {
	referralID := r.PathValue("id")
	if referralID == "" {
		respondWithError(w, http.StatusBadRequest, "referral ID is required")
		return
	}

	h.stream(w, r, providers.GetReferralChannel(referralID), nil, map[string]interface{}{
		"referral_id": referralID,
	})
}

// StreamAllReferrals streams every referral event, optionally narrowed by
// ?types=referral.matched,referral.status_changed
// GET /api/stream/referrals
func (h *SSEHandler) StreamAllReferrals(w http.ResponseWriter, r *http.Request) {
	var allowed map[entities.ReferralEventType]bool
	if raw := r.URL.Query().Get("types"); raw != "" {
		allowed = make(map[entities.ReferralEventType]bool)
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				allowed[entities.ReferralEventType(t)] = true
			}
		}
	}

	types := make([]string, 0, len(allowed))
	for t := range allowed {
		types = append(types, string(t))
	}
	h.stream(w, r, providers.EventChannelReferralEvents, allowed, map[string]interface{}{
		"types": types,
	})
}

func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string, allowed map[entities.ReferralEventType]bool, hello map[string]interface{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan *entities.ReferralEvent, 20)
	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("Failed to subscribe to channel")
		return
	}

	hello["timestamp"] = time.Now().UTC()
	h.sendEvent(w, "connected", hello)
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan, allowed)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Debug().Str("channel", channel).Msg("Client disconnected from stream")
			return
		case <-h.done:
			h.sendEvent(w, "shutdown", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now().UTC(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents moves bus events to the client, dropping them when the client
// falls behind
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.ReferralEvent, clientChan chan<- *entities.ReferralEvent, allowed map[entities.ReferralEventType]bool) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || (allowed != nil && !allowed[event.EventType]) {
				continue
			}
			select {
			case clientChan <- event:
			default:
				log.Warn().Str("event_id", event.ID).Msg("SSE client is behind, dropping event")
			}
		}
	}
}

func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.ReferralEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.ReferralEvent]bool)
	}
	h.clients[channel][clientChan] = true
	log.Debug().Str("channel", channel).Int("total", len(h.clients[channel])).Msg("Client registered")
}

func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.ReferralEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
