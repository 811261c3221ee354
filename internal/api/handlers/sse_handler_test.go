package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/events"
	"github.com/zatekoja/referralcoordination/backend/internal/api/handlers"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
)

// runStream starts a streaming handler and returns a stop func that cancels
// the request and waits for the handler to exit
func runStream(t *testing.T, h http.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h(w, req)
		close(done)
	}()

	return w, func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler did not exit after cancel")
		}
	}
}

func TestSSEHandler_StreamReferralUpdates(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()
	handler := handlers.NewSSEHandler(bus)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/referrals/ref-1", nil)
	req.SetPathValue("id", "ref-1")
	w, stop := runStream(t, handler.StreamReferralUpdates, req)

	require.Eventually(t, func() bool { return handler.GetClientCount() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewReferralEvent(entities.ReferralEventTypeProviderSelected, "ref-1", "p-2", nil)
	require.NoError(t, bus.Publish(context.Background(), providers.GetReferralChannel("ref-1"), event))
	other := entities.NewReferralEvent(entities.ReferralEventTypeMatched, "ref-2", "", nil)
	require.NoError(t, bus.Publish(context.Background(), providers.GetReferralChannel("ref-2"), other))

	time.Sleep(150 * time.Millisecond)
	stop()

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	body := w.Body.String()
	assert.Contains(t, body, "event: connected\n")
	assert.Contains(t, body, `"referral_id":"ref-1"`)
	assert.Contains(t, body, "event: referral.provider_selected\n")
	assert.Contains(t, body, event.ID)
	assert.NotContains(t, body, other.ID)
	assert.Equal(t, 0, handler.GetClientCount())
}

func TestSSEHandler_StreamReferralUpdates_MissingID(t *testing.T) {
	handler := handlers.NewSSEHandler(events.NewMemoryEventBus())

	w := httptest.NewRecorder()
	handler.StreamReferralUpdates(w, httptest.NewRequest(http.MethodGet, "/api/stream/referrals/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSSEHandler_StreamAllReferrals_FiltersByType(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()
	handler := handlers.NewSSEHandler(bus)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/referrals?types=referral.status_changed", nil)
	w, stop := runStream(t, handler.StreamAllReferrals, req)

	require.Eventually(t, func() bool { return handler.GetClientCount() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	matched := entities.NewReferralEvent(entities.ReferralEventTypeMatched, "ref-1", "", nil)
	changed := entities.NewReferralEvent(entities.ReferralEventTypeStatusChanged, "ref-1", "", map[string]interface{}{"to": "completed"})
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelReferralEvents, matched))
	require.NoError(t, bus.Publish(context.Background(), providers.EventChannelReferralEvents, changed))

	time.Sleep(150 * time.Millisecond)
	stop()

	body := w.Body.String()
	assert.Contains(t, body, changed.ID)
	assert.NotContains(t, body, matched.ID)
}

func TestSSEHandler_Shutdown_EndsStreams(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()
	handler := handlers.NewSSEHandler(bus)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/referrals/ref-1", nil)
	req.SetPathValue("id", "ref-1")
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		handler.StreamReferralUpdates(w, req)
		close(done)
	}()
	require.Eventually(t, func() bool { return handler.GetClientCount() == 1 }, time.Second, 10*time.Millisecond)

	handler.Shutdown()
	handler.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end on shutdown")
	}
	assert.Contains(t, w.Body.String(), "event: shutdown\n")
}
