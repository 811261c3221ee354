package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/cache"
	"github.com/zatekoja/referralcoordination/backend/internal/adapters/events"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
)

func seedProviderCaches(t *testing.T, memory *cache.MemoryAdapter) {
	t.Helper()
	ctx := context.Background()
	for _, key := range []string{
		"provider:p-1",
		"provider:p-2",
		"http:cache:/api/providers/p-1:abc",
		"http:cache:/api/providers/p-2:abc",
		"http:cache:/api/providers:def",
		"http:cache:/api/referrals:ghi",
	} {
		require.NoError(t, memory.Set(ctx, key, []byte("{}"), 0))
	}
}

func sortedKeys(memory *cache.MemoryAdapter) []string {
	keys := memory.Keys()
	sort.Strings(keys)
	return keys
}

func TestCacheInvalidationService_InvalidateProvider(t *testing.T) {
	memory := cache.NewMemoryAdapter()
	seedProviderCaches(t, memory)
	service := services.NewCacheInvalidationService(memory, events.NewMemoryEventBus())

	require.NoError(t, service.InvalidateProvider(context.Background(), "p-1"))

	assert.Equal(t, []string{
		"http:cache:/api/providers/p-2:abc",
		"http:cache:/api/referrals:ghi",
		"provider:p-2",
	}, sortedKeys(memory))
}

func TestCacheInvalidationService_InvalidateAllProviders(t *testing.T) {
	memory := cache.NewMemoryAdapter()
	seedProviderCaches(t, memory)
	service := services.NewCacheInvalidationService(memory, events.NewMemoryEventBus())

	require.NoError(t, service.InvalidateAllProviders(context.Background()))

	assert.Equal(t, []string{"http:cache:/api/referrals:ghi"}, sortedKeys(memory))
}

func TestCacheInvalidationService_ReactsToProviderUpdates(t *testing.T) {
	memory := cache.NewMemoryAdapter()
	seedProviderCaches(t, memory)
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	service := services.NewCacheInvalidationService(memory, bus)
	require.NoError(t, service.Start())
	defer service.Stop()

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, providers.EventChannelReferralEvents,
		entities.NewReferralEvent(entities.ReferralEventTypeMatched, "ref-1", "p-2", nil)))
	require.NoError(t, bus.Publish(ctx, providers.EventChannelProviderUpdates,
		entities.NewReferralEvent(entities.ProviderEventTypeUpdated, "", "p-1", map[string]interface{}{"availableSlots": 0})))

	assert.Eventually(t, func() bool {
		exists, _ := memory.Exists(ctx, "provider:p-1")
		return !exists
	}, time.Second, 10*time.Millisecond)

	exists, err := memory.Exists(ctx, "provider:p-2")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCacheInvalidationService_StopsWhenBusCloses(t *testing.T) {
	bus := events.NewMemoryEventBus()
	service := services.NewCacheInvalidationService(cache.NewMemoryAdapter(), bus)
	require.NoError(t, service.Start())

	require.NoError(t, bus.Close())

	done := make(chan struct{})
	go func() {
		service.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("service did not stop after the bus closed")
	}
}
