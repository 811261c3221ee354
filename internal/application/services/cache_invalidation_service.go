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

// HTTP cache keys are "http:cache:<path>:<query hash>"
const (
	httpCachePrefix      = "http:cache:"
	providerListPath     = "/api/providers"
	providerCacheKeyBase = "provider:"
)

// CacheInvalidationService drops cached provider data when a provider changes
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for provider updates
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelProviderUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to provider updates: %w", err)
	}

	s.wg.Add(1)
	go s.processEvents(eventChan)
	log.Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the service and waits for the event loop to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	s.wg.Wait()
	log.Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.ReferralEvent) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || event.ProviderID == "" {
				continue
			}
			if event.EventType != entities.ProviderEventTypeUpdated && event.EventType != entities.ProviderEventTypeCreated {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.InvalidateProvider(ctx, event.ProviderID); err != nil {
				log.Warn().Err(err).Str("provider_id", event.ProviderID).Msg("Failed to invalidate provider cache")
			}
			cancel()
		}
	}
}

// InvalidateProvider removes the provider's record cache, its detail
// responses and every cached provider listing
func (s *CacheInvalidationService) InvalidateProvider(ctx context.Context, providerID string) error {
	if err := s.cache.Delete(ctx, providerCacheKeyBase+providerID); err != nil {
		return fmt.Errorf("failed to delete provider record cache: %w", err)
	}

	patterns := []string{
		fmt.Sprintf("%s%s/%s:*", httpCachePrefix, providerListPath, providerID),
		fmt.Sprintf("%s%s:*", httpCachePrefix, providerListPath),
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}

	log.Debug().Str("provider_id", providerID).Msg("Invalidated provider caches")
	return nil
}

// InvalidateAllProviders clears every cached provider response. Used after
// bulk imports.
func (s *CacheInvalidationService) InvalidateAllProviders(ctx context.Context) error {
	patterns := []string{
		providerCacheKeyBase + "*",
		httpCachePrefix + providerListPath + "*",
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
		log.Info().Str("pattern", pattern).Msg("Invalidated cache pattern")
	}
	return nil
}
