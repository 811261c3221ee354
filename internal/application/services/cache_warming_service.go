package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
)

const warmPageSize = 100

// CacheWarmingService preloads the provider record cache so the first
// matching-list and provider reads after a deploy do not all miss
type CacheWarmingService struct {
	providerRepo repositories.ProviderRepository
	cache        providers.CacheProvider
	ttl          int
	maxProviders int
}

// NewCacheWarmingService creates a new cache warming service. maxProviders
// bounds how many active providers are cached per pass.
func NewCacheWarmingService(
	providerRepo repositories.ProviderRepository,
	cache providers.CacheProvider,
	ttlSeconds int,
	maxProviders int,
) *CacheWarmingService {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	if maxProviders <= 0 {
		maxProviders = 500
	}
	return &CacheWarmingService{
		providerRepo: providerRepo,
		cache:        cache,
		ttl:          ttlSeconds,
		maxProviders: maxProviders,
	}
}

// WarmCache caches active providers under their record keys and returns how
// many were written
func (s *CacheWarmingService) WarmCache(ctx context.Context) (int, error) {
	active := true
	warmed := 0

	for offset := 0; warmed < s.maxProviders; offset += warmPageSize {
		limit := warmPageSize
		if remaining := s.maxProviders - warmed; remaining < limit {
			limit = remaining
		}

		page, err := s.providerRepo.List(ctx, repositories.ProviderFilter{
			IsActive: &active,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return warmed, fmt.Errorf("failed to fetch providers: %w", err)
		}

		for _, provider := range page {
			data, err := json.Marshal(provider)
			if err != nil {
				log.Warn().Err(err).Str("provider_id", provider.ID).Msg("Failed to marshal provider")
				continue
			}
			if err := s.cache.Set(ctx, providerCacheKeyBase+provider.ID, data, s.ttl); err != nil {
				return warmed, fmt.Errorf("failed to cache provider %s: %w", provider.ID, err)
			}
			warmed++
		}

		if len(page) < limit {
			break
		}
	}

	log.Info().Int("providers", warmed).Msg("Provider cache warmed")
	return warmed, nil
}

// StartPeriodicWarming warms once, then again every interval until ctx is done.
// Warming more often than the TTL keeps hot entries from expiring.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if _, err := s.WarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial cache warming failed")
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping cache warming service")
				return
			case <-ticker.C:
				if _, err := s.WarmCache(ctx); err != nil {
					log.Warn().Err(err).Msg("Periodic cache warming failed")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("Started periodic cache warming")
}
