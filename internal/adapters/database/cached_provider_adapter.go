package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
)

// CachedProviderAdapter wraps a ProviderRepository with read-through caching of
// single providers. Candidate queries always hit the database so every
// matching run sees a fresh pool.
type CachedProviderAdapter struct {
	adapter repositories.ProviderRepository
	cache   providers.CacheProvider
	ttl     int
}

// NewCachedProviderAdapter creates a new cached provider adapter
func NewCachedProviderAdapter(adapter repositories.ProviderRepository, cache providers.CacheProvider, ttlSeconds int) repositories.ProviderRepository {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &CachedProviderAdapter{
		adapter: adapter,
		cache:   cache,
		ttl:     ttlSeconds,
	}
}

// ProviderCacheKey is the cache key of a single provider
func ProviderCacheKey(id string) string {
	return fmt.Sprintf("provider:%s", id)
}

// GetByID retrieves a provider by ID with caching
func (a *CachedProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	cacheKey := ProviderCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var provider entities.Provider
		if err := json.Unmarshal(cached, &provider); err == nil {
			return &provider, nil
		}
		log.Warn().Err(err).Str("provider_id", id).Msg("Failed to unmarshal cached provider")
	}

	provider, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.store(ctx, provider)
	return provider, nil
}

// GetByIDs retrieves providers by IDs, reading what it can from cache in one
// round trip. Results follow the order of ids.
func (a *CachedProviderAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error) {
	if len(ids) == 0 {
		return []*entities.Provider{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ProviderCacheKey(id)
	}

	cached, err := a.cache.GetMulti(ctx, keys)
	if err != nil {
		log.Warn().Err(err).Msg("Provider cache batch read failed")
		cached = map[string][]byte{}
	}

	byID := make(map[string]*entities.Provider, len(ids))
	missing := make([]string, 0)
	for i, id := range ids {
		if data, ok := cached[keys[i]]; ok {
			var provider entities.Provider
			if err := json.Unmarshal(data, &provider); err == nil {
				byID[id] = &provider
				continue
			}
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		loaded, err := a.adapter.GetByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, provider := range loaded {
			byID[provider.ID] = provider
			a.store(ctx, provider)
		}
	}

	result := make([]*entities.Provider, 0, len(byID))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if provider, ok := byID[id]; ok && !seen[id] {
			result = append(result, provider)
			seen[id] = true
		}
	}
	return result, nil
}

// Create creates a provider
func (a *CachedProviderAdapter) Create(ctx context.Context, provider *entities.Provider) error {
	return a.adapter.Create(ctx, provider)
}

// Update updates a provider and drops its cache entry
func (a *CachedProviderAdapter) Update(ctx context.Context, provider *entities.Provider) error {
	if err := a.adapter.Update(ctx, provider); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, ProviderCacheKey(provider.ID)); err != nil {
		log.Warn().Err(err).Str("provider_id", provider.ID).Msg("Failed to invalidate provider cache")
	}
	return nil
}

// List retrieves providers with filters
func (a *CachedProviderAdapter) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	return a.adapter.List(ctx, filter)
}

// ListCandidates returns the candidate pool straight from the database
func (a *CachedProviderAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Provider, error) {
	return a.adapter.ListCandidates(ctx, filter)
}

func (a *CachedProviderAdapter) store(ctx context.Context, provider *entities.Provider) {
	data, err := json.Marshal(provider)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, ProviderCacheKey(provider.ID), data, a.ttl); err != nil {
		log.Warn().Err(err).Str("provider_id", provider.ID).Msg("Failed to cache provider")
	}
}
