package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/observability"
)

const previewCachePrefix = "match:preview"

// PreviewRequest is a stateless matching request: the caller supplies both
// the referral and the candidate pool
type PreviewRequest struct {
	Referral   *entities.Referral   `json:"referral"`
	Candidates []*entities.Provider `json:"candidates"`
	Options    MatchOptions         `json:"options"`
	Trace      bool                 `json:"trace"`
}

// MatchPreviewService runs the engine on caller-supplied data without
// touching storage. Identical requests are served from cache.
type MatchPreviewService struct {
	engine  *MatchingEngine
	cache   providers.CacheProvider
	ttl     int
	metrics *observability.Metrics
}

// NewMatchPreviewService creates a preview service. cache and metrics may be nil.
func NewMatchPreviewService(engine *MatchingEngine, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *MatchPreviewService {
	return &MatchPreviewService{
		engine:  engine,
		cache:   cache,
		ttl:     ttlSeconds,
		metrics: metrics,
	}
}

// Preview returns the ranked list, or every candidate's result when
// req.Trace is set
func (s *MatchPreviewService) Preview(ctx context.Context, req PreviewRequest) ([]entities.MatchResult, error) {
	key, cacheable := s.cacheKey(req)
	if cacheable {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var cached []entities.MatchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.RecordCacheHit(ctx, s.metrics, previewCachePrefix)
				return cached, nil
			}
		}
		observability.RecordCacheMiss(ctx, s.metrics, previewCachePrefix)
	}

	var (
		results []entities.MatchResult
		err     error
	)
	if req.Trace {
		results, err = s.engine.MatchWithTrace(req.Referral, req.Candidates, req.Options)
	} else {
		results, err = s.engine.Match(req.Referral, req.Candidates, req.Options)
	}
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(results); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				log.Warn().Err(err).Msg("Failed to cache match preview")
			}
		}
	}

	return results, nil
}

// cacheKey hashes the canonical JSON of the request. Map keys in weight
// overrides are sorted by encoding/json, so equal requests hash equally.
func (s *MatchPreviewService) cacheKey(req PreviewRequest) (string, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return "", false
	}
	data, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(data)
	return previewCachePrefix + ":" + hex.EncodeToString(sum[:]), true
}
