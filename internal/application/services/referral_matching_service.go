package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	"github.com/zatekoja/referralcoordination/backend/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// OptionsForUrgency maps referral urgency to engine options. Urgency never
// changes scores; it only widens the result list and, for critical referrals,
// keeps fully booked providers in view.
func OptionsForUrgency(urgency entities.Urgency) MatchOptions {
	switch urgency {
	case entities.UrgencyLow:
		return MatchOptions{MaxResults: 10, RequireAvailability: Bool(true)}
	case entities.UrgencyHigh:
		return MatchOptions{MaxResults: 50, RequireAvailability: Bool(true)}
	case entities.UrgencyCritical:
		return MatchOptions{MaxResults: 50, RequireAvailability: Bool(false)}
	default:
		return MatchOptions{MaxResults: 25, RequireAvailability: Bool(true)}
	}
}

// MatchRun is the outcome of one persisted matching run
type MatchRun struct {
	RunID          string                  `json:"runId"`
	ReferralID     string                  `json:"referralId"`
	Status         entities.ReferralStatus `json:"status"`
	CandidateCount int                     `json:"candidateCount"`
	Results        []entities.MatchResult  `json:"results"`
	Trace          []entities.MatchResult  `json:"trace,omitempty"`
}

// ReferralMatchingService runs the matching engine for stored referrals and
// persists the ranked list
type ReferralMatchingService struct {
	engine         *MatchingEngine
	referrals      repositories.ReferralRepository
	providers      repositories.ProviderRepository
	matches        repositories.MatchRepository
	searchIndex    providers.ProviderSearchIndex
	eventBus       providers.EventBus
	metrics        *observability.Metrics
	candidateLimit int
	now            func() time.Time
}

// NewReferralMatchingService creates a new referral matching service.
// searchIndex, eventBus and metrics may be nil.
func NewReferralMatchingService(
	engine *MatchingEngine,
	referrals repositories.ReferralRepository,
	providerRepo repositories.ProviderRepository,
	matches repositories.MatchRepository,
	searchIndex providers.ProviderSearchIndex,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
	candidateLimit int,
) *ReferralMatchingService {
	if candidateLimit <= 0 {
		candidateLimit = 1000
	}
	return &ReferralMatchingService{
		engine:         engine,
		referrals:      referrals,
		providers:      providerRepo,
		matches:        matches,
		searchIndex:    searchIndex,
		eventBus:       eventBus,
		metrics:        metrics,
		candidateLimit: candidateLimit,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// RunMatching matches a pending or matched referral against the current
// provider pool.
// opts overrides the urgency defaults when non-nil. A non-empty ranked list
// replaces the referral's earlier unselected matches and moves it to matched;
// an empty one leaves both the stored matches and the status untouched.
func (s *ReferralMatchingService) RunMatching(ctx context.Context, referralID string, opts *MatchOptions, withTrace bool) (*MatchRun, error) {
	ctx, span := observability.StartSpan(ctx, "ReferralMatchingService.RunMatching")
	defer span.End()
	started := time.Now()

	referral, err := s.referrals.GetByID(ctx, referralID)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	// selected -> matched belongs to the decline flow, not to a re-run
	if referral.Status != entities.ReferralStatusPending && referral.Status != entities.ReferralStatusMatched {
		err := &entities.StatusTransitionError{From: referral.Status, To: entities.ReferralStatusMatched}
		observability.RecordError(span, err)
		return nil, err
	}

	options := OptionsForUrgency(referral.EffectiveUrgency())
	if opts != nil {
		options = *opts
	}

	candidates, err := s.loadCandidates(ctx, referral)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	trace, err := s.engine.MatchWithTrace(referral, candidates, options)
	if err != nil {
		observability.RecordError(span, err)
		s.recordRun(ctx, referral, "invalid", 0, started)
		return nil, err
	}

	ranked, eligible := splitTrace(trace)
	run := &MatchRun{
		RunID:          uuid.New().String(),
		ReferralID:     referral.ID,
		Status:         referral.Status,
		CandidateCount: len(candidates),
		Results:        ranked,
	}
	if withTrace {
		run.Trace = trace
	}

	observability.SetSpanAttributes(span,
		attribute.String("referral.id", referral.ID),
		attribute.String("referral.urgency", string(referral.EffectiveUrgency())),
		attribute.Int("matching.candidates", len(candidates)),
		attribute.Int("matching.eligible", eligible),
		attribute.Int("matching.ranked", len(ranked)),
	)

	if len(ranked) == 0 {
		observability.LoggerFromContext(ctx).Info().
			Str("referral_id", referral.ID).
			Int("candidates", len(candidates)).
			Msg("Matching run found no providers")
		s.recordRun(ctx, referral, "empty", eligible, started)
		return run, nil
	}

	if err := s.persist(ctx, run); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	if referral.Status != entities.ReferralStatusMatched {
		if err := s.referrals.UpdateStatus(ctx, referral.ID, referral.Status, entities.ReferralStatusMatched); err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		run.Status = entities.ReferralStatusMatched
	}

	publishReferralEvent(ctx, s.eventBus, entities.NewReferralEvent(
		entities.ReferralEventTypeMatched,
		referral.ID,
		ranked[0].ProviderID,
		map[string]interface{}{
			"runId":    run.RunID,
			"matches":  len(ranked),
			"topScore": ranked[0].Score,
		},
	))

	observability.LoggerFromContext(ctx).Info().
		Str("referral_id", referral.ID).
		Str("run_id", run.RunID).
		Int("candidates", len(candidates)).
		Int("eligible", eligible).
		Int("ranked", len(ranked)).
		Int("top_score", ranked[0].Score).
		Msg("Matching run completed")
	s.recordRun(ctx, referral, "matched", eligible, started)

	return run, nil
}

// ListMatches returns the referral's persisted matches in rank order
func (s *ReferralMatchingService) ListMatches(ctx context.Context, referralID string) ([]*entities.MatchRecord, error) {
	if _, err := s.referrals.GetByID(ctx, referralID); err != nil {
		return nil, err
	}
	return s.matches.ListByReferral(ctx, referralID)
}

// loadCandidates pre-narrows the pool by service type and county. The search
// index is tried first; on failure the database query is used instead.
func (s *ReferralMatchingService) loadCandidates(ctx context.Context, referral *entities.Referral) ([]*entities.Provider, error) {
	if s.searchIndex != nil {
		ids, err := s.searchIndex.CandidateIDs(ctx, referral.ServiceType, referral.Counties, s.candidateLimit)
		if err == nil {
			return s.providers.GetByIDs(ctx, ids)
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("referral_id", referral.ID).
			Msg("Search index unavailable, loading candidates from database")
	}

	return s.providers.ListCandidates(ctx, repositories.CandidateFilter{
		ServiceType: referral.ServiceType,
		Counties:    referral.Counties,
		Limit:       s.candidateLimit,
	})
}

func (s *ReferralMatchingService) persist(ctx context.Context, run *MatchRun) error {
	now := s.now()
	records := make([]*entities.MatchRecord, 0, len(run.Results))
	for _, result := range run.Results {
		records = append(records, entities.NewMatchRecord(uuid.New().String(), run.RunID, result, now))
	}
	return s.matches.SaveRun(ctx, run.ReferralID, run.RunID, records)
}

func (s *ReferralMatchingService) recordRun(ctx context.Context, referral *entities.Referral, outcome string, eligible int, started time.Time) {
	observability.RecordMatchRun(ctx, s.metrics, string(referral.EffectiveUrgency()), outcome, eligible, time.Since(started))
}

// splitTrace returns the ranked prefix of a trace and the eligible count
func splitTrace(trace []entities.MatchResult) ([]entities.MatchResult, int) {
	ranked := make([]entities.MatchResult, 0)
	eligible := 0
	for _, r := range trace {
		if r.Rank > 0 {
			ranked = append(ranked, r)
		}
		if r.Eligible {
			eligible++
		}
	}
	return ranked, eligible
}
