package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/providers"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
	"github.com/zatekoja/referralcoordination/backend/pkg/utils"
)

// ReferralService handles the referral lifecycle around matching: intake,
// provider selection, provider responses and manual status changes.
type ReferralService struct {
	referrals repositories.ReferralRepository
	matches   repositories.MatchRepository
	eventBus  providers.EventBus
	now       func() time.Time
}

// NewReferralService creates a new referral service. eventBus may be nil.
func NewReferralService(
	referrals repositories.ReferralRepository,
	matches repositories.MatchRepository,
	eventBus providers.EventBus,
) *ReferralService {
	return &ReferralService{
		referrals: referrals,
		matches:   matches,
		eventBus:  eventBus,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// manualStatuses are the statuses a coordinator may set directly. matched and
// selected are only reached through matching and selection.
var manualStatuses = map[entities.ReferralStatus]bool{
	entities.ReferralStatusInProgress: true,
	entities.ReferralStatusCompleted:  true,
	entities.ReferralStatusBlocked:    true,
	entities.ReferralStatusRejected:   true,
}

// CreateReferral validates and stores a new pending referral
func (s *ReferralService) CreateReferral(ctx context.Context, referral *entities.Referral) error {
	if referral == nil {
		return apperrors.NewValidationError("referral is required")
	}

	NormalizeReferral(referral)
	if err := ValidateReferral(referral); err != nil {
		return err
	}

	if referral.ID == "" {
		referral.ID = uuid.New().String()
	}
	referral.Status = entities.ReferralStatusPending
	referral.CreatedAt = s.now()
	referral.UpdatedAt = referral.CreatedAt

	if err := s.referrals.Create(ctx, referral); err != nil {
		return err
	}

	log.Info().
		Str("referral_id", referral.ID).
		Str("service_type", referral.ServiceType).
		Str("urgency", string(referral.Urgency)).
		Msg("Referral created")
	return nil
}

// GetReferral retrieves a referral by ID
func (s *ReferralService) GetReferral(ctx context.Context, id string) (*entities.Referral, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("referral id is required")
	}
	return s.referrals.GetByID(ctx, id)
}

// ListReferrals lists referrals
func (s *ReferralService) ListReferrals(ctx context.Context, filter repositories.ReferralFilter) ([]*entities.Referral, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.referrals.List(ctx, filter)
}

// UpdateStatus applies a coordinator-driven lifecycle change
func (s *ReferralService) UpdateStatus(ctx context.Context, id string, to entities.ReferralStatus) (*entities.Referral, error) {
	if !to.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", to))
	}
	if !manualStatuses[to] {
		return nil, apperrors.NewValidationError(fmt.Sprintf("status %s is set by matching or provider selection", to))
	}

	referral, err := s.referrals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.transition(ctx, referral, to); err != nil {
		return nil, err
	}
	return referral, nil
}

// SelectProvider picks one of the referral's persisted matches
func (s *ReferralService) SelectProvider(ctx context.Context, referralID, providerID string) (*entities.MatchRecord, error) {
	referral, err := s.referrals.GetByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if !referral.Status.CanTransitionTo(entities.ReferralStatusSelected) {
		return nil, &entities.StatusTransitionError{From: referral.Status, To: entities.ReferralStatusSelected}
	}

	match, err := s.matches.GetByReferralAndProvider(ctx, referralID, providerID)
	if err != nil {
		return nil, err
	}

	if err := s.matches.MarkSelected(ctx, referralID, providerID); err != nil {
		return nil, err
	}
	if err := s.referrals.UpdateStatus(ctx, referralID, referral.Status, entities.ReferralStatusSelected); err != nil {
		return nil, err
	}
	match.IsSelected = true

	s.publish(ctx, entities.NewReferralEvent(
		entities.ReferralEventTypeProviderSelected,
		referralID,
		providerID,
		map[string]interface{}{"rank": match.Rank, "score": match.Score},
	))

	log.Info().
		Str("referral_id", referralID).
		Str("provider_id", providerID).
		Int("rank", match.Rank).
		Msg("Provider selected")
	return match, nil
}

// RecordProviderResponse stores the selected provider's answer. Acceptance
// starts the referral; a decline reopens it for another selection.
func (s *ReferralService) RecordProviderResponse(ctx context.Context, referralID, providerID string, accepted bool, note string) (*entities.Referral, error) {
	referral, err := s.referrals.GetByID(ctx, referralID)
	if err != nil {
		return nil, err
	}
	if referral.Status != entities.ReferralStatusSelected {
		return nil, apperrors.NewConflictError(fmt.Sprintf("referral %s is %s, not awaiting a provider response", referralID, referral.Status))
	}

	response := entities.ProviderResponseDeclined
	next := entities.ReferralStatusMatched
	if accepted {
		response = entities.ProviderResponseAccepted
		next = entities.ReferralStatusInProgress
	}

	if err := s.matches.RecordResponse(ctx, referralID, providerID, response, strings.TrimSpace(note)); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.NewReferralEvent(
		entities.ReferralEventTypeProviderResponse,
		referralID,
		providerID,
		map[string]interface{}{"response": string(response)},
	))

	if err := s.transition(ctx, referral, next); err != nil {
		return nil, err
	}
	return referral, nil
}

func (s *ReferralService) transition(ctx context.Context, referral *entities.Referral, to entities.ReferralStatus) error {
	from := referral.Status
	if !from.CanTransitionTo(to) {
		return &entities.StatusTransitionError{From: from, To: to}
	}

	if err := s.referrals.UpdateStatus(ctx, referral.ID, from, to); err != nil {
		return err
	}
	referral.Status = to
	referral.UpdatedAt = s.now()

	s.publish(ctx, entities.NewReferralEvent(
		entities.ReferralEventTypeStatusChanged,
		referral.ID,
		"",
		map[string]interface{}{"from": string(from), "to": string(to)},
	))
	return nil
}

func (s *ReferralService) publish(ctx context.Context, event *entities.ReferralEvent) {
	publishReferralEvent(ctx, s.eventBus, event)
}

// publishReferralEvent sends the event to the shared referral channel and to
// the referral's own channel, which backs its event stream
func publishReferralEvent(ctx context.Context, bus providers.EventBus, event *entities.ReferralEvent) {
	publishEvent(ctx, bus, providers.EventChannelReferralEvents, event)
	publishEvent(ctx, bus, providers.GetReferralChannel(event.ReferralID), event)
}

// publishEvent sends an event if a bus is configured. Delivery failures are
// logged; the state change that produced the event has already happened.
func publishEvent(ctx context.Context, bus providers.EventBus, channel string, event *entities.ReferralEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, channel, event); err != nil {
		log.Warn().Err(err).
			Str("channel", channel).
			Str("event_type", string(event.EventType)).
			Msg("Failed to publish event")
	}
}

// NormalizeReferral trims text fields and de-duplicates list fields in place
func NormalizeReferral(r *entities.Referral) {
	r.ServiceType = strings.TrimSpace(r.ServiceType)
	r.Counties = utils.CleanTerms(r.Counties)
	r.InsuranceRequired = utils.CleanTerms(r.InsuranceRequired)
	r.LanguagesRequired = utils.CleanTerms(r.LanguagesRequired)
	r.AccessibilityNeeds = utils.CleanTerms(r.AccessibilityNeeds)
	r.Notes = strings.TrimSpace(r.Notes)
	if r.Urgency == "" {
		r.Urgency = entities.UrgencyMedium
	}
}

// ValidateReferral checks the fields required before a referral can be matched
func ValidateReferral(r *entities.Referral) error {
	var problems []string
	if r.ServiceType == "" {
		problems = append(problems, "serviceType is required")
	}
	if len(r.Counties) == 0 {
		problems = append(problems, "at least one county is required")
	}
	if !r.Urgency.Valid() {
		problems = append(problems, fmt.Sprintf("unknown urgency %q", r.Urgency))
	}
	if !r.ProviderSizePreference.Valid() {
		problems = append(problems, fmt.Sprintf("unknown provider size %q", r.ProviderSizePreference))
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
