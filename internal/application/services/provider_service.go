package services

import (
	"context"
	"fmt"
	"math"
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

const reindexPageSize = 200

// ProviderUpdate is a partial provider change; nil fields are left alone
type ProviderUpdate struct {
	Name                  *string                 `json:"name,omitempty"`
	ServiceTypes          []string                `json:"serviceTypes,omitempty"`
	CountiesServed        []string                `json:"countiesServed,omitempty"`
	InsuranceAccepted     []string                `json:"insuranceAccepted,omitempty"`
	LanguagesSpoken       []string                `json:"languagesSpoken,omitempty"`
	AccessibilityFeatures []string                `json:"accessibilityFeatures,omitempty"`
	Capacity              *entities.CapacityLevel `json:"capacity,omitempty"`
	AvailableSlots        *int                    `json:"availableSlots,omitempty"`
	Rating                *float64                `json:"rating,omitempty"`
	ProviderSize          *entities.ProviderSize  `json:"providerSize,omitempty"`
	IsActive              *bool                   `json:"isActive,omitempty"`
}

// ProviderService manages the provider directory
type ProviderService struct {
	repo        repositories.ProviderRepository
	searchIndex providers.ProviderSearchIndex
	eventBus    providers.EventBus
	now         func() time.Time
}

// NewProviderService creates a new provider service. searchIndex and eventBus may be nil.
func NewProviderService(repo repositories.ProviderRepository, searchIndex providers.ProviderSearchIndex, eventBus providers.EventBus) *ProviderService {
	return &ProviderService{
		repo:        repo,
		searchIndex: searchIndex,
		eventBus:    eventBus,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateProvider validates and stores a provider
func (s *ProviderService) CreateProvider(ctx context.Context, provider *entities.Provider) error {
	if provider == nil {
		return apperrors.NewValidationError("provider is required")
	}

	normalizeProvider(provider)
	if err := ValidateProvider(provider); err != nil {
		return err
	}

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}
	provider.CreatedAt = s.now()
	provider.UpdatedAt = provider.CreatedAt

	if err := s.repo.Create(ctx, provider); err != nil {
		return err
	}

	s.index(ctx, provider)
	publishEvent(ctx, s.eventBus, providers.EventChannelProviderUpdates, entities.NewReferralEvent(
		entities.ProviderEventTypeCreated,
		"",
		provider.ID,
		nil,
	))
	log.Info().Str("provider_id", provider.ID).Str("name", provider.Name).Msg("Provider created")
	return nil
}

// GetProvider retrieves a provider by ID
func (s *ProviderService) GetProvider(ctx context.Context, id string) (*entities.Provider, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("provider id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// ListProviders lists providers
func (s *ProviderService) ListProviders(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

// UpdateProvider applies a partial update, then announces the change so
// caches and the search index catch up
func (s *ProviderService) UpdateProvider(ctx context.Context, id string, update ProviderUpdate) (*entities.Provider, error) {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := applyProviderUpdate(provider, update)
	if len(changed) == 0 {
		return provider, nil
	}

	normalizeProvider(provider)
	if err := ValidateProvider(provider); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, provider); err != nil {
		return nil, err
	}

	s.index(ctx, provider)
	publishEvent(ctx, s.eventBus, providers.EventChannelProviderUpdates, entities.NewReferralEvent(
		entities.ProviderEventTypeUpdated,
		"",
		provider.ID,
		changed,
	))

	return provider, nil
}

// Reindex pushes every stored provider into the search index and returns how
// many were indexed
func (s *ProviderService) Reindex(ctx context.Context) (int, error) {
	if s.searchIndex == nil {
		return 0, apperrors.NewValidationError("search index is not configured")
	}
	if err := s.searchIndex.InitSchema(ctx); err != nil {
		return 0, apperrors.NewExternalError("failed to prepare search index", err)
	}

	indexed := 0
	for offset := 0; ; offset += reindexPageSize {
		page, err := s.repo.List(ctx, repositories.ProviderFilter{Limit: reindexPageSize, Offset: offset})
		if err != nil {
			return indexed, err
		}
		for _, provider := range page {
			if err := ctx.Err(); err != nil {
				return indexed, err
			}
			if err := s.searchIndex.Index(ctx, provider); err != nil {
				return indexed, apperrors.NewExternalError(fmt.Sprintf("failed to index provider %s", provider.ID), err)
			}
			indexed++
		}
		if len(page) < reindexPageSize {
			return indexed, nil
		}
	}
}

func (s *ProviderService) index(ctx context.Context, provider *entities.Provider) {
	if s.searchIndex == nil {
		return
	}
	if err := s.searchIndex.Index(ctx, provider); err != nil {
		log.Warn().Err(err).Str("provider_id", provider.ID).Msg("Failed to index provider")
	}
}

func applyProviderUpdate(p *entities.Provider, u ProviderUpdate) map[string]interface{} {
	changed := make(map[string]interface{})

	if u.Name != nil && *u.Name != p.Name {
		p.Name = *u.Name
		changed["name"] = p.Name
	}
	if u.ServiceTypes != nil {
		p.ServiceTypes = u.ServiceTypes
		changed["serviceTypes"] = u.ServiceTypes
	}
	if u.CountiesServed != nil {
		p.CountiesServed = u.CountiesServed
		changed["countiesServed"] = u.CountiesServed
	}
	if u.InsuranceAccepted != nil {
		p.InsuranceAccepted = u.InsuranceAccepted
		changed["insuranceAccepted"] = u.InsuranceAccepted
	}
	if u.LanguagesSpoken != nil {
		p.LanguagesSpoken = u.LanguagesSpoken
		changed["languagesSpoken"] = u.LanguagesSpoken
	}
	if u.AccessibilityFeatures != nil {
		p.AccessibilityFeatures = u.AccessibilityFeatures
		changed["accessibilityFeatures"] = u.AccessibilityFeatures
	}
	if u.Capacity != nil && *u.Capacity != p.Capacity {
		p.Capacity = *u.Capacity
		changed["capacity"] = string(p.Capacity)
	}
	if u.AvailableSlots != nil && *u.AvailableSlots != p.AvailableSlots {
		p.AvailableSlots = *u.AvailableSlots
		changed["availableSlots"] = p.AvailableSlots
	}
	if u.Rating != nil && *u.Rating != p.Rating {
		p.Rating = *u.Rating
		changed["rating"] = p.Rating
	}
	if u.ProviderSize != nil && *u.ProviderSize != p.ProviderSize {
		p.ProviderSize = *u.ProviderSize
		changed["providerSize"] = string(p.ProviderSize)
	}
	if u.IsActive != nil && *u.IsActive != p.IsActive {
		p.IsActive = *u.IsActive
		changed["isActive"] = p.IsActive
	}

	return changed
}

func normalizeProvider(p *entities.Provider) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.ServiceTypes = utils.CleanTerms(p.ServiceTypes)
	p.CountiesServed = utils.CleanTerms(p.CountiesServed)
	p.InsuranceAccepted = utils.CleanTerms(p.InsuranceAccepted)
	p.LanguagesSpoken = utils.CleanTerms(p.LanguagesSpoken)
	p.AccessibilityFeatures = utils.CleanTerms(p.AccessibilityFeatures)
}

// ValidateProvider rejects records the matching engine would treat as malformed
func ValidateProvider(p *entities.Provider) error {
	var problems []string
	if p.Name == "" {
		problems = append(problems, "name is required")
	}
	if len(p.ServiceTypes) == 0 {
		problems = append(problems, "at least one service type is required")
	}
	if len(p.CountiesServed) == 0 {
		problems = append(problems, "at least one county is required")
	}
	if !p.Capacity.Valid() {
		problems = append(problems, fmt.Sprintf("unknown capacity %q", p.Capacity))
	}
	if p.AvailableSlots < 0 {
		problems = append(problems, "availableSlots must not be negative")
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > 5 {
		problems = append(problems, "rating must be within 0-5")
	}
	if !p.ProviderSize.Valid() {
		problems = append(problems, fmt.Sprintf("unknown provider size %q", p.ProviderSize))
	}
	if len(problems) > 0 {
		return apperrors.NewValidationError(strings.Join(problems, "; "))
	}
	return nil
}
