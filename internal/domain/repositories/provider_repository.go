package repositories

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// ProviderRepository defines the interface for provider data operations
type ProviderRepository interface {
	// Create creates a new provider
	Create(ctx context.Context, provider *entities.Provider) error

	// GetByID retrieves a provider by ID
	GetByID(ctx context.Context, id string) (*entities.Provider, error)

	// GetByIDs retrieves multiple providers by their IDs. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error)

	// Update updates a provider
	Update(ctx context.Context, provider *entities.Provider) error

	// List retrieves providers with filters
	List(ctx context.Context, filter ProviderFilter) ([]*entities.Provider, error)

	// ListCandidates returns active providers that offer the service type and
	// serve at least one of the counties
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*entities.Provider, error)
}

// ProviderFilter defines filters for listing providers
type ProviderFilter struct {
	ServiceType string
	County      string
	IsActive    *bool
	Limit       int
	Offset      int
}

// CandidateFilter narrows the pool handed to the matching engine
type CandidateFilter struct {
	ServiceType string
	Counties    []string
	Limit       int
}
