package providers

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// ProviderSearchIndex narrows the provider pool before matching
type ProviderSearchIndex interface {
	// InitSchema creates the collection if it does not exist
	InitSchema(ctx context.Context) error

	// Index upserts a provider document
	Index(ctx context.Context, provider *entities.Provider) error

	// Delete removes a provider document
	Delete(ctx context.Context, id string) error

	// CandidateIDs returns ids of active providers offering serviceType in any of counties
	CandidateIDs(ctx context.Context, serviceType string, counties []string, limit int) ([]string, error)
}
