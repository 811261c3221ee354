package repositories

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// MatchRepository persists ranked match results per referral
type MatchRepository interface {
	// SaveRun replaces the referral's previous unselected matches with the
	// records of a new run, in one transaction
	SaveRun(ctx context.Context, referralID, runID string, records []*entities.MatchRecord) error

	// ListByReferral returns the referral's persisted matches in rank order
	ListByReferral(ctx context.Context, referralID string) ([]*entities.MatchRecord, error)

	// GetByReferralAndProvider returns one persisted match
	GetByReferralAndProvider(ctx context.Context, referralID, providerID string) (*entities.MatchRecord, error)

	// MarkSelected flags the provider's match as the selected one
	MarkSelected(ctx context.Context, referralID, providerID string) error

	// RecordResponse stores the provider's answer to a selection
	RecordResponse(ctx context.Context, referralID, providerID string, response entities.ProviderResponse, note string) error
}
