package repositories

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// ReferralRepository defines the interface for referral data operations
type ReferralRepository interface {
	// Create creates a new referral
	Create(ctx context.Context, referral *entities.Referral) error

	// GetByID retrieves a referral by ID
	GetByID(ctx context.Context, id string) (*entities.Referral, error)

	// List retrieves referrals with filters, newest first
	List(ctx context.Context, filter ReferralFilter) ([]*entities.Referral, error)

	// UpdateStatus moves a referral from one status to another. It fails with
	// a conflict error when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to entities.ReferralStatus) error
}

// ReferralFilter defines filters for listing referrals
type ReferralFilter struct {
	Status      entities.ReferralStatus
	ServiceType string
	Limit       int
	Offset      int
}
