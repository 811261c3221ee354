package providers

import (
	"context"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// Notifier delivers referral events to whoever coordinates the referral
// outside this service (care coordinators, provider inboxes).
type Notifier interface {
	Notify(ctx context.Context, event *entities.ReferralEvent) error
}
