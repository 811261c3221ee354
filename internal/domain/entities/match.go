package entities

import (
	"time"
)

// Rejection reasons attached to ineligible match results
const (
	ReasonServiceNotOffered       = "service_not_offered"
	ReasonCountyNotServed         = "county_not_served"
	ReasonNoAvailability          = "no_availability"
	ReasonInsuranceMismatch       = "insurance_mismatch"
	ReasonMalformedProviderRecord = "malformed_provider_record"
)

// Subscores holds the per-criterion scores, each normalized to 0-100
type Subscores struct {
	Service           float64 `json:"service"`
	LocationInsurance float64 `json:"locationInsurance"`
	Availability      float64 `json:"availability"`
	Preference        float64 `json:"preference"`
}

// MatchResult is the engine's verdict for one (referral, provider) pair
type MatchResult struct {
	ProviderID       string    `json:"providerId"`
	ReferralID       string    `json:"referralId"`
	Score            int       `json:"score"`
	Subscores        Subscores `json:"subscores"`
	Eligible         bool      `json:"eligible"`
	RejectionReasons []string  `json:"rejectionReasons"`
	Rank             int       `json:"rank,omitempty"`
}

// ProviderResponse is a provider's answer to being selected for a referral
type ProviderResponse string

const (
	ProviderResponseNone     ProviderResponse = ""
	ProviderResponseAccepted ProviderResponse = "accepted"
	ProviderResponseDeclined ProviderResponse = "declined"
)

// MatchRecord is a ranked match persisted by the referral-tracking side
type MatchRecord struct {
	ID           string           `json:"id" db:"id"`
	ReferralID   string           `json:"referralId" db:"referral_id"`
	ProviderID   string           `json:"providerId" db:"provider_id"`
	ProviderName string           `json:"providerName,omitempty" db:"-"`
	RunID        string           `json:"runId" db:"run_id"`
	Rank         int              `json:"rank" db:"rank"`
	Score        int              `json:"score" db:"score"`
	Subscores    Subscores        `json:"subscores" db:"-"`
	IsSelected   bool             `json:"isSelected" db:"is_selected"`
	Response     ProviderResponse `json:"response,omitempty" db:"response"`
	ResponseNote string           `json:"responseNote,omitempty" db:"response_note"`
	RespondedAt  *time.Time       `json:"respondedAt,omitempty" db:"responded_at"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
}

// NewMatchRecord converts a ranked engine result into a persistable record
func NewMatchRecord(id, runID string, result MatchResult, now time.Time) *MatchRecord {
	return &MatchRecord{
		ID:         id,
		ReferralID: result.ReferralID,
		ProviderID: result.ProviderID,
		RunID:      runID,
		Rank:       result.Rank,
		Score:      result.Score,
		Subscores:  result.Subscores,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
