package entities

import (
	"fmt"
	"time"

	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

// Urgency is how quickly a referral needs a provider
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Valid reports whether u is one of the known urgency levels
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// ProviderSize is a coarse organization size used as a referral preference
type ProviderSize string

const (
	ProviderSizeSmall  ProviderSize = "small"
	ProviderSizeMedium ProviderSize = "medium"
	ProviderSizeLarge  ProviderSize = "large"
)

// Valid reports whether s is empty or one of the known sizes
func (s ProviderSize) Valid() bool {
	switch s {
	case "", ProviderSizeSmall, ProviderSizeMedium, ProviderSizeLarge:
		return true
	}
	return false
}

// ReferralStatus is the lifecycle state of a referral
type ReferralStatus string

const (
	ReferralStatusPending    ReferralStatus = "pending"
	ReferralStatusMatched    ReferralStatus = "matched"
	ReferralStatusSelected   ReferralStatus = "selected"
	ReferralStatusInProgress ReferralStatus = "in_progress"
	ReferralStatusCompleted  ReferralStatus = "completed"
	ReferralStatusBlocked    ReferralStatus = "blocked"
	ReferralStatusRejected   ReferralStatus = "rejected"
)

// referralTransitions lists the states reachable from each state. A selected
// referral falls back to matched when the provider declines.
var referralTransitions = map[ReferralStatus][]ReferralStatus{
	ReferralStatusPending:    {ReferralStatusMatched},
	ReferralStatusMatched:    {ReferralStatusMatched, ReferralStatusSelected},
	ReferralStatusSelected:   {ReferralStatusMatched, ReferralStatusInProgress, ReferralStatusBlocked, ReferralStatusRejected},
	ReferralStatusInProgress: {ReferralStatusCompleted, ReferralStatusBlocked, ReferralStatusRejected},
}

// Valid reports whether s is a known status
func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusMatched, ReferralStatusSelected, ReferralStatusInProgress,
		ReferralStatusCompleted, ReferralStatusBlocked, ReferralStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible
func (s ReferralStatus) Terminal() bool {
	return len(referralTransitions[s]) == 0
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
func (s ReferralStatus) CanTransitionTo(next ReferralStatus) bool {
	for _, allowed := range referralTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Referral is a request for a service on behalf of a client
type Referral struct {
	ID                     string         `json:"id" db:"id"`
	ServiceType            string         `json:"serviceType" db:"service_type"`
	Urgency                Urgency        `json:"urgency" db:"urgency"`
	Counties               []string       `json:"counties" db:"counties"`
	InsuranceRequired      []string       `json:"insuranceRequired" db:"insurance_required"`
	LanguagesRequired      []string       `json:"languagesRequired" db:"languages_required"`
	AccessibilityNeeds     []string       `json:"accessibilityNeeds" db:"accessibility_needs"`
	ProviderSizePreference ProviderSize   `json:"providerSizePreference,omitempty" db:"provider_size_preference"`
	Status                 ReferralStatus `json:"status" db:"status"`
	CreatedBy              string         `json:"createdBy,omitempty" db:"created_by"`
	Notes                  string         `json:"notes,omitempty" db:"notes"`
	CreatedAt              time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time      `json:"updatedAt" db:"updated_at"`
}

// EffectiveUrgency returns the urgency, defaulting to medium when unset
func (r *Referral) EffectiveUrgency() Urgency {
	if r.Urgency == "" {
		return UrgencyMedium
	}
	return r.Urgency
}

// StatusTransitionError reports a lifecycle move the state machine forbids
type StatusTransitionError struct {
	From ReferralStatus
	To   ReferralStatus
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("referral cannot move from %s to %s", e.From, e.To)
}

// Unwrap classifies the error as a conflict for callers using apperrors
func (e *StatusTransitionError) Unwrap() error {
	return apperrors.NewConflictError(e.Error())
}
