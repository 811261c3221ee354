package entities

import (
	"time"
)

// CapacityLevel is a provider's self-reported intake capacity
type CapacityLevel string

const (
	CapacityLow    CapacityLevel = "low"
	CapacityMedium CapacityLevel = "medium"
	CapacityHigh   CapacityLevel = "high"
)

// Valid reports whether c is one of the known capacity levels
func (c CapacityLevel) Valid() bool {
	switch c {
	case CapacityLow, CapacityMedium, CapacityHigh:
		return true
	}
	return false
}

// Provider is a service-delivery organization profile
type Provider struct {
	ID                    string        `json:"id" db:"id"`
	Name                  string        `json:"name" db:"name"`
	ServiceTypes          []string      `json:"serviceTypes" db:"service_types"`
	CountiesServed        []string      `json:"countiesServed" db:"counties_served"`
	InsuranceAccepted     []string      `json:"insuranceAccepted" db:"insurance_accepted"`
	LanguagesSpoken       []string      `json:"languagesSpoken" db:"languages_spoken"`
	AccessibilityFeatures []string      `json:"accessibilityFeatures" db:"accessibility_features"`
	Capacity              CapacityLevel `json:"capacity" db:"capacity"`
	AvailableSlots        int           `json:"availableSlots" db:"available_slots"`
	Rating                float64       `json:"rating" db:"rating"`
	Distance              *float64      `json:"distance,omitempty" db:"-"`
	ProviderSize          ProviderSize  `json:"providerSize,omitempty" db:"provider_size"`
	IsActive              bool          `json:"isActive" db:"is_active"`
	CreatedAt             time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time     `json:"updatedAt" db:"updated_at"`
}

// EffectiveCapacity applies the slot invariant: zero open slots means low
// capacity no matter what label the provider stored.
func (p *Provider) EffectiveCapacity() CapacityLevel {
	if p.AvailableSlots <= 0 {
		return CapacityLow
	}
	return p.Capacity
}

// PrimaryService returns the first listed service type, if any
func (p *Provider) PrimaryService() string {
	if len(p.ServiceTypes) == 0 {
		return ""
	}
	return p.ServiceTypes[0]
}
