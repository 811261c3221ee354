package services

import (
	"math"
	"strings"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
	"github.com/zatekoja/referralcoordination/backend/pkg/utils"
)

const (
	primaryServiceScore   = 100.0
	secondaryServiceScore = 70.0
	countyFullCoverage    = 100.0
	countyPartialCoverage = 60.0
	sizePreferenceBonus   = 10.0
)

var capacityScores = map[entities.CapacityLevel]float64{
	entities.CapacityHigh:   100,
	entities.CapacityMedium: 60,
	entities.CapacityLow:    20,
}

// referralProfile is the normalized view of a referral, built once per call
type referralProfile struct {
	id            string
	serviceType   string
	counties      utils.TermSet
	insurance     utils.TermSet
	languages     utils.TermSet
	accessibility utils.TermSet
	sizePref      entities.ProviderSize
}

func newReferralProfile(r *entities.Referral) (*referralProfile, error) {
	if r == nil {
		return nil, &InvalidReferralError{Problems: []string{"referral is required"}}
	}

	profile := &referralProfile{
		id:            r.ID,
		serviceType:   utils.NormalizeTerm(r.ServiceType),
		counties:      utils.NewTermSet(r.Counties),
		insurance:     utils.NewTermSet(r.InsuranceRequired),
		languages:     utils.NewTermSet(r.LanguagesRequired),
		accessibility: utils.NewTermSet(r.AccessibilityNeeds),
		sizePref:      r.ProviderSizePreference,
	}

	var problems []string
	if profile.serviceType == "" {
		problems = append(problems, "serviceType is required")
	}
	if len(profile.counties) == 0 {
		problems = append(problems, "at least one county is required")
	}
	if len(problems) > 0 {
		return nil, &InvalidReferralError{ReferralID: r.ID, Problems: problems}
	}

	return profile, nil
}

// providerProfile is the normalized view of one candidate
type providerProfile struct {
	provider      *entities.Provider
	services      utils.TermSet
	primary       string
	counties      utils.TermSet
	insurance     utils.TermSet
	languages     utils.TermSet
	accessibility utils.TermSet
}

func newProviderProfile(p *entities.Provider) (*providerProfile, bool) {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return nil, false
	}
	if p.AvailableSlots < 0 || !p.Capacity.Valid() {
		return nil, false
	}
	if math.IsNaN(p.Rating) || p.Rating < 0 || p.Rating > 5 {
		return nil, false
	}

	profile := &providerProfile{
		provider:      p,
		services:      utils.NewTermSet(p.ServiceTypes),
		primary:       utils.NormalizeTerm(p.PrimaryService()),
		counties:      utils.NewTermSet(p.CountiesServed),
		insurance:     utils.NewTermSet(p.InsuranceAccepted),
		languages:     utils.NewTermSet(p.LanguagesSpoken),
		accessibility: utils.NewTermSet(p.AccessibilityFeatures),
	}
	if len(profile.services) == 0 || len(profile.counties) == 0 || profile.primary == "" {
		return nil, false
	}

	return profile, true
}

// hardFilters returns every rejection reason that applies, in a fixed order
func hardFilters(ref *referralProfile, prov *providerProfile, requireAvailability bool) []string {
	reasons := make([]string, 0)

	if _, ok := prov.services[ref.serviceType]; !ok {
		reasons = append(reasons, entities.ReasonServiceNotOffered)
	}
	if ref.counties.Overlap(prov.counties) == 0 {
		reasons = append(reasons, entities.ReasonCountyNotServed)
	}
	if requireAvailability &&
		prov.provider.EffectiveCapacity() == entities.CapacityLow &&
		prov.provider.AvailableSlots == 0 {
		reasons = append(reasons, entities.ReasonNoAvailability)
	}
	if len(ref.insurance) > 0 && ref.insurance.Overlap(prov.insurance) == 0 {
		reasons = append(reasons, entities.ReasonInsuranceMismatch)
	}

	return reasons
}

func scoreSubscores(ref *referralProfile, prov *providerProfile) entities.Subscores {
	return entities.Subscores{
		Service:           serviceScore(ref, prov),
		LocationInsurance: locationInsuranceScore(ref, prov),
		Availability:      availabilityScore(prov.provider),
		Preference:        preferenceScore(ref, prov),
	}
}

func serviceScore(ref *referralProfile, prov *providerProfile) float64 {
	if prov.primary == ref.serviceType {
		return primaryServiceScore
	}
	return secondaryServiceScore
}

func locationInsuranceScore(ref *referralProfile, prov *providerProfile) float64 {
	insurance := overlapRatio(ref.insurance, prov.insurance)

	county := countyPartialCoverage
	if ref.counties.SubsetOf(prov.counties) {
		county = countyFullCoverage
	}

	return (insurance + county) / 2
}

func availabilityScore(p *entities.Provider) float64 {
	if p.AvailableSlots == 0 {
		return 0
	}
	return capacityScores[p.EffectiveCapacity()]
}

func preferenceScore(ref *referralProfile, prov *providerProfile) float64 {
	score := (overlapRatio(ref.languages, prov.languages) + overlapRatio(ref.accessibility, prov.accessibility)) / 2

	if ref.sizePref != "" && prov.provider.ProviderSize == ref.sizePref {
		score += sizePreferenceBonus
	}

	return math.Min(score, 100)
}

// overlapRatio is the share of required terms the provider covers, as 0-100.
// Nothing required counts as full coverage.
func overlapRatio(required, offered utils.TermSet) float64 {
	if len(required) == 0 {
		return 100
	}
	return float64(required.Overlap(offered)) / float64(len(required)) * 100
}

func compositeScore(s entities.Subscores, w Weights) int {
	total := w[CriterionService]*s.Service +
		w[CriterionLocationInsurance]*s.LocationInsurance +
		w[CriterionAvailability]*s.Availability +
		w[CriterionPreference]*s.Preference

	score := int(math.Round(total))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func roundSubscores(s entities.Subscores) entities.Subscores {
	return entities.Subscores{
		Service:           round2(s.Service),
		LocationInsurance: round2(s.LocationInsurance),
		Availability:      round2(s.Availability),
		Preference:        round2(s.Preference),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
