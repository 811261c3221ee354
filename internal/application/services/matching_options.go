package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "github.com/zatekoja/referralcoordination/backend/pkg/errors"
)

// Criterion names one component of the composite match score
type Criterion string

const (
	CriterionService           Criterion = "service"
	CriterionLocationInsurance Criterion = "locationInsurance"
	CriterionAvailability      Criterion = "availability"
	CriterionPreference        Criterion = "preference"
)

// DefaultMaxResults is used when MatchOptions.MaxResults is left at zero
const DefaultMaxResults = 50

var criteria = []Criterion{
	CriterionService,
	CriterionLocationInsurance,
	CriterionAvailability,
	CriterionPreference,
}

// Weights maps each criterion to its share of the composite score. Resolved
// weights always sum to 1.
type Weights map[Criterion]float64

// DefaultWeights returns the stock criterion weights
func DefaultWeights() Weights {
	return Weights{
		CriterionService:           0.35,
		CriterionLocationInsurance: 0.30,
		CriterionAvailability:      0.20,
		CriterionPreference:        0.15,
	}
}

// MatchOptions tunes a single matching call. The zero value means defaults:
// 50 results, no score floor, stock weights and availability required.
type MatchOptions struct {
	MaxResults          int                   `json:"maxResults,omitempty"`
	MinScoreThreshold   int                   `json:"minScoreThreshold,omitempty"`
	WeightOverrides     map[Criterion]float64 `json:"weightOverrides,omitempty"`
	RequireAvailability *bool                 `json:"requireAvailability,omitempty"`
}

// DefaultMatchOptions returns options with every field set to its default
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		MaxResults:          DefaultMaxResults,
		RequireAvailability: Bool(true),
	}
}

// Bool returns a pointer to v, for optional option fields
func Bool(v bool) *bool {
	return &v
}

type resolvedOptions struct {
	maxResults          int
	minScore            int
	weights             Weights
	requireAvailability bool
}

func (o MatchOptions) resolve() (resolvedOptions, error) {
	var problems []string

	maxResults := o.MaxResults
	switch {
	case maxResults < 0:
		problems = append(problems, fmt.Sprintf("maxResults must be at least 1, got %d", maxResults))
	case maxResults == 0:
		maxResults = DefaultMaxResults
	}

	if o.MinScoreThreshold < 0 || o.MinScoreThreshold > 100 {
		problems = append(problems, fmt.Sprintf("minScoreThreshold must be within 0-100, got %d", o.MinScoreThreshold))
	}

	weights, err := ResolveWeights(o.WeightOverrides)
	if err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return resolvedOptions{}, &InvalidOptionsError{Problems: problems}
	}

	requireAvailability := true
	if o.RequireAvailability != nil {
		requireAvailability = *o.RequireAvailability
	}

	return resolvedOptions{
		maxResults:          maxResults,
		minScore:            o.MinScoreThreshold,
		weights:             weights,
		requireAvailability: requireAvailability,
	}, nil
}

// ResolveWeights applies overrides on top of the default weights. Criteria
// that are not overridden share whatever budget the overrides leave, in
// proportion to their defaults. If the overrides alone reach or exceed 1 (or
// cover every criterion) they are scaled to sum to 1 and the rest drop to 0.
func ResolveWeights(overrides map[Criterion]float64) (Weights, error) {
	defaults := DefaultWeights()
	if len(overrides) == 0 {
		return defaults, nil
	}

	unknown := make([]string, 0)
	for c, v := range overrides {
		if _, ok := defaults[c]; !ok {
			unknown = append(unknown, string(c))
			continue
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("weight for %s must be a non-negative number", c)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown weight criteria: %s", strings.Join(unknown, ", "))
	}

	weights := make(Weights, len(criteria))
	overriddenSum := 0.0
	remainingDefault := 0.0
	for _, c := range criteria {
		if v, ok := overrides[c]; ok {
			weights[c] = v
			overriddenSum += v
		} else {
			remainingDefault += defaults[c]
		}
	}

	if overriddenSum >= 1 || remainingDefault == 0 {
		if overriddenSum == 0 {
			return nil, fmt.Errorf("weight overrides must not all be zero")
		}
		for _, c := range criteria {
			if _, ok := overrides[c]; ok {
				weights[c] = weights[c] / overriddenSum
			} else {
				weights[c] = 0
			}
		}
		return weights, nil
	}

	scale := (1 - overriddenSum) / remainingDefault
	for _, c := range criteria {
		if _, ok := overrides[c]; !ok {
			weights[c] = defaults[c] * scale
		}
	}
	return weights, nil
}

// InvalidReferralError reports a referral that is missing the fields matching
// needs. It is fatal to the call; nothing is retried.
type InvalidReferralError struct {
	ReferralID string
	Problems   []string
}

func (e *InvalidReferralError) Error() string {
	if e.ReferralID == "" {
		return "invalid referral: " + strings.Join(e.Problems, "; ")
	}
	return fmt.Sprintf("invalid referral %s: %s", e.ReferralID, strings.Join(e.Problems, "; "))
}

// Unwrap exposes the validation category to callers using apperrors
func (e *InvalidReferralError) Unwrap() error {
	return apperrors.NewValidationError(e.Error())
}

// InvalidOptionsError reports match options outside their allowed ranges
type InvalidOptionsError struct {
	Problems []string
}

func (e *InvalidOptionsError) Error() string {
	return "invalid match options: " + strings.Join(e.Problems, "; ")
}

// Unwrap exposes the validation category to callers using apperrors
func (e *InvalidOptionsError) Unwrap() error {
	return apperrors.NewValidationError(e.Error())
}
