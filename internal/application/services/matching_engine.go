package services

import (
	"sort"

	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// MatchingEngine scores and ranks providers for a referral. It holds no state,
// does no I/O and is safe for concurrent use; callers supply a consistent
// snapshot of candidates per call and should pre-narrow very large pools.
type MatchingEngine struct{}

// NewMatchingEngine creates a matching engine
func NewMatchingEngine() *MatchingEngine {
	return &MatchingEngine{}
}

type scoredCandidate struct {
	result       entities.MatchResult
	availability float64
	rating       float64
}

// Match returns the eligible providers at or above the score threshold,
// best first, at most opts.MaxResults long. An empty pool yields an empty
// slice and no error.
func (e *MatchingEngine) Match(referral *entities.Referral, candidates []*entities.Provider, opts MatchOptions) ([]entities.MatchResult, error) {
	ranked, _, err := e.evaluate(referral, candidates, opts)
	if err != nil {
		return nil, err
	}
	return ranked, nil
}

// MatchWithTrace returns a result for every candidate. Ranked results come
// first in rank order, then eligible results that were cut by the threshold or
// result limit (Rank 0), then ineligible results with their rejection reasons
// ordered by provider id.
func (e *MatchingEngine) MatchWithTrace(referral *entities.Referral, candidates []*entities.Provider, opts MatchOptions) ([]entities.MatchResult, error) {
	_, trace, err := e.evaluate(referral, candidates, opts)
	if err != nil {
		return nil, err
	}
	return trace, nil
}

func (e *MatchingEngine) evaluate(referral *entities.Referral, candidates []*entities.Provider, opts MatchOptions) ([]entities.MatchResult, []entities.MatchResult, error) {
	ref, err := newReferralProfile(referral)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := opts.resolve()
	if err != nil {
		return nil, nil, err
	}

	eligible := make([]scoredCandidate, 0, len(candidates))
	rejected := make([]scoredCandidate, 0)

	for _, p := range candidates {
		c := e.score(ref, p, resolved)
		if c.result.Eligible {
			eligible = append(eligible, c)
		} else {
			rejected = append(rejected, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return rankBefore(eligible[i], eligible[j])
	})
	sort.SliceStable(rejected, func(i, j int) bool {
		return rejected[i].result.ProviderID < rejected[j].result.ProviderID
	})

	ranked := make([]entities.MatchResult, 0, min(len(eligible), resolved.maxResults))
	trace := make([]entities.MatchResult, 0, len(candidates))
	held := make([]entities.MatchResult, 0)

	for _, c := range eligible {
		if c.result.Score >= resolved.minScore && len(ranked) < resolved.maxResults {
			c.result.Rank = len(ranked) + 1
			ranked = append(ranked, c.result)
			trace = append(trace, c.result)
			continue
		}
		held = append(held, c.result)
	}
	trace = append(trace, held...)
	for _, c := range rejected {
		trace = append(trace, c.result)
	}

	return ranked, trace, nil
}

func (e *MatchingEngine) score(ref *referralProfile, p *entities.Provider, opts resolvedOptions) scoredCandidate {
	result := entities.MatchResult{
		ReferralID:       ref.id,
		RejectionReasons: []string{},
	}
	if p != nil {
		result.ProviderID = p.ID
	}

	prov, ok := newProviderProfile(p)
	if !ok {
		result.RejectionReasons = []string{entities.ReasonMalformedProviderRecord}
		return scoredCandidate{result: result}
	}

	if reasons := hardFilters(ref, prov, opts.requireAvailability); len(reasons) > 0 {
		result.RejectionReasons = reasons
		return scoredCandidate{result: result, rating: p.Rating}
	}

	subscores := scoreSubscores(ref, prov)
	result.Eligible = true
	result.Score = compositeScore(subscores, opts.weights)
	result.Subscores = roundSubscores(subscores)

	return scoredCandidate{
		result:       result,
		availability: subscores.Availability,
		rating:       p.Rating,
	}
}

// rankBefore orders by score, then availability, then rating (all descending),
// then provider id ascending.
func rankBefore(a, b scoredCandidate) bool {
	if a.result.Score != b.result.Score {
		return a.result.Score > b.result.Score
	}
	if a.availability != b.availability {
		return a.availability > b.availability
	}
	if a.rating != b.rating {
		return a.rating > b.rating
	}
	return a.result.ProviderID < b.result.ProviderID
}
