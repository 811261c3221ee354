package evaluation

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// DefaultK is the cutoff used when a runner is built with k <= 0
const DefaultK = 10

// Runner scores the matching engine against a golden set
type Runner struct {
	engine *services.MatchingEngine
	k      int
}

// NewRunner creates a runner that measures the top k results
func NewRunner(engine *services.MatchingEngine, k int) *Runner {
	if k <= 0 {
		k = DefaultK
	}
	return &Runner{engine: engine, k: k}
}

// Run matches every case. A case whose options are rejected counts as failed
// and scores zero; it does not stop the run.
func (r *Runner) Run(ctx context.Context, set *GoldenSet) (*Summary, error) {
	summary := &Summary{
		K:          r.k,
		TotalCases: len(set.Cases),
		ByUrgency:  make(map[entities.Urgency]*UrgencySummary),
		Cases:      make([]CaseResult, 0, len(set.Cases)),
	}

	byID := make(map[string]*entities.Provider, len(set.Providers))
	for _, p := range set.Providers {
		byID[p.ID] = p
	}

	for i := range set.Cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := r.runCase(&set.Cases[i], set.Providers, byID)
		summary.add(result)
	}

	summary.finalize()
	return summary, nil
}

func (r *Runner) runCase(gc *GoldenCase, all []*entities.Provider, byID map[string]*entities.Provider) CaseResult {
	referral := gc.Referral
	urgency := referral.EffectiveUrgency()

	pool := all
	if len(gc.Pool) > 0 {
		pool = make([]*entities.Provider, 0, len(gc.Pool))
		for _, id := range gc.Pool {
			pool = append(pool, byID[id])
		}
	}

	opts := services.OptionsForUrgency(urgency)
	if gc.Options != nil {
		opts = *gc.Options
	}

	start := time.Now()
	ranked, err := r.engine.Match(&referral, pool, opts)
	result := CaseResult{
		CaseID:  gc.ID,
		Urgency: urgency,
		Latency: time.Since(start),
	}
	if err != nil {
		log.Warn().Err(err).Str("case_id", gc.ID).Msg("Golden case failed")
		result.Error = err.Error()
		result.RankedIDs = []string{}
		return result
	}

	result.RankedIDs = make([]string, len(ranked))
	for i, m := range ranked {
		result.RankedIDs[i] = m.ProviderID
	}
	result.Recall = RecallAtK(gc.Relevant, result.RankedIDs, r.k)
	result.MRR = MRRAtK(gc.Relevant, result.RankedIDs, r.k)
	result.NDCG = NDCGAtK(gc.Relevant, result.RankedIDs, r.k)
	return result
}

func (s *Summary) add(res CaseResult) {
	s.Cases = append(s.Cases, res)
	s.AvgRecall += res.Recall
	s.AvgMRR += res.MRR
	s.AvgNDCG += res.NDCG
	s.AvgLatency += res.Latency
	if res.Error != "" {
		s.FailedCases++
	}
	if len(res.RankedIDs) > 0 {
		s.CasesWithHits++
	}

	us, ok := s.ByUrgency[res.Urgency]
	if !ok {
		us = &UrgencySummary{}
		s.ByUrgency[res.Urgency] = us
	}
	us.Count++
	us.AvgRecall += res.Recall
	us.AvgMRR += res.MRR
	us.AvgNDCG += res.NDCG
}

func (s *Summary) finalize() {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.AvgRecall /= n
		s.AvgMRR /= n
		s.AvgNDCG /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}
	for _, us := range s.ByUrgency {
		if us.Count > 0 {
			n := float64(us.Count)
			us.AvgRecall /= n
			us.AvgMRR /= n
			us.AvgNDCG /= n
		}
	}
}
