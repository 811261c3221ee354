package evaluation

import (
	"time"

	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

// GoldenSet is a provider pool plus labeled referrals matched against it
type GoldenSet struct {
	Providers []*entities.Provider `json:"providers"`
	Cases     []GoldenCase         `json:"cases"`
}

// GoldenCase is one labeled referral. Relevant lists the providers a
// coordinator would want to see, best first.
type GoldenCase struct {
	ID       string                 `json:"id"`
	Referral entities.Referral      `json:"referral"`
	Options  *services.MatchOptions `json:"options,omitempty"`
	Relevant []string               `json:"relevant"`
	// Pool restricts the case to these provider ids; empty means the whole set
	Pool       []string `json:"pool,omitempty"`
	Difficulty string   `json:"difficulty"` // easy, medium, hard
}

// CaseResult holds the outcome for a single case
type CaseResult struct {
	CaseID    string           `json:"caseId"`
	Urgency   entities.Urgency `json:"urgency"`
	Recall    float64          `json:"recall"`
	MRR       float64          `json:"mrr"`
	NDCG      float64          `json:"ndcg"`
	RankedIDs []string         `json:"rankedIds"`
	Latency   time.Duration    `json:"latency"`
	Error     string           `json:"error,omitempty"`
}

// Summary holds aggregate metrics across all cases. Metrics are @K.
type Summary struct {
	K             int                                  `json:"k"`
	TotalCases    int                                  `json:"totalCases"`
	CasesWithHits int                                  `json:"casesWithHits"`
	FailedCases   int                                  `json:"failedCases"`
	AvgRecall     float64                              `json:"avgRecall"`
	AvgMRR        float64                              `json:"avgMrr"`
	AvgNDCG       float64                              `json:"avgNdcg"`
	AvgLatency    time.Duration                        `json:"avgLatency"`
	ByUrgency     map[entities.Urgency]*UrgencySummary `json:"byUrgency"`
	Cases         []CaseResult                         `json:"cases"`
}

// UrgencySummary holds metrics grouped by referral urgency
type UrgencySummary struct {
	Count     int     `json:"count"`
	AvgRecall float64 `json:"avgRecall"`
	AvgMRR    float64 `json:"avgMrr"`
	AvgNDCG   float64 `json:"avgNdcg"`
}
