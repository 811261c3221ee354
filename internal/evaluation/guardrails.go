package evaluation

import "fmt"

// Thresholds are the minimum averages a golden run must reach. Zero disables
// a check.
type Thresholds struct {
	MinRecall float64
	MinMRR    float64
	MinNDCG   float64
	// MaxFailed is how many cases may error out
	MaxFailed int
}

// Check returns one message per threshold the summary misses
func (t Thresholds) Check(s *Summary) []string {
	var violations []string
	if t.MinRecall > 0 && s.AvgRecall < t.MinRecall {
		violations = append(violations, fmt.Sprintf("recall@%d %.3f below %.3f", s.K, s.AvgRecall, t.MinRecall))
	}
	if t.MinMRR > 0 && s.AvgMRR < t.MinMRR {
		violations = append(violations, fmt.Sprintf("mrr@%d %.3f below %.3f", s.K, s.AvgMRR, t.MinMRR))
	}
	if t.MinNDCG > 0 && s.AvgNDCG < t.MinNDCG {
		violations = append(violations, fmt.Sprintf("ndcg@%d %.3f below %.3f", s.K, s.AvgNDCG, t.MinNDCG))
	}
	if s.FailedCases > t.MaxFailed {
		violations = append(violations, fmt.Sprintf("%d cases failed", s.FailedCases))
	}
	return violations
}
