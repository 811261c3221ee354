package evaluation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

func loadTestSet(t *testing.T) *GoldenSet {
	t.Helper()
	set, err := LoadGoldenSet(filepath.Join("testdata", "golden_set.json"))
	require.NoError(t, err)
	return set
}

func caseByID(t *testing.T, s *Summary, id string) CaseResult {
	t.Helper()
	for _, c := range s.Cases {
		if c.CaseID == id {
			return c
		}
	}
	t.Fatalf("case %s missing from summary", id)
	return CaseResult{}
}

func TestRunner_GoldenSet(t *testing.T) {
	set := loadTestSet(t)

	summary, err := NewRunner(services.NewMatchingEngine(), 0).Run(context.Background(), set)

	require.NoError(t, err)
	assert.Equal(t, DefaultK, summary.K)
	assert.Equal(t, 3, summary.TotalCases)
	assert.Equal(t, 3, summary.CasesWithHits)
	assert.Zero(t, summary.FailedCases)
	assert.InDelta(t, 1.0, summary.AvgRecall, 1e-9)
	assert.InDelta(t, 1.0, summary.AvgMRR, 1e-9)

	spanish := caseByID(t, summary, "therapy-spanish")
	assert.Equal(t, []string{"gold-a", "gold-b"}, spanish.RankedIDs)
	assert.InDelta(t, 1.0, spanish.NDCG, 1e-9)

	critical := caseByID(t, summary, "therapy-critical")
	assert.ElementsMatch(t, []string{"gold-a", "gold-b", "gold-c"}, critical.RankedIDs)
	assert.Equal(t, entities.UrgencyCritical, critical.Urgency)

	housing := caseByID(t, summary, "housing-ramsey")
	assert.Equal(t, []string{"gold-d"}, housing.RankedIDs)

	require.Contains(t, summary.ByUrgency, entities.UrgencyMedium)
	assert.Equal(t, 1, summary.ByUrgency[entities.UrgencyMedium].Count)
}

func TestRunner_InvalidOptionsCountAsFailed(t *testing.T) {
	set := loadTestSet(t)
	set.Cases[0].Options = &services.MatchOptions{MinScoreThreshold: 150}

	summary, err := NewRunner(services.NewMatchingEngine(), 5).Run(context.Background(), set)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.FailedCases)
	failed := caseByID(t, summary, "therapy-spanish")
	assert.NotEmpty(t, failed.Error)
	assert.Empty(t, failed.RankedIDs)
	assert.Zero(t, failed.Recall)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(services.NewMatchingEngine(), 10).Run(ctx, loadTestSet(t))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestThresholds_Check(t *testing.T) {
	summary := &Summary{K: 10, AvgRecall: 0.9, AvgMRR: 0.4, AvgNDCG: 0.7, FailedCases: 1}

	violations := Thresholds{MinRecall: 0.8, MinMRR: 0.5, MinNDCG: 0.6}.Check(summary)

	assert.Equal(t, []string{"mrr@10 0.400 below 0.500", "1 cases failed"}, violations)
	assert.Empty(t, Thresholds{MaxFailed: 1}.Check(summary))
}

func TestLoadGoldenSet_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"not json", `{`, "failed to parse"},
		{"duplicate provider", `{"providers":[{"id":"p"},{"id":"p"}]}`, "duplicate id"},
		{"unknown relevant provider", `{"providers":[{"id":"p"}],"cases":[{"id":"c","referral":{"serviceType":"x"},"relevant":["q"],"difficulty":"easy"}]}`, "unknown provider"},
		{"bad difficulty", `{"cases":[{"id":"c","referral":{"serviceType":"x"},"difficulty":"trivial"}]}`, "invalid difficulty"},
		{"missing service", `{"cases":[{"id":"c","referral":{},"difficulty":"easy"}]}`, "no service type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "golden.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadGoldenSet(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}

	_, err := LoadGoldenSet("/nonexistent/golden.json")
	assert.Error(t, err)
}
