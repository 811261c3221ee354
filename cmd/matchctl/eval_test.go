package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/evaluation"
)

var goldenSet = filepath.Join("..", "..", "internal", "evaluation", "testdata", "golden_set.json")

func TestEvalCommand(t *testing.T) {
	out, err := execute(t, "eval", "-g", goldenSet, "-k", "5", "--min-recall", "0.9")
	require.NoError(t, err)

	var summary evaluation.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 5, summary.K)
	assert.Equal(t, 3, summary.TotalCases)
	assert.InDelta(t, 1.0, summary.AvgRecall, 1e-9)
}

func TestEvalCommand_Thresholds(t *testing.T) {
	_, err := execute(t, "eval", "-g", goldenSet, "-k", "1", "--min-recall", "0.99")

	assert.ErrorContains(t, err, "below thresholds")
}

func TestEvalCommand_RequiresGolden(t *testing.T) {
	_, err := execute(t, "eval")

	assert.Error(t, err)
}
