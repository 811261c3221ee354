package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/evaluation"
)

func newEvalCmd() *cobra.Command {
	var (
		goldenPath string
		k          int
		thresholds evaluation.Thresholds
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score the matching engine against a golden set",
		Long: `Runs every labeled referral in the golden set through the engine and
prints recall, MRR and NDCG at k as JSON. Exits non-zero when a --min-*
threshold is missed, so it can gate scoring changes in CI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := evaluation.LoadGoldenSet(goldenPath)
			if err != nil {
				return err
			}

			summary, err := evaluation.NewRunner(services.NewMatchingEngine(), k).Run(cmd.Context(), set)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return err
			}

			if violations := thresholds.Check(summary); len(violations) > 0 {
				return fmt.Errorf("golden set below thresholds: %s", strings.Join(violations, "; "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&goldenPath, "golden", "g", "", "path to golden set JSON")
	cmd.Flags().IntVarP(&k, "top-k", "k", evaluation.DefaultK, "rank cutoff for metrics")
	cmd.Flags().Float64Var(&thresholds.MinRecall, "min-recall", 0, "fail below this average recall")
	cmd.Flags().Float64Var(&thresholds.MinMRR, "min-mrr", 0, "fail below this average MRR")
	cmd.Flags().Float64Var(&thresholds.MinNDCG, "min-ndcg", 0, "fail below this average NDCG")
	cmd.Flags().IntVar(&thresholds.MaxFailed, "max-failed", 0, "cases allowed to error")
	_ = cmd.MarkFlagRequired("golden")

	return cmd
}
