package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zatekoja/referralcoordination/backend/internal/application/services"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

type runFlags struct {
	referralPath  string
	providersPath string
	trace         bool
	table         bool
	maxResults    int
	minScore      int
	ignoreSlots   bool
	weights       map[string]string
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match one referral against a provider file",
		Long: `Runs the matching engine offline. The referral file holds one referral
object, the providers file an array of providers. Options default to the
referral's urgency policy; any option flag switches to explicit options.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.referralPath, "referral", "r", "", "path to referral JSON")
	cmd.Flags().StringVarP(&f.providersPath, "providers", "p", "", "path to providers JSON array")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "include held and rejected providers with reasons")
	cmd.Flags().BoolVar(&f.table, "table", false, "print a table instead of JSON")
	cmd.Flags().IntVarP(&f.maxResults, "max-results", "n", 0, "maximum ranked results")
	cmd.Flags().IntVar(&f.minScore, "min-score", 0, "minimum composite score (0-100)")
	cmd.Flags().BoolVar(&f.ignoreSlots, "ignore-availability", false, "keep providers with no open slots")
	cmd.Flags().StringToStringVarP(&f.weights, "weight", "w", nil, "weight override, e.g. service=0.5")
	_ = cmd.MarkFlagRequired("referral")
	_ = cmd.MarkFlagRequired("providers")

	return cmd
}

func runMatch(cmd *cobra.Command, f *runFlags) error {
	var referral entities.Referral
	if err := readJSON(f.referralPath, &referral); err != nil {
		return err
	}
	var candidates []*entities.Provider
	if err := readJSON(f.providersPath, &candidates); err != nil {
		return err
	}

	opts, err := optionsFromFlags(cmd, f, &referral)
	if err != nil {
		return err
	}

	engine := services.NewMatchingEngine()
	var results []entities.MatchResult
	if f.trace {
		results, err = engine.MatchWithTrace(&referral, candidates, opts)
	} else {
		results, err = engine.Match(&referral, candidates, opts)
	}
	if err != nil {
		return err
	}

	if f.table {
		return writeTable(cmd.OutOrStdout(), results)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// optionsFromFlags falls back to the urgency policy unless an option flag
// was given
func optionsFromFlags(cmd *cobra.Command, f *runFlags, referral *entities.Referral) (services.MatchOptions, error) {
	flags := cmd.Flags()
	if !flags.Changed("max-results") && !flags.Changed("min-score") &&
		!flags.Changed("ignore-availability") && !flags.Changed("weight") {
		return services.OptionsForUrgency(referral.EffectiveUrgency()), nil
	}

	opts := services.MatchOptions{
		MaxResults:          f.maxResults,
		MinScoreThreshold:   f.minScore,
		RequireAvailability: services.Bool(!f.ignoreSlots),
	}
	if len(f.weights) > 0 {
		opts.WeightOverrides = make(map[services.Criterion]float64, len(f.weights))
		for name, raw := range f.weights {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return opts, fmt.Errorf("weight %s: %q is not a number", name, raw)
			}
			opts.WeightOverrides[services.Criterion(name)] = v
		}
	}
	return opts, nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeTable(out io.Writer, results []entities.MatchResult) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPROVIDER\tSCORE\tSERVICE\tLOC/INS\tAVAIL\tPREF\tREASONS")
	for _, r := range results {
		rank := "-"
		if r.Rank > 0 {
			rank = strconv.Itoa(r.Rank)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			rank,
			r.ProviderID,
			r.Score,
			r.Subscores.Service,
			r.Subscores.LocationInsurance,
			r.Subscores.Availability,
			r.Subscores.Preference,
			strings.Join(r.RejectionReasons, ","),
		)
	}
	return tw.Flush()
}
