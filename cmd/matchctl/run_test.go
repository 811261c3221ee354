package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/referralcoordination/backend/internal/domain/entities"
)

func writeFixture(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func fixtures(t *testing.T) (string, string) {
	dir := t.TempDir()
	referral := writeFixture(t, dir, "referral.json", entities.Referral{
		ID:          "ref-1",
		ServiceType: "Housing Assistance",
		Urgency:     entities.UrgencyLow,
		Counties:    []string{"Ramsey"},
	})
	provider := func(id string, slots int, county string) entities.Provider {
		return entities.Provider{
			ID:             id,
			Name:           "Provider " + id,
			ServiceTypes:   []string{"Housing Assistance"},
			CountiesServed: []string{county},
			Capacity:       entities.CapacityMedium,
			AvailableSlots: slots,
			Rating:         4,
			IsActive:       true,
		}
	}
	providers := writeFixture(t, dir, "providers.json", []entities.Provider{
		provider("p-open", 4, "Ramsey"),
		provider("p-full", 0, "Ramsey"),
		provider("p-away", 4, "Dakota"),
	})
	return referral, providers
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand_UrgencyPolicy(t *testing.T) {
	referral, providers := fixtures(t)

	out, err := execute(t, "run", "-r", referral, "-p", providers)
	require.NoError(t, err)

	var results []entities.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "p-open", results[0].ProviderID)
}

func TestRunCommand_TraceWithExplicitOptions(t *testing.T) {
	referral, providers := fixtures(t)

	out, err := execute(t, "run", "-r", referral, "-p", providers, "--trace", "--ignore-availability")
	require.NoError(t, err)

	var results []entities.MatchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.True(t, results[0].Eligible)
	assert.True(t, results[1].Eligible)
	assert.False(t, results[2].Eligible)
	assert.Equal(t, "p-away", results[2].ProviderID)
}

func TestRunCommand_Table(t *testing.T) {
	referral, providers := fixtures(t)

	out, err := execute(t, "run", "-r", referral, "-p", providers, "--table")
	require.NoError(t, err)

	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "p-open")
}

func TestRunCommand_Errors(t *testing.T) {
	referral, providers := fixtures(t)

	_, err := execute(t, "run", "-r", referral)
	assert.Error(t, err, "providers flag is required")

	_, err = execute(t, "run", "-r", referral, "-p", providers, "-w", "service=lots")
	assert.ErrorContains(t, err, "is not a number")

	_, err = execute(t, "run", "-r", referral, "-p", providers, "-w", "distance=0.5")
	assert.ErrorContains(t, err, "unknown weight criteria")

	_, err = execute(t, "run", "-r", filepath.Join(t.TempDir(), "missing.json"), "-p", providers)
	assert.ErrorContains(t, err, "failed to read")
}
