package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// LoadGoldenSet reads and validates a golden set file
func LoadGoldenSet(path string) (*GoldenSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden set: %w", err)
	}

	var set GoldenSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse golden set: %w", err)
	}
	if err := ValidateGoldenSet(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// ValidateGoldenSet checks ids are unique and every case only names
// providers that exist in the pool
func ValidateGoldenSet(set *GoldenSet) error {
	known := make(map[string]struct{}, len(set.Providers))
	for i, p := range set.Providers {
		if p == nil || p.ID == "" {
			return fmt.Errorf("provider at index %d: missing id", i)
		}
		if _, dup := known[p.ID]; dup {
			return fmt.Errorf("provider at index %d: duplicate id %q", i, p.ID)
		}
		known[p.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(set.Cases))
	for i, c := range set.Cases {
		if c.ID == "" {
			return fmt.Errorf("case at index %d: missing id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("case at index %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = struct{}{}

		if c.Referral.ServiceType == "" {
			return fmt.Errorf("case %q: referral has no service type", c.ID)
		}
		if !validDifficulties[c.Difficulty] {
			return fmt.Errorf("case %q: invalid difficulty %q (must be easy/medium/hard)", c.ID, c.Difficulty)
		}
		for _, id := range append(append([]string{}, c.Relevant...), c.Pool...) {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("case %q: unknown provider %q", c.ID, id)
			}
		}
	}
	return nil
}
