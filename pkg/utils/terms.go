package utils

import (
	"sort"
	"strings"
)

// NormalizeTerm lower-cases a taxonomy value and collapses inner whitespace so
// "Mental  Health Therapy " and "mental health therapy" compare equal.
func NormalizeTerm(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}

// CleanTerms trims values, drops blanks and removes case-insensitive duplicates.
// The first spelling of each term wins and input order is kept.
func CleanTerms(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := NormalizeTerm(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.Join(strings.Fields(v), " "))
	}
	return out
}

// TermSet is a set of normalized terms
type TermSet map[string]struct{}

// NewTermSet builds a set from raw values, normalizing each one
func NewTermSet(values []string) TermSet {
	set := make(TermSet, len(values))
	for _, v := range values {
		if key := NormalizeTerm(v); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the normalized value is in the set
func (s TermSet) Contains(value string) bool {
	_, ok := s[NormalizeTerm(value)]
	return ok
}

// Overlap returns how many members of s are also in other
func (s TermSet) Overlap(other TermSet) int {
	n := 0
	for k := range s {
		if _, ok := other[k]; ok {
			n++
		}
	}
	return n
}

// SubsetOf reports whether every member of s is in other
func (s TermSet) SubsetOf(other TermSet) bool {
	return s.Overlap(other) == len(s)
}

// Sorted returns the members in ascending order
func (s TermSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NormalizeIdentifier converts a string to a snake_case identifier
func NormalizeIdentifier(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	lastUnderscore := false
	for _, ch := range trimmed {
		isAlphaNum := (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
		if isAlphaNum {
			b.WriteRune(ch)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}
