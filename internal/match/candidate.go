package match

import (
	"cmp"
	"slices"
	"strings"

	"workflow-mapper/internal/extract"
	"workflow-mapper/internal/schema"
)

// Candidate is a scored schema field suggestion for one source field.
type Candidate struct {
	Field schema.Field

	// Scoring components
	NameScore  float64
	TypeCompat TypeCompatibilityResult

	// Combined score for ranking (higher is better)
	CombinedScore float64
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Confidence thresholds for presenting suggestions.
const (
	// DefaultMinScore is the minimum combined score worth suggesting.
	DefaultMinScore = 0.6
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)

// Rank scores every candidate against the source descriptor and returns them
// sorted by combined score (descending), then field name.
func Rank(source extract.Descriptor, candidates schema.Fields) CandidateList {
	out := make(CandidateList, 0, len(candidates))
	name := source.Name()

	for _, f := range candidates {
		if f.IsCustom() {
			continue
		}

		compat := ScoreTypeCompatibility(source.Type, f.Type)
		if source.IsArray != f.IsArray && compat.Compatibility > TypeNeedsTransform {
			compat.Compatibility = TypeNeedsTransform
			compat.Reason = "array cardinality differs"
		}

		nameScore := NameScore(name, f.Name)
		out = append(out, Candidate{
			Field:         f,
			NameScore:     nameScore,
			TypeCompat:    compat,
			CombinedScore: combinedScore(nameScore, compat.Compatibility),
		})
	}

	slices.SortFunc(out, byScore)

	return out
}

// combinedScore weights name similarity at 70% and type fit at 30%.
func combinedScore(nameScore float64, compat TypeCompatibility) float64 {
	const (
		nameWeight = 0.7
		typeWeight = 0.3
	)

	var typeScore float64

	switch compat {
	case TypeIdentical:
		typeScore = 1.0
	case TypeConvertible:
		typeScore = 0.7
	case TypeNeedsTransform:
		typeScore = 0.3
	case TypeIncompatible:
		typeScore = 0.0
	}

	return nameScore*nameWeight + typeScore*typeWeight
}

// byScore orders candidates by combined score, best first; ties fall back to
// the field name so rankings are stable across runs.
func byScore(a, b Candidate) int {
	if c := cmp.Compare(b.CombinedScore, a.CombinedScore); c != 0 {
		return c
	}

	return strings.Compare(a.Field.Name, b.Field.Name)
}

// Top returns at most n candidates from the head of the list.
func (c CandidateList) Top(n int) CandidateList {
	return c[:min(max(n, 0), len(c))]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold keeps the candidates scoring at least threshold. The list is
// sorted, so this is a prefix.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	n := 0
	for n < len(c) && c[n].CombinedScore >= threshold {
		n++
	}

	return c[:n]
}

// IsAmbiguous returns true if the top two candidates are within the threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].CombinedScore-c[1].CombinedScore < threshold
}

// Names returns the candidate field names in rank order.
func (c CandidateList) Names() []string {
	out := make([]string, len(c))
	for i, cand := range c {
		out[i] = cand.Field.Name
	}

	return out
}
