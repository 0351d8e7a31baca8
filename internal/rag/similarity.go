package rag

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
)

// Similarity scores how alike two strings are, from 0 (unrelated) to 1
// (identical). Implementations must be deterministic.
type Similarity interface {
	Score(candidate, query string) float64
}

// SimilarityFunc adapts a plain function to the Similarity interface.
type SimilarityFunc func(candidate, query string) float64

// Score calls f(candidate, query).
func (f SimilarityFunc) Score(candidate, query string) float64 {
	return f(candidate, query)
}

// SequenceRatio is the Ratcliff/Obershelp "gestalt" ratio computed over
// runes: twice the number of matching characters divided by the total
// length of both strings.
type SequenceRatio struct{}

// Score implements Similarity.
func (SequenceRatio) Score(candidate, query string) float64 {
	m := difflib.NewMatcher(splitRunes(candidate), splitRunes(query))
	return m.Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// TokenOverlap is the Jaccard index of the whitespace-separated tokens of
// both strings.
type TokenOverlap struct{}

// Score implements Similarity.
func (TokenOverlap) Score(candidate, query string) float64 {
	a := tokenSet(candidate)
	b := tokenSet(query)
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// ErrUnknownSimilarity is returned by SimilarityByName for unsupported names.
var ErrUnknownSimilarity = errors.New("unknown similarity")

// SimilarityByName resolves a configured scorer name: "sequence" or "tokens".
func SimilarityByName(name string) (Similarity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequence":
		return SequenceRatio{}, nil
	case "tokens":
		return TokenOverlap{}, nil
	default:
		return nil, errors.WithHint(
			errors.Wrapf(ErrUnknownSimilarity, "%q", name),
			"supported values are \"sequence\" and \"tokens\"")
	}
}
