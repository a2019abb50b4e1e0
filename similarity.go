package fundwatch

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer scores the similarity of two instrument names, from 0 (unrelated) to 100 (identical).
type Scorer interface {
	Score(a, b string) int
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(a, b string) int

func (f ScorerFunc) Score(a, b string) int { return f(a, b) }

// Ratio scores names with a normalized Levenshtein distance:
//
//	100 * (1 - distance / max(len(a), len(b)))
//
// rounded to the nearest integer. Names are case folded first.
var Ratio Scorer = ScorerFunc(ratio)

// TokenSortRatio is like Ratio, but words are sorted first, so that "Bank of India" and
// "India Bank of" are identical.
var TokenSortRatio Scorer = ScorerFunc(func(a, b string) int {
	return ratio(sortTokens(a), sortTokens(b))
})

func ratio(a, b string) int {
	a, b = foldName(a), foldName(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}

func sortTokens(s string) string {
	tokens := strings.Fields(foldName(s))
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// ScorerByName returns the scorer registered under name: "ratio" (the default when name is empty)
// or "token_sort".
func ScorerByName(name string) (Scorer, error) {
	switch strings.ToLower(name) {
	case "", "ratio":
		return Ratio, nil
	case "token_sort", "token-sort", "tokensort":
		return TokenSortRatio, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q (want ratio or token_sort)", name)
	}
}
