package metrics

import "github.com/jamesainslie/go-cogs/lf"

// TokenEditDistance is the Levenshtein distance between the whitespace
// tokens of the gold and system strings. It works on the raw strings, so
// ill-formed predictions are scored too. The aggregate is the mean
// distance, not a proportion.
type TokenEditDistance struct{ mean }

// NewTokenEditDistance returns an empty TokenEditDistance.
func NewTokenEditDistance() *TokenEditDistance { return &TokenEditDistance{} }

func (*TokenEditDistance) Key() string          { return "token_edit_distance" }
func (*TokenEditDistance) Name() string         { return "Avg. token-level edit distance" }
func (*TokenEditDistance) Abbreviation() string { return "TED" }
func (*TokenEditDistance) IsRatio() bool        { return false }
func (*TokenEditDistance) metric()              {}

// Update returns the token distance of the pair. It never fails.
func (m *TokenEditDistance) Update(gold, system *lf.LogicalForm) (float64, error) {
	return m.add(float64(Levenshtein(gold.Tokens(), system.Tokens()))), nil
}

// Levenshtein returns the minimum number of insertions, deletions and
// substitutions turning a into b. Transpositions cost two.
func Levenshtein[T comparable](a, b []T) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
