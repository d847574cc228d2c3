// file: internal/matcher/fuzzy.go
// version: 2.0.0
// guid: a1b2c3d4-e5f6-7890-abcd-ef1234567890

package matcher

import (
	"slices"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultMinScore is the cut-off used for "did you mean" suggestions.
const DefaultMinScore = 50

// Result holds a scored candidate.
type Result struct {
	Index int // index into the original slice
	Score int // 0-100, higher is better
}

// Score rates how well query matches target, 0-100.
func Score(query, target string) int {
	q := normalize(query)
	t := normalize(target)
	if q == "" || t == "" {
		return 0
	}

	if q == t {
		return 100
	}

	score := 0

	if strings.Contains(t, q) {
		ratio := float64(len(q)) / float64(len(t))
		score = max(score, 60+int(ratio*30))
	}

	// Subsequence hit ("lotr" in "lord of the rings"); fewer gaps score higher.
	if rank := fuzzy.RankMatchNormalizedFold(q, t); rank >= 0 {
		gap := float64(rank) / float64(len(t))
		score = max(score, 55+int((1-gap)*20))
	}

	// Typos: best per-word edit similarity.
	for _, w := range strings.Fields(t) {
		dist := fuzzy.LevenshteinDistance(q, w)
		wLen := max(len([]rune(q)), len([]rune(w)))
		similarity := 1.0 - float64(dist)/float64(wLen)
		score = max(score, int(similarity*75))
	}

	return min(score, 100)
}

// Rank scores every candidate against query and returns those at or above
// minScore, best first. Ties keep candidate order.
func Rank(query string, candidates []string, minScore int) []Result {
	var results []Result
	for i, c := range candidates {
		if s := Score(query, c); s >= minScore {
			results = append(results, Result{Index: i, Score: s})
		}
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		return b.Score - a.Score
	})
	return results
}

// normalize lowercases and keeps letters, digits and single spaces.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			space = false
		case unicode.IsSpace(r) && !space && b.Len() > 0:
			b.WriteRune(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
