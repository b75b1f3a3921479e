// Package suggest proposes known names close to a misspelled one.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// MinScore is the similarity below which a candidate is not suggested.
const MinScore = 0.5

// Distance computes the Levenshtein distance between two strings, counted
// in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// two rows over the shorter string
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Score is a case-insensitive similarity between 0 and 1, 1 meaning equal.
func Score(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)

	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}

// Names returns at most limit candidates scoring at least MinScore against
// name, best first. Ties keep candidate order.
func Names(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var found []scored
	for _, c := range candidates {
		if s := Score(name, c); s >= MinScore {
			found = append(found, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(found, func(x, y scored) int {
		return cmp.Compare(y.score, x.score)
	})

	names := make([]string, 0, min(limit, len(found)))
	for _, f := range found[:min(limit, len(found))] {
		names = append(names, f.name)
	}

	return names
}
