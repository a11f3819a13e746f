package ui

import (
	"sort"
	"strings"
)

// MaxSuggestions bounds the names offered after a failed lookup
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions candidates close to target,
// closest first. Matching is case-insensitive; a candidate containing the
// target counts as distance zero so partial class ids find their class.
func Suggest(target string, candidates []string) []string {
	type scored struct {
		value    string
		distance int
	}

	needle := strings.ToLower(target)
	limit := len([]rune(needle))/2 + 1

	matches := make([]scored, 0)
	for _, candidate := range candidates {
		hay := strings.ToLower(candidate)
		dist := EditDistance(needle, hay)
		if needle != "" && strings.Contains(hay, needle) {
			dist = 0
		}
		if dist < limit {
			matches = append(matches, scored{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].value < matches[j].value
	})

	out := make([]string, 0, MaxSuggestions)
	for i := 0; i < len(matches) && i < MaxSuggestions; i++ {
		out = append(out, matches[i].value)
	}
	return out
}

// EditDistance is the Levenshtein distance between a and b in runes
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
