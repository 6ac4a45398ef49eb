// Package fuzzy finds the closest known name to an unknown one, used to
// attach structured suggestions to unknown-option and unknown-subcommand
// parse errors.
package fuzzy

import "sort"

// minInputLength guards against suggesting matches for one-rune typos,
// where almost everything is within edit distance of everything else.
const minInputLength = 2

// Closest returns the candidate with the smallest edit distance from
// input, or "" when nothing is within maxDistance. Ties break
// lexicographically so results are deterministic.
func Closest(input string, candidates []string, maxDistance int) string {
	if len(input) < minInputLength || maxDistance <= 0 {
		return ""
	}

	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	best := ""
	bestDist := maxDistance + 1
	for _, candidate := range sorted {
		if candidate == input {
			continue
		}
		d := distance(input, candidate, maxDistance)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}

// distance computes the Levenshtein distance between a and b with two
// rolling rows, bailing out with max+1 as soon as the result is known to
// exceed max.
func distance(a, b string, max int) int {
	if abs(len(a)-len(b)) > max {
		return max + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > max {
			return max + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
