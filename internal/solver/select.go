package solver

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Next returns the highest-impact guess among the remaining candidates.
//
// Rank n names the alphabetically first letter holding the n-th highest count
// across the whole candidate set (letters fixed in a known position count -1).
// Equal counts therefore name the same letter at consecutive ranks. Walking
// down the ranks, the working set is intersected with the words containing
// each letter that is neither known nor included, until one word is left, the
// intersection would be empty (the pre-filter set's first word wins), or the
// rank reaches the word length (the first survivor wins). Ties between words
// always resolve to the most frequent word by corpus order.
func (e *Engine) Next() (string, error) {
	if len(e.candidates) == 0 {
		return "", ErrNoCandidates
	}

	ranked := e.rankLetters()
	remaining := slices.Clone(e.candidates)

	for n, c := range ranked {
		if slices.Contains(e.known, c) || slices.Contains(e.included, c) {
			continue
		}

		filtered := lo.Filter(remaining, func(w string, _ int) bool {
			return strings.IndexByte(w, c) >= 0
		})
		switch {
		case len(filtered) == 1:
			return filtered[0], nil
		case len(filtered) == 0:
			return remaining[0], nil
		case n == e.length-1:
			return filtered[0], nil
		}
		remaining = filtered
	}
	return remaining[0], nil
}

// letterCounts counts letter occurrences over every candidate, one per
// occurrence, then invalidates the letters of known positions with -1.
func (e *Engine) letterCounts() [26]int {
	var counts [26]int
	for _, w := range e.candidates {
		for i := 0; i < len(w); i++ {
			counts[w[i]-'a']++
		}
	}
	for _, c := range e.known {
		if c != 0 {
			counts[c-'a'] = -1
		}
	}
	return counts
}

// rankLetters returns, for each rank n, the first letter in alphabetical
// order whose count equals the n-th highest count. A letter repeats for as
// many ranks as there are letters sharing its count.
func (e *Engine) rankLetters() []byte {
	counts := e.letterCounts()
	vals := slices.Clone(counts[:])
	slices.SortFunc(vals, func(a, b int) int { return cmp.Compare(b, a) })

	ranked := make([]byte, len(vals))
	for n, v := range vals {
		ranked[n] = alphabet[slices.Index(counts[:], v)]
	}
	return ranked
}
