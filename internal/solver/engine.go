// internal/solver/engine.go
//
// Candidate engine: the live set of words still consistent with the feedback
// of one game, plus the letter constraints accumulated so far.
//
// Responsibilities:
//   - Narrow the candidate set from per-letter feedback (Apply).
//   - Track known positions, included letters and excluded letters.
//   - Pick the next guess (see select.go).
//
// Notes:
//   - The engine owns its candidate slice and shrinks it in place. Callers
//     hand it a private copy (words.Corpus.Clone) per game.
//   - Constraint state only grows during a game.
package solver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// ErrNoCandidates is returned by Next when every candidate has been filtered
// out. It only happens when the engine was seeded without the answer.
var ErrNoCandidates = errors.New("solver: no candidates left")

// Engine narrows a candidate word list from guess feedback.
type Engine struct {
	length     int
	rules      game.Rules
	candidates []string

	known    []byte // known[i] is the confirmed letter at i, 0 if unknown
	included []byte // present letters in the order first seen
	excluded []byte // absent letters in the order first seen
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithRules selects the feedback interpretation; it must match the rules of
// the game being solved.
func WithRules(r game.Rules) EngineOption {
	return func(e *Engine) { e.rules = r }
}

// NewEngine takes ownership of candidates, which must all be length letters
// long, lowercase, and ordered most frequent first.
func NewEngine(length int, candidates []string, opts ...EngineOption) *Engine {
	e := &Engine{
		length:     length,
		candidates: candidates,
		known:      make([]byte, length),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply narrows the candidate set with the marks returned for guess.
// All positions of one guess are applied before returning.
func (e *Engine) Apply(guess string, marks []game.Mark) {
	if e.rules == game.Standard {
		e.applyStandard(guess, marks)
		return
	}
	for i, m := range marks {
		c := guess[i]
		switch m {
		case game.MarkAbsent:
			e.dropLetter(c)
		case game.MarkCorrect:
			e.keepAt(c, i)
		case game.MarkPresent:
			// Only the first occurrence of c in each word is inspected.
			e.retain(func(w string) bool {
				first := strings.IndexByte(w, c)
				return first >= 0 && first != i
			})
			e.include(c)
		}
	}
}

// applyStandard interprets multiset feedback: a guess letter marked correct
// or present k times means the answer holds at least k copies, and an absent
// copy of such a letter caps the count at exactly k.
func (e *Engine) applyStandard(guess string, marks []game.Mark) {
	var minCount [26]int
	for i, m := range marks {
		if m != game.MarkAbsent {
			minCount[guess[i]-'a']++
		}
	}

	for i, m := range marks {
		c := guess[i]
		need := minCount[c-'a']
		switch m {
		case game.MarkCorrect:
			e.keepAt(c, i)
		case game.MarkPresent:
			e.retain(func(w string) bool {
				return w[i] != c && strings.Count(w, string(c)) >= need
			})
			e.include(c)
		case game.MarkAbsent:
			if need == 0 {
				e.dropLetter(c)
				continue
			}
			e.retain(func(w string) bool {
				return w[i] != c && strings.Count(w, string(c)) == need
			})
		}
	}
}

// dropLetter removes every word containing c and records c as excluded.
// A letter already excluded is a no-op.
func (e *Engine) dropLetter(c byte) {
	if slices.Contains(e.excluded, c) {
		return
	}
	e.retain(func(w string) bool { return strings.IndexByte(w, c) < 0 })
	e.excluded = append(e.excluded, c)
}

// keepAt removes every word without c at position i and records it as known.
func (e *Engine) keepAt(c byte, i int) {
	e.retain(func(w string) bool { return w[i] == c })
	e.known[i] = c
}

func (e *Engine) include(c byte) {
	if !slices.Contains(e.included, c) {
		e.included = append(e.included, c)
	}
}

// retain shrinks the candidate set in place, keeping corpus order.
func (e *Engine) retain(keep func(string) bool) {
	e.candidates = slices.DeleteFunc(e.candidates, func(w string) bool { return !keep(w) })
}

// Len returns the number of remaining candidates.
func (e *Engine) Len() int { return len(e.candidates) }

// At returns the candidate at index i.
func (e *Engine) At(i int) string { return e.candidates[i] }

// RemoveAt drops the candidate at index i.
func (e *Engine) RemoveAt(i int) {
	e.candidates = slices.Delete(e.candidates, i, i+1)
}

// Candidates returns a copy of the remaining candidates.
func (e *Engine) Candidates() []string { return slices.Clone(e.candidates) }

func (e *Engine) Known() []byte    { return slices.Clone(e.known) }
func (e *Engine) Included() []byte { return slices.Clone(e.included) }
func (e *Engine) Excluded() []byte { return slices.Clone(e.excluded) }
func (e *Engine) Length() int      { return e.length }

func (e *Engine) String() string {
	return fmt.Sprintf("%d: %v", len(e.candidates), e.candidates)
}
