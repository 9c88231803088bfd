package solver

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// Solve plays g to the end with guesses from e, feeding each scored row back
// into the engine. The engine must have been seeded with a list containing the
// answer and built with the same rules as the game.
func Solve(g *game.Game, e *Engine) (Record, error) {
	guesses := make([]string, 0, g.MaxGuesses())

	for !g.Done() {
		guess, err := e.Next()
		if err != nil {
			return Record{}, fmt.Errorf("solve %q after %d guesses: %w", g.Answer(), len(guesses), err)
		}
		if err := g.Submit(guess); err != nil {
			return Record{}, fmt.Errorf("submit %q: %w", guess, err)
		}
		guesses = append(guesses, guess)
		e.Apply(guess, g.ScoreRow(g.Last()))
	}

	return NewRecord(g.Answer(), guesses, g.Won()), nil
}

// SolveWord plays a fresh game for answer. The engine takes ownership of
// candidates, so callers pass a private copy.
func SolveWord(candidates []string, answer string, maxGuesses int, rules game.Rules) (Record, error) {
	g := game.New(answer, maxGuesses, game.WithRules(rules))
	e := NewEngine(g.Length(), candidates, WithRules(rules))
	return Solve(g, e)
}

// Replay rebuilds an engine from the rows already played in g, as if the
// solver had made those guesses itself.
func Replay(g *game.Game, candidates []string) *Engine {
	e := NewEngine(g.Length(), candidates, WithRules(g.Rules()))
	for i := 0; i <= g.Last(); i++ {
		e.Apply(g.Row(i), g.ScoreRow(i))
	}
	return e
}
