// Package play runs an interactive game on a text stream and then lets the
// solver play the same answer for comparison.
package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Options configures one interactive session.
type Options struct {
	MaxGuesses int
	Rules      game.Rules
}

// Result holds the player's record and the solver's record for the same
// answer.
type Result struct {
	Player solver.Record
	Solver solver.Record
}

// Run plays answer against guesses read line by line from in. Lines that
// are not a corpus word of the right length are rejected and the prompt is
// repeated. Running out of input before the game ends is an error.
func Run(ctx context.Context, in io.Reader, out io.Writer, corpus *words.Corpus, answer string, opts Options) (Result, error) {
	r := render.New(out)
	g := game.New(answer, opts.MaxGuesses, game.WithRules(opts.Rules))
	sc := bufio.NewScanner(in)

	var kb render.Keyboard
	for !g.Done() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		fmt.Fprint(out, r.Grid(g))
		fmt.Fprint(out, r.Keyboard(kb))

		guess, err := prompt(sc, out, r, g.Length(), corpus)
		if err != nil {
			return Result{}, err
		}
		if err := g.Submit(guess); err != nil {
			return Result{}, fmt.Errorf("submit %q: %w", guess, err)
		}
		kb = kb.Update(guess, g.ScoreRow(g.Last()))
	}
	fmt.Fprint(out, r.Grid(g))

	res := Result{Player: solver.NewRecord(g.Answer(), g.Guesses(), g.Won())}
	fmt.Fprint(out, r.Record("You", res.Player, opts.Rules))

	bot, err := solver.SolveWord(corpus.Clone(), g.Answer(), opts.MaxGuesses, opts.Rules)
	if err != nil {
		return res, err
	}
	res.Solver = bot
	fmt.Fprint(out, r.Record("Solver", bot, opts.Rules))
	return res, nil
}

func prompt(sc *bufio.Scanner, out io.Writer, r *render.Renderer, length int, corpus *words.Corpus) (string, error) {
	for {
		fmt.Fprint(out, "Guess word: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("read guess: %w", err)
			}
			return "", io.ErrUnexpectedEOF
		}
		guess := strings.ToLower(strings.TrimSpace(sc.Text()))
		fmt.Fprintln(out)
		if game.ValidShape(guess, length) && corpus.Contains(guess) {
			return guess, nil
		}
		fmt.Fprintln(out, r.Muted(fmt.Sprintf("%q is not a %d-letter word in the list", guess, length)))
	}
}
