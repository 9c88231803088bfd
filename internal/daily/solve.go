package daily

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Solver plays the daily word once per date and serves the stored result
// afterwards.
type Solver struct {
	Store      *Store
	Corpus     *words.Corpus
	Salt       string
	AnswerPool int
	MaxGuesses int
	Rules      game.Rules

	mu sync.Mutex // serialises first solves
}

// Answer returns the index and word for the day containing t.
func (d *Solver) Answer(t time.Time) (int, string) {
	return Answer(d.Corpus.AnswerPool(d.AnswerPool), t, d.Salt)
}

// Solve returns the solver's game for the day containing t, playing and
// storing it on first request. The stored row is what callers get, so
// concurrent first requests (in this process or another) agree.
func (d *Solver) Solve(ctx context.Context, t time.Time) (Result, error) {
	date := DateKey(t)
	if r, ok, err := d.Store.Get(ctx, date); err != nil {
		return Result{}, fmt.Errorf("daily get %s: %w", date, err)
	} else if ok {
		return r, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok, err := d.Store.Get(ctx, date); err != nil {
		return Result{}, fmt.Errorf("daily get %s: %w", date, err)
	} else if ok {
		return r, nil
	}

	idx, answer := d.Answer(t)
	rec, err := solver.SolveWord(d.Corpus.Clone(), answer, d.MaxGuesses, d.Rules)
	if err != nil {
		return Result{}, fmt.Errorf("daily solve %s: %w", date, err)
	}
	inserted, err := d.Store.Insert(ctx, Result{Date: date, WordIndex: idx, Record: rec})
	if err != nil {
		return Result{}, fmt.Errorf("daily insert %s: %w", date, err)
	}
	if inserted {
		log.Info().Str("date", date).Int("word_index", idx).Bool("won", rec.Won()).
			Int("guesses", len(rec.Guesses())).Msg("daily word solved")
	}

	r, ok, err := d.Store.Get(ctx, date)
	if err != nil {
		return Result{}, fmt.Errorf("daily get %s: %w", date, err)
	}
	if !ok {
		return Result{}, fmt.Errorf("daily %s: row missing after insert", date)
	}
	return r, nil
}
