// internal/trials/trials.go
//
// Batch runner: plays many solver games on random answers and tallies the
// outcomes.
//
// Notes:
//   - Answers are drawn up front from a seeded generator, so a seed fixes
//     the whole run regardless of worker scheduling.
//   - Every game gets its own Game, Engine and corpus clone. Nothing mutable
//     is shared between workers except the result slot each one owns.
//   - Cancellation is checked between games, never inside one.
package trials

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// DefaultGames matches the command-line default of the batch mode.
const DefaultGames = 5

// Options controls one trial run. Zero values fall back to defaults.
type Options struct {
	Games      int
	Workers    int
	MaxGuesses int
	AnswerPool int
	Seed       uint64 // 0 picks a random seed
	Rules      game.Rules
}

func (o Options) withDefaults() Options {
	if o.Games <= 0 {
		o.Games = DefaultGames
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MaxGuesses <= 0 {
		o.MaxGuesses = game.DefaultGuesses
	}
	if o.AnswerPool <= 0 {
		o.AnswerPool = words.DefaultAnswerPool
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	return o
}

// Run plays opts.Games games concurrently and returns the tallied report.
// Records are in draw order.
func Run(ctx context.Context, corpus *words.Corpus, opts Options) (Report, error) {
	if corpus.Len() == 0 {
		return Report{}, words.ErrEmpty
	}
	opts = opts.withDefaults()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	answers := make([]string, opts.Games)
	for i := range answers {
		answers[i] = corpus.Random(rng, opts.AnswerPool)
	}

	rep := Report{
		ID:         uuid.New(),
		StartedAt:  time.Now().UTC(),
		Rules:      opts.Rules.String(),
		Seed:       opts.Seed,
		MaxGuesses: opts.MaxGuesses,
	}
	records := make([]solver.Record, opts.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, answer := range answers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := solver.SolveWord(corpus.Clone(), answer, opts.MaxGuesses, opts.Rules)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			observeGame(rec.Won(), len(rec.Guesses()))
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Report{}, fmt.Errorf("trials: cancelled: %w", err)
		}
		return Report{}, fmt.Errorf("trials: %w", err)
	}

	rep.Duration = time.Since(rep.StartedAt)
	rep.Records = records
	rep.Distribution = Tally(records, opts.MaxGuesses)
	trialDuration.Observe(rep.Duration.Seconds())

	log.Info().
		Str("trial", rep.ID.String()).
		Int("games", rep.Games()).
		Int("wins", rep.Wins()).
		Float64("mean_guesses", rep.MeanGuesses()).
		Dur("took", rep.Duration).
		Msg("trial finished")
	return rep, nil
}
