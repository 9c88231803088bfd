package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/play"
	"github.com/robalobadob/wordle/apps/solver/internal/render"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/trials"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func randomAnswer(c *words.Corpus) string {
	return c.Random(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), cfg.Game.AnswerPool)
}

func runSolve(cmd *cobra.Command, args []string) error {
	corpus, err := loadCorpus(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{randomAnswer(corpus)}
	}

	out := cmd.OutOrStdout()
	r := render.New(out)
	for _, answer := range args {
		answer = strings.ToLower(strings.TrimSpace(answer))
		if !corpus.Contains(answer) {
			return fmt.Errorf("%q is not in the word list", answer)
		}
		rec, err := solver.SolveWord(corpus.Clone(), answer, cfg.Game.MaxGuesses, cfg.Rules())
		if err != nil {
			return err
		}
		fmt.Fprint(out, r.Record("Solver", rec, cfg.Rules()))
	}
	return nil
}

func runTrials(cmd *cobra.Command, args []string) error {
	games, _ := cmd.Flags().GetInt("games")
	workers, _ := cmd.Flags().GetInt("workers")
	seed, _ := cmd.Flags().GetUint64("seed")
	save, _ := cmd.Flags().GetBool("save")
	verbose, _ := cmd.Flags().GetBool("verbose")

	corpus, err := loadCorpus(cmd)
	if err != nil {
		return err
	}
	rep, err := trials.Run(cmd.Context(), corpus, trials.Options{
		Games:      games,
		Workers:    workers,
		Seed:       seed,
		MaxGuesses: cfg.Game.MaxGuesses,
		AnswerPool: cfg.Game.AnswerPool,
		Rules:      cfg.Rules(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		for _, rec := range rep.Records {
			fmt.Fprintln(out, rec)
		}
	}
	fmt.Fprintln(out, rep.Distribution)
	fmt.Fprintf(out, "trial %s: %d/%d won (%.1f%%), mean %.2f guesses, seed %d\n",
		rep.ID, rep.Wins(), rep.Games(), 100*rep.WinRate(), rep.MeanGuesses(), rep.Seed)

	if save {
		db, err := store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		if err := store.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if err := store.NewReports(db).Save(cmd.Context(), rep); err != nil {
			return err
		}
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	corpus, err := loadCorpus(cmd)
	if err != nil {
		return err
	}
	answer, _ := cmd.Flags().GetString("answer")
	answer = strings.ToLower(strings.TrimSpace(answer))
	switch {
	case answer == "":
		answer = randomAnswer(corpus)
	case !corpus.Contains(answer):
		return fmt.Errorf("%q is not in the word list", answer)
	}

	_, err = play.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), corpus, answer, play.Options{
		MaxGuesses: cfg.Game.MaxGuesses,
		Rules:      cfg.Rules(),
	})
	return err
}
