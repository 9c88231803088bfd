package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

func runServe(cmd *cobra.Command, args []string) error {
	corpus, err := loadCorpus(cmd)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	srv := httpserver.New(httpserver.Deps{
		Config:  cfg,
		Corpus:  corpus,
		Games:   store.NewMemoryStore(),
		Reports: store.NewReports(db),
		Daily: &daily.Solver{
			Store:      daily.NewStore(db),
			Corpus:     corpus,
			Salt:       cfg.Daily.Salt,
			AnswerPool: cfg.Game.AnswerPool,
			MaxGuesses: cfg.Game.MaxGuesses,
			Rules:      cfg.Rules(),
		},
	})
	if err := srv.Run(cmd.Context(), cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
