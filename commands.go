// commands.go
//
// Command tree for the wordle-solver binary.
//
//	wordle-solver serve             HTTP API
//	wordle-solver solve [word...]   solve given (or random) answers
//	wordle-solver trials -n N       batch of random games with a tally
//	wordle-solver play              interactive game on stdin/stdout
//
// Every command loads configuration first (--config, env, .env) and sets
// up the zerolog global logger from it.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	configPath string
	logLevel   string

	// cfg is filled by the root PersistentPreRunE before any command runs.
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:           "wordle-solver",
		Short:         "Letter-frequency Wordle solver with an HTTP API and batch trials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			setupLogging(cfg.Log)
			return nil
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe, // cmd_serve.go
	}

	solveCmd = &cobra.Command{
		Use:   "solve [word...]",
		Short: "Let the solver play the given answers, or a random one",
		RunE:  runSolve, // cmd_solve.go
	}

	trialsCmd = &cobra.Command{
		Use:   "trials",
		Short: "Solve a batch of random answers and print the tally",
		Args:  cobra.NoArgs,
		RunE:  runTrials, // cmd_solve.go
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal, then watch the solver play it",
		Args:  cobra.NoArgs,
		RunE:  runPlay, // cmd_solve.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $SOLVER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	trialsCmd.Flags().IntP("games", "n", 5, "number of games")
	trialsCmd.Flags().Int("workers", 0, "concurrent games (default GOMAXPROCS)")
	trialsCmd.Flags().Uint64("seed", 0, "random seed (0 picks one)")
	trialsCmd.Flags().Bool("save", false, "store the tally in the database")
	trialsCmd.Flags().BoolP("verbose", "v", false, "print every game record")

	playCmd.Flags().String("answer", "", "fixed answer instead of a random one")

	rootCmd.AddCommand(serveCmd, solveCmd, trialsCmd, playCmd)
}

// setupLogging configures the zerolog global logger.
func setupLogging(lc config.LogConfig) {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(lc.Level)); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", lc.Level).Msg("unknown log level, keeping info")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if lc.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadCorpus resolves the configured corpus source.
func loadCorpus(cmd *cobra.Command) (*words.Corpus, error) {
	c, err := words.Load(cmd.Context(), words.Source{
		File:    cfg.Corpus.File,
		URL:     cfg.Corpus.URL,
		Timeout: cfg.Corpus.FetchTimeout,
	}, cfg.Game.WordLength)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return c, nil
}
