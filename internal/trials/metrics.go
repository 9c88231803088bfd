package trials

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// gamesTotal counts solved games by outcome ("win" or "loss")
	gamesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_solver_games_total",
		Help: "Total games played by the solver, by outcome",
	}, []string{"outcome"})

	// guessesUsed tracks how many guesses each game took
	guessesUsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordle_solver_guesses",
		Help:    "Guesses made per solved game",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})

	trialDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordle_solver_trial_duration_seconds",
		Help:    "Wall time of a full trial run in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)

func observeGame(won bool, guesses int) {
	outcome := "loss"
	if won {
		outcome = "win"
	}
	gamesTotal.WithLabelValues(outcome).Inc()
	guessesUsed.Observe(float64(guesses))
}
