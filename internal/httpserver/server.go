// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     per-client rate limiting).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Interactive games: POST /game/new, POST /game/guess, GET /game/{id},
//     GET /game/{id}/hint.
//   - Solver: POST /solve, daily word under /daily.
//   - Admin (JWT): POST /auth/token, /trials.
//
// Notes:
//   - Games live in memory (store.Store); trial tallies and daily solves are
//     persisted in SQLite.
//   - Handler errors are JSON bodies of the form {"error": "<code>"}.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config  config.Config
	Corpus  *words.Corpus
	Games   store.Store
	Reports *store.Reports
	Daily   *daily.Solver
}

// Server bundles the router and its dependencies.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	rules    game.Rules
	corpus   *words.Corpus
	games    store.Store
	reports  *store.Reports
	daily    *daily.Solver
	limiters *limiters
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		rules:    d.Config.Rules(),
		corpus:   d.Corpus,
		games:    d.Games,
		reports:  d.Reports,
		daily:    d.Daily,
		limiters: newLimiters(d.Config.Server.RateLimitRPS, d.Config.Server.RateLimitBurst),
		now:      time.Now,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(d.Config.Server.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(d.Config.Server.ClientOrigin))

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/metrics", "POST /game/new", "POST /game/guess",
				"GET /game/{id}/hint", "POST /solve", "/daily", "/trials",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"words":      s.corpus.Len(),
			"answerPool": len(s.corpus.AnswerPool(s.cfg.Game.AnswerPool)),
			"length":     s.corpus.WordLength(),
		})
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		s.mountGame(r)
		s.mountDaily(r)
		r.Post("/auth/token", s.handleToken)
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		s.mountTrials(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info().Str("addr", addr).Msg("http server listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
