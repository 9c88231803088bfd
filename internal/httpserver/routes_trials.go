package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/trials"
)

// maxTrialGames bounds one request so it fits the request timeout.
const maxTrialGames = 5000

func (s *Server) mountTrials(r chi.Router) {
	r.Post("/trials", s.handleRunTrials)
	r.Get("/trials", s.handleListTrials)
	r.Get("/trials/{id}", s.handleGetTrial)
}

type trialReq struct {
	Games   int    `json:"games"`
	Workers int    `json:"workers"`
	Seed    uint64 `json:"seed"`
}

type trialSummary struct {
	ID           string  `json:"id"`
	StartedAt    string  `json:"startedAt"`
	DurationMs   int64   `json:"durationMs"`
	Rules        string  `json:"rules"`
	Seed         uint64  `json:"seed"`
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	MeanGuesses  float64 `json:"meanGuesses"`
	WinRate      float64 `json:"winRate"`
	Distribution []int   `json:"distribution"`
}

func summarize(r trials.Report) trialSummary {
	return trialSummary{
		ID:           r.ID.String(),
		StartedAt:    r.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		DurationMs:   r.Duration.Milliseconds(),
		Rules:        r.Rules,
		Seed:         r.Seed,
		Games:        r.Games(),
		Wins:         r.Wins(),
		Losses:       r.Losses(),
		MeanGuesses:  r.MeanGuesses(),
		WinRate:      r.WinRate(),
		Distribution: r.Distribution,
	}
}

// handleRunTrials runs a batch synchronously and stores its tally.
func (s *Server) handleRunTrials(w http.ResponseWriter, r *http.Request) {
	var req trialReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	if req.Games < 0 || req.Games > maxTrialGames {
		writeError(w, http.StatusBadRequest, "games_out_of_range")
		return
	}

	rep, err := trials.Run(r.Context(), s.corpus, trials.Options{
		Games:      req.Games,
		Workers:    req.Workers,
		Seed:       req.Seed,
		MaxGuesses: s.cfg.Game.MaxGuesses,
		AnswerPool: s.cfg.Game.AnswerPool,
		Rules:      s.rules,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "trial_timeout")
			return
		}
		log.Error().Err(err).Msg("run trials")
		writeError(w, http.StatusInternalServerError, "trial_failed")
		return
	}
	if err := s.reports.Save(r.Context(), rep); err != nil {
		log.Error().Err(err).Str("trial", rep.ID.String()).Msg("save trial")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	subject, _ := r.Context().Value(ctxSubjectKey{}).(string)
	log.Info().Str("trial", rep.ID.String()).Str("by", subject).Msg("trial stored")
	writeJSON(w, http.StatusCreated, summarize(rep))
}

func (s *Server) handleListTrials(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.reports.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list trials")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	out := make([]trialSummary, 0, len(list))
	for _, rep := range list {
		out = append(out, summarize(rep))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTrial(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}
	rep, err := s.reports.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case err != nil:
		log.Error().Err(err).Msg("get trial")
		writeError(w, http.StatusInternalServerError, "db_error")
	default:
		writeJSON(w, http.StatusOK, summarize(rep))
	}
}
