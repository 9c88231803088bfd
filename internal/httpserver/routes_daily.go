package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
)

// mountDaily registers the /daily routes. The answer itself is never
// returned here; clients play it through POST /game/new {"daily": true}.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Get("/solve", s.handleDailySolve)
		r.Get("/history", s.handleDailyHistory)
	})
}

type dailyInfo struct {
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
}

func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	idx, _ := s.daily.Answer(now)
	writeJSON(w, http.StatusOK, dailyInfo{Date: daily.DateKey(now), WordIndex: idx})
}

// handleDailySolve returns the solver's game for today, playing it first if
// nobody asked yet.
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	res, err := s.daily.Solve(r.Context(), s.now())
	if err != nil {
		log.Error().Err(err).Msg("daily solve")
		writeError(w, http.StatusInternalServerError, "daily_failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDailyHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hist, err := s.daily.Store.History(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("daily history")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, hist)
}
