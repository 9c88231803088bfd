package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Get("/game/{id}", s.handleGetGame)
	r.Get("/game/{id}/hint", s.handleHint)
	r.Post("/solve", s.handleSolve)
}

type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer
	Daily  bool   `json:"daily"`  // play the word of the day
}

type newGameRes struct {
	GameID     string `json:"gameId"`
	Length     int    `json:"length"`
	MaxGuesses int    `json:"maxGuesses"`
	Rules      string `json:"rules"`
}

// handleNewGame starts an in-memory game on a random, fixed or daily answer.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	var answer string
	switch {
	case req.Daily:
		_, answer = s.daily.Answer(s.now())
	case req.Answer != "":
		answer = strings.ToLower(strings.TrimSpace(req.Answer))
		if !s.corpus.Contains(answer) {
			writeError(w, http.StatusBadRequest, "unknown_word")
			return
		}
	default:
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		answer = s.corpus.Random(rng, s.cfg.Game.AnswerPool)
	}

	g := game.New(answer, s.cfg.Game.MaxGuesses, game.WithRules(s.rules))
	g.ID = uuid.NewString()
	if err := s.games.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:     g.ID,
		Length:     g.Length(),
		MaxGuesses: g.MaxGuesses(),
		Rules:      g.Rules().String(),
	})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Marks     []game.Mark `json:"marks"`
	State     string      `json:"state"` // "playing" | "won" | "lost"
	Remaining int         `json:"remaining"`
	Answer    string      `json:"answer,omitempty"`
}

// handleGuess scores one guess. Finished games answer 409; words outside the
// corpus or of the wrong shape answer 400 and leave the game untouched.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	guess := strings.ToLower(strings.TrimSpace(req.Guess))

	var res guessRes
	err := s.games.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.Done() {
			return game.ErrFinished
		}
		if !game.ValidShape(guess, g.Length()) || !s.corpus.Contains(guess) {
			return game.ErrInvalidGuess
		}
		if err := g.Submit(guess); err != nil {
			return err
		}
		res = guessRes{
			Marks:     g.ScoreRow(g.Last()),
			State:     g.Status().String(),
			Remaining: g.Remaining(),
		}
		if g.Done() {
			res.Answer = g.Answer()
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_over")
	case errors.Is(err, game.ErrInvalidGuess):
		writeError(w, http.StatusBadRequest, "invalid_guess")
	case err != nil:
		log.Error().Err(err).Str("gameId", req.GameID).Msg("guess")
		writeError(w, http.StatusInternalServerError, "guess_failed")
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

type rowView struct {
	Guess string      `json:"guess"`
	Marks []game.Mark `json:"marks"`
}

type gameView struct {
	GameID    string    `json:"gameId"`
	Rows      []rowView `json:"rows"`
	State     string    `json:"state"`
	Remaining int       `json:"remaining"`
	Answer    string    `json:"answer,omitempty"`
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var view gameView
	err := s.games.Update(r.Context(), id, func(g *game.Game) error {
		view = gameView{GameID: g.ID, Rows: []rowView{}, State: g.Status().String(), Remaining: g.Remaining()}
		for i := 0; i <= g.Last(); i++ {
			view.Rows = append(view.Rows, rowView{Guess: g.Row(i), Marks: g.ScoreRow(i)})
		}
		if g.Done() {
			view.Answer = g.Answer()
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case err != nil:
		log.Error().Err(err).Str("gameId", id).Msg("get game")
		writeError(w, http.StatusInternalServerError, "get_failed")
	default:
		writeJSON(w, http.StatusOK, view)
	}
}

type hintRes struct {
	Guess      string `json:"guess"`
	Candidates int    `json:"candidates"`
}

// handleHint replays the game's rows into a fresh engine and returns the
// solver's next guess.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var e *solver.Engine
	err := s.games.Update(r.Context(), id, func(g *game.Game) error {
		if g.Done() {
			return game.ErrFinished
		}
		e = solver.Replay(g, s.corpus.Clone())
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_over")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", id).Msg("hint")
		writeError(w, http.StatusInternalServerError, "hint_failed")
		return
	}

	guess, err := e.Next()
	if err != nil {
		// Only reachable when the answer is outside the corpus.
		writeError(w, http.StatusUnprocessableEntity, "no_candidates")
		return
	}
	writeJSON(w, http.StatusOK, hintRes{Guess: guess, Candidates: e.Len()})
}

type solveReq struct {
	Answer string `json:"answer"`
}

// handleSolve plays a full solver game for the given answer.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answer := strings.ToLower(strings.TrimSpace(req.Answer))
	if !s.corpus.Contains(answer) {
		writeError(w, http.StatusBadRequest, "unknown_word")
		return
	}
	rec, err := solver.SolveWord(s.corpus.Clone(), answer, s.cfg.Game.MaxGuesses, s.rules)
	if err != nil {
		log.Error().Err(err).Str("answer", answer).Msg("solve")
		writeError(w, http.StatusInternalServerError, "solve_failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
