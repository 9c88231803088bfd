package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const adminPassword = "correct horse"

var testCorpus = words.New([]string{
	"about", "other", "which", "their", "there", "first", "would", "these",
	"crane", "slate", "trace", "crate", "react", "caret", "apple", "eerie",
})

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Game.Scoring = "standard"
	cfg.Game.MaxGuesses = 20
	cfg.Auth.AdminPasswordHash = string(hash)
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Server.RateLimitRPS = 1000
	cfg.Server.RateLimitBurst = 1000
	for _, m := range mutate {
		m(&cfg)
	}

	db, err := store.Open(filepath.Join(t.TempDir(), "solver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.Migrate(db))

	return New(Deps{
		Config:  cfg,
		Corpus:  testCorpus,
		Games:   store.NewMemoryStore(),
		Reports: store.NewReports(db),
		Daily: &daily.Solver{
			Store:      daily.NewStore(db),
			Corpus:     testCorpus,
			Salt:       "test",
			AnswerPool: cfg.Game.AnswerPool,
			MaxGuesses: cfg.Game.MaxGuesses,
			Rules:      cfg.Rules(),
		},
	})
}

func do(t *testing.T, s *Server, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func adminToken(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/auth/token", tokenReq{Password: adminPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[tokenRes](t, rec).Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestDebugWords(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/debug/words", nil)
	assert.JSONEq(t, `{"words":16,"answerPool":16,"length":5}`, rec.Body.String())
}

func TestNotFoundIsJSON(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func TestGameFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "CRANE"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[newGameRes](t, rec)
	_, err := uuid.Parse(created.GameID)
	require.NoError(t, err)
	assert.Equal(t, 5, created.Length)
	assert.Equal(t, 20, created.MaxGuesses)
	assert.Equal(t, "standard", created.Rules)

	rec = do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Guess: "slate"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[guessRes](t, rec)
	assert.Equal(t, game.Score("crane", "slate", game.Standard), res.Marks)
	assert.Equal(t, "playing", res.State)
	assert.Equal(t, 19, res.Remaining)
	assert.Empty(t, res.Answer)

	rec = do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Guess: "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Guess: "crane"})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[guessRes](t, rec)
	assert.Equal(t, "won", res.State)
	assert.Equal(t, "crane", res.Answer)

	rec = do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: created.GameID, Guess: "trace"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/game/"+created.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[gameView](t, rec)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "slate", view.Rows[0].Guess)
	assert.Equal(t, "won", view.State)
}

func TestNewGameRejectsUnknownAnswer(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/game/new", newGameReq{Answer: "zzzzz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewGameRandomAndDaily(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/game/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/new", newGameReq{Daily: true})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decode[newGameRes](t, rec).GameID

	_, answer := s.daily.Answer(s.now())
	rec = do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: id, Guess: answer})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "won", decode[guessRes](t, rec).State)
}

func TestGuessUnknownGame(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/game/guess", guessReq{GameID: "missing", Guess: "crane"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHint(t *testing.T) {
	s := newTestServer(t)
	id := decode[newGameRes](t, do(t, s, http.MethodPost, "/game/new", newGameReq{Answer: "crane"})).GameID
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: id, Guess: "slate"}).Code)

	rec := do(t, s, http.MethodGet, "/game/"+id+"/hint", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	hint := decode[hintRes](t, rec)
	assert.True(t, testCorpus.Contains(hint.Guess))
	assert.Positive(t, hint.Candidates)
	assert.Less(t, hint.Candidates, testCorpus.Len())

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: id, Guess: "crane"}).Code)
	assert.Equal(t, http.StatusConflict, do(t, s, http.MethodGet, "/game/"+id+"/hint", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/game/missing/hint", nil).Code)
}

func TestSolve(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/solve", solveReq{Answer: "trace"})
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Answer  string   `json:"answer"`
		Guesses []string `json:"guesses"`
		Won     bool     `json:"won"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "trace", body.Answer)
	assert.True(t, body.Won)
	assert.Equal(t, "trace", body.Guesses[len(body.Guesses)-1])

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodPost, "/solve", solveReq{Answer: "qqqqq"}).Code)
}

func TestDailyRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/daily", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[dailyInfo](t, rec)
	assert.Equal(t, daily.DateKey(time.Now()), info.Date)

	rec = do(t, s, http.MethodGet, "/daily/solve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"won":true`)

	rec = do(t, s, http.MethodGet, "/daily/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), info.Date)
}

func TestTokenRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/auth/token", tokenReq{Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenDisabledWithoutHash(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Auth.AdminPasswordHash = "" })
	rec := do(t, s, http.MethodPost, "/auth/token", tokenReq{Password: adminPassword})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTrialsRequireAuth(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/trials", nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		do(t, s, http.MethodGet, "/trials", nil, "Authorization", "Bearer not-a-token").Code)
}

func TestTrialsFlow(t *testing.T) {
	s := newTestServer(t)
	auth := "Bearer " + adminToken(t, s)

	rec := do(t, s, http.MethodPost, "/trials", trialReq{Games: 10, Workers: 2, Seed: 9}, "Authorization", auth)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sum := decode[trialSummary](t, rec)
	assert.Equal(t, 10, sum.Games)
	assert.Equal(t, 10, sum.Wins)
	assert.Equal(t, uint64(9), sum.Seed)

	rec = do(t, s, http.MethodGet, "/trials", nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]trialSummary](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, sum.ID, list[0].ID)

	rec = do(t, s, http.MethodGet, "/trials/"+sum.ID, nil, "Authorization", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sum.Distribution, decode[trialSummary](t, rec).Distribution)

	assert.Equal(t, http.StatusNotFound,
		do(t, s, http.MethodGet, "/trials/"+uuid.NewString(), nil, "Authorization", auth).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodGet, "/trials/not-a-uuid", nil, "Authorization", auth).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, s, http.MethodPost, "/trials", trialReq{Games: maxTrialGames + 1}, "Authorization", auth).Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	s := newTestServer(t)
	tok := adminToken(t, s)
	s.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	rec := do(t, s, http.MethodGet, "/trials", nil, "Authorization", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Server.RateLimitRPS = 0.001
		c.Server.RateLimitBurst = 2
	})

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, do(t, s, http.MethodPost, "/solve", solveReq{Answer: "crane"}).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// unlimited routes are unaffected
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodOptions, "/game/new", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposed(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "wordle_solver_guesses"))
}

// brokenStore fails every Update with an error other than ErrNotFound.
type brokenStore struct{ store.Store }

func (brokenStore) Update(context.Context, string, func(*game.Game) error) error {
	return errors.New("store unavailable")
}

func TestGameStoreFailureIsServerError(t *testing.T) {
	s := newTestServer(t)
	s.games = brokenStore{store.NewMemoryStore()}

	for _, path := range []string{"/game/abc", "/game/abc/hint"} {
		rec := do(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "gameId", path)
	}
	rec := do(t, s, http.MethodPost, "/game/guess", guessReq{GameID: "abc", Guess: "crane"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
