package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Game.WordLength)
	assert.Equal(t, 6, cfg.Game.MaxGuesses)
	assert.Equal(t, 2309, cfg.Game.AnswerPool)
	assert.Equal(t, game.Positional, cfg.Rules())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "solver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  request_timeout: 3s
game:
  max_guesses: 8
  scoring: standard
corpus:
  file: /srv/words.txt
log:
  level: debug
  format: console
`), 0o600))

	t.Setenv("MAX_GUESSES", "7")
	t.Setenv("DB_PATH", "/tmp/x.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 7, cfg.Game.MaxGuesses)
	assert.Equal(t, 5, cfg.Game.WordLength)
	assert.Equal(t, game.Standard, cfg.Rules())
	assert.Equal(t, "/srv/words.txt", cfg.Corpus.File)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadPortEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadBadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WORD_LENGTH", "five")
	_, err := Load("")
	assert.ErrorContains(t, err, "WORD_LENGTH")
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{"zero length", func(c *Config) { c.Game.WordLength = 0 }, "word_length"},
		{"zero guesses", func(c *Config) { c.Game.MaxGuesses = 0 }, "max_guesses"},
		{"bad scoring", func(c *Config) { c.Game.Scoring = "hard" }, "hard"},
		{"no timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "request_timeout"},
		{"no rate", func(c *Config) { c.Server.RateLimitRPS = 0 }, "rate limit"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "xml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.errSub)
		})
	}
}
