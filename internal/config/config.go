// internal/config/config.go
//
// Runtime configuration for the solver binary.
//
// Precedence (lowest to highest):
//  1. Built-in defaults (Default).
//  2. Optional YAML file (--config flag or SOLVER_CONFIG).
//  3. Environment variables, after godotenv has loaded a local .env.
//
// Environment variables:
//
//	PORT, CLIENT_ORIGIN, REQUEST_TIMEOUT, RATE_LIMIT_RPS, RATE_LIMIT_BURST
//	WORD_LENGTH, MAX_GUESSES, SCORING, ANSWER_POOL
//	WORDS_FILE, WORDS_URL, WORDS_FETCH_TIMEOUT
//	DB_PATH, JWT_SECRET, ADMIN_PASSWORD_HASH, TOKEN_TTL, DAILY_SALT
//	LOG_LEVEL, LOG_FORMAT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Game     GameConfig     `yaml:"game"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Daily    DailyConfig    `yaml:"daily"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ClientOrigin   string        `yaml:"client_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst"`
}

type GameConfig struct {
	WordLength int    `yaml:"word_length"`
	MaxGuesses int    `yaml:"max_guesses"`
	Scoring    string `yaml:"scoring"`
	AnswerPool int    `yaml:"answer_pool"`
}

type CorpusConfig struct {
	File         string        `yaml:"file"`
	URL          string        `yaml:"url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"`
	AdminPasswordHash string        `yaml:"admin_password_hash"`
	TokenTTL          time.Duration `yaml:"token_ttl"`
}

type DailyConfig struct {
	Salt string `yaml:"salt"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":5175",
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: 10 * time.Second,
			RateLimitRPS:   5,
			RateLimitBurst: 10,
		},
		Game: GameConfig{
			WordLength: game.DefaultLength,
			MaxGuesses: game.DefaultGuesses,
			Scoring:    game.Positional.String(),
			AnswerPool: words.DefaultAnswerPool,
		},
		Corpus:   CorpusConfig{FetchTimeout: 10 * time.Second},
		Database: DatabaseConfig{Path: "./data/solver.db"},
		Auth: AuthConfig{
			JWTSecret: "dev_secret_change_me",
			TokenTTL:  24 * time.Hour,
		},
		Daily: DailyConfig{Salt: "wordle"},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// any, falling back to SOLVER_CONFIG) and the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("SOLVER_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	setString(&c.Server.ClientOrigin, "CLIENT_ORIGIN")
	setString(&c.Game.Scoring, "SCORING")
	setString(&c.Corpus.File, "WORDS_FILE")
	setString(&c.Corpus.URL, "WORDS_URL")
	setString(&c.Database.Path, "DB_PATH")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	setString(&c.Daily.Salt, "DAILY_SALT")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	return errors.Join(
		setInt(&c.Game.WordLength, "WORD_LENGTH"),
		setInt(&c.Game.MaxGuesses, "MAX_GUESSES"),
		setInt(&c.Game.AnswerPool, "ANSWER_POOL"),
		setInt(&c.Server.RateLimitBurst, "RATE_LIMIT_BURST"),
		setFloat(&c.Server.RateLimitRPS, "RATE_LIMIT_RPS"),
		setDuration(&c.Server.RequestTimeout, "REQUEST_TIMEOUT"),
		setDuration(&c.Corpus.FetchTimeout, "WORDS_FETCH_TIMEOUT"),
		setDuration(&c.Auth.TokenTTL, "TOKEN_TTL"),
	)
}

// Validate rejects settings no game can be played with.
func (c Config) Validate() error {
	var errs []error
	if c.Game.WordLength < 1 {
		errs = append(errs, fmt.Errorf("config: word_length must be positive, got %d", c.Game.WordLength))
	}
	if c.Game.MaxGuesses < 1 {
		errs = append(errs, fmt.Errorf("config: max_guesses must be positive, got %d", c.Game.MaxGuesses))
	}
	if _, err := game.ParseRules(c.Game.Scoring); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("config: request_timeout must be positive"))
	}
	if c.Server.RateLimitRPS <= 0 || c.Server.RateLimitBurst < 1 {
		errs = append(errs, errors.New("config: rate limit must allow at least one request"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Rules returns the parsed scoring rules. Validate must have passed.
func (c Config) Rules() game.Rules {
	r, _ := game.ParseRules(c.Game.Scoring)
	return r
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = f
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = d
	return nil
}
