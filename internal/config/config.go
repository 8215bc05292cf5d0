// Package config loads process configuration from the environment.
//
// A .env file in the working directory is read first (missing is fine),
// then variables are parsed into Config. Per-purpose secrets are derived
// from WORDGRID_SECRET with HKDF so a single value can be rotated.
package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"5175"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	Rows            int  `env:"WORDGRID_ROWS" envDefault:"6"`
	Cols            int  `env:"WORDGRID_COLS" envDefault:"5"`
	HelpfulKeyboard bool `env:"HELPFUL_KEYBOARD" envDefault:"true"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`
	DBDriver    string `env:"WORDS_DB_DRIVER"`
	DBDSN       string `env:"WORDS_DB_DSN"`

	Secret    string        `env:"WORDGRID_SECRET" envDefault:"dev_secret_change_me"`
	DailySalt string        `env:"DAILY_SALT"`
	TokenTTL  time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"24h"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the current environment without touching .env.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks grid dimensions and the SQL word source settings.
func (c Config) Validate() error {
	if c.Rows < 1 {
		return fmt.Errorf("config: WORDGRID_ROWS must be >= 1, got %d", c.Rows)
	}
	if c.Cols < 1 || c.Cols > 32 {
		return fmt.Errorf("config: WORDGRID_COLS must be in 1..32, got %d", c.Cols)
	}
	if (c.DBDriver == "") != (c.DBDSN == "") {
		return errors.New("config: WORDS_DB_DRIVER and WORDS_DB_DSN must be set together")
	}
	switch c.DBDriver {
	case "", "sqlite3", "postgres":
	default:
		return fmt.Errorf("config: unsupported WORDS_DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// TokenKey is the HMAC key for session tokens.
func (c Config) TokenKey() ([]byte, error) { return c.derive("wordgrid session token") }

// DailyKey keys the daily answer index. DAILY_SALT, when set, is used as-is.
func (c Config) DailyKey() ([]byte, error) {
	if c.DailySalt != "" {
		return []byte(c.DailySalt), nil
	}
	return c.derive("wordgrid daily answer")
}

func (c Config) derive(info string) ([]byte, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(c.Secret), nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}
