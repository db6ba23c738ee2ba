// internal/config/config.go
//
// Environment configuration for the module host.
// Responsibilities:
//   - Parse env vars (with defaults) into Config via struct tags.
//   - Validate the module variants and convert them to game.Config.

// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/robalobadob/notthefan/internal/game"
)

// Config holds every environment-driven setting.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/notthefan.db"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"fan_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	Environment    string `env:"NODE_ENV" envDefault:"development"`

	WordsTableFile string `env:"WORDS_TABLE_FILE"`
	Stages         int    `env:"FAN_STAGES" envDefault:"3"`
	FinalRow       string `env:"FAN_FINAL_ROW" envDefault:"offset"`
	BitOrder       string `env:"FAN_BIT_ORDER" envDefault:"low-first"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the module variants.
func Load() (Config, error) {
	var c Config
	if err := ParseEnv(&c); err != nil {
		return Config{}, err
	}
	if _, err := c.Game(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Production reports whether secure cookies and hidden debug routes apply.
func (c Config) Production() bool { return c.Environment == "production" }

// Game converts the variant settings into a game.Config.
func (c Config) Game() (game.Config, error) {
	f, err := game.ParseFinalRowFormula(c.FinalRow)
	if err != nil {
		return game.Config{}, fmt.Errorf("FAN_FINAL_ROW: %w", err)
	}
	b, err := game.ParseBitOrder(c.BitOrder)
	if err != nil {
		return game.Config{}, fmt.Errorf("FAN_BIT_ORDER: %w", err)
	}
	if c.Stages < 1 {
		return game.Config{}, fmt.Errorf("FAN_STAGES: %w: %d", game.ErrTooManyStages, c.Stages)
	}
	return game.Config{Stages: c.Stages, FinalRow: f, BitOrder: b}, nil
}
