package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig holds WORDGRID_* environment overrides. Zero values mean unset.
type EnvConfig struct {
	Size       int           `env:"SIZE"`
	Words      []string      `env:"WORDS" envSeparator:","`
	WordsFile  string        `env:"WORDS_FILE"`
	Rule       string        `env:"RULE"`
	WrongDelay time.Duration `env:"WRONG_DELAY"`
	Session    string        `env:"SESSION"`
	DBPath     string        `env:"DB"`
	LogLevel   string        `env:"LOG_LEVEL"`
}

const envPrefix = "WORDGRID_"

// LoadDotEnv loads an optional .env file from the working directory.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ParseEnv reads WORDGRID_* variables.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Game returns the env overrides in file-config shape so both layers merge the same way.
func (e EnvConfig) Game() GameConfig {
	var g GameConfig
	if e.Size != 0 {
		g.Size = &e.Size
	}
	if len(e.Words) > 0 {
		g.Words = &e.Words
	}
	if e.WordsFile != "" {
		g.WordsFile = &e.WordsFile
	}
	if e.Rule != "" {
		g.Rule = &e.Rule
	}
	if e.WrongDelay != 0 {
		g.WrongDelay = &Duration{Duration: e.WrongDelay}
	}
	if e.Session != "" {
		g.Session = &e.Session
	}
	return g
}

// Merge returns base with every non-nil field of over applied on top.
func Merge(base, over GameConfig) GameConfig {
	if over.Size != nil {
		base.Size = over.Size
	}
	if over.Words != nil {
		base.Words = over.Words
	}
	if over.WordsFile != nil {
		base.WordsFile = over.WordsFile
	}
	if over.Rule != nil {
		base.Rule = over.Rule
	}
	if over.WrongDelay != nil {
		base.WrongDelay = over.WrongDelay
	}
	if over.Session != nil {
		base.Session = over.Session
	}
	return base
}
