package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment; command-line flags override it.
type Config struct {
	CatalogPath string `env:"FPLSIM_CATALOG" envDefault:"data/raw/catalog/athletes.csv"`
	CatalogURL  string `env:"FPLSIM_CATALOG_URL"`
	RawRoot     string `env:"FPLSIM_RAW_ROOT" envDefault:"data/raw"`
	DerivedRoot string `env:"FPLSIM_DERIVED_ROOT" envDefault:"data/derived"`
	// Seed of 0 means draw a fresh seed at startup.
	Seed      int64  `env:"FPLSIM_SEED" envDefault:"0"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	APIKey    string `env:"FPL_MCP_API_KEY"`
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
