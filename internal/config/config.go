// Package config loads server settings from the environment and optional
// game-configuration defaults from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/talgya/toyshop/internal/game"
)

// Server holds the runtime settings for the toyshopd process.
type Server struct {
	Addr         string   `env:"TOYSHOP_ADDR" envDefault:":8080"`
	DBPath       string   `env:"TOYSHOP_DB" envDefault:"data/toyshop.db"`
	AdminKey     string   `env:"TOYSHOP_ADMIN_KEY"`
	CORSOrigins  []string `env:"TOYSHOP_CORS_ORIGINS" envSeparator:","`
	RandomOrgKey string   `env:"RANDOM_ORG_KEY"`
	DefaultsFile string   `env:"TOYSHOP_DEFAULTS"`
	LogLevel     string   `env:"TOYSHOP_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads server configuration from environment variables.
func ParseEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// GameDefaults returns the game configuration new sessions start from.
// With an empty path the built-in defaults are used; otherwise the YAML
// file overrides them field by field. The result is validated, so a bad
// defaults file fails at startup rather than on the first game.
func GameDefaults(path string) (game.Configuration, error) {
	cfg := game.DefaultConfiguration()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return game.Configuration{}, fmt.Errorf("read game defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return game.Configuration{}, fmt.Errorf("parse game defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Configuration{}, fmt.Errorf("game defaults %s: %w", path, err)
	}
	return cfg, nil
}
