package config

import (
	"fmt"
	"os"
)

// Defaults match the dataset layout shipped in the repo's data directory.
const (
	DefaultNEOPath = "data/neos.csv"
	DefaultCADPath = "data/cad.json"
)

// Config holds all tool settings, populated from environment variables.
// Command-line flags may override the dataset paths per invocation.
type Config struct {
	NEOPath   string
	CADPath   string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cfg := &Config{
		NEOPath:   envOrDefault("NEO_CSV_PATH", DefaultNEOPath),
		CADPath:   envOrDefault("CAD_JSON_PATH", DefaultCADPath),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want text or json)", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
