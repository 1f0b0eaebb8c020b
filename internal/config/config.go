// Package config loads console settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the console's runtime settings. Values come from the
// environment; command-line flags override them.
type Config struct {
	HistoryFile  string `env:"ICLI_HISTORY_FILE" envDefault:"~/.console-history"`
	HistoryLimit int    `env:"ICLI_HISTORY_LIMIT" envDefault:"2000"`
	Debug        bool   `env:"ICLI_DEBUG" envDefault:"false"`
}

// Load parses configuration from the environment and resolves the
// history file path.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	path, err := ExpandHome(cfg.HistoryFile)
	if err != nil {
		return Config{}, err
	}
	cfg.HistoryFile = path
	return cfg, nil
}

// ExpandHome resolves a leading "~" against the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
