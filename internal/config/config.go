// Package config loads covex configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all covex configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	History HistoryConfig `yaml:"history"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// EngineConfig configures the inference kernel.
type EngineConfig struct {
	// MaxIterations bounds the fixpoint loop; 0 keeps the default.
	MaxIterations int `yaml:"max_iterations"`
}

// HistoryConfig configures assessment persistence.
type HistoryConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		History: HistoryConfig{Path: defaultHistoryPath()},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".covex", "history.db")
	}
	return filepath.Join(home, ".covex", "history.db")
}

// Load reads configuration from path, filling unset fields with
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultHistoryPath()
	}
	return cfg, nil
}
