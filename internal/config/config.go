// Package config loads CLI defaults from the user config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppName is the application name used for the config directory.
const AppName = "cellpath"

// Config holds CLI configuration defaults. Command-line flags take
// precedence over every field.
type Config struct {
	OutputFormat string `yaml:"output_format,omitempty"` // json, jsonl, text, csv
	Separator    string `yaml:"separator,omitempty"`
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.yaml"), nil
}

// Load reads a config file. A missing file yields an empty config, not
// an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// ReadConfig reads the config file from the default location.
func ReadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
