// Package config holds the emulator run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Config holds the settings applied to an emulator run.
type Config struct {
	// MaxInstructions bounds the number of steps in one run. 0 means no
	// limit. Default: 1,000,000.
	MaxInstructions uint64 `json:"max_instructions"`

	// UndefinedSeed seeds the generator for architecturally undefined
	// results such as division by zero. Default: 0.
	UndefinedSeed uint64 `json:"undefined_seed"`

	// LogLevel is a logrus level name. Default: "warning".
	LogLevel string `json:"log_level"`

	// HistoryFile stores the debugger's command history. Empty disables
	// history. Default: mipsim_history in the temp directory.
	HistoryFile string `json:"history_file"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxInstructions: 1_000_000,
		UndefinedSeed:   0,
		LogLevel:        "warning",
		HistoryFile:     filepath.Join(os.TempDir(), "mipsim_history"),
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
