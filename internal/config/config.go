// Package config loads the YAML configuration of the spikeglx command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config represents the spikeglx command configuration
type Config struct {
	ShankSeparationUM float64 `yaml:"shank_separation_um"`
	SyncChannel       int     `yaml:"sync_channel"`
	StrictGeometry    bool    `yaml:"strict_geometry"`
	Output            Output  `yaml:"output"`
	Logging           Logging `yaml:"logging"`
}

// Output contains output formatting configuration
type Output struct {
	Format string `yaml:"format"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml"}

// Levels lists the accepted log levels.
var Levels = []string{"debug", "info", "warn", "error"}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		ShankSeparationUM: 250,
		SyncChannel:       -1,
		Output: Output{
			Format: "text",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load loads configuration from the specified path. Keys absent from the
// file keep their default values.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path
func Save(cfg *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.ShankSeparationUM < 0 {
		return fmt.Errorf("shank_separation_um must not be negative, got %g", c.ShankSeparationUM)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", Formats, c.Output.Format)
	}
	if !slices.Contains(Levels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", Levels, c.Logging.Level)
	}
	return nil
}

// DefaultPath returns the default configuration path for the current platform
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./spikeglx.yaml"
	}
	return filepath.Join(configDir, "spikeglx", "config.yaml")
}

// Exists checks if a configuration file exists
func Exists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
