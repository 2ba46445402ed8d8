// Package config loads the settings of the prover from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the content of the configuration file.
type Config struct {
	Style StyleConfig `yaml:"style"`
	Log   LogConfig   `yaml:"log"`
}

// StyleConfig tells how formulas and proofs are displayed.
type StyleConfig struct {
	Unicode   bool   `yaml:"unicode"`   // Unicode symbols instead of ASCII ones
	Negation  bool   `yaml:"negation"`  // Print P -> ! as ~P
	Highlight string `yaml:"highlight"` // auto, always or never
	Emphasis  bool   `yaml:"emphasis"`  // Emphasize the current goal
}

// LogConfig tells where and what to log.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	File  string `yaml:"file"`  // Empty for no log file
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		Style: StyleConfig{
			Negation:  true,
			Highlight: "auto",
			Emphasis:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath is the path of the configuration file when none is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's config directory: %w", err)
	}
	return filepath.Join(dir, "prove", "config.yaml"), nil
}

// Parse parses a YAML configuration.
// Missing fields keep their default value.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
// The returned error wraps fs.ErrNotExist if there is no such file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every enumerated field has a known value.
func (c Config) Validate() error {
	switch c.Style.Highlight {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid style.highlight %q, expected auto, always or never", c.Style.Highlight)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q, expected debug, info, warn or error", c.Log.Level)
	}
	return nil
}

// YAML returns c as a YAML document that Parse accepts.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
