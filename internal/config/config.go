package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env/flags.
type Config struct {
	// Language selects the built-in exclusion pattern.
	Language string `json:"language" yaml:"language"`
	// Pattern, when set, overrides the language's built-in pattern.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Filter is an optional CEL expression over entry metadata.
	Filter string `json:"filter" yaml:"filter"`
	// Namespace is the content namespace (single character).
	Namespace string `json:"namespace" yaml:"namespace"`
	// Documents is the number of entries per output file.
	Documents int `json:"documents" yaml:"documents"`
	// Zeroes is the output filename padding width.
	Zeroes int `json:"zeroes" yaml:"zeroes"`
	// Threads is the number of parallel writer workers.
	Threads int `json:"threads" yaml:"threads"`
	// QueueDepth bounds the batch queue; 0 means "same as Threads".
	QueueDepth int `json:"queueDepth" yaml:"queueDepth"`
	// Compress gzips output files.
	Compress bool `json:"compress" yaml:"compress"`
	// LogLevel is debug|info|warn|error|fatal.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
	// LogFormat is text|json.
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Language:  "hu",
		Namespace: "A",
		Documents: 2500,
		Zeroes:    4,
		Threads:   10,
		Compress:  true,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path
// is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate checks value ranges after all overlays have been applied.
func (c Config) Validate() error {
	if len(c.Namespace) != 1 {
		return fmt.Errorf("namespace must be a single character, got %q", c.Namespace)
	}
	if c.Documents < 1 {
		return fmt.Errorf("documents must be positive, got %d", c.Documents)
	}
	if c.Zeroes < 1 {
		return fmt.Errorf("zeroes must be positive, got %d", c.Zeroes)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads must be positive, got %d", c.Threads)
	}
	if c.QueueDepth < 0 {
		return fmt.Errorf("queueDepth must not be negative, got %d", c.QueueDepth)
	}
	return nil
}
