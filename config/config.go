// Package config loads the interpreter settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the home directory by Discover.
const FileName = ".treelox.yaml"

type Config struct {
	Prompt       string
	Continuation string
	History      string
	MaxDepth     int
	Color        bool
}

type configFile struct {
	Prompt       *string `yaml:"prompt"`
	Continuation *string `yaml:"continuation"`
	History      *string `yaml:"history"`
	MaxDepth     *int    `yaml:"max_depth"`
	Color        *bool   `yaml:"color"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}

	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}

	return b.String()
}

func Default() *Config {
	return &Config{
		Prompt:       "> ",
		Continuation: ". ",
		History:      "~/.treelox_history",
		MaxDepth:     10000,
	}
}

// Load reads the file at path. Keys left out of the file keep their
// default values; unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: empty path")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Decode parses a config document from r and validates it.
func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("file is empty")
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	cfg := raw.toConfig()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	history, err := expandHome(cfg.History)
	if err != nil {
		return nil, err
	}

	cfg.History = history
	return cfg, nil
}

// Discover loads FileName from the home directory, falling back to the
// defaults when there is no such file.
func Discover() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return withExpandedHistory(Default())
	}

	path := filepath.Join(home, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return withExpandedHistory(Default())
	}

	return Load(path)
}

func withExpandedHistory(cfg *Config) (*Config, error) {
	history, err := expandHome(cfg.History)
	if err != nil {
		// no home directory, so no history file either
		cfg.History = ""
		return cfg, nil
	}

	cfg.History = history
	return cfg, nil
}

func (f configFile) toConfig() *Config {
	cfg := Default()
	if f.Prompt != nil {
		cfg.Prompt = *f.Prompt
	}
	if f.Continuation != nil {
		cfg.Continuation = *f.Continuation
	}
	if f.History != nil {
		cfg.History = *f.History
	}
	if f.MaxDepth != nil {
		cfg.MaxDepth = *f.MaxDepth
	}
	if f.Color != nil {
		cfg.Color = *f.Color
	}

	return cfg
}

func (c *Config) validate() error {
	var errs ValidationError
	if c.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must be a non-empty string")
	}
	if c.Continuation == "" {
		errs.Issues = append(errs.Issues, "continuation must be a non-empty string")
	}
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must not be negative, got %d", c.MaxDepth))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}

	return filepath.Join(home, path[1:]), nil
}
