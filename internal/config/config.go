// Package config loads codeblockedit settings from YAML and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is looked up in the working directory when no explicit
// configuration path is given.
const DefaultFilename = ".codeblockedit.yaml"

const envPrefix = "CODEBLOCKEDIT_"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all settings.
type Config struct {
	// Root is the directory holding the raw documents.
	Root string `yaml:"root"`
	// Extension is appended to a document id to form its file name.
	Extension string `yaml:"extension"`
	// Editor is the shell command run on a block's temp file; "{}" expands
	// to its path. When empty, $EDITOR is used.
	Editor string `yaml:"editor"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Color is one of auto, always, never.
	Color string `yaml:"color"`
	// Readonly lists glob patterns of document ids that cannot be edited.
	Readonly []string `yaml:"readonly,omitempty"`
	// DiffContext is the number of context lines in printed diffs.
	DiffContext int `yaml:"diff_context"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Root:        "pages",
		Extension:   ".txt",
		LogLevel:    "info",
		Color:       ColorAuto,
		DiffContext: 3, //nolint:gomnd
	}
}

// FromYAML parses settings on top of the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// ToYAML serializes the settings.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2) //nolint:gomnd

	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// Load reads settings from path. An empty path falls back to DefaultFilename
// when it exists, and to the defaults otherwise. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	explicit := len(path) != 0
	if !explicit {
		path = DefaultFilename
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if cfg, err = FromYAML(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides settings from CODEBLOCKEDIT_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, name := range []string{"ROOT", "EXTENSION", "EDITOR", "LOG_LEVEL", "COLOR", "READONLY", "DIFF_CONTEXT"} {
		value, ok := lookup(envPrefix + name)
		if !ok || len(value) == 0 {
			continue
		}

		switch name {
		case "ROOT":
			c.Root = value
		case "EXTENSION":
			c.Extension = value
		case "EDITOR":
			c.Editor = value
		case "LOG_LEVEL":
			c.LogLevel = value
		case "COLOR":
			c.Color = value
		case "READONLY":
			c.Readonly = splitList(value)
		case "DIFF_CONTEXT":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %q is not an integer", ErrInvalidConfig, envPrefix, name, value)
			}

			c.DiffContext = n
		}
	}

	return nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error

	if len(strings.TrimSpace(c.Root)) == 0 {
		errs = append(errs, fmt.Errorf("%w: root must not be empty", ErrInvalidConfig))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalidConfig, c.Color))
	}

	if c.DiffContext < 0 {
		errs = append(errs, fmt.Errorf("%w: diff_context must not be negative", ErrInvalidConfig))
	}

	if len(c.Extension) != 0 && !strings.HasPrefix(c.Extension, ".") {
		errs = append(errs, fmt.Errorf("%w: extension must start with a dot, got %q", ErrInvalidConfig, c.Extension))
	}

	return errors.Join(errs...)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); len(trimmed) != 0 {
			result = append(result, trimmed)
		}
	}

	return result
}
