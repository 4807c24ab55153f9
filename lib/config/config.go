// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/gbdhash/lib/canonical"
	"github.com/bureau-foundation/gbdhash/lib/decompress"
	"github.com/bureau-foundation/gbdhash/lib/gbdhash"
)

// EnvironmentVariable names the config file when no --config flag is
// given.
const EnvironmentVariable = "GBDHASH_CONFIG"

// AutoDialect selects the dialect per file from its extension, falling
// back to cnf when the extension names no dialect.
const AutoDialect = "auto"

// maxDepthLimit bounds max_depth. Deeper nesting than this is not a
// real benchmark file.
const maxDepthLimit = 16

// Config is the complete gbdhash configuration.
type Config struct {
	// Dialect selects the comment marker: auto, cnf, wcnf, qdimacs or
	// opb.
	// Default: auto
	Dialect string `yaml:"dialect"`

	// ChunkSize is the pipeline copy buffer in bytes.
	// Default: 65536
	ChunkSize int `yaml:"chunk_size"`

	// MaxDepth bounds nested container unwrapping.
	// Default: 4
	MaxDepth int `yaml:"max_depth"`

	// Workers bounds concurrent files in batch commands. Zero means
	// one per CPU.
	Workers int `yaml:"workers"`

	// TempDir is where zip layers are spooled. Empty means the system
	// temporary directory.
	TempDir string `yaml:"temp_dir"`

	// SourceChecksum adds a BLAKE3 checksum of the stored bytes to
	// every result.
	SourceChecksum bool `yaml:"source_checksum"`

	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text or
	// json.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Dialect:   AutoDialect,
		ChunkSize: gbdhash.DefaultChunkSize,
		MaxDepth:  decompress.DefaultMaxDepth,
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by GBDHASH_CONFIG. It
// fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your gbdhash.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Values in the
// file override Default; absent keys keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":   os.Getenv("HOME"),
		"TMPDIR": os.TempDir(),
	}

	c.TempDir = expandVars(c.TempDir, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Dialect != AutoDialect {
		if _, err := canonical.LookupDialect(c.Dialect); err != nil {
			errs = append(errs, fmt.Errorf("dialect: %w", err))
		}
	}

	if c.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize))
	}

	if c.MaxDepth < 1 || c.MaxDepth > maxDepthLimit {
		errs = append(errs, fmt.Errorf("max_depth must be between 1 and %d, got %d", maxDepthLimit, c.MaxDepth))
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	if c.TempDir != "" {
		if info, err := os.Stat(c.TempDir); err != nil {
			errs = append(errs, fmt.Errorf("temp_dir: %w", err))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Errorf("temp_dir %s is not a directory", c.TempDir))
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	formats := []string{"auto", "text", "json"}
	if !slices.Contains(formats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level must be one of debug, info, warn, error: got %q", l.Level)
	}
	return level, nil
}

// PipelineOptions converts the configuration to pipeline options. The
// configuration must have passed Validate. With the auto dialect the
// options infer the dialect from each source name.
func (c *Config) PipelineOptions(logger *slog.Logger) gbdhash.Options {
	auto := c.Dialect == AutoDialect
	dialect, err := canonical.LookupDialect(c.Dialect)
	if err != nil {
		dialect = canonical.DefaultDialect
	}
	return gbdhash.Options{
		Dialect:        dialect,
		InferDialect:   auto,
		ChunkSize:      c.ChunkSize,
		MaxDepth:       c.MaxDepth,
		TempDir:        c.TempDir,
		SourceChecksum: c.SourceChecksum,
		Logger:         logger,
	}
}
