// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/config"
)

// InstanceParams are accepted by every command that reads instances.
// Zero values leave the configured setting in place.
type InstanceParams struct {
	Config    string `json:"config"     flag:"config"       desc:"config file (default: $GBDHASH_CONFIG, then built-in defaults)"`
	Dialect   string `json:"dialect"    flag:"dialect,d"    desc:"instance dialect: auto, cnf, wcnf, qdimacs or opb (auto picks it from the file extension)"`
	Workers   int    `json:"workers"    flag:"workers,j"    desc:"files processed in parallel (default: one per CPU)"`
	MaxDepth  int    `json:"max_depth"  flag:"max-depth"    desc:"nested container limit"`
	TempDir   string `json:"temp_dir"   flag:"temp-dir"     desc:"directory for spooled zip layers"`
	LogLevel  string `json:"log_level"  flag:"log-level"    desc:"debug, info, warn or error"`
	LogFormat string `json:"log_format" flag:"log-format"   desc:"auto, text or json"`
}

// environment is the resolved configuration for one command run.
type environment struct {
	config *config.Config
	logger *slog.Logger
}

// resolve loads the configuration (--config, then GBDHASH_CONFIG, then
// defaults), applies flag overrides and validates the result.
func (p *InstanceParams) resolve() (*environment, error) {
	var cfg *config.Config
	var err error
	switch {
	case p.Config != "":
		cfg, err = config.LoadFile(p.Config)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if p.Dialect != "" {
		cfg.Dialect = p.Dialect
	}
	if p.Workers != 0 {
		cfg.Workers = p.Workers
	}
	if p.MaxDepth != 0 {
		cfg.MaxDepth = p.MaxDepth
	}
	if p.TempDir != "" {
		cfg.TempDir = p.TempDir
	}
	if p.LogLevel != "" {
		cfg.Log.Level = p.LogLevel
	}
	if p.LogFormat != "" {
		cfg.Log.Format = p.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration:\n%w", err)
	}

	level, _ := cfg.Log.SlogLevel()
	logger, err := cli.NewCommandLogger(level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return &environment{config: cfg, logger: logger}, nil
}

// requireFiles checks the positional FILE arguments.
func requireFiles(command string, args []string, single bool) error {
	switch {
	case len(args) == 0:
		return fmt.Errorf("%s: FILE argument required", command)
	case single && len(args) > 1:
		return fmt.Errorf("%s takes one FILE, got %d", command, len(args))
	}
	return nil
}

// errFailures is returned when at least one file of a batch failed.
// The failures have already been reported.
var errFailures = &cli.ExitError{Code: 1}
