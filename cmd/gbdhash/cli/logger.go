// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI diagnostics on
// stderr. With format "auto", a terminal gets slog.TextHandler for
// human-readable output and a pipe or file gets slog.JSONHandler for
// machine-parseable output. "text" and "json" force one handler.
func NewCommandLogger(level slog.Level, format string) (*slog.Logger, error) {
	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	return newLogger(os.Stderr, level, format, interactive)
}

func newLogger(w io.Writer, level slog.Level, format string, interactive bool) (*slog.Logger, error) {
	options := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, options)), nil
	case "auto", "":
		if interactive {
			return slog.New(slog.NewTextHandler(w, options)), nil
		}
		return slog.New(slog.NewJSONHandler(w, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
