// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// gbdhash computes content identifiers for SAT, MaxSAT, QBF and
// pseudo-Boolean benchmark instances. Run "gbdhash --help" for the
// command list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own failures (like hash with
		// unreadable files) return an ExitError with the desired exit
		// code. Don't print a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(os.Stdout, os.Stderr).Execute(ctx, os.Args[1:])
}
