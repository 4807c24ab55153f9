// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the gbdhash command tree. main executes the
// tree returned by [Root]; tests build their own with buffers for the
// output streams.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/version"
)

// Root builds the complete command tree. Results are written to stdout;
// per-file failures in text mode are written to stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name: "gbdhash",
		Description: `gbdhash: content identifiers for benchmark instances.

A GBDHash is the MD5 of an instance's canonical form: compression and
archive layers removed, comment lines dropped, whitespace normalized.
Two files with the same GBDHash hold the same instance no matter how
they were packed or formatted.`,
		Subcommands: []*cli.Command{
			hashCommand(stdout, stderr),
			canonicalCommand(stdout),
			detectCommand(stdout, stderr),
			containersCommand(stdout),
			isohashCommand(stdout, stderr),
			dialectsCommand(stdout),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string) error {
					if len(args) > 0 {
						return fmt.Errorf("version takes no arguments, got %q", args[0])
					}
					_, err := fmt.Fprintf(stdout, "gbdhash %s\n", version.Full())
					return err
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Fingerprint every instance in a directory",
				Command:     "gbdhash hash -j 8 bench/*.cnf.xz",
			},
			{
				Description: "Show what gbdhash hashes for one file",
				Command:     "gbdhash canonical instance.cnf.gz | head",
			},
		},
	}
}
