// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/gbdhash"
	"github.com/bureau-foundation/gbdhash/lib/source"
)

type canonicalParams struct {
	InstanceParams
	Raw bool `json:"raw" flag:"raw" desc:"write the decompressed content without canonicalizing"`
}

func canonicalCommand(stdout io.Writer) *cli.Command {
	var params canonicalParams

	return &cli.Command{
		Name:    "canonical",
		Summary: "Write the canonical form of an instance",
		Description: `Write the canonical form of FILE to stdout: exactly the bytes whose
MD5 is the GBDHash. Piping the output through md5sum reproduces the
fingerprint printed by "gbdhash hash".

With --raw, the decompressed content is written unchanged instead.`,
		Usage:  "gbdhash canonical [flags] FILE",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if err := requireFiles("canonical", args, true); err != nil {
				return err
			}
			env, err := params.resolve()
			if err != nil {
				return err
			}
			opts := env.config.PipelineOptions(env.logger)

			open := gbdhash.OpenCanonical
			if params.Raw {
				open = gbdhash.OpenRaw
			}
			stream, err := open(ctx, source.File(args[0]), opts)
			if err != nil {
				return err
			}
			defer stream.Close()

			buffer := make([]byte, opts.ChunkSize)
			if _, err := io.CopyBuffer(stdout, stream, buffer); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return stream.Close()
		},
		Examples: []cli.Example{
			{
				Description: "Check a fingerprint by hand",
				Command:     "gbdhash canonical instance.cnf.xz | md5sum",
			},
			{
				Description: "Extract an instance from an archive",
				Command:     "gbdhash canonical --raw instances.zip > instance.cnf",
			},
		},
	}
}
