// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/batch"
	"github.com/bureau-foundation/gbdhash/lib/digest"
	"github.com/bureau-foundation/gbdhash/lib/gbdhash"
	"github.com/bureau-foundation/gbdhash/lib/source"
)

type isohashParams struct {
	InstanceParams
	cli.JSONOutput
}

// isohashRecord is the JSON form of one isohash outcome.
type isohashRecord struct {
	Path    string             `json:"path"`
	ISOHash digest.Fingerprint `json:"isohash,omitzero"`
	Error   string             `json:"error,omitempty"`
}

func isohashCommand(stdout, stderr io.Writer) *cli.Command {
	var params isohashParams

	return &cli.Command{
		Name:    "isohash",
		Summary: "Compute isomorphism-invariant hashes",
		Description: `Compute the ISOHash of each FILE: a hash of the sorted variable
occurrence profile, unchanged by renaming variables, flipping their
polarity, or reordering clauses and literals. Equal GBDHashes imply
equal ISOHashes; the converse does not hold.

Defined for the cnf and wcnf dialects.`,
		Usage:  "gbdhash isohash [flags] FILE...",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if err := requireFiles("isohash", args, false); err != nil {
				return err
			}
			env, err := params.resolve()
			if err != nil {
				return err
			}
			opts := env.config.PipelineOptions(env.logger)

			outcomes, err := batch.Map(ctx, args, env.config.Workers, env.logger,
				func(ctx context.Context, path string) (digest.Fingerprint, error) {
					return gbdhash.ComputeISO(ctx, source.File(path), opts)
				})
			if err != nil {
				return err
			}

			records := make([]isohashRecord, len(outcomes))
			failures := 0
			for i, outcome := range outcomes {
				records[i] = isohashRecord{Path: outcome.Input, ISOHash: outcome.Value}
				if outcome.Err != nil {
					records[i].Error = outcome.Err.Error()
					failures++
				}
			}

			done, err := params.EmitJSON(stdout, records)
			if err != nil {
				return err
			}
			if !done {
				for _, record := range records {
					if record.Error != "" {
						fmt.Fprintf(stderr, "gbdhash: %s: %s\n", record.Path, record.Error)
						continue
					}
					if _, err := fmt.Fprintf(stdout, "%s  %s\n", record.ISOHash, record.Path); err != nil {
						return err
					}
				}
			}

			if failures > 0 {
				return errFailures
			}
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Find renamed copies in a benchmark set",
				Command:     "gbdhash isohash bench/*.cnf.xz | sort | uniq -D -w 32",
			},
		},
	}
}
