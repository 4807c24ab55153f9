// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/batch"
	"github.com/bureau-foundation/gbdhash/lib/codec"
	"github.com/bureau-foundation/gbdhash/lib/gbdhash"
)

type hashParams struct {
	InstanceParams
	cli.JSONOutput
	Format   string `json:"format"   flag:"format"   desc:"output format: text, json or cbor" default:"text"`
	Checksum bool   `json:"checksum" flag:"checksum" desc:"add a BLAKE3 checksum of the stored bytes"`
}

func hashCommand(stdout, stderr io.Writer) *cli.Command {
	var params hashParams

	return &cli.Command{
		Name:    "hash",
		Summary: "Compute GBDHash fingerprints",
		Description: `Compute the GBDHash of each FILE.

Files are decompressed (gzip, bzip2, xz, zstd, lz4), unpacked (zip,
tar: the first regular member) and canonicalized before hashing. Files
are processed in parallel; output follows argument order.

Text output is "FINGERPRINT  FILE" per line, like md5sum. A file that
cannot be hashed is reported on stderr and the command exits 1 after
all files are processed.

--format cbor writes a sequence of Core Deterministic CBOR records,
one per file, suitable for loading into a database.`,
		Usage:  "gbdhash hash [flags] FILE...",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if err := requireFiles("hash", args, false); err != nil {
				return err
			}
			format := params.Format
			if params.OutputJSON {
				format = "json"
			}
			switch format {
			case "text", "json", "cbor":
			default:
				return fmt.Errorf("unknown output format %q (known: text, json, cbor)", format)
			}

			env, err := params.resolve()
			if err != nil {
				return err
			}
			pipeline := env.config.PipelineOptions(env.logger)
			pipeline.SourceChecksum = pipeline.SourceChecksum || params.Checksum

			items, err := batch.Run(ctx, args, batch.Options{
				Workers:  env.config.Workers,
				Pipeline: pipeline,
				Logger:   env.logger,
			})
			if err != nil {
				return err
			}

			records := make([]gbdhash.Record, len(items))
			failures := 0
			for i, item := range items {
				records[i] = gbdhash.NewRecord(item.Path, item.Result, item.Err)
				if item.Err != nil {
					failures++
				}
			}

			switch format {
			case "json":
				err = cli.WriteJSON(stdout, records)
			case "cbor":
				err = codec.WriteRecords(stdout, records)
			default:
				err = writeHashText(stdout, stderr, records)
			}
			if err != nil {
				return fmt.Errorf("writing results: %w", err)
			}

			env.logger.Debug("hash complete", "files", len(records), "failed", failures)
			if failures > 0 {
				return errFailures
			}
			return nil
		},
		Examples: []cli.Example{
			{
				Description: "Fingerprint instances",
				Command:     "gbdhash hash a.cnf b.cnf.xz c.cnf.zip",
			},
			{
				Description: "Weighted MaxSAT instances with source checksums",
				Command:     "gbdhash hash --dialect wcnf --checksum --json *.wcnf.gz",
			},
			{
				Description: "Write CBOR records for a benchmark set",
				Command:     "gbdhash hash -j 16 --format cbor bench/* > bench.cbor",
			},
		},
	}
}

func writeHashText(stdout, stderr io.Writer, records []gbdhash.Record) error {
	for _, record := range records {
		if record.Error != "" {
			fmt.Fprintf(stderr, "gbdhash: %s: %s\n", record.Path, record.Error)
			continue
		}
		line := record.Fingerprint.String() + "  " + record.Path
		if record.SourceChecksum != "" {
			line += "  blake3:" + record.SourceChecksum
		}
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}
