// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/decompress"
	"github.com/bureau-foundation/gbdhash/lib/source"
)

type detectParams struct {
	InstanceParams
	cli.JSONOutput
}

// detection is the report for one file.
type detection struct {
	Path   string            `json:"path"`
	Layers []decompress.Kind `json:"layers"`
	Member string            `json:"member,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func detectCommand(stdout, stderr io.Writer) *cli.Command {
	var params detectParams

	return &cli.Command{
		Name:    "detect",
		Summary: "Show the container layers of instance files",
		Description: `Identify the compression and archive layers wrapping each FILE,
outermost first, and the archive member that would be hashed.

Layers are recognized by content signature, never by file name. A
file with no recognized layer is reported as "none". Files that cannot
be opened or decoded are reported on stderr and the command exits 1
after every file has been examined.`,
		Usage:  "gbdhash detect [flags] FILE...",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string) error {
			if err := requireFiles("detect", args, false); err != nil {
				return err
			}
			env, err := params.resolve()
			if err != nil {
				return err
			}
			opts := []decompress.Option{
				decompress.WithMaxDepth(env.config.MaxDepth),
				decompress.WithTempDir(env.config.TempDir),
				decompress.WithLogger(env.logger),
			}

			detections := make([]detection, 0, len(args))
			failures := 0
			for _, path := range args {
				if err := ctx.Err(); err != nil {
					return err
				}
				report, err := detect(path, opts)
				if err != nil {
					report = detection{Path: path, Error: err.Error()}
					failures++
					env.logger.Debug("detection failed", "path", path, "error", err)
				}
				detections = append(detections, report)
			}

			done, err := params.EmitJSON(stdout, detections)
			if err != nil {
				return err
			}
			if !done {
				for _, report := range detections {
					if report.Error != "" {
						fmt.Fprintf(stderr, "gbdhash: %s: %s\n", report.Path, report.Error)
						continue
					}
					if _, err := fmt.Fprintln(stdout, report.text()); err != nil {
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
				Description: "Inspect a download",
				Command:     "gbdhash detect instance.tar.gz",
			},
		},
	}
}

func detect(path string, opts []decompress.Option) (detection, error) {
	stream, err := decompress.Open(source.File(path), opts...)
	if err != nil {
		return detection{}, err
	}
	report := detection{
		Path:   path,
		Layers: stream.Layers(),
		Member: stream.Member(),
	}
	if report.Layers == nil {
		report.Layers = []decompress.Kind{}
	}
	return report, stream.Close()
}

// text formats the report as "PATH: gzip > tar [member]".
func (d detection) text() string {
	if len(d.Layers) == 0 {
		return d.Path + ": " + decompress.None.String()
	}
	names := make([]string, len(d.Layers))
	for i, kind := range d.Layers {
		names[i] = kind.String()
	}
	line := d.Path + ": " + strings.Join(names, " > ")
	if d.Member != "" {
		line += " [" + d.Member + "]"
	}
	return line
}
