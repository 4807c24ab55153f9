// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/decompress"
)

type containerSignature struct {
	Kind   decompress.Kind `json:"kind"`
	Offset int             `json:"offset"`
	Magic  string          `json:"magic"`
}

func containersCommand(stdout io.Writer) *cli.Command {
	var params cli.JSONOutput

	return &cli.Command{
		Name:    "containers",
		Summary: "List recognized container signatures",
		Description: `List the magic-byte signatures used to recognize compression and
archive layers, in the order they are checked. The first match wins;
content matching none of them is hashed as plain text.`,
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("containers takes no arguments, got %q", args[0])
			}

			var entries []containerSignature
			for _, signature := range decompress.Signatures() {
				entries = append(entries, containerSignature{
					Kind:   signature.Kind,
					Offset: signature.Offset,
					Magic:  hex.EncodeToString(signature.Magic),
				})
			}
			if done, err := params.EmitJSON(stdout, entries); done {
				return err
			}

			writer := tabwriter.NewWriter(stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "KIND\tOFFSET\tMAGIC\n")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%d\t%s\n", entry.Kind, entry.Offset, entry.Magic)
			}
			return writer.Flush()
		},
	}
}
