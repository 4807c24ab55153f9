// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/gbdhash/cmd/gbdhash/cli"
	"github.com/bureau-foundation/gbdhash/lib/canonical"
)

type dialectInfo struct {
	Name          string   `json:"name"`
	CommentMarker string   `json:"comment_marker"`
	ISOHash       bool     `json:"isohash"`
	Extensions    []string `json:"extensions"`
}

func dialectsCommand(stdout io.Writer) *cli.Command {
	var params cli.JSONOutput

	return &cli.Command{
		Name:    "dialects",
		Summary: "List known instance dialects",
		Description: `List the instance dialects accepted by --dialect, with the byte that
starts a comment line in each, whether isohash supports it, and the
file extensions that select it under --dialect auto.`,
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("dialects takes no arguments, got %q", args[0])
			}

			var infos []dialectInfo
			for _, dialect := range canonical.Dialects() {
				infos = append(infos, dialectInfo{
					Name:          dialect.Name,
					CommentMarker: string(dialect.CommentMarker),
					ISOHash:       dialect == canonical.CNF || dialect == canonical.WCNF,
					Extensions:    dialect.Extensions(),
				})
			}
			if done, err := params.EmitJSON(stdout, infos); done {
				return err
			}

			writer := tabwriter.NewWriter(stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintf(writer, "DIALECT\tCOMMENT\tISOHASH\tEXTENSIONS\n")
			for _, info := range infos {
				isohash := "no"
				if info.ISOHash {
					isohash = "yes"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", info.Name, info.CommentMarker, isohash,
					strings.Join(info.Extensions, " "))
			}
			return writer.Flush()
		},
	}
}
