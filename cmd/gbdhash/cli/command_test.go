// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "gbdhash",
		Subcommands: []*Command{
			{
				Name: "hash",
				Run: func(context.Context, []string) error {
					called = "hash"
					return nil
				},
			},
			{
				Name: "detect",
				Run: func(context.Context, []string) error {
					called = "detect"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"detect"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "detect" {
		t.Errorf("dispatched to %q, want %q", called, "detect")
	}
}

func TestCommand_Execute_PassesContextAndArgs(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")
	var receivedArgs []string
	var receivedValue any

	root := &Command{
		Name: "gbdhash",
		Subcommands: []*Command{
			{
				Name: "hash",
				Run: func(ctx context.Context, args []string) error {
					receivedArgs = args
					receivedValue = ctx.Value(key{})
					return nil
				},
			},
		},
	}

	if err := root.Execute(ctx, []string{"hash", "a.cnf", "b.cnf.xz"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "a.cnf" || receivedArgs[1] != "b.cnf.xz" {
		t.Errorf("args = %v, want [a.cnf b.cnf.xz]", receivedArgs)
	}
	if receivedValue != "marker" {
		t.Errorf("context value = %v, want marker", receivedValue)
	}
}

func TestCommand_Execute_ParamsBinding(t *testing.T) {
	type hashParams struct {
		JSONOutput
		Dialect string `flag:"dialect" desc:"instance dialect" default:"cnf"`
		Workers int    `flag:"workers,j" desc:"parallel files"`
	}
	var params hashParams
	var files []string

	command := &Command{
		Name:   "hash",
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string) error {
			files = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--dialect", "opb", "-j", "4", "--json", "x.opb"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if params.Dialect != "opb" || params.Workers != 4 || !params.OutputJSON {
		t.Errorf("params = %+v", params)
	}
	if len(files) != 1 || files[0] != "x.opb" {
		t.Errorf("args = %v, want [x.opb]", files)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var tempDir string
	var target string

	command := &Command{
		Name: "canonical",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("canonical", pflag.ContinueOnError)
			flagSet.StringVar(&tempDir, "temp-dir", "/tmp", "spool directory")
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--temp-dir", "/scratch", "instance.cnf.zip"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if tempDir != "/scratch" {
		t.Errorf("tempDir = %q, want %q", tempDir, "/scratch")
	}
	if target != "instance.cnf.zip" {
		t.Errorf("target = %q, want %q", target, "instance.cnf.zip")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "hash",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("hash", pflag.ContinueOnError)
			flagSet.Bool("checksum", false, "add source checksums")
			flagSet.String("dialect", "cnf", "instance dialect")
			return flagSet
		},
		Run: func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--dialcet"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --dialect") {
		t.Errorf("error = %q, want suggestion for '--dialect'", errStr)
	}
	if !strings.Contains(errStr, "dialcet") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "hash",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("hash", pflag.ContinueOnError)
			flagSet.Bool("checksum", false, "add source checksums")
			return flagSet
		},
		Run: func(context.Context, []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "gbdhash",
		Subcommands: []*Command{
			{Name: "hash"},
			{Name: "detect"},
			{Name: "isohash"},
		},
	}

	err := root.Execute(context.Background(), []string{"detcet"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"detect\"") {
		t.Errorf("error = %q, want suggestion for 'detect'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "gbdhash",
		Subcommands: []*Command{
			{Name: "hash"},
			{Name: "detect"},
		},
	}

	err := root.Execute(context.Background(), []string{"zzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "gbdhash",
				Summary: "Benchmark instance identifiers",
				Subcommands: []*Command{
					{Name: "hash", Summary: "Compute GBDHash fingerprints"},
				},
			}

			if err := root.Execute(context.Background(), []string{helpArg}); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "gbdhash",
		Subcommands: []*Command{
			{Name: "hash", Summary: "Compute GBDHash fingerprints"},
		},
	}

	err := root.Execute(context.Background(), []string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "gbdhash",
		Description: "Content identifiers for benchmark instances.",
		Subcommands: []*Command{
			{Name: "hash", Summary: "Compute GBDHash fingerprints"},
			{Name: "detect", Summary: "Show container layers"},
		},
		Examples: []Example{
			{
				Description: "Fingerprint a directory of instances",
				Command:     "gbdhash hash bench/*.cnf.xz",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Content identifiers for benchmark instances.",
		"Usage:",
		"gbdhash <command> [flags]",
		"Commands:",
		"hash",
		"Compute GBDHash fingerprints",
		"detect",
		"Examples:",
		"# Fingerprint a directory of instances",
		"gbdhash hash bench/*.cnf.xz",
		"Run 'gbdhash <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithParams(t *testing.T) {
	type detectParams struct {
		JSONOutput
		MaxDepth int `flag:"max-depth" desc:"nested container limit" default:"4"`
	}
	var params detectParams
	command := &Command{
		Name:   "detect",
		Usage:  "gbdhash detect [flags] FILE",
		Params: func() any { return &params },
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"gbdhash detect [flags] FILE",
		"Flags:",
		"max-depth",
		"json",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "gbdhash"}
	hash := &Command{Name: "hash", parent: root}

	if got := root.fullName(); got != "gbdhash" {
		t.Errorf("root.fullName() = %q, want %q", got, "gbdhash")
	}
	if got := hash.fullName(); got != "gbdhash hash" {
		t.Errorf("hash.fullName() = %q, want %q", got, "gbdhash hash")
	}
}
