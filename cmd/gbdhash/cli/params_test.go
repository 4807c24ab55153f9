// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Dialect  string   `flag:"dialect" desc:"instance dialect"`
		Checksum bool     `flag:"checksum,c" desc:"add source checksums"`
		Workers  int      `flag:"workers" desc:"parallel files"`
		Limit    int64    `flag:"limit" desc:"byte limit"`
		Formats  []string `flag:"formats" desc:"output formats"`
		Untagged string   // no flag tag, skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--dialect", "wcnf",
		"-c",
		"--workers", "12",
		"--limit", "1099511627776",
		"--formats", "text,cbor",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Dialect != "wcnf" {
		t.Errorf("Dialect = %q, want %q", p.Dialect, "wcnf")
	}
	if !p.Checksum {
		t.Error("Checksum = false, want true")
	}
	if p.Workers != 12 {
		t.Errorf("Workers = %d, want 12", p.Workers)
	}
	if p.Limit != 1099511627776 {
		t.Errorf("Limit = %d, want 1099511627776", p.Limit)
	}
	if len(p.Formats) != 2 || p.Formats[0] != "text" || p.Formats[1] != "cbor" {
		t.Errorf("Formats = %v, want [text cbor]", p.Formats)
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want empty", p.Untagged)
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Dialect  string   `flag:"dialect" desc:"dialect" default:"cnf"`
		Workers  int      `flag:"workers" desc:"workers" default:"8"`
		Limit    int64    `flag:"limit" desc:"limit" default:"100"`
		Checksum bool     `flag:"checksum" desc:"checksum" default:"true"`
		Formats  []string `flag:"formats" desc:"formats" default:"text,json"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Dialect != "cnf" || p.Workers != 8 || p.Limit != 100 || !p.Checksum {
		t.Errorf("defaults not applied: %+v", p)
	}
	if len(p.Formats) != 2 || p.Formats[0] != "text" || p.Formats[1] != "json" {
		t.Errorf("Formats = %v, want [text json]", p.Formats)
	}
}

func TestBindFlags_EmbeddedStructs(t *testing.T) {
	type Shared struct {
		Config string `flag:"config" desc:"config file"`
	}
	type params struct {
		Shared
		JSONOutput
		File string `flag:"file" desc:"input file"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse([]string{"--config", "gbdhash.yaml", "--json", "--file", "a.cnf"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Config != "gbdhash.yaml" || !p.OutputJSON || p.File != "a.cnf" {
		t.Errorf("embedded binding failed: %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	var notStruct int
	if err := BindFlags(&notStruct, pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Error("BindFlags(*int) should fail")
	}

	type unsupported struct {
		Ratio float32 `flag:"ratio" desc:"ratio"`
	}
	err := BindFlags(&unsupported{}, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "unsupported type") {
		t.Errorf("error = %v, want unsupported type", err)
	}

	type badDefault struct {
		Workers int `flag:"workers" desc:"workers" default:"many"`
	}
	err = BindFlags(&badDefault{}, pflag.NewFlagSet("test", pflag.ContinueOnError))
	if err == nil || !strings.Contains(err.Error(), "--workers") {
		t.Errorf("error = %v, want default parse error for --workers", err)
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams with a non-pointer should panic")
		}
	}()
	FlagsFromParams("test", struct{}{})
}

func TestEmitJSON(t *testing.T) {
	var output JSONOutput
	var buffer bytes.Buffer

	done, err := output.EmitJSON(&buffer, map[string]int{"files": 3})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = %v, %v (wrote %d bytes)", done, err, buffer.Len())
	}

	output.OutputJSON = true
	var nilSlice []string
	done, err = output.EmitJSON(&buffer, nilSlice)
	if !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v", done, err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format      string
		interactive bool
		wantJSON    bool
	}{
		{"auto", true, false},
		{"auto", false, true},
		{"", false, true},
		{"text", false, false},
		{"json", true, true},
	}
	for _, test := range tests {
		var buffer bytes.Buffer
		logger, err := newLogger(&buffer, 0, test.format, test.interactive)
		if err != nil {
			t.Fatalf("newLogger(%q): %v", test.format, err)
		}
		logger.Info("hashed", "files", 2)
		isJSON := strings.HasPrefix(buffer.String(), "{")
		if isJSON != test.wantJSON {
			t.Errorf("format %q interactive=%v: output %q, want JSON=%v",
				test.format, test.interactive, buffer.String(), test.wantJSON)
		}
	}

	if _, err := newLogger(&bytes.Buffer{}, 0, "xml", false); err == nil {
		t.Error("newLogger accepted an unknown format")
	}
}
