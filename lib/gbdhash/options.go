// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gbdhash

import (
	"log/slog"

	"github.com/bureau-foundation/gbdhash/lib/canonical"
	"github.com/bureau-foundation/gbdhash/lib/decompress"
	"github.com/bureau-foundation/gbdhash/lib/source"
)

// DefaultChunkSize is the number of decompressed bytes fed through the
// canonicalizer per step.
const DefaultChunkSize = 64 * 1024

// Options configures a pipeline invocation. Zero fields take their
// defaults, so the zero Options is valid.
type Options struct {
	// Dialect selects the comment marker. Zero means canonical.CNF.
	Dialect canonical.Dialect

	// InferDialect chooses the dialect of each source from its name
	// with canonical.DialectForName. Dialect applies to names without
	// an instance extension.
	InferDialect bool

	// ChunkSize is the copy buffer size. It has no effect on the
	// result, only on memory use and cancellation latency.
	ChunkSize int

	// MaxDepth bounds nested container unwrapping. Zero means
	// decompress.DefaultMaxDepth.
	MaxDepth int

	// TempDir is where zip layers that cannot be read in place are
	// spooled. Empty means os.TempDir.
	TempDir string

	// SourceChecksum additionally computes a BLAKE3 checksum of the
	// stored bytes.
	SourceChecksum bool

	// Logger receives debug output about detected layers. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns Options with every default filled in.
func DefaultOptions() Options {
	return Options{
		Dialect:   canonical.DefaultDialect,
		ChunkSize: DefaultChunkSize,
		MaxDepth:  decompress.DefaultMaxDepth,
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	if o.Dialect.Name == "" {
		o.Dialect = canonical.DefaultDialect
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = decompress.DefaultMaxDepth
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// forSource fills in defaults and resolves the dialect for src.
func (o Options) forSource(src source.Source) Options {
	o = o.withDefaults()
	if o.InferDialect {
		if dialect, ok := canonical.DialectForName(src.Name()); ok {
			o.Dialect = dialect
		}
		o.InferDialect = false
	}
	return o
}

func (o Options) decompressOptions() []decompress.Option {
	return []decompress.Option{
		decompress.WithMaxDepth(o.MaxDepth),
		decompress.WithTempDir(o.TempDir),
		decompress.WithLogger(o.Logger),
	}
}
