// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gbdhash

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/gbdhash/lib/canonical"
	"github.com/bureau-foundation/gbdhash/lib/decompress"
	"github.com/bureau-foundation/gbdhash/lib/digest"
	"github.com/bureau-foundation/gbdhash/lib/isohash"
	"github.com/bureau-foundation/gbdhash/lib/source"
)

// ErrUnsupportedDialect is returned by ComputeISO for dialects without
// an isohash definition.
var ErrUnsupportedDialect = errors.New("isohash is not defined for this dialect")

// Result describes one completed pipeline run.
type Result struct {
	Fingerprint digest.Fingerprint

	// CanonicalBytes is the length of the canonical stream.
	CanonicalBytes int64

	// RawBytes is the number of decompressed bytes read.
	RawBytes int64

	// Lines and CommentLines count canonical lines emitted and input
	// lines dropped as comments.
	Lines        int64
	CommentLines int64

	// Layers lists the unwrapped containers, outermost first.
	Layers []decompress.Kind

	// Member is the archive member hashed, if an archive was unwrapped.
	Member string

	Dialect string

	// SourceChecksum is the hex BLAKE3 checksum of the stored bytes,
	// set only when Options.SourceChecksum is true.
	SourceChecksum string
}

// Compute fingerprints src. Either a complete Result is returned or an
// error; a partial fingerprint is never produced. Errors are
// *source.Error when src cannot be read, *decompress.DecodeError for
// corrupt containers, or the context's error on cancellation.
func Compute(ctx context.Context, src source.Source, opts Options) (Result, error) {
	opts = opts.forSource(src)

	var checksummer *digest.Checksummer
	decompressOpts := opts.decompressOptions()
	if opts.SourceChecksum {
		checksummer = digest.NewChecksummer()
		decompressOpts = append(decompressOpts, decompress.WithSourceTee(checksummer))
	}

	stream, err := decompress.Open(src, decompressOpts...)
	if err != nil {
		return Result{}, err
	}
	defer stream.Close()

	accumulator := digest.New()
	writer := canonical.NewWriter(accumulator, opts.Dialect)
	buffer := make([]byte, opts.ChunkSize)
	rawBytes, err := io.CopyBuffer(writer, &contextReader{ctx: ctx, reader: stream}, buffer)
	if err != nil {
		return Result{}, err
	}
	if err := writer.Close(); err != nil {
		return Result{}, err
	}
	if checksummer != nil {
		if err := stream.Drain(); err != nil {
			return Result{}, err
		}
	}

	fingerprint, err := accumulator.Finalize()
	if err != nil {
		return Result{}, err
	}
	stats := writer.Stats()
	result := Result{
		Fingerprint:    fingerprint,
		CanonicalBytes: stats.Bytes,
		RawBytes:       rawBytes,
		Lines:          stats.Lines,
		CommentLines:   stats.CommentLines,
		Layers:         stream.Layers(),
		Member:         stream.Member(),
		Dialect:        opts.Dialect.Name,
	}
	if checksummer != nil {
		result.SourceChecksum = checksummer.Sum().String()
	}

	if err := stream.Close(); err != nil {
		return Result{}, fmt.Errorf("releasing %s: %w", src.Name(), err)
	}
	opts.Logger.Debug("computed fingerprint",
		"source", src.Name(),
		"fingerprint", fingerprint,
		"layers", result.Layers,
		"raw_bytes", rawBytes,
		"canonical_bytes", stats.Bytes,
	)
	return result, nil
}

// ComputeFile fingerprints the file at path.
func ComputeFile(ctx context.Context, path string, opts Options) (Result, error) {
	return Compute(ctx, source.File(path), opts)
}

// OpenRaw returns the decompressed content of src. Reads fail with
// the context's error once ctx is done. The caller must close it.
func OpenRaw(ctx context.Context, src source.Source, opts Options) (io.ReadCloser, error) {
	opts = opts.forSource(src)
	stream, err := decompress.Open(src, opts.decompressOptions()...)
	if err != nil {
		return nil, err
	}
	return &readCloser{Reader: &contextReader{ctx: ctx, reader: stream}, Closer: stream}, nil
}

// OpenCanonical returns the canonical content of src, exactly the bytes
// Compute hashes. Reads fail with the context's error once ctx is done.
// The caller must close it.
func OpenCanonical(ctx context.Context, src source.Source, opts Options) (io.ReadCloser, error) {
	opts = opts.forSource(src)
	stream, err := decompress.Open(src, opts.decompressOptions()...)
	if err != nil {
		return nil, err
	}
	reader := canonical.NewReader(&contextReader{ctx: ctx, reader: stream}, opts.Dialect)
	return &readCloser{Reader: reader, Closer: stream}, nil
}

// readCloser reads a view of a decompress.Stream and closes the stream.
type readCloser struct {
	io.Reader
	io.Closer
}

// ComputeISO returns the isohash of src. Only the CNF and WCNF dialects
// define one.
func ComputeISO(ctx context.Context, src source.Source, opts Options) (digest.Fingerprint, error) {
	opts = opts.forSource(src)

	var compute func(io.Reader) (digest.Fingerprint, error)
	switch opts.Dialect.Name {
	case canonical.CNF.Name:
		compute = isohash.Compute
	case canonical.WCNF.Name:
		compute = isohash.ComputeWCNF
	default:
		return digest.Fingerprint{}, fmt.Errorf("%s: %w", opts.Dialect.Name, ErrUnsupportedDialect)
	}

	stream, err := OpenCanonical(ctx, src, opts)
	if err != nil {
		return digest.Fingerprint{}, err
	}
	defer stream.Close()
	fingerprint, err := compute(stream)
	if err != nil {
		return digest.Fingerprint{}, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return fingerprint, nil
}

// contextReader fails reads once ctx is done, bounding cancellation
// latency to one chunk.
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (r *contextReader) Read(buffer []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.reader.Read(buffer)
}
