// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package decompress unwraps compression and archive containers around
// benchmark instances, yielding the flat byte stream the instance would
// have if it were stored uncompressed.
//
// Container kinds are recognized by magic bytes only, never by file
// name: benchmark collections routinely ship "foo.cnf" files that are
// really xz streams and "foo.cnf.gz" files that were decompressed in
// place. [Detect] checks a short prefix against an ordered, read-only
// signature table; the first match wins and no match means plain
// content. Unknown headers are never an error.
//
// [Open] peels layers repeatedly, re-sniffing after each one, so
// tar.gz, xz inside zip and similar nestings come out flat. Archives
// contribute their first regular-file member in stored order (stream
// order for tar, central directory order for zip). An archive without
// a regular member yields an empty stream.
//
// Supported kinds and their decoders:
//
//   - gzip (multistream) -- klauspost/compress/gzip
//   - zstd -- klauspost/compress/zstd
//   - zip -- klauspost/compress/zip
//   - lz4 frame -- pierrec/lz4/v4
//   - xz -- ulikunitz/xz
//   - bzip2 -- compress/bzip2
//   - tar -- archive/tar
//
// Zip needs random access. When the zip is the outermost layer of a
// source whose reader implements [source.Sized] it is read in place;
// otherwise the layer is spooled to a temporary file that is removed
// on Close.
//
// Corrupt or truncated compressed data surfaces as a [*DecodeError]
// carrying the container kind and the number of source bytes consumed
// when decoding failed. Failures of the source itself are passed
// through as [*source.Error] so callers can tell a flaky disk from a
// damaged file.
package decompress
