// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package gbdhash computes GBDHash fingerprints of benchmark instance
// files.
//
// A GBDHash identifies the content of an instance rather than the bytes
// on disk. The pipeline is a single streaming pass:
//
//	source → decompress (sniffed, nested) → canonical form → MD5
//
// so two files that differ only in compression container, comment
// text, whitespace, blank lines, or line endings get the same
// fingerprint. Memory use is bounded by the chunk size and the decoder
// windows regardless of instance size.
//
// [Compute] runs the pipeline for one [source.Source]. [OpenCanonical]
// and [OpenRaw] expose the intermediate streams for consumers that
// extract features from the same content; every call reopens the
// source, so repeated reads see identical bytes. [ComputeISO] runs the
// structural isohash over the canonical stream.
//
// Each invocation owns its decoders and digest state. Invocations share
// nothing and may run concurrently on different sources (see lib/batch).
package gbdhash
