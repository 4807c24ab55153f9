// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package source abstracts "an ordered sequence of bytes from a path or
// descriptor" for the fingerprinting pipeline.
//
// A [Source] is owned by the caller. Every call to Open returns a fresh
// reader positioned at the first byte, which is what lets the pipeline
// offer restartable raw and canonical streams without caching content.
// The pipeline borrows exactly one reader per pass and always closes it.
//
// Three implementations cover the callers we have: [File] for paths on
// disk, [Bytes] for in-memory content (tests, already-fetched data), and
// [Func] for anything else that can produce a reader on demand. File
// readers additionally implement [Sized], which lets the zip decoder read
// an archive in place instead of spooling it.
//
// Failures to open or read a source are reported as [*Error] values,
// distinct from decode failures in the layers above.
package source
