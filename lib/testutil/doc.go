// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for gbdhash packages.
//
// [WriteFile] writes a fixture into a test's temporary directory and
// returns its path; [Fixture] reads a checked-in file from testdata.
//
// The container builders ([Gzip], [Zstd], [LZ4], [Xz], [Zip], [Tar])
// wrap content in real compressed or archived form using the same
// libraries the decoders use, so round-trip tests do not depend on
// checked-in binaries. Bzip2 has no Go encoder; tests that need it read
// fixtures produced by the bzip2 tool from their testdata directory.
//
// [ChunkedReader] and [FailingReader] shape how bytes arrive: fixed-size
// short reads to exercise chunk-boundary handling, and a reader that
// fails after a prefix to exercise error paths.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package depends on no other gbdhash packages.
package testutil
