// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides the incremental hash accumulator behind
// GBDHash fingerprints.
//
// A fingerprint is the MD5 digest of a canonical stream. MD5 is chosen
// for identifier stability and compactness: the threat model is
// accidental duplication of benchmark instances, not tampering, and
// published GBDHash identifiers are MD5 values.
//
// The API surface:
//
//   - [Accumulator] -- explicit mutable digest state with Update and a
//     one-shot Finalize. Chunk boundaries never affect the result.
//     Finalizing twice, or updating after Finalize, returns a
//     [*MisuseError] instead of silently producing a digest of
//     nothing.
//   - [Fingerprint] -- the 16-byte result, rendered as 32 lowercase hex
//     characters by String and MarshalText, parsed by
//     [ParseFingerprint].
//   - [Checksummer] and [Checksum] -- BLAKE3-256 over the bytes of a
//     file as stored, used as an optional container-level identity next
//     to the content-level fingerprint.
//
// This package has no dependencies on other gbdhash packages.
package digest
