// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package canonical normalizes benchmark instance text so that files
// differing only in formatting produce the same bytes.
//
// The transform is a single pass over bytes, never decoded text, and it
// is total: any input, including binary junk and invalid UTF-8, produces
// output without error. The rules are:
//
//   - A line whose first non-whitespace byte is the dialect's comment
//     marker is dropped entirely, terminator included. No replacement
//     byte is emitted.
//   - Space, tab, vertical tab and form feed are whitespace. A run of
//     whitespace between two tokens on one line becomes one space.
//   - CR, LF and CRLF are line terminators. A run of whitespace and
//     terminators between two tokens becomes one LF when it contains a
//     terminator, so blank lines disappear.
//   - Leading and trailing whitespace is dropped. Non-empty output
//     always ends with exactly one LF; empty and all-comment input
//     produce no bytes at all.
//
// Tokens are never reordered or altered. Canonicalizing canonical output
// returns it unchanged.
//
// Changing any of these rules changes every published fingerprint.
//
// [Transformer] holds the state machine. [Writer] and [Reader] wrap it
// for push and pull streaming; [Canonicalize] handles an in-memory
// slice. Memory use is bounded by the chunk size handed in, regardless of
// stream length.
package canonical
