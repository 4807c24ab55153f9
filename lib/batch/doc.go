// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package batch fingerprints many files concurrently.
//
// Every file is an independent pipeline invocation with its own
// decoders and digest state, so the only coordination is a bounded
// worker pool. A failure on one file is recorded on its [Item] and the
// rest of the batch continues; only cancellation of the caller's
// context stops the batch early. A panic in a worker is recovered into
// that item's error instead of taking down the process.
//
// Results are returned in input order regardless of completion order.
package batch
