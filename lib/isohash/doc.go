// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package isohash computes structural hashes of CNF and WCNF formulas
// that survive variable renaming.
//
// A GBDHash changes whenever the literal text changes. Two instances
// that differ only by a permutation of variable names, by flipped
// polarities, or by reordered clauses and literals get different
// GBDHashes but the same isohash. The hash is computed over the sorted
// degree sequence of the literal incidence graph: for every variable,
// the number of negative and positive occurrences, ordered so the
// smaller count comes first. Equal isohashes are a strong hint of
// isomorphism, not a proof.
//
// Input is read as a token stream; the canonical form produced by
// lib/canonical is the expected input but any whitespace layout works.
// Lines starting with "c" or "p" are skipped (WCNF headers are parsed
// for the top weight).
package isohash
