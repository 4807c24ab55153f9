// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration for gbdhash
// output.
//
// Two serialization formats are used with a clear boundary:
//
//   - JSON for human-facing output: the CLI's --json mode.
//   - CBOR for machine pipelines: the CLI's --format cbor mode, which
//     writes a CBOR sequence (RFC 8742) of fingerprint records that
//     downstream indexers can consume without text parsing.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// same records always produce identical bytes, so CBOR output of two
// runs over the same files can be compared byte for byte.
//
// For single values:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For record streams:
//
//	err := codec.WriteRecords(w, records)
//	records, err := codec.ReadRecords[gbdhash.Record](r)
//
// # Struct Tag Rules
//
// Types serialized to both JSON and CBOR carry only `json` tags.
// fxamacker/cbor reads `json` tags as a fallback when `cbor` tags are
// absent, so one tag controls field naming and omission for both
// formats. Types implementing encoding.TextMarshaler (fingerprints,
// container kinds) encode as CBOR text strings, matching their JSON
// form.
package codec
