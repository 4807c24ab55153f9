// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gbdhash

import (
	"github.com/bureau-foundation/gbdhash/lib/decompress"
	"github.com/bureau-foundation/gbdhash/lib/digest"
)

// Record is the serialized outcome of fingerprinting one file, used for
// JSON and CBOR output. Failed files carry Error and no fingerprint.
type Record struct {
	Path           string             `json:"path"`
	Fingerprint    digest.Fingerprint `json:"fingerprint,omitzero"`
	CanonicalBytes int64              `json:"canonical_bytes,omitempty"`
	RawBytes       int64              `json:"raw_bytes,omitempty"`
	Lines          int64              `json:"lines,omitempty"`
	CommentLines   int64              `json:"comment_lines,omitempty"`
	Layers         []decompress.Kind  `json:"layers,omitempty"`
	Member         string             `json:"member,omitempty"`
	Dialect        string             `json:"dialect,omitempty"`
	SourceChecksum string             `json:"source_checksum,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// NewRecord builds the Record for path from the outcome of Compute.
func NewRecord(path string, result Result, err error) Record {
	if err != nil {
		return Record{Path: path, Error: err.Error()}
	}
	return Record{
		Path:           path,
		Fingerprint:    result.Fingerprint,
		CanonicalBytes: result.CanonicalBytes,
		RawBytes:       result.RawBytes,
		Lines:          result.Lines,
		CommentLines:   result.CommentLines,
		Layers:         result.Layers,
		Member:         result.Member,
		Dialect:        result.Dialect,
		SourceChecksum: result.SourceChecksum,
	}
}
