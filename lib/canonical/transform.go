// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

// Stats counts what a Transformer has produced.
type Stats struct {
	// Bytes is the number of canonical bytes emitted.
	Bytes int64

	// Lines is the number of canonical lines emitted. Every canonical
	// line ends in LF, so this is also the LF count.
	Lines int64

	// CommentLines is the number of input lines dropped as comments.
	CommentLines int64
}

// Transformer is the canonicalization state machine. The zero value is
// not usable; create one with NewTransformer. A Transformer is not safe
// for concurrent use.
type Transformer struct {
	marker byte

	// atLineStart is true until the first non-whitespace byte of a line.
	atLineStart bool
	inComment   bool

	// lineHasContent is true once a token byte of the current line has
	// been emitted. Separators are only ever emitted between tokens, so
	// whitespace before the first token of a line is dropped.
	lineHasContent bool
	pendingSpace   bool
	pendingNewline bool

	stats Stats
}

// NewTransformer returns a Transformer for the dialect.
func NewTransformer(dialect Dialect) *Transformer {
	return &Transformer{marker: dialect.CommentMarker, atLineStart: true}
}

// Reset returns the Transformer to its initial state, keeping the
// dialect.
func (t *Transformer) Reset() {
	*t = Transformer{marker: t.marker, atLineStart: true}
}

// Stats returns the counters accumulated since creation or Reset.
func (t *Transformer) Stats() Stats {
	return t.stats
}

// Append canonicalizes src, appends the result to dst and returns the
// extended slice. The output for a chunk is at most one byte longer than
// the chunk. Separators owed at the end of src are held back until the
// next token arrives, so chunk boundaries never change the output.
func (t *Transformer) Append(dst, src []byte) []byte {
	start := len(dst)
	for _, b := range src {
		if t.inComment {
			if b == '\n' || b == '\r' {
				t.inComment = false
				t.atLineStart = true
			}
			continue
		}

		switch {
		case b == '\n' || b == '\r':
			if t.lineHasContent {
				t.lineHasContent = false
				t.pendingSpace = false
				t.pendingNewline = true
			}
			t.atLineStart = true

		case isSpace(b):
			if t.lineHasContent {
				t.pendingSpace = true
			}

		case t.atLineStart && b == t.marker:
			t.inComment = true
			t.atLineStart = false
			t.stats.CommentLines++

		default:
			if t.pendingNewline {
				dst = append(dst, '\n')
				t.pendingNewline = false
				t.stats.Lines++
			} else if t.pendingSpace {
				dst = append(dst, ' ')
			}
			t.pendingSpace = false
			t.atLineStart = false
			t.lineHasContent = true
			dst = append(dst, b)
		}
	}
	t.stats.Bytes += int64(len(dst) - start)
	return dst
}

// Finish appends the terminating LF owed by a non-empty stream. Calling
// it again without further input appends nothing.
func (t *Transformer) Finish(dst []byte) []byte {
	if t.lineHasContent || t.pendingNewline {
		dst = append(dst, '\n')
		t.stats.Lines++
		t.stats.Bytes++
	}
	t.lineHasContent = false
	t.pendingNewline = false
	t.pendingSpace = false
	return dst
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

// Canonicalize returns the canonical form of data.
func Canonicalize(data []byte, dialect Dialect) []byte {
	transformer := NewTransformer(dialect)
	output := transformer.Append(make([]byte, 0, len(data)+1), data)
	return transformer.Finish(output)
}
