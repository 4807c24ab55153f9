// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"errors"
	"io"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("canonical: write after close")

// Writer canonicalizes everything written to it and forwards the result
// to the destination writer.
type Writer struct {
	destination io.Writer
	transformer *Transformer
	buffer      []byte
	closed      bool
	err         error
}

// NewWriter returns a Writer emitting canonical bytes to destination.
func NewWriter(destination io.Writer, dialect Dialect) *Writer {
	return &Writer{
		destination: destination,
		transformer: NewTransformer(dialect),
	}
}

// Write consumes all of data. It only fails when the destination does,
// and the failure is sticky.
func (w *Writer) Write(data []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.closed {
		return 0, ErrClosed
	}
	w.buffer = w.transformer.Append(w.buffer[:0], data)
	if err := w.flush(); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Close emits the final LF of a non-empty stream. It does not close the
// destination. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	w.buffer = w.transformer.Finish(w.buffer[:0])
	return w.flush()
}

// Stats returns the counters of everything written so far.
func (w *Writer) Stats() Stats {
	return w.transformer.Stats()
}

func (w *Writer) flush() error {
	if len(w.buffer) == 0 {
		return nil
	}
	if _, err := w.destination.Write(w.buffer); err != nil {
		w.err = err
		return err
	}
	return nil
}

// readChunkSize bounds how much raw input a Reader pulls per refill.
const readChunkSize = 32 * 1024

// Reader yields the canonical form of the bytes read from its source.
type Reader struct {
	source      io.Reader
	transformer *Transformer
	input       []byte
	output      []byte
	offset      int
	err         error
}

// NewReader returns a Reader over the canonical form of source.
func NewReader(source io.Reader, dialect Dialect) *Reader {
	return &Reader{
		source:      source,
		transformer: NewTransformer(dialect),
		input:       make([]byte, readChunkSize),
	}
}

// Read fills buffer with canonical bytes. Errors from the source are
// returned after all canonical bytes derived before the error have been
// delivered.
func (r *Reader) Read(buffer []byte) (int, error) {
	if len(buffer) == 0 {
		return 0, nil
	}
	for r.offset == len(r.output) {
		if r.err != nil {
			return 0, r.err
		}
		n, err := r.source.Read(r.input)
		r.output = r.transformer.Append(r.output[:0], r.input[:n])
		r.offset = 0
		if err == io.EOF {
			r.output = r.transformer.Finish(r.output)
			r.err = io.EOF
		} else if err != nil {
			r.err = err
		}
	}
	n := copy(buffer, r.output[r.offset:])
	r.offset += n
	return n, nil
}

// Stats returns the counters of everything produced so far.
func (r *Reader) Stats() Stats {
	return r.transformer.Stats()
}
