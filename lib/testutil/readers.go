// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "io"

// ChunkedReader returns a reader that never returns more than size
// bytes per Read.
func ChunkedReader(reader io.Reader, size int) io.Reader {
	return &chunkedReader{reader: reader, size: size}
}

type chunkedReader struct {
	reader io.Reader
	size   int
}

func (r *chunkedReader) Read(buffer []byte) (int, error) {
	if len(buffer) > r.size {
		buffer = buffer[:r.size]
	}
	return r.reader.Read(buffer)
}

// FailingReader returns a ReadCloser that yields prefix and then fails
// with err.
func FailingReader(prefix []byte, err error) io.ReadCloser {
	return &failingReader{prefix: prefix, err: err}
}

type failingReader struct {
	prefix []byte
	err    error
}

func (r *failingReader) Read(buffer []byte) (int, error) {
	if len(r.prefix) == 0 {
		return 0, r.err
	}
	n := copy(buffer, r.prefix)
	r.prefix = r.prefix[n:]
	return n, nil
}

func (r *failingReader) Close() error {
	return nil
}
