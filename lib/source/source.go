// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source is a restartable byte sequence of unknown length. It may hold
// plain text or a compressed or archived file; the distinction is made by
// the decompress package, never here.
type Source interface {
	// Name identifies the source in logs and errors. It plays no part
	// in fingerprinting.
	Name() string

	// Open returns a reader positioned at the start of the content.
	// The caller must close it.
	Open() (io.ReadCloser, error)
}

// Sized is implemented by readers that support random access over a
// known length.
type Sized interface {
	io.ReaderAt
	Size() int64
}

// ErrDirectory is returned when a File source names a directory.
var ErrDirectory = errors.New("is a directory")

// Error reports that the underlying source could not be opened or read.
// It is the pipeline's I/O error class: decode failures are reported by
// the decompress package instead.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("source %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// File returns a Source reading the regular file at path.
func File(path string) Source {
	return fileSource{path: path}
}

type fileSource struct {
	path string
}

func (s fileSource) Name() string {
	return s.path
}

func (s fileSource) Open() (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, &Error{Op: "open", Name: s.path, Err: err}
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, &Error{Op: "stat", Name: s.path, Err: err}
	}
	if info.IsDir() {
		file.Close()
		return nil, &Error{Op: "open", Name: s.path, Err: ErrDirectory}
	}
	adviseSequential(file)
	return &fileReader{file: file, size: info.Size()}, nil
}

// fileReader tags read failures with the file name so that callers can
// tell an unreadable disk from corrupt content.
type fileReader struct {
	file *os.File
	size int64
}

func (r *fileReader) Read(buffer []byte) (int, error) {
	n, err := r.file.Read(buffer)
	if err != nil && err != io.EOF {
		err = &Error{Op: "read", Name: r.file.Name(), Err: err}
	}
	return n, err
}

func (r *fileReader) ReadAt(buffer []byte, offset int64) (int, error) {
	n, err := r.file.ReadAt(buffer, offset)
	if err != nil && err != io.EOF {
		err = &Error{Op: "read", Name: r.file.Name(), Err: err}
	}
	return n, err
}

func (r *fileReader) Size() int64 {
	return r.size
}

func (r *fileReader) Close() error {
	return r.file.Close()
}

// Bytes returns a Source over data. The slice is not copied and must not
// be modified while the source is in use.
func Bytes(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}

type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Name() string {
	return s.name
}

func (s bytesSource) Open() (io.ReadCloser, error) {
	return bytesReader{Reader: bytes.NewReader(s.data)}, nil
}

// bytesReader keeps bytes.Reader's ReadAt and Size visible through the
// ReadCloser interface.
type bytesReader struct {
	*bytes.Reader
}

func (bytesReader) Close() error {
	return nil
}

// Func returns a Source whose Open calls open. Each call must return a
// reader positioned at the start of the same content.
func Func(name string, open func() (io.ReadCloser, error)) Source {
	return funcSource{name: name, open: open}
}

type funcSource struct {
	name string
	open func() (io.ReadCloser, error)
}

func (s funcSource) Name() string {
	return s.name
}

func (s funcSource) Open() (io.ReadCloser, error) {
	reader, err := s.open()
	if err != nil {
		return nil, &Error{Op: "open", Name: s.name, Err: err}
	}
	return reader, nil
}
