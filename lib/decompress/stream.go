// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"archive/tar"
	"bufio"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/bureau-foundation/gbdhash/lib/source"
)

const (
	// DefaultMaxDepth bounds how many nested containers Open unwraps.
	// Anything nested deeper is passed through undecoded.
	DefaultMaxDepth = 4

	// layerBufferSize is the read buffer per layer.
	layerBufferSize = 64 * 1024
)

// Option configures Open.
type Option func(*options)

type options struct {
	maxDepth  int
	tempDir   string
	logger    *slog.Logger
	sourceTee io.Writer
}

// WithMaxDepth sets the maximum number of nested containers to unwrap.
// Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithTempDir sets the directory for zip spool files. Empty means
// os.TempDir.
func WithTempDir(directory string) Option {
	return func(o *options) {
		o.tempDir = directory
	}
}

// WithLogger sets a logger for layer detection and member selection.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSourceTee copies every source byte, in order, to writer as it is
// consumed. Combined with Stream.Drain, writer sees the whole source
// exactly once. Zip archives are always spooled when a tee is set.
func WithSourceTee(writer io.Writer) Option {
	return func(o *options) {
		o.sourceTee = writer
	}
}

// Stream is the fully unwrapped content of a source. It must be closed.
type Stream struct {
	name    string
	reader  io.Reader
	counter *countingReader

	// bottom is the sequential source reader every layer ultimately
	// pulls from (tee and counter included).
	bottom io.Reader

	layers  []Kind
	member  string
	closers []io.Closer
	spools  []*os.File
	closed  bool
	logger  *slog.Logger
}

// Open opens src and unwraps every recognized container layer. The
// returned Stream owns the source reader; Close releases it along with
// every decoder and spool file. On error nothing is left open.
func Open(src source.Source, opts ...Option) (*Stream, error) {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := src.Open()
	if err != nil {
		var sourceErr *source.Error
		if !errors.As(err, &sourceErr) {
			err = &source.Error{Op: "open", Name: src.Name(), Err: err}
		}
		return nil, err
	}

	stream := &Stream{
		name:    src.Name(),
		closers: []io.Closer{raw},
		logger:  o.logger.With("source", src.Name()),
	}
	stream.counter = &countingReader{reader: raw}
	var bottom io.Reader = stream.counter
	if o.sourceTee != nil {
		bottom = io.TeeReader(bottom, o.sourceTee)
	}
	stream.bottom = bottom

	if err := stream.unwrapAll(raw, &sourceReader{reader: bottom, name: src.Name()}, o); err != nil {
		stream.Close()
		return nil, err
	}
	return stream, nil
}

func (s *Stream) unwrapAll(raw io.ReadCloser, current io.Reader, o options) error {
	for depth := 0; ; depth++ {
		buffered := bufio.NewReaderSize(current, layerBufferSize)
		kind, err := Sniff(buffered)
		if err != nil {
			return err
		}
		if kind == None {
			s.reader = buffered
			return nil
		}
		if depth == o.maxDepth {
			s.logger.Warn("container nesting exceeds limit, passing remaining layer through",
				"kind", kind, "max_depth", o.maxDepth)
			s.reader = buffered
			return nil
		}

		s.logger.Debug("unwrapping container", "kind", kind, "depth", depth)
		// The raw reader only supports in-place random access while
		// nothing else needs to see the bytes sequentially.
		var inPlace source.Sized
		if depth == 0 && o.sourceTee == nil {
			inPlace, _ = raw.(source.Sized)
		}
		next, err := s.unwrap(kind, buffered, inPlace, o)
		if err != nil {
			return err
		}
		s.layers = append(s.layers, kind)
		current = next
	}
}

// unwrap opens the decoder for one layer. The returned reader tags its
// failures as DecodeErrors for kind.
func (s *Stream) unwrap(kind Kind, reader *bufio.Reader, inPlace source.Sized, o options) (io.Reader, error) {
	switch kind {
	case Gzip:
		decoder, err := gzip.NewReader(reader)
		if err != nil {
			return nil, s.decodeError(kind, err)
		}
		s.closers = append(s.closers, decoder)
		return s.layer(kind, decoder), nil

	case Bzip2:
		return s.layer(kind, bzip2.NewReader(reader)), nil

	case Xz:
		decoder, err := xz.NewReader(reader)
		if err != nil {
			return nil, s.decodeError(kind, err)
		}
		return s.layer(kind, decoder), nil

	case Zstd:
		decoder, err := zstd.NewReader(reader, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
		if err != nil {
			return nil, s.decodeError(kind, err)
		}
		readCloser := decoder.IOReadCloser()
		s.closers = append(s.closers, readCloser)
		return s.layer(kind, readCloser), nil

	case LZ4:
		return s.layer(kind, lz4.NewReader(reader)), nil

	case Tar:
		return s.openTarMember(reader)

	case Zip:
		return s.openZipMember(reader, inPlace, o)

	default:
		return nil, fmt.Errorf("decompress: no decoder for %s", kind)
	}
}

// openTarMember advances to the first regular file in stream order.
func (s *Stream) openTarMember(reader io.Reader) (io.Reader, error) {
	archive := tar.NewReader(reader)
	for {
		header, err := archive.Next()
		if err == io.EOF {
			s.logger.Debug("tar archive has no regular member")
			return eofReader{}, nil
		}
		if err != nil {
			return nil, s.decodeError(Tar, err)
		}
		if header.Typeflag == tar.TypeReg {
			s.member = header.Name
			s.logger.Debug("selected archive member", "kind", Tar, "member", header.Name, "size", header.Size)
			return s.layer(Tar, archive), nil
		}
	}
}

// openZipMember opens the first regular file in central directory
// order, reading the archive in place when possible.
func (s *Stream) openZipMember(reader io.Reader, inPlace source.Sized, o options) (io.Reader, error) {
	var (
		readerAt io.ReaderAt
		size     int64
		offset   int64 = -1
	)
	if inPlace != nil {
		readerAt = &countingReaderAt{reader: inPlace, counter: s.counter}
		size = inPlace.Size()
	} else {
		spool, spooledSize, err := s.spool(reader, o.tempDir)
		if err != nil {
			return nil, err
		}
		readerAt, size = spool, spooledSize
		offset = s.counter.count
		s.logger.Debug("spooled zip layer", "bytes", spooledSize)
	}

	archive, err := zip.NewReader(readerAt, size)
	if err != nil {
		return nil, &DecodeError{Kind: Zip, Offset: offset, Err: err}
	}

	regular := 0
	var selected *zip.File
	for _, file := range archive.File {
		if !file.Mode().IsRegular() {
			continue
		}
		regular++
		if selected == nil {
			selected = file
		}
	}
	if selected == nil {
		s.logger.Debug("zip archive has no regular member")
		return eofReader{}, nil
	}
	if regular > 1 {
		s.logger.Debug("zip archive has several regular members, using the first",
			"members", regular, "member", selected.Name)
	}

	member, err := selected.Open()
	if err != nil {
		return nil, &DecodeError{Kind: Zip, Offset: offset, Err: err}
	}
	s.closers = append(s.closers, member)
	s.member = selected.Name
	return &layerReader{kind: Zip, reader: member, offset: func() int64 { return offset }}, nil
}

// spool copies reader to an unlinked-on-close temporary file.
func (s *Stream) spool(reader io.Reader, directory string) (*os.File, int64, error) {
	file, err := os.CreateTemp(directory, "gbdhash-spool-*")
	if err != nil {
		return nil, 0, fmt.Errorf("creating zip spool file: %w", err)
	}
	s.spools = append(s.spools, file)
	size, err := io.Copy(file, reader)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) && pathErr.Path == file.Name() {
			return nil, 0, fmt.Errorf("writing zip spool file: %w", err)
		}
		return nil, 0, s.decodeError(Zip, err)
	}
	return file, size, nil
}

func (s *Stream) layer(kind Kind, reader io.Reader) io.Reader {
	return &layerReader{kind: kind, reader: reader, offset: s.Consumed}
}

// decodeError tags err with kind unless it already carries a
// classification from a lower layer or the source.
func (s *Stream) decodeError(kind Kind, err error) error {
	return classify(kind, err, s.Consumed())
}

func classify(kind Kind, err error, offset int64) error {
	var decodeErr *DecodeError
	var sourceErr *source.Error
	if errors.As(err, &decodeErr) || errors.As(err, &sourceErr) {
		return err
	}
	return &DecodeError{Kind: kind, Offset: offset, Err: err}
}

// Read reads unwrapped content.
func (s *Stream) Read(buffer []byte) (int, error) {
	return s.reader.Read(buffer)
}

// Layers returns the unwrapped container kinds, outermost first. Plain
// content has no layers.
func (s *Stream) Layers() []Kind {
	result := make([]Kind, len(s.layers))
	copy(result, s.layers)
	return result
}

// Member returns the name of the archive member being read, or "" when
// no archive was unwrapped.
func (s *Stream) Member() string {
	return s.member
}

// Consumed returns the number of source bytes read so far.
func (s *Stream) Consumed() int64 {
	return s.counter.count
}

// Drain reads whatever source bytes the decoders left unread, such as
// archive members after the selected one or trailing padding. Only
// useful together with WithSourceTee.
func (s *Stream) Drain() error {
	_, err := io.Copy(io.Discard, &sourceReader{reader: s.bottom, name: s.name})
	return err
}

// Close releases every decoder, spool file and the source reader. It is
// safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, spool := range s.spools {
		spool.Close()
		if err := os.Remove(spool.Name()); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("removing zip spool file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// layerReader classifies decoder failures as DecodeErrors of its kind.
type layerReader struct {
	kind   Kind
	reader io.Reader
	offset func() int64
}

func (r *layerReader) Read(buffer []byte) (int, error) {
	n, err := r.reader.Read(buffer)
	if err != nil && err != io.EOF {
		err = classify(r.kind, err, r.offset())
	}
	return n, err
}

// sourceReader classifies failures of the raw source as source errors.
type sourceReader struct {
	reader io.Reader
	name   string
}

func (r *sourceReader) Read(buffer []byte) (int, error) {
	n, err := r.reader.Read(buffer)
	if err != nil && err != io.EOF {
		var sourceErr *source.Error
		if !errors.As(err, &sourceErr) {
			err = &source.Error{Op: "read", Name: r.name, Err: err}
		}
	}
	return n, err
}

type countingReader struct {
	reader io.Reader
	count  int64
}

func (r *countingReader) Read(buffer []byte) (int, error) {
	n, err := r.reader.Read(buffer)
	r.count += int64(n)
	return n, err
}

type countingReaderAt struct {
	reader  io.ReaderAt
	counter *countingReader
}

func (r *countingReaderAt) ReadAt(buffer []byte, offset int64) (int, error) {
	n, err := r.reader.ReadAt(buffer, offset)
	r.counter.count += int64(n)
	return n, err
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
