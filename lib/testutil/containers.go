// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Member is one entry of a test archive. A name ending in "/" is a
// directory entry and its Data is ignored.
type Member struct {
	Name string
	Data []byte
}

// Gzip returns data as a single gzip member.
func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := gzip.NewWriter(&buffer)
	return finish(t, "gzip", &buffer, writer, data)
}

// Zstd returns data as a zstd frame.
func Zstd(t testing.TB, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer, err := zstd.NewWriter(&buffer)
	if err != nil {
		t.Fatalf("creating zstd writer: %v", err)
	}
	return finish(t, "zstd", &buffer, writer, data)
}

// LZ4 returns data as an LZ4 frame.
func LZ4(t testing.TB, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	return finish(t, "lz4", &buffer, writer, data)
}

// Xz returns data as an xz stream.
func Xz(t testing.TB, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer, err := xz.NewWriter(&buffer)
	if err != nil {
		t.Fatalf("creating xz writer: %v", err)
	}
	return finish(t, "xz", &buffer, writer, data)
}

func finish(t testing.TB, kind string, buffer *bytes.Buffer, writer io.WriteCloser, data []byte) []byte {
	t.Helper()
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("writing %s data: %v", kind, err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing %s writer: %v", kind, err)
	}
	return buffer.Bytes()
}

// Zip returns a zip archive holding members in the given order.
func Zip(t testing.TB, members ...Member) []byte {
	t.Helper()
	var buffer bytes.Buffer
	archive := zip.NewWriter(&buffer)
	for _, member := range members {
		writer, err := archive.Create(member.Name)
		if err != nil {
			t.Fatalf("creating zip member %s: %v", member.Name, err)
		}
		if isDirectory(member.Name) {
			continue
		}
		if _, err := writer.Write(member.Data); err != nil {
			t.Fatalf("writing zip member %s: %v", member.Name, err)
		}
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("closing zip archive: %v", err)
	}
	return buffer.Bytes()
}

// Tar returns a ustar archive holding members in the given order.
func Tar(t testing.TB, members ...Member) []byte {
	t.Helper()
	var buffer bytes.Buffer
	archive := tar.NewWriter(&buffer)
	for _, member := range members {
		header := &tar.Header{Name: member.Name, Mode: 0644, Format: tar.FormatUSTAR}
		if isDirectory(member.Name) {
			header.Typeflag = tar.TypeDir
			header.Mode = 0755
		} else {
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(member.Data))
		}
		if err := archive.WriteHeader(header); err != nil {
			t.Fatalf("writing tar header %s: %v", member.Name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := archive.Write(member.Data); err != nil {
				t.Fatalf("writing tar member %s: %v", member.Name, err)
			}
		}
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("closing tar archive: %v", err)
	}
	return buffer.Bytes()
}

func isDirectory(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '/'
}
