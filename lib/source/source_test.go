// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileOpenIsRestartable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.cnf")
	content := "p cnf 1 1\n1 0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	src := File(path)
	if src.Name() != path {
		t.Errorf("Name() = %q, want %q", src.Name(), path)
	}

	for pass := range 2 {
		reader, err := src.Open()
		if err != nil {
			t.Fatalf("pass %d: Open: %v", pass, err)
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			t.Fatalf("pass %d: ReadAll: %v", pass, err)
		}
		if string(data) != content {
			t.Errorf("pass %d: read %q, want %q", pass, data, content)
		}
	}
}

func TestFileReaderIsSized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sized")
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	reader, err := File(path).Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	sized, ok := reader.(Sized)
	if !ok {
		t.Fatalf("file reader %T does not implement Sized", reader)
	}
	if sized.Size() != 10 {
		t.Errorf("Size() = %d, want 10", sized.Size())
	}
	buffer := make([]byte, 3)
	if _, err := sized.ReadAt(buffer, 4); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(buffer) != "456" {
		t.Errorf("ReadAt(4) = %q, want %q", buffer, "456")
	}
}

func TestFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	_, err := File(path).Open()
	if err == nil {
		t.Fatal("Open should fail for a missing file")
	}
	var sourceErr *Error
	if !errors.As(err, &sourceErr) {
		t.Fatalf("error %v is not a *source.Error", err)
	}
	if sourceErr.Op != "open" || sourceErr.Name != path {
		t.Errorf("error = {Op: %q, Name: %q}, want open of %q", sourceErr.Op, sourceErr.Name, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
}

func TestFileDirectory(t *testing.T) {
	_, err := File(t.TempDir()).Open()
	if !errors.Is(err, ErrDirectory) {
		t.Fatalf("Open(directory) error = %v, want ErrDirectory", err)
	}
}

func TestBytes(t *testing.T) {
	src := Bytes("memory", []byte("abc"))
	reader, err := src.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if _, ok := reader.(Sized); !ok {
		t.Errorf("bytes reader %T does not implement Sized", reader)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("read %q, want %q", data, "abc")
	}
}

func TestFunc(t *testing.T) {
	opens := 0
	src := Func("remote", func() (io.ReadCloser, error) {
		opens++
		return io.NopCloser(strings.NewReader("xyz")), nil
	})
	for range 3 {
		reader, err := src.Open()
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		reader.Close()
	}
	if opens != 3 {
		t.Errorf("opener called %d times, want 3", opens)
	}

	failing := Func("flaky", func() (io.ReadCloser, error) {
		return nil, io.ErrClosedPipe
	})
	_, err := failing.Open()
	var sourceErr *Error
	if !errors.As(err, &sourceErr) {
		t.Fatalf("error %v is not a *source.Error", err)
	}
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("error %v does not wrap the opener's error", err)
	}
}
