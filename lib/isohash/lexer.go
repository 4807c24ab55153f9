// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package isohash

import (
	"bufio"
	"bytes"
	"io"
)

// lexer splits a formula into whitespace-separated tokens while keeping
// track of line numbers for error reporting.
type lexer struct {
	reader *bufio.Reader
	line   int64
	token  []byte
}

func newLexer(reader io.Reader) *lexer {
	return &lexer{reader: bufio.NewReaderSize(reader, 64*1024), line: 1}
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// next returns the next token, or io.EOF. The returned slice is only
// valid until the following call. The byte ending the token is left
// unread so a newline after it is still visible to skipLine.
func (l *lexer) next() ([]byte, error) {
	l.token = l.token[:0]
	for {
		b, err := l.reader.ReadByte()
		if err != nil {
			if err == io.EOF && len(l.token) > 0 {
				return l.token, nil
			}
			return nil, err
		}
		if isSeparator(b) {
			if len(l.token) > 0 {
				l.reader.UnreadByte()
				return l.token, nil
			}
			if b == '\n' {
				l.line++
			}
			continue
		}
		l.token = append(l.token, b)
	}
}

// skipLine discards everything up to and including the next newline.
func (l *lexer) skipLine() error {
	for {
		_, err := l.reader.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			return err
		}
		l.line++
		return nil
	}
}

// restOfLine returns the fields remaining on the current line and
// consumes its newline.
func (l *lexer) restOfLine() ([][]byte, error) {
	line, err := l.reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(line) > 0 && line[len(line)-1] == '\n' {
		l.line++
	}
	return bytes.Fields(line), nil
}
