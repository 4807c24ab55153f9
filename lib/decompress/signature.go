// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"bufio"
	"bytes"
	"io"
)

// SniffLength is the number of leading bytes Detect may inspect. It
// covers the tar magic at offset 257.
const SniffLength = 512

// Signature is a magic-byte pattern identifying one container kind.
type Signature struct {
	Kind   Kind
	Offset int
	Magic  []byte

	// verify, when set, must also accept the prefix. It rejects short
	// magics that plain text could plausibly start with.
	verify func(prefix []byte) bool
}

func (s Signature) matches(prefix []byte) bool {
	end := s.Offset + len(s.Magic)
	if len(prefix) < end || !bytes.Equal(prefix[s.Offset:end], s.Magic) {
		return false
	}
	return s.verify == nil || s.verify(prefix)
}

// signatures is checked in order; the first match wins. It is never
// modified after initialization.
var signatures = []Signature{
	{Kind: Gzip, Magic: []byte{0x1F, 0x8B, 0x08}},
	{Kind: Bzip2, Magic: []byte("BZh"), verify: verifyBzip2},
	{Kind: Xz, Magic: []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}},
	{Kind: Zstd, Magic: []byte{0x28, 0xB5, 0x2F, 0xFD}},
	{Kind: LZ4, Magic: []byte{0x04, 0x22, 0x4D, 0x18}},
	{Kind: Zip, Magic: []byte{'P', 'K', 0x03, 0x04}},
	{Kind: Zip, Magic: []byte{'P', 'K', 0x05, 0x06}},
	{Kind: Tar, Offset: 257, Magic: []byte("ustar")},
}

var (
	bzip2BlockMagic       = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2EndOfStreamMagic = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}
)

// verifyBzip2 requires the block size digit and the magic of the first
// block (or of the end of stream, for empty input) after "BZh".
func verifyBzip2(prefix []byte) bool {
	if len(prefix) < 10 || prefix[3] < '1' || prefix[3] > '9' {
		return false
	}
	return bytes.Equal(prefix[4:10], bzip2BlockMagic) || bytes.Equal(prefix[4:10], bzip2EndOfStreamMagic)
}

// Signatures returns a copy of the signature table in priority order.
func Signatures() []Signature {
	result := make([]Signature, len(signatures))
	copy(result, signatures)
	return result
}

// Detect returns the container kind whose signature matches prefix, or
// None. A prefix shorter than a signature never matches it.
func Detect(prefix []byte) Kind {
	for _, signature := range signatures {
		if signature.matches(prefix) {
			return signature.Kind
		}
	}
	return None
}

// Sniff detects the container kind at the head of reader without
// consuming anything. Streams shorter than SniffLength, including empty
// ones, are sniffed on what they have.
func Sniff(reader *bufio.Reader) (Kind, error) {
	prefix, err := reader.Peek(SniffLength)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return None, err
	}
	return Detect(prefix), nil
}
