// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Checksum is a BLAKE3-256 digest of a file's stored bytes. Unlike a
// Fingerprint it changes when the compression container or formatting
// changes, so it identifies a particular file rather than an instance.
type Checksum [32]byte

func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

// Checksummer accumulates a Checksum. It is an io.Writer so it can be
// attached to a reader with io.TeeReader.
type Checksummer struct {
	hasher *blake3.Hasher
}

func NewChecksummer() *Checksummer {
	return &Checksummer{hasher: blake3.New()}
}

func (c *Checksummer) Write(data []byte) (int, error) {
	return c.hasher.Write(data)
}

// Sum returns the checksum of everything written so far. It does not
// change the state; writing may continue afterwards.
func (c *Checksummer) Sum() Checksum {
	var checksum Checksum
	copy(checksum[:], c.hasher.Sum(nil))
	return checksum
}
