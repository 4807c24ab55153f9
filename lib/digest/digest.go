// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
)

// Size is the length of a Fingerprint in bytes.
const Size = md5.Size

// Fingerprint is the digest of a canonical stream.
type Fingerprint [Size]byte

// EmptyFingerprint is the fingerprint of a zero-length canonical stream,
// which is what empty and all-comment instances produce.
var EmptyFingerprint = Fingerprint(md5.Sum(nil))

// String returns the lowercase hex form. This is the externally visible
// GBDHash.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// IsZero reports whether f is the zero value. No real digest is all
// zeros; a zero Fingerprint means "not computed".
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Fingerprint) UnmarshalText(text []byte) error {
	parsed, err := ParseFingerprint(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFingerprint parses a 32-character hex string.
func ParseFingerprint(hexString string) (Fingerprint, error) {
	var fingerprint Fingerprint
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return fingerprint, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != Size {
		return fingerprint, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), Size)
	}
	copy(fingerprint[:], decoded)
	return fingerprint, nil
}

// Sum returns the fingerprint of data in one call.
func Sum(data []byte) Fingerprint {
	return Fingerprint(md5.Sum(data))
}

// ErrMisuse is matched by every *MisuseError.
var ErrMisuse = errors.New("digest misuse")

// MisuseError reports a violation of the accumulator contract. It
// always indicates a caller bug.
type MisuseError struct {
	Op string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("digest: %s after Finalize", e.Op)
}

func (e *MisuseError) Is(target error) bool {
	return target == ErrMisuse
}

// Accumulator is the running state of one fingerprint computation. It
// is not safe for concurrent use; each pipeline invocation owns one.
type Accumulator struct {
	hasher    hash.Hash
	length    int64
	finalized bool
}

// New returns an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{hasher: md5.New()}
}

// Update feeds chunk into the digest. Any chunking of the same byte
// sequence yields the same Fingerprint.
func (a *Accumulator) Update(chunk []byte) error {
	if a.finalized {
		return &MisuseError{Op: "Update"}
	}
	// hash.Hash.Write never returns an error.
	a.hasher.Write(chunk)
	a.length += int64(len(chunk))
	return nil
}

// Write implements io.Writer on top of Update so an Accumulator can sit
// at the end of an io.Copy chain.
func (a *Accumulator) Write(chunk []byte) (int, error) {
	if err := a.Update(chunk); err != nil {
		return 0, err
	}
	return len(chunk), nil
}

// Len returns the number of bytes consumed so far.
func (a *Accumulator) Len() int64 {
	return a.length
}

// Finalize produces the Fingerprint. It may be called exactly once.
func (a *Accumulator) Finalize() (Fingerprint, error) {
	if a.finalized {
		return Fingerprint{}, &MisuseError{Op: "Finalize"}
	}
	a.finalized = true
	var fingerprint Fingerprint
	copy(fingerprint[:], a.hasher.Sum(nil))
	return fingerprint, nil
}
