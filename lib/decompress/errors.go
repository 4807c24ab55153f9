// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import (
	"errors"
	"fmt"
)

// ErrDecode is matched by every *DecodeError.
var ErrDecode = errors.New("decode failed")

// DecodeError reports corrupt or truncated container data. Retrying
// will not help: the bytes themselves are bad.
type DecodeError struct {
	Kind Kind

	// Offset is the number of source bytes consumed when decoding
	// failed, or -1 when the decoder reads the source out of order
	// (zip read in place).
	Offset int64

	Err error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("decoding %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("decoding %s at source offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
