// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
)

// WriteRecords writes records to w as a CBOR sequence: one data item
// per record, no framing.
func WriteRecords[T any](w io.Writer, records []T) error {
	encoder := NewEncoder(w)
	for i := range records {
		if err := encoder.Encode(&records[i]); err != nil {
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
	}
	return nil
}

// ReadRecords decodes a CBOR sequence written by WriteRecords. An empty
// reader yields no records. A truncated final item is an error.
func ReadRecords[T any](r io.Reader) ([]T, error) {
	decoder := NewDecoder(r)
	var records []T
	for {
		var record T
		err := decoder.Decode(&record)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("decoding record %d: %w", len(records), err)
		}
		records = append(records, record)
	}
}
