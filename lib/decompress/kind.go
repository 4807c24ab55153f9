// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package decompress

import "fmt"

// Kind identifies a container format.
type Kind uint8

const (
	// None is plain content with no recognized container.
	None Kind = iota
	Gzip
	Bzip2
	Xz
	Zstd
	LZ4
	Zip
	Tar
)

// String returns the lowercase name of a kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Xz:
		return "xz"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Zip:
		return "zip"
	case Tar:
		return "tar"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ParseKind parses the name returned by String.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "bzip2":
		return Bzip2, nil
	case "xz":
		return Xz, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	case "zip":
		return Zip, nil
	case "tar":
		return Tar, nil
	default:
		return None, fmt.Errorf("unknown container kind: %q", name)
	}
}

// IsArchive reports whether the kind holds named members rather than a
// single compressed stream.
func (k Kind) IsArchive() bool {
	return k == Zip || k == Tar
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
