// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Dialect names an instance format and the byte that starts its comment
// lines.
type Dialect struct {
	Name          string
	CommentMarker byte
}

func (d Dialect) String() string {
	return d.Name
}

var (
	// CNF is DIMACS CNF ("c" comments).
	CNF = Dialect{Name: "cnf", CommentMarker: 'c'}

	// WCNF is weighted MaxSAT CNF, old and new formats.
	WCNF = Dialect{Name: "wcnf", CommentMarker: 'c'}

	// QDIMACS is prenex quantified CNF.
	QDIMACS = Dialect{Name: "qdimacs", CommentMarker: 'c'}

	// OPB is the pseudo-Boolean competition format ("*" comments).
	OPB = Dialect{Name: "opb", CommentMarker: '*'}

	// DefaultDialect is used when none is configured.
	DefaultDialect = CNF
)

// dialects is read-only after package initialization.
var dialects = [...]Dialect{CNF, WCNF, QDIMACS, OPB}

// Dialects returns the known dialects in a stable order.
func Dialects() []Dialect {
	result := make([]Dialect, len(dialects))
	copy(result, dialects[:])
	return result
}

// LookupDialect returns the dialect with the given name, ignoring case.
func LookupDialect(name string) (Dialect, error) {
	for _, dialect := range dialects {
		if strings.EqualFold(dialect.Name, name) {
			return dialect, nil
		}
	}
	names := make([]string, len(dialects))
	for i, dialect := range dialects {
		names[i] = dialect.Name
	}
	return Dialect{}, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(names, ", "))
}

// dialectExtensions maps file extensions to dialects, in the order
// Extensions reports them.
var dialectExtensions = [...]struct {
	extension string
	dialect   Dialect
}{
	{".cnf", CNF},
	{".wecnf", CNF},
	{".wcnf", WCNF},
	{".qcnf", QDIMACS},
	{".qdimacs", QDIMACS},
	{".opb", OPB},
}

// compressionSuffixes are skipped before the instance extension is
// read, so "x.opb.gz" is an OPB file.
var compressionSuffixes = []string{".gz", ".bz2", ".xz", ".lzma", ".zst", ".lz4"}

// Extensions returns the file extensions that select d in
// DialectForName.
func (d Dialect) Extensions() []string {
	var extensions []string
	for _, entry := range dialectExtensions {
		if entry.dialect == d {
			extensions = append(extensions, entry.extension)
		}
	}
	return extensions
}

// DialectForName infers the dialect of a file from its name, ignoring
// one trailing compression suffix. ok is false when the extension is
// not an instance extension. Only the name is consulted; container
// detection never depends on it.
func DialectForName(name string) (dialect Dialect, ok bool) {
	extension := strings.ToLower(filepath.Ext(name))
	if slices.Contains(compressionSuffixes, extension) {
		extension = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	for _, entry := range dialectExtensions {
		if entry.extension == extension {
			return entry.dialect, true
		}
	}
	return Dialect{}, false
}
