// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package isohash

import (
	"cmp"
	"crypto/md5"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/bureau-foundation/gbdhash/lib/digest"
)

// MaxVariable is the largest variable index accepted. The degree table
// holds one 16-byte entry for every index up to the largest seen, so a
// single literal near the bound allocates about 2 GiB. Larger indexes
// fail with a ParseError instead of an unbounded allocation.
const MaxVariable = 1 << 27

// ParseError reports a token that is not a valid literal or weight.
type ParseError struct {
	Line   int64
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("isohash: line %d: invalid token %q: %s", e.Line, e.Token, e.Reason)
}

// degree counts the occurrences of one variable.
type degree struct {
	neg uint64
	pos uint64
}

type degrees []degree

// add records literal, growing the table as needed. Literal 0 is the
// clause terminator and must be handled by the caller.
func (d *degrees) add(literal int64, weight uint64) {
	variable := literal
	if variable < 0 {
		variable = -variable
	}
	if int(variable) > len(*d) {
		*d = append(*d, make([]degree, int(variable)-len(*d))...)
	}
	entry := &(*d)[variable-1]
	if literal < 0 {
		entry.neg += weight
	} else {
		entry.pos += weight
	}
}

// normalize orders each entry so neg <= pos and sorts the table by
// (neg, pos), removing the dependence on polarity and variable names.
func (d degrees) normalize() {
	for i := range d {
		if d[i].pos < d[i].neg {
			d[i].neg, d[i].pos = d[i].pos, d[i].neg
		}
	}
	slices.SortFunc(d, func(a, b degree) int {
		if c := cmp.Compare(a.neg, b.neg); c != 0 {
			return c
		}
		return cmp.Compare(a.pos, b.pos)
	})
}

// writeTo feeds the non-empty entries to w. Unused variables are
// skipped so gaps in the numbering do not matter.
func (d degrees) writeTo(w io.Writer) {
	var buffer []byte
	for _, entry := range d {
		if entry.neg == 0 && entry.pos == 0 {
			continue
		}
		buffer = strconv.AppendUint(buffer[:0], entry.neg, 10)
		buffer = append(buffer, ' ')
		buffer = strconv.AppendUint(buffer, entry.pos, 10)
		buffer = append(buffer, ' ')
		w.Write(buffer)
	}
}

// Compute returns the isohash of the CNF formula read from reader.
func Compute(reader io.Reader) (digest.Fingerprint, error) {
	lex := newLexer(reader)
	var table degrees
	for {
		token, err := lex.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return digest.Fingerprint{}, err
		}
		if token[0] == 'p' || token[0] == 'c' {
			if err := lex.skipLine(); err != nil && err != io.EOF {
				return digest.Fingerprint{}, err
			}
			continue
		}
		if err := readClause(lex, token, &table, 1); err != nil {
			return digest.Fingerprint{}, err
		}
	}

	table.normalize()
	hash := md5.New()
	table.writeTo(hash)
	return digest.Fingerprint(hash.Sum(nil)), nil
}

// ComputeWCNF returns the isohash of the weighted CNF formula read from
// reader. Both the "p wcnf ... top" format and the newer format with
// "h" hard clauses are accepted. Hard clauses count once per
// occurrence. A soft clause occurrence counts its weight plus one,
// keeping hashes comparable with those already published in GBD
// databases.
func ComputeWCNF(reader io.Reader) (digest.Fingerprint, error) {
	lex := newLexer(reader)
	var hard, soft degrees
	var top uint64
	for {
		token, err := lex.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return digest.Fingerprint{}, err
		}
		switch {
		case token[0] == 'c':
			if err := lex.skipLine(); err != nil && err != io.EOF {
				return digest.Fingerprint{}, err
			}

		case token[0] == 'p':
			fields, err := lex.restOfLine()
			if err != nil {
				return digest.Fingerprint{}, err
			}
			// p wcnf <variables> <clauses> [<top>]
			if len(fields) >= 4 {
				if value, err := strconv.ParseUint(string(fields[3]), 10, 64); err == nil {
					top = value
				}
			}

		case string(token) == "h":
			first, err := lex.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return digest.Fingerprint{}, err
			}
			if err := readClause(lex, first, &hard, 1); err != nil {
				return digest.Fingerprint{}, err
			}

		default:
			weight, err := strconv.ParseUint(string(token), 10, 64)
			if err != nil {
				return digest.Fingerprint{}, &ParseError{Line: lex.line, Token: string(token), Reason: "expected a clause weight"}
			}
			first, err := lex.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return digest.Fingerprint{}, err
			}
			if top != 0 && weight >= top {
				err = readClause(lex, first, &hard, 1)
			} else {
				err = readClause(lex, first, &soft, weight+1)
			}
			if err != nil {
				return digest.Fingerprint{}, err
			}
		}
	}

	// Soft degrees include the hard ones.
	if len(soft) < len(hard) {
		soft = append(soft, make([]degree, len(hard)-len(soft))...)
	}
	for i, entry := range hard {
		soft[i].neg += entry.neg
		soft[i].pos += entry.pos
	}
	hard.normalize()
	soft.normalize()

	hash := md5.New()
	hard.writeTo(hash)
	io.WriteString(hash, "softs ")
	soft.writeTo(hash)
	return digest.Fingerprint(hash.Sum(nil)), nil
}

// readClause reads literals starting at first until the terminating 0
// or the end of input, adding each with weight to table.
func readClause(lex *lexer, first []byte, table *degrees, weight uint64) error {
	token := first
	for {
		literal, err := strconv.ParseInt(string(token), 10, 64)
		if err != nil {
			return &ParseError{Line: lex.line, Token: string(token), Reason: "expected a literal"}
		}
		if literal == 0 {
			return nil
		}
		if literal > MaxVariable || literal < -MaxVariable {
			return &ParseError{Line: lex.line, Token: string(token), Reason: "variable index out of range"}
		}
		table.add(literal, weight)

		token, err = lex.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
