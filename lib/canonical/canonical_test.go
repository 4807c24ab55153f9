// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package canonical

import (
	"bytes"
	"errors"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"testing/iotest"
)

var canonicalizeTests = []struct {
	name    string
	dialect Dialect
	input   string
	want    string
}{
	{"comment header", CNF, "c this is a comment\np cnf 2 1\n1 -2 0\n", "p cnf 2 1\n1 -2 0\n"},
	{"empty", CNF, "", ""},
	{"only comments", CNF, "c only\nc comments\n", ""},
	{"only whitespace", CNF, "  \t \n \r\n", ""},
	{"tabs and crlf", CNF, "p  cnf\t2   1\r\n1\t-2 0\r\n", "p cnf 2 1\n1 -2 0\n"},
	{"bare carriage returns", CNF, "p cnf 2 1\r1 -2 0\r", "p cnf 2 1\n1 -2 0\n"},
	{"surrounding whitespace and blank lines", CNF, "  p cnf 2 1  \n\n\n   1 -2 0   ", "p cnf 2 1\n1 -2 0\n"},
	{"missing final newline", CNF, "p cnf 1 1\n1 0", "p cnf 1 1\n1 0\n"},
	{"indented comment", CNF, "   c indented comment\np cnf 1 1\n", "p cnf 1 1\n"},
	{"marker inside a line", CNF, "p cnf 1 1\n1 c 0\n", "p cnf 1 1\n1 c 0\n"},
	{"comment at end without newline", CNF, "p cnf 1 1\n1 0\nc trailing", "p cnf 1 1\n1 0\n"},
	{"comment between clauses", CNF, "1 0\nc middle\n2 0\n", "1 0\n2 0\n"},
	{"run spanning a line boundary", CNF, "a \n b", "a\nb\n"},
	{"vertical tab and form feed", CNF, "\v\fa\fb", "a b\n"},
	{"binary bytes pass through", CNF, "x\x00\xff y", "x\x00\xff y\n"},
	{"opb comment", OPB, "* comment\n+1 x1 >= 1 ;\n", "+1 x1 >= 1 ;\n"},
	{"opb keeps c lines", OPB, "c not a comment\n", "c not a comment\n"},
	{"cnf keeps star lines", CNF, "* not a comment\n", "* not a comment\n"},
}

func TestCanonicalize(t *testing.T) {
	for _, test := range canonicalizeTests {
		t.Run(test.name, func(t *testing.T) {
			got := Canonicalize([]byte(test.input), test.dialect)
			if string(got) != test.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	for _, test := range canonicalizeTests {
		once := Canonicalize([]byte(test.input), test.dialect)
		twice := Canonicalize(once, test.dialect)
		if !bytes.Equal(once, twice) {
			t.Errorf("%s: second pass changed %q to %q", test.name, once, twice)
		}
	}

	random := rand.New(rand.NewPCG(1, 2))
	for i := range 2000 {
		input := randomBytes(random, random.IntN(200))
		for _, dialect := range Dialects() {
			once := Canonicalize(input, dialect)
			twice := Canonicalize(once, dialect)
			if !bytes.Equal(once, twice) {
				t.Fatalf("case %d (%s): Canonicalize(%q) = %q, second pass = %q",
					i, dialect, input, once, twice)
			}
		}
	}
}

func TestFormattingInvariance(t *testing.T) {
	lines := [][]string{
		{"p", "cnf", "5", "3"},
		{"1", "-2", "3", "0"},
		{"-1", "4", "0"},
		{"2", "-5", "-3", "0"},
	}
	want := Canonicalize([]byte(render(lines, " ", "\n", nil)), CNF)

	random := rand.New(rand.NewPCG(7, 11))
	separators := []string{" ", "  ", "\t", " \t ", "\f", "\v "}
	terminators := []string{"\n", "\r\n", "\r", "\n\n", " \r\n\r\n  "}
	for i := range 500 {
		separator := separators[random.IntN(len(separators))]
		terminator := terminators[random.IntN(len(terminators))]
		comments := []string{"c", "c random comment", "c\t1 -2 0", "  c indented " + randomWord(random)}
		input := render(lines, separator, terminator, func() string {
			if random.IntN(3) == 0 {
				return comments[random.IntN(len(comments))]
			}
			return ""
		})
		got := Canonicalize([]byte(input), CNF)
		if !bytes.Equal(got, want) {
			t.Fatalf("case %d: Canonicalize(%q) = %q, want %q", i, input, got, want)
		}
	}
}

// render joins tokens with separator and lines with terminator,
// optionally inserting a comment line before each line.
func render(lines [][]string, separator, terminator string, comment func() string) string {
	var builder strings.Builder
	for _, line := range lines {
		if comment != nil {
			if text := comment(); text != "" {
				builder.WriteString(text)
				builder.WriteString(terminator)
			}
		}
		builder.WriteString(strings.Join(line, separator))
		builder.WriteString(terminator)
	}
	return builder.String()
}

// randomBytes draws from an alphabet dense in bytes the transformer
// treats specially, plus a few arbitrary ones.
func randomBytes(random *rand.Rand, length int) []byte {
	alphabet := []byte("cp*01- \t\r\n\v\f\x00\xffx")
	data := make([]byte, length)
	for i := range data {
		data[i] = alphabet[random.IntN(len(alphabet))]
	}
	return data
}

// randomWord returns letters, digits and blanks but no line terminator.
func randomWord(random *rand.Rand) string {
	alphabet := "abcxyz0123 \t"
	word := make([]byte, 1+random.IntN(20))
	for i := range word {
		word[i] = alphabet[random.IntN(len(alphabet))]
	}
	return string(word)
}

func TestWriterChunkingIndependence(t *testing.T) {
	random := rand.New(rand.NewPCG(3, 5))
	for i := range 200 {
		input := randomBytes(random, 1+random.IntN(500))
		want := Canonicalize(input, CNF)

		for _, chunkSize := range []int{1, 2, 3, 7, 64, len(input)} {
			var output bytes.Buffer
			writer := NewWriter(&output, CNF)
			for offset := 0; offset < len(input); offset += chunkSize {
				end := min(offset+chunkSize, len(input))
				n, err := writer.Write(input[offset:end])
				if err != nil {
					t.Fatalf("Write: %v", err)
				}
				if n != end-offset {
					t.Fatalf("Write returned %d, want %d", n, end-offset)
				}
			}
			if err := writer.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if !bytes.Equal(output.Bytes(), want) {
				t.Fatalf("case %d chunk %d: writer produced %q, want %q", i, chunkSize, output.Bytes(), want)
			}
		}
	}
}

func TestWriterStats(t *testing.T) {
	var output bytes.Buffer
	writer := NewWriter(&output, CNF)
	io.WriteString(writer, "c x\np cnf 1 1\n\n1 0")
	writer.Close()

	stats := writer.Stats()
	if stats.Bytes != int64(output.Len()) {
		t.Errorf("Stats.Bytes = %d, want %d", stats.Bytes, output.Len())
	}
	if stats.Lines != 2 {
		t.Errorf("Stats.Lines = %d, want 2", stats.Lines)
	}
	if stats.CommentLines != 1 {
		t.Errorf("Stats.CommentLines = %d, want 1", stats.CommentLines)
	}
}

func TestWriterClose(t *testing.T) {
	var output bytes.Buffer
	writer := NewWriter(&output, CNF)
	io.WriteString(writer, "1 0")
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if output.String() != "1 0\n" {
		t.Errorf("output = %q, want %q", output.String(), "1 0\n")
	}
	if _, err := writer.Write([]byte("2 0")); !errors.Is(err, ErrClosed) {
		t.Errorf("Write after Close error = %v, want ErrClosed", err)
	}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestWriterDestinationError(t *testing.T) {
	failure := errors.New("disk full")
	writer := NewWriter(failingWriter{err: failure}, CNF)

	if _, err := writer.Write([]byte("1 0\n")); !errors.Is(err, failure) {
		t.Fatalf("Write error = %v, want %v", err, failure)
	}
	if _, err := writer.Write([]byte("2 0\n")); !errors.Is(err, failure) {
		t.Errorf("second Write error = %v, want sticky %v", err, failure)
	}
	if err := writer.Close(); !errors.Is(err, failure) {
		t.Errorf("Close error = %v, want %v", err, failure)
	}
}

func TestWriterEmitsNothingForComments(t *testing.T) {
	var output bytes.Buffer
	writer := NewWriter(&output, CNF)
	io.WriteString(writer, "c a\r\nc b\r\n")
	writer.Close()
	if output.Len() != 0 {
		t.Errorf("output = %q, want empty", output.String())
	}
}

func TestReader(t *testing.T) {
	for _, test := range canonicalizeTests {
		t.Run(test.name, func(t *testing.T) {
			reader := NewReader(iotest.OneByteReader(strings.NewReader(test.input)), test.dialect)
			if err := iotest.TestReader(reader, []byte(test.want)); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestReaderLargeInput(t *testing.T) {
	input := strings.Repeat("c comment line\n1  -2\t3 0\r\n", 20000)
	want := strings.Repeat("1 -2 3 0\n", 20000)

	got, err := io.ReadAll(NewReader(strings.NewReader(input), CNF))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != want {
		t.Errorf("canonical output differs: got %d bytes, want %d", len(got), len(want))
	}
}

func TestReaderSourceError(t *testing.T) {
	failure := errors.New("connection reset")
	source := io.MultiReader(strings.NewReader("p cnf  1"), iotest.ErrReader(failure))

	got, err := io.ReadAll(NewReader(source, CNF))
	if !errors.Is(err, failure) {
		t.Fatalf("ReadAll error = %v, want %v", err, failure)
	}
	if string(got) != "p cnf 1" {
		t.Errorf("bytes before error = %q, want %q", got, "p cnf 1")
	}
}

func TestTransformerReset(t *testing.T) {
	transformer := NewTransformer(CNF)
	transformer.Append(nil, []byte("c open comment without end"))
	transformer.Reset()

	output := transformer.Finish(transformer.Append(nil, []byte("1 0")))
	if string(output) != "1 0\n" {
		t.Errorf("after Reset: %q, want %q", output, "1 0\n")
	}
	if stats := transformer.Stats(); stats.CommentLines != 0 {
		t.Errorf("Reset did not clear stats: %+v", stats)
	}
}

func TestLookupDialect(t *testing.T) {
	for _, dialect := range Dialects() {
		found, err := LookupDialect(strings.ToUpper(dialect.Name))
		if err != nil {
			t.Fatalf("LookupDialect(%q): %v", dialect.Name, err)
		}
		if found != dialect {
			t.Errorf("LookupDialect(%q) = %+v, want %+v", dialect.Name, found, dialect)
		}
	}

	if _, err := LookupDialect("smt2"); err == nil {
		t.Error("LookupDialect(\"smt2\") should fail")
	}
}

func TestDialectsReturnsCopy(t *testing.T) {
	list := Dialects()
	list[0].CommentMarker = '#'
	if Dialects()[0].CommentMarker != 'c' {
		t.Error("mutating the Dialects() result changed the dialect table")
	}
}

func TestDialectForName(t *testing.T) {
	tests := []struct {
		name   string
		want   Dialect
		wantOK bool
	}{
		{"instance.cnf", CNF, true},
		{"bench/instance.cnf.xz", CNF, true},
		{"old.wecnf.bz2", CNF, true},
		{"maxsat.wcnf.gz", WCNF, true},
		{"QBF.QDIMACS", QDIMACS, true},
		{"formula.qcnf.lzma", QDIMACS, true},
		{"pb/instance.opb.zst", OPB, true},
		{"instance.opb.lz4", OPB, true},
		{"instance.txt", Dialect{}, false},
		{"instance.cnf.tar", Dialect{}, false},
		{"instance.gz", Dialect{}, false},
		{"instance.opb.gz.gz", Dialect{}, false},
		{"noextension", Dialect{}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := DialectForName(test.name)
			if got != test.want || ok != test.wantOK {
				t.Errorf("DialectForName(%q) = %v, %v; want %v, %v", test.name, got, ok, test.want, test.wantOK)
			}
		})
	}
}

func TestDialectExtensions(t *testing.T) {
	for _, dialect := range Dialects() {
		extensions := dialect.Extensions()
		if len(extensions) == 0 {
			t.Errorf("%s has no extensions", dialect)
		}
		for _, extension := range extensions {
			if got, ok := DialectForName("x" + extension); !ok || got != dialect {
				t.Errorf("extension %s of %s resolves to %v, %v", extension, dialect, got, ok)
			}
		}
	}
}
