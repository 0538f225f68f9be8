package tns

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

var cmpAST = cmp.AllowUnexported(Document{}, Entry{}, Parameter{})

func mustParse(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()

	doc, err := ParseString(context.Background(), src, opts...)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}

	return doc
}

func TestParseString_Scenarios(t *testing.T) {
	hostX := NewAtom("HOST", "x")

	tests := []struct {
		name string
		src  string
		want *Document
	}{
		{
			name: "single entry",
			src:  "A=(HOST=x)\r\n\r\n",
			want: NewDocument(NewEntry(hostX, "A")),
		},
		{
			name: "multiple services",
			src:  "A,B=(HOST=x)\r\n",
			want: NewDocument(NewEntry(hostX, "A", "B")),
		},
		{
			name: "nested descriptor",
			src:  "A=(DESC=(ADDR=(HOST=x)(PORT=1521)))\r\n",
			want: NewDocument(NewEntry(
				NewParameter("DESC",
					NewParameter("ADDR",
						NewAtom("HOST", "x"),
						NewAtom("PORT", "1521"))),
				"A")),
		},
		{
			name: "leading comment",
			src:  "# comment\r\nA=(HOST=x)\r\n",
			want: NewDocument(NewEntry(hostX, "A")),
		},
		{
			name: "empty document",
			src:  "",
			want: NewDocument(),
		},
		{
			name: "only comments and blank lines",
			src:  "# one\r\n\r\n   \r\n\t\r\n# two\r\n",
			want: NewDocument(),
		},
		{
			name: "layout around every token",
			src: "  SALES ,\r\n SALES.EXAMPLE.COM\t=\r\n" +
				"  ( DESCRIPTION =\r\n" +
				"    (ADDRESS = (PROTOCOL = TCP)(HOST = db1-host)(PORT = 1521))\r\n" +
				"  )\r\n",
			want: NewDocument(NewEntry(
				NewParameter("DESCRIPTION",
					NewParameter("ADDRESS",
						NewAtom("PROTOCOL", "TCP"),
						NewAtom("HOST", "db1-host"),
						NewAtom("PORT", "1521"))),
				"SALES", "SALES.EXAMPLE.COM")),
		},
		{
			name: "trailing comment after entry",
			src:  "A=(HOST=x) # primary\r\nB=(HOST=y)\r\n",
			want: NewDocument(
				NewEntry(hostX, "A"),
				NewEntry(NewAtom("HOST", "y"), "B")),
		},
		{
			name: "no final line terminator",
			src:  "A=(HOST=x)",
			want: NewDocument(NewEntry(hostX, "A")),
		},
		{
			name: "entries keep source order",
			src:  "Z=(K=1)\r\nA=(K=2)\r\nM=(K=3)\r\n",
			want: NewDocument(
				NewEntry(NewAtom("K", "1"), "Z"),
				NewEntry(NewAtom("K", "2"), "A"),
				NewEntry(NewAtom("K", "3"), "M")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.src)

			if diff := cmp.Diff(tt.want, got, cmpAST); diff != "" {
				t.Errorf("ParseString() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseString_CommentIsTransparent(t *testing.T) {
	plain := mustParse(t, "A=(HOST=x)\r\n\r\n")
	commented := mustParse(t, "# comment\r\n\r\nA=(HOST=x)\r\n# trailer\r\n")

	if diff := cmp.Diff(plain, commented, cmpAST); diff != "" {
		t.Errorf("comments changed the result (-plain +commented):\n%s", diff)
	}
}

func TestParseString_ValuesAreHomogeneous(t *testing.T) {
	doc := mustParse(t,
		"A=(DESCRIPTION=(ADDRESS_LIST=(ADDRESS=(HOST=h1)(PORT=1))(ADDRESS=(HOST=h2)(PORT=2)))"+
			"(CONNECT_DATA=(SID=ORCL)))\r\n")

	var walk func(p *Parameter)

	walk = func(p *Parameter) {
		values := p.Values()
		if len(values) == 0 {
			t.Fatalf("%s has no values", p.Name())
		}

		if _, leaf := values[0].(Atom); leaf {
			if len(values) != 1 {
				t.Errorf("%s mixes an atom with other values", p.Name())
			}

			return
		}

		for _, v := range values {
			child, ok := v.(*Parameter)
			if !ok {
				t.Fatalf("%s mixes parameters with %T", p.Name(), v)
			}

			walk(child)
		}
	}

	for e := range doc.All() {
		walk(e.Parameter())
	}

	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestParseString_TokenWinsOverNested(t *testing.T) {
	// A value starting with a token character is a token even when a
	// parenthesis follows, so the closing ')' is then missing.
	_, err := ParseString(context.Background(), "A=(K=v(X=1))\r\n")

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *SyntaxError", err)
	}

	if want := []string{"')'"}; !cmp.Equal(se.Expected, want) {
		t.Errorf("Expected = %v, want %v", se.Expected, want)
	}
}

func TestParseString_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		opts     []Option
		pos      Position
		expected []string
		found    string
	}{
		{
			name:     "missing value",
			src:      "A=(HOST)\r\n",
			pos:      Position{Offset: 7, Line: 1, Column: 8},
			expected: []string{"'='"},
			found:    "')'",
		},
		{
			name:     "bare line feed",
			src:      "A=(HOST=x)\n",
			pos:      Position{Offset: 10, Line: 1, Column: 11},
			expected: []string{"end of line"},
			found:    "bare line feed",
		},
		{
			name:     "bare line feed inside parameter",
			src:      "A=(HOST=x\n)\r\n",
			pos:      Position{Offset: 9, Line: 1, Column: 10},
			expected: []string{"end of line"},
			found:    "bare line feed",
		},
		{
			name:     "columns count runes",
			src:      "# café",
			pos:      Position{Offset: 7, Line: 1, Column: 7},
			expected: []string{"end of line"},
			found:    "end of input",
		},
		{
			name:     "columns count runes on later line",
			src:      "# ünïcödé\r\nA=(HOST)\r\n",
			pos:      Position{Offset: 22, Line: 2, Column: 8},
			expected: []string{"'='"},
			found:    "')'",
		},
		{
			name:     "missing equals after names",
			src:      "A,B (HOST=x)\r\n",
			pos:      Position{Offset: 4, Line: 1, Column: 5},
			expected: []string{"','", "'='"},
			found:    "'('",
		},
		{
			name:     "dangling comma",
			src:      "A,=(HOST=x)\r\n",
			pos:      Position{Offset: 2, Line: 1, Column: 3},
			expected: []string{"service name"},
			found:    "'='",
		},
		{
			name:     "unterminated parameter",
			src:      "A=(DESC=(HOST=x)\r\n",
			pos:      Position{Offset: 18, Line: 2, Column: 1},
			expected: []string{"'('", "')'"},
			found:    "end of input",
		},
		{
			name:     "error on later line",
			src:      "A=(HOST=x)\r\n\r\nB=(PORT=)\r\n",
			pos:      Position{Offset: 22, Line: 3, Column: 9},
			expected: []string{"value", "'('"},
			found:    "')'",
		},
		{
			name:     "indented comment",
			src:      "  # nope\r\n",
			pos:      Position{Offset: 2, Line: 1, Column: 3},
			expected: []string{"service name"},
			found:    "'#'",
		},
		{
			name:     "comment at end of input without terminator",
			src:      "# last",
			pos:      Position{Offset: 6, Line: 1, Column: 7},
			expected: []string{"end of line"},
			found:    "end of input",
		},
		{
			name:     "non-ASCII letter",
			src:      "É=(HOST=x)\r\n",
			pos:      Position{Offset: 0, Line: 1, Column: 1},
			expected: []string{"service name"},
			found:    "'É'",
		},
		{
			name:     "missing root parameter",
			src:      "A=\r\n",
			pos:      Position{Offset: 4, Line: 2, Column: 1},
			expected: []string{"'('"},
			found:    "end of input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(context.Background(), tt.src, tt.opts...)
			if doc != nil {
				t.Errorf("got document %v, want nil", doc)
			}

			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("err = %v, want ErrSyntax", err)
			}

			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("err = %T, want *SyntaxError", err)
			}

			if se.Pos != tt.pos {
				t.Errorf("Pos = %+v, want %+v", se.Pos, tt.pos)
			}

			if diff := cmp.Diff(tt.expected, se.Expected); diff != "" {
				t.Errorf("Expected mismatch (-want +got):\n%s", diff)
			}

			if se.Found != tt.found {
				t.Errorf("Found = %s, want %s", se.Found, tt.found)
			}
		})
	}
}

func TestParseString_BareLineFeedOption(t *testing.T) {
	src := "# comment\nA,B=\n  (DESC=\n    (HOST=x)(PORT=1))\n\nC=(HOST=y)\n"

	if _, err := ParseString(context.Background(), src); !errors.Is(err, ErrSyntax) {
		t.Fatalf("strict parse err = %v, want ErrSyntax", err)
	}

	doc := mustParse(t, src, WithBareLineFeed(true))
	crlf := mustParse(t, strings.ReplaceAll(src, "\n", "\r\n"))

	if diff := cmp.Diff(crlf, doc, cmpAST); diff != "" {
		t.Errorf("bare LF parse differs from CR LF parse (-crlf +lf):\n%s", diff)
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(context.Background(),
		strings.NewReader("A=(HOST=x)\r\n"))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}

	if got := doc.Services(); !cmp.Equal(got, []string{"A"}) {
		t.Errorf("Services() = %v", got)
	}
}

func TestParseReader_ReadError(t *testing.T) {
	cause := errors.New("disk on fire")

	_, err := ParseReader(context.Background(), iotest.ErrReader(cause))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("err = %v, want ErrReadInput", err)
	}

	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want cause preserved", err)
	}
}
