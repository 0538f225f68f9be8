package tns

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/klauspost/readahead"
)

// ParseString parses a document from a string.
func ParseString(ctx context.Context, s string, opts ...Option) (*Document, error) {
	return parseWith(ctx, s, makeOptions(opts...))
}

// ParseReader parses a document from an io.Reader.
// The reader is consumed completely before parsing begins.
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	// Wrap reader with async read-ahead so reads overlap buffering.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseWith(ctx, string(data), o)
}

// ParseFile reads the file at path with the configured encoding and
// parses it.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Document, error) {
	o := makeOptions(opts...)

	text, err := o.fs.ReadText(path, o.encoding)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path), slog.String("encoding", o.encoding))
	}

	doc, err := parseWith(ctx, text, o)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	return doc, nil
}

func parseWith(ctx context.Context, s string, o options) (*Document, error) {
	p := &parser{
		input:  []byte(s),
		pos:    0,
		line:   1,
		col:    1,
		bareLF: o.bareLF,
	}

	doc, err := p.parseDocument()
	if err != nil {
		o.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("entry_count", doc.Len()))

	return doc, nil
}

// parser holds the parser state.
type parser struct {
	input  []byte
	pos    int
	line   int
	col    int
	bareLF bool
}

// parseDocument parses: { EmptyLine | Comment | Entry } EOF.
func (p *parser) parseDocument() (*Document, error) {
	doc := new(Document)

	for !p.eof() {
		if p.emptyLine() {
			continue
		}

		if p.peek() == '#' {
			if err := p.parseComment(); err != nil {
				return nil, err
			}

			continue
		}

		e, err := p.parseEntry()
		if err != nil {
			return nil, err
		}

		doc.entries = append(doc.entries, e)
	}

	return doc, nil
}

// emptyLine consumes WS* EOL and reports whether it matched.
// Nothing is consumed on mismatch.
func (p *parser) emptyLine() bool {
	saved := p.mark()

	p.skipWhitespace()

	if n := p.eol(); n > 0 {
		p.advance(n)

		return true
	}

	p.reset(saved)

	return false
}

// parseComment parses: '#' { any char except CR, LF } EOL.
func (p *parser) parseComment() error {
	if !p.expect('#') {
		return p.fail("'#'")
	}

	for !p.eof() && p.peek() != '\r' && p.peek() != '\n' {
		p.advance(1)
	}

	n := p.eol()
	if n == 0 {
		return p.fail("end of line")
	}

	p.advance(n)

	return nil
}

// parseEntry parses: ServiceNames '=' Parameter, with layout around each.
func (p *parser) parseEntry() (*Entry, error) {
	p.skipLayout()

	services, err := p.parseServiceNames()
	if err != nil {
		return nil, err
	}

	if !p.expect('=') {
		return nil, p.fail("','", "'='")
	}

	param, err := p.parseParameter()
	if err != nil {
		return nil, err
	}

	return &Entry{services: services, parameter: param}, nil
}

// parseServiceNames parses: ServiceName { ',' ServiceName }.
// Trailing layout is consumed.
func (p *parser) parseServiceNames() ([]string, error) {
	var services []string

	for {
		name, ok := p.scan(isNameChar)
		if !ok {
			return nil, p.fail("service name")
		}

		services = append(services, name)

		p.skipLayout()

		if !p.expect(',') {
			return services, nil
		}

		p.skipLayout()
	}
}

// parseParameter parses: '(' Key '=' Value ')', with layout around each.
func (p *parser) parseParameter() (*Parameter, error) {
	p.skipLayout()

	if !p.expect('(') {
		return nil, p.fail("'('")
	}

	p.skipLayout()

	key, ok := p.scan(isNameChar)
	if !ok {
		return nil, p.fail("key")
	}

	p.skipLayout()

	if !p.expect('=') {
		return nil, p.fail("'='")
	}

	p.skipLayout()

	values, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipLayout()

	if !p.expect(')') {
		if _, leaf := values[0].(Atom); leaf {
			return nil, p.fail("')'")
		}

		return nil, p.fail("'('", "')'")
	}

	p.skipLayout()

	return &Parameter{name: key, values: values}, nil
}

// parseValue parses: Token | Parameter { Parameter }.
//
// The alternatives are tried in order. A value that starts with a token
// character is a token, and nested parameters are never considered.
func (p *parser) parseValue() ([]Value, error) {
	if tok, ok := p.scan(isTokenChar); ok {
		return []Value{Atom(tok)}, nil
	}

	if p.peek() != '(' {
		return nil, p.fail("value", "'('")
	}

	var values []Value

	for {
		child, err := p.parseParameter()
		if err != nil {
			return nil, err
		}

		values = append(values, child)

		if p.peek() != '(' {
			return values, nil
		}
	}
}

// Helper methods

type mark struct{ pos, line, col int }

func (p *parser) mark() mark { return mark{p.pos, p.line, p.col} }

func (p *parser) reset(m mark) { p.pos, p.line, p.col = m.pos, m.line, m.col }

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.input[p.pos]
}

// advance consumes n bytes. Columns count runes, not bytes.
func (p *parser) advance(n int) {
	for ; n > 0 && !p.eof(); n-- {
		switch c := p.input[p.pos]; {
		case c == '\n':
			p.line++
			p.col = 1
		case utf8.RuneStart(c):
			p.col++
		}

		p.pos++
	}
}

func (p *parser) expect(c byte) bool {
	if !p.eof() && p.peek() == c {
		p.advance(1)

		return true
	}

	return false
}

func (p *parser) eol() int { return eolLen(p.input, p.pos, p.bareLF) }

// scan consumes one or more bytes accepted by fn.
func (p *parser) scan(fn func(byte) bool) (string, bool) {
	start := p.pos

	for !p.eof() && fn(p.peek()) {
		p.advance(1)
	}

	return string(p.input[start:p.pos]), p.pos > start
}

// skipWhitespace consumes zero or more spaces or tabs.
func (p *parser) skipWhitespace() {
	for !p.eof() && isWhitespace(p.peek()) {
		p.advance(1)
	}
}

// skipLayout consumes zero or more whitespace characters or line
// terminators.
func (p *parser) skipLayout() {
	for !p.eof() {
		if isWhitespace(p.peek()) {
			p.advance(1)

			continue
		}

		n := p.eol()
		if n == 0 {
			return
		}

		p.advance(n)
	}
}

// fail returns a SyntaxError at the current position.
//
// Layout is accepted wherever a bare LF can stop the parser, so in strict
// mode a bare LF is always reported as a missing line terminator.
func (p *parser) fail(expected ...string) *SyntaxError {
	found := "end of input"

	var hint string

	if !p.eof() {
		r, _ := utf8.DecodeRune(p.input[p.pos:])
		found = strconv.QuoteRune(r)

		if r == '\n' && !p.bareLF {
			expected = []string{"end of line"}
			found = "bare line feed"
			hint = "lines must end with CR LF; see WithBareLineFeed"
		}
	}

	return &SyntaxError{
		Pos: Position{
			Offset: p.pos,
			Line:   p.line,
			Column: p.col,
		},
		Expected: expected,
		Found:    found,
		Hint:     hint,
		Source:   string(p.input),
	}
}
