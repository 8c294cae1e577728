package token

import (
	"oak-compiler/ast"
	"oak-compiler/builtins"
	"oak-compiler/internal/interner"
)

// reserved bytes terminate a symbol scan: space, newline, (, ), ., :, ,.
func isReserved(r rune) bool {
	switch r {
	case ' ', '\n', '(', ')', '.', ':', ',':
		return true
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// cursor walks the source one rune at a time, tracking 1-based
// line/column incrementally rather than re-deriving it from a byte
// offset. It walks the raw, unnormalized source: a token's Span must
// cover the exact source the embedder holds, which NFC normalization
// would shift for any lexeme containing decomposed combining-mark
// sequences. Normalization happens later, per lexeme, when the
// extracted identifier or string content is interned.
type cursor struct {
	runes []rune
	i     int
	pos   ast.Position
}

func newCursor(src string) *cursor {
	return &cursor{runes: []rune(src), pos: ast.Position{Line: 1, Column: 1}}
}

func (c *cursor) eof() bool { return c.i >= len(c.runes) }

func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}
	return c.runes[c.i]
}

func (c *cursor) peekAt(offset int) rune {
	if c.i+offset >= len(c.runes) {
		return 0
	}
	return c.runes[c.i+offset]
}

func (c *cursor) here() ast.Position { return c.pos }

// advance consumes one rune, updating line/column. Newlines are handled
// by the caller as a run, not here, so advance always moves within a
// single line.
func (c *cursor) advance() rune {
	r := c.runes[c.i]
	c.i++
	c.pos.Column++
	return r
}

// Scan tokenizes src into a flat sequence of tokens against in and bi.
func Scan(src string, in *interner.Interner, bi *builtins.Table) []Token {
	c := newCursor(src)
	var toks []Token

	for !c.eof() {
		r := c.peek()

		switch {
		case r == ' ' || r == '\t':
			c.advance()
			continue
		case r == '\n':
			toks = append(toks, scanNewLine(c))
			continue
		case isDigit(r) || r == '-' || r == '.':
			toks = append(toks, scanNumber(c, in))
			continue
		case r == '"':
			toks = append(toks, scanString(c, in))
			continue
		}

		if k, ok := singlePunct[r]; ok {
			begin := c.here()
			c.advance()
			toks = append(toks, Token{Kind: k, Span: ast.Span{Begin: begin, End: c.here()}})
			continue
		}

		if r == '=' {
			begin := c.here()
			c.advance()
			if c.peek() == '=' {
				c.advance()
				toks = append(toks, Token{Kind: EqualEqual, Span: ast.Span{Begin: begin, End: c.here()}})
			} else {
				toks = append(toks, Token{Kind: Equal, Span: ast.Span{Begin: begin, End: c.here()}})
			}
			continue
		}

		if k, ok := singleOperator[r]; ok {
			begin := c.here()
			c.advance()
			toks = append(toks, Token{Kind: k, Span: ast.Span{Begin: begin, End: c.here()}})
			continue
		}

		toks = append(toks, scanSymbol(c, in, bi))
	}

	return toks
}

var singlePunct = map[rune]Kind{
	'(': LeftParen,
	')': RightParen,
	'{': LeftBrace,
	'}': RightBrace,
	':': Colon,
	',': Comma,
}

var singleOperator = map[rune]Kind{
	'+': Plus,
	'*': Times,
	'/': Slash,
	'^': Caret,
	'%': Percent,
	'>': Greater,
	'<': Less,
}

func scanNewLine(c *cursor) Token {
	begin := c.here()
	for c.peek() == '\n' {
		c.i++
		c.pos.Line++
		c.pos.Column = 1
	}
	return Token{Kind: NewLine, Span: ast.Span{Begin: begin, End: c.here()}}
}

// scanNumber implements the number-scan policy: consume digits and dots
// until a non-member byte. A run that is exactly "-" is `minus`; a run
// that is exactly "." is `dot`. A run ending in a trailing "." that has
// at least one digit returns the trailing dot to the stream (it belongs
// to member access). A run with zero dots is `int`; one or more is
// `float`. Multiple dots inside one run (e.g. "1.2.3") are preserved as
// written and not corrected; the parser diagnoses that, not this scan.
func scanNumber(c *cursor, in *interner.Interner) Token {
	begin := c.here()
	start := c.i
	dots := 0
	digits := 0

	for !c.eof() {
		r := c.peek()
		if isDigit(r) {
			digits++
			c.advance()
			continue
		}
		if r == '.' {
			dots++
			c.advance()
			continue
		}
		if r == '-' && c.i == start {
			c.advance()
			continue
		}
		break
	}

	text := string(c.runes[start:c.i])

	if text == "-" {
		return Token{Kind: Minus, Span: ast.Span{Begin: begin, End: c.here()}}
	}
	if text == "." {
		return Token{Kind: Dot, Span: ast.Span{Begin: begin, End: c.here()}}
	}
	if digits > 0 && len(text) > 0 && text[len(text)-1] == '.' {
		// return the trailing dot to the stream
		text = text[:len(text)-1]
		c.i--
		c.pos.Column--
		dots--
	}

	h := ast.Identifier(in.Store(text))
	kind := Int
	if dots > 0 {
		kind = Float
	}
	return Token{Kind: kind, Span: ast.Span{Begin: begin, End: c.here()}, Handle: h}
}

// scanString reads until the next `"`, interning both quotes with the
// content as written in the source.
func scanString(c *cursor, in *interner.Interner) Token {
	begin := c.here()
	start := c.i
	c.advance() // opening quote
	for !c.eof() && c.peek() != '"' {
		if c.peek() == '\n' {
			c.i++
			c.pos.Line++
			c.pos.Column = 1
			continue
		}
		c.advance()
	}
	if !c.eof() {
		c.advance() // closing quote
	}
	text := string(c.runes[start:c.i])
	h := ast.Identifier(in.Store(text))
	return Token{Kind: String, Span: ast.Span{Begin: begin, End: c.here()}, Handle: h}
}

// scanSymbol consumes until a reserved byte, then classifies the
// resulting handle against the builtins table.
func scanSymbol(c *cursor, in *interner.Interner, bi *builtins.Table) Token {
	begin := c.here()
	start := c.i
	for !c.eof() && !isReserved(c.peek()) {
		c.advance()
	}
	text := string(c.runes[start:c.i])
	h := ast.Identifier(in.Store(text))
	span := ast.Span{Begin: begin, End: c.here()}

	switch h {
	case bi.Fn:
		return Token{Kind: Fn, Span: span}
	case bi.If:
		return Token{Kind: If, Span: span}
	case bi.Else:
		return Token{Kind: Else, Span: span}
	case bi.Or:
		return Token{Kind: Or, Span: span}
	case bi.True:
		return Token{Kind: Bool, Span: span, BoolValue: true}
	case bi.False:
		return Token{Kind: Bool, Span: span, BoolValue: false}
	default:
		return Token{Kind: Symbol, Span: span, Handle: h}
	}
}
