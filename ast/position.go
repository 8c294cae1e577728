// Package ast holds the small primitives shared by the tokenizer, the
// inference engine, and the typed tree: source positions, spans, and the
// interned-handle identifier type.
package ast

import "fmt"

// Identifier is an interned handle standing in for a source-text
// identifier or literal body. Two identifiers are equal iff the strings
// they were interned from are equal.
type Identifier uint32

// Position is a 1-based line/column pair.
type Position struct {
	Line, Column uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range: Begin <= End in lexical order.
type Span struct {
	Begin, End Position
}

func (s Span) String() string {
	return fmt.Sprintf("%v-%v", s.Begin, s.End)
}
