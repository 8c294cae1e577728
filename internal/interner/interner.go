// Package interner maps source strings to small, process-lifetime-stable
// integer handles. Equality of handles implies equality of the strings
// they came from.
package interner

import "golang.org/x/text/unicode/norm"

// Handle uniquely identifies a string within one Interner.
type Handle uint32

// Interner owns the bidirectional mapping between strings and handles.
// Not safe for concurrent use; a compilation job owns exactly one.
type Interner struct {
	byString map[string]Handle
	byHandle []string
}

// zero handle is permanently reserved and never minted by Store, so
// callers can use the Handle/Identifier zero value as an "absent"
// sentinel (an omitted type annotation, an unset name) without it
// colliding with a real interned string.
func New() *Interner {
	return &Interner{
		byString: map[string]Handle{},
		byHandle: []string{""},
	}
}

// Store returns the handle for str, minting a new one if str has not
// been seen before. Idempotent: storing the same string twice yields the
// same handle. str is NFC-normalized first, so visually identical
// identifiers and string contents intern to the same handle regardless of
// the combining-mark form the source text used — callers that need
// position tracking against the raw source (the tokenizer) must extract
// the lexeme from unnormalized text and pass it here unchanged; only the
// interned copy is normalized, not the caller's view of the source.
func (in *Interner) Store(str string) Handle {
	str = norm.NFC.String(str)
	if h, ok := in.byString[str]; ok {
		return h
	}
	h := Handle(len(in.byHandle))
	in.byHandle = append(in.byHandle, str)
	in.byString[str] = h
	return h
}

// Lookup returns the string that was stored under h. Panics on an
// out-of-range handle: a handle not returned by Store on this interner
// is a programmer error, not a recoverable condition.
func (in *Interner) Lookup(h Handle) string {
	return in.byHandle[h]
}
