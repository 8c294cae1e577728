// Package scope implements the name-to-binding environment the
// inference engine resolves symbols against: a stack of frames,
// innermost shadowing outermost.
package scope

import (
	"oak-compiler/ast"
	"oak-compiler/types"

	"github.com/benbjohnson/immutable"
)

// Binding is what a name resolves to: its type, whether it lives in the
// module's global scope, and whether it may be reassigned.
type Binding struct {
	Type    types.MonoType
	Global  bool
	Mutable bool
}

type identifierHasher struct{}

func (identifierHasher) Hash(key ast.Identifier) uint32 { return uint32(key) }

func (identifierHasher) Equal(a, b ast.Identifier) bool { return a == b }

// Scope is a stack of binding frames. Each frame is a persistent
// immutable.Map that Insert replaces with an updated version; Push
// appends a new, empty frame and Pop simply drops the top frame
// reference.
type Scope struct {
	frames []*immutable.Map[ast.Identifier, Binding]
}

// New returns a Scope with its single global frame already pushed. The
// distilled model calls this "the top (global) scope, initialised before
// any top-level inference runs."
func New() *Scope {
	s := &Scope{}
	s.Push()
	return s
}

// Push opens a new, initially empty frame on top of the stack.
func (s *Scope) Push() {
	s.frames = append(s.frames, immutable.NewMap[ast.Identifier, Binding](identifierHasher{}))
}

// Pop discards the innermost frame, restoring whatever was shadowed.
// Popping the last (global) frame is a programmer error.
func (s *Scope) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Insert binds name to b in the innermost frame.
func (s *Scope) Insert(name ast.Identifier, b Binding) {
	top := len(s.frames) - 1
	s.frames[top] = s.frames[top].Set(name, b)
}

// InsertGlobal binds name to b in the outermost (global) frame,
// regardless of how many local frames are currently pushed. The
// inference engine uses this for top-level pre-binding, since a
// forward-referenced top-level name may be inferred lazily from deep
// inside another definition's local scopes.
func (s *Scope) InsertGlobal(name ast.Identifier, b Binding) {
	s.frames[0] = s.frames[0].Set(name, b)
}

// Lookup searches innermost to outermost, returning the first match.
func (s *Scope) Lookup(name ast.Identifier) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i].Get(name); ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Depth reports how many frames are currently pushed, including the
// global frame. Tests use this to check Push/Pop balance.
func (s *Scope) Depth() int {
	return len(s.frames)
}
