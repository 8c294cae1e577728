// Package constraints implements the append-only equality-constraint
// store and the fresh type-variable counter. The counter lives here,
// not on the inference engine, so that variable identity stays globally
// unique within one compilation job regardless of how many top-level
// definitions are being inferred.
package constraints

import (
	"oak-compiler/ast"
	"oak-compiler/types"
)

// Equation is one accumulated `equal(left, right)` constraint, carrying
// the span it arose from so the solver can report a useful location on
// failure.
type Equation struct {
	Left, Right types.MonoType
	Span        ast.Span
}

// NumericOrigin remembers that a type variable was minted for an int or
// float literal, in the literal-site order it was minted. The solver's
// post-solve numeric defaulting pass needs this: it cannot tell a bare
// unresolved variable apart from one that started life as a numeric
// literal without this side table.
type NumericOrigin struct {
	Var   *types.Var
	Float bool
}

// Store is the Constraints store: fresh() and equate() plus the ordered
// equation sequence the solver consumes.
type Store struct {
	next      types.TypeVar
	equations []Equation
	numeric   []NumericOrigin
}

func New() *Store {
	return &Store{}
}

// Fresh mints a new, globally unique type variable.
func (s *Store) Fresh() *types.Var {
	v := s.next
	s.next++
	return &types.Var{Index: v}
}

// FreshNumeric mints a fresh variable and records it as originating from
// a literal of the given kind ("int" or "float"), for the numeric
// defaulting pass.
func (s *Store) FreshNumeric(float bool) *types.Var {
	v := s.Fresh()
	s.numeric = append(s.numeric, NumericOrigin{Var: v, Float: float})
	return v
}

// NumericOrigins returns the recorded literal-origin variables in
// literal-site (insertion) order.
func (s *Store) NumericOrigins() []NumericOrigin {
	return s.numeric
}

// Equate appends an equality constraint. Order is preserved for
// deterministic error reporting but never affects correctness.
func (s *Store) Equate(left, right types.MonoType, span ast.Span) {
	s.equations = append(s.equations, Equation{Left: left, Right: right, Span: span})
}

// Equations returns the accumulated sequence in insertion order. The
// solver owns consuming it; the store stays append-only until then.
func (s *Store) Equations() []Equation {
	return s.equations
}
