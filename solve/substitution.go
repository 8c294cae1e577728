// Package solve implements the unifier, the post-solve numeric
// defaulting pass, and Apply: the pure rewrite that replaces every
// resolved type variable in a typed tree with its concrete monotype.
package solve

import "oak-compiler/types"

// Substitution is an idempotent mapping from TypeVars to MonoTypes.
// Monotonic: once a variable is bound to a non-variable type it stays
// bound for the lifetime of the Substitution.
type Substitution struct {
	bindings map[types.TypeVar]types.MonoType
}

func newSubstitution() *Substitution {
	return &Substitution{bindings: map[types.TypeVar]types.MonoType{}}
}

func (s *Substitution) bind(v types.TypeVar, t types.MonoType) {
	s.bindings[v] = t
}

func (s *Substitution) lookup(v types.TypeVar) (types.MonoType, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// resolve follows a chain of type_var entries through the substitution
// until it reaches a non-variable type or an unbound variable.
func (s *Substitution) resolve(t types.MonoType) types.MonoType {
	for {
		v, ok := types.IsTypeVar(t)
		if !ok {
			return t
		}
		bound, ok := s.lookup(v.Index)
		if !ok {
			return t
		}
		t = bound
	}
}

// Get exposes the binding recorded for a variable, for tests; the result
// is not followed through further variables (see Resolve for that). ok
// is false when the variable was never bound.
func (s *Substitution) Get(v types.TypeVar) (types.MonoType, bool) {
	return s.lookup(v)
}

// Resolve deep-resolves t: follow the top-level type_var chain, then
// recursively resolve any nested variables inside a function shape,
// until a fixed point is reached. Applying Resolve twice to the same
// type yields the same result.
func (s *Substitution) Resolve(t types.MonoType) types.MonoType {
	t = s.resolve(t)
	if f, ok := t.(*types.Function); ok {
		params := make([]types.MonoType, len(f.Params))
		changed := false
		for i, p := range f.Params {
			params[i] = s.Resolve(p)
			if !changed && !params[i].EqualsTo(p) {
				changed = true
			}
		}
		ret := s.Resolve(f.Return)
		if changed || !ret.EqualsTo(f.Return) {
			return &types.Function{Params: params, Return: ret}
		}
		return f
	}
	return t
}

