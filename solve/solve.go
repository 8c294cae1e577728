package solve

import (
	"oak-compiler/constraints"
	"oak-compiler/types"
)

// Solve processes cs's equation sequence in insertion order, building a
// substitution. Unlike inference, the solver never aborts on a local
// failure: it accumulates every error it encounters and keeps going,
// proceeding past each with whatever bindings already exist. After every
// equation has been processed, the post-solve numeric defaulting pass
// runs: any type variable that is still free after all constraints, and
// that was recorded as originating from an int or float literal,
// defaults to i32 or f64 respectively, in literal-site order.
func Solve(cs *constraints.Store) (*Substitution, []error) {
	s := newSubstitution()
	var errs []error

	for _, eq := range cs.Equations() {
		if err := unify(eq.Left, eq.Right, eq.Span, s); err != nil {
			errs = append(errs, err)
		}
	}

	for _, origin := range cs.NumericOrigins() {
		resolved := s.resolve(origin.Var)
		free, stillFree := types.IsTypeVar(resolved)
		if !stillFree {
			continue
		}
		if origin.Float {
			s.bind(free.Index, types.F64)
		} else {
			s.bind(free.Index, types.I32)
		}
	}

	return s, errs
}
