package solve

import (
	"oak-compiler/ast"
	"oak-compiler/compileerr"
	"oak-compiler/types"
)

// unify resolves a and b against s, extending s in place: apply s to
// both sides, succeed on ground equality or identical variables, bind an
// unbound variable after the occurs check, recurse structurally through
// function shapes, and fail otherwise.
func unify(a, b types.MonoType, span ast.Span, s *Substitution) error {
	a = s.resolve(a)
	b = s.resolve(b)

	if a.EqualsTo(b) {
		return nil
	}

	if av, ok := types.IsTypeVar(a); ok {
		return bindVar(av, b, span, s)
	}
	if bv, ok := types.IsTypeVar(b); ok {
		return bindVar(bv, a, span, s)
	}

	af, aIsFn := a.(*types.Function)
	bf, bIsFn := b.(*types.Function)
	if aIsFn && bIsFn {
		if len(af.Params) != len(bf.Params) {
			return &compileerr.ArityMismatch{Expected: len(af.Params), Found: len(bf.Params), Span: span}
		}
		for i := range af.Params {
			if err := unify(af.Params[i], bf.Params[i], span, s); err != nil {
				return err
			}
		}
		return unify(af.Return, bf.Return, span, s)
	}

	return &compileerr.TypeMismatch{Expected: a, Found: b, Span: span}
}

func bindVar(v *types.Var, t types.MonoType, span ast.Span, s *Substitution) error {
	if occursCheck(v.Index, t, s) {
		return &compileerr.InfiniteType{Var: v.Index, Type: t, Span: span}
	}
	s.bind(v.Index, t)
	return nil
}

// occursCheck reports whether v appears anywhere inside t once every
// variable inside t has been followed through s.
func occursCheck(v types.TypeVar, t types.MonoType, s *Substitution) bool {
	t = s.resolve(t)
	switch n := t.(type) {
	case *types.Var:
		return n.Index == v
	case *types.Function:
		for _, p := range n.Params {
			if occursCheck(v, p, s) {
				return true
			}
		}
		return occursCheck(v, n.Return, s)
	default:
		return false
	}
}
