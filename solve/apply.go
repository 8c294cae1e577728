package solve

import "oak-compiler/typedtree"

// Apply walks expr, replacing every type_var occurrence with its
// resolved monotype, recursively, on expr and every descendant. The
// walk is a pure tree rewrite (nodes are mutated in place via SetType,
// never reconstructed) and is idempotent: applying it twice changes
// nothing the second time, since Resolve always reaches a fixed point.
func Apply(s *Substitution, expr typedtree.Expression) {
	if expr == nil {
		return
	}

	switch n := expr.(type) {
	case *typedtree.Int:
		n.SetType(s.Resolve(n.Type()))
	case *typedtree.Float:
		n.SetType(s.Resolve(n.Type()))
	case *typedtree.Bool, *typedtree.String, *typedtree.Undefined:
		// ground/fixed types already; Undefined still carries a fresh
		// variable that may still need resolving.
		if u, ok := expr.(*typedtree.Undefined); ok {
			u.SetType(s.Resolve(u.Type()))
		}
	case *typedtree.Symbol:
		n.SetType(s.Resolve(n.Type()))
	case *typedtree.Define:
		Apply(s, n.Value)
	case *typedtree.Drop:
		Apply(s, n.Value)
	case *typedtree.PlusEqual:
		Apply(s, n.Value)
	case *typedtree.TimesEqual:
		Apply(s, n.Value)
	case *typedtree.Function:
		for i := range n.Params {
			n.Params[i].Type = s.Resolve(n.Params[i].Type)
		}
		n.SetType(s.Resolve(n.Type()))
		Apply(s, n.Body)
	case *typedtree.BinaryOp:
		n.SetType(s.Resolve(n.Type()))
		Apply(s, n.Left)
		Apply(s, n.Right)
	case *typedtree.Group:
		n.SetType(s.Resolve(n.Type()))
		for _, x := range n.Expressions {
			Apply(s, x)
		}
	case *typedtree.Block:
		n.SetType(s.Resolve(n.Type()))
		for _, x := range n.Expressions {
			Apply(s, x)
		}
	case *typedtree.Branch:
		n.SetType(s.Resolve(n.Type()))
		for _, a := range n.Arms {
			Apply(s, a.Condition)
			Apply(s, a.Body)
		}
		Apply(s, n.Else)
	case *typedtree.Call:
		n.SetType(s.Resolve(n.Type()))
		Apply(s, n.Func)
		for _, a := range n.Args {
			Apply(s, a)
		}
	case *typedtree.Intrinsic:
		n.SetType(s.Resolve(n.Type()))
		for _, a := range n.Args {
			Apply(s, a)
		}
	case *typedtree.ForeignImport:
		n.SetType(s.Resolve(n.Type()))
	case *typedtree.ForeignExport:
		Apply(s, n.Value)
	case *typedtree.Convert:
		n.SetType(s.Resolve(n.Type()))
		Apply(s, n.Value)
	}
}
