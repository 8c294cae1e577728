package infer

import (
	"errors"
	"testing"

	"oak-compiler/ast"
	"oak-compiler/builtins"
	"oak-compiler/compileerr"
	"oak-compiler/internal/interner"
	"oak-compiler/solve"
	"oak-compiler/typedtree"
	"oak-compiler/types"
	"oak-compiler/untyped"
)

func newEngine(in *interner.Interner, untypedMap map[ast.Identifier]untyped.Expression) (*Engine, *compileerr.Collector) {
	bi := builtins.New(in)
	errs := compileerr.NewCollector()
	return NewEngine(bi, untypedMap, errs), errs
}

func TestInferMemoizesTopLevel(t *testing.T) {
	in := interner.New()
	name := ast.Identifier(in.Store("one"))
	u := map[ast.Identifier]untyped.Expression{
		name: &untyped.Int{Handle: ast.Identifier(in.Store("1"))},
	}
	e, errs := newEngine(in, u)

	e.Infer(name)
	first := e.Typed[name]
	e.Infer(name)
	if e.Typed[name] != first {
		t.Fatalf("expected the second Infer call to be a no-op returning the same node")
	}
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Errors())
	}
}

func TestInferResolvesForwardReferenceLazily(t *testing.T) {
	in := interner.New()
	laterName := ast.Identifier(in.Store("later"))
	earlierName := ast.Identifier(in.Store("earlier"))

	u := map[ast.Identifier]untyped.Expression{
		earlierName: &untyped.Function{
			DeclaredReturn: ast.Identifier(in.Store("i32")),
			Body:           &untyped.Symbol{Name: laterName},
		},
		laterName: &untyped.Int{Handle: ast.Identifier(in.Store("9"))},
	}
	e, errs := newEngine(in, u)

	e.Infer(earlierName)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Errors())
	}
	if _, ok := e.Typed[laterName]; !ok {
		t.Fatalf("expected the forward reference to trigger lazy inference of %q", "later")
	}
}

func TestInferReportsUnknownSymbol(t *testing.T) {
	in := interner.New()
	name := ast.Identifier(in.Store("start"))
	missing := ast.Identifier(in.Store("missing"))
	u := map[ast.Identifier]untyped.Expression{
		name: &untyped.Function{
			DeclaredReturn: ast.Identifier(in.Store("i32")),
			Body:           &untyped.Symbol{Name: missing},
		},
	}
	e, errs := newEngine(in, u)
	e.Infer(name)

	if !errs.HasErrors() {
		t.Fatalf("expected an UnknownSymbol error")
	}
	var unknown *compileerr.UnknownSymbol
	found := false
	for _, err := range errs.Errors() {
		if errors.As(err, &unknown) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected UnknownSymbol among %v", errs.Errors())
	}
	if _, ok := e.Typed[name]; ok {
		t.Fatalf("a top level that failed inference should not have a typed entry")
	}
}

func TestInferDetectsRecursiveNonFunctionValue(t *testing.T) {
	in := interner.New()
	name := ast.Identifier(in.Store("cyclic"))
	u := map[ast.Identifier]untyped.Expression{
		name: &untyped.Symbol{Name: name},
	}
	e, errs := newEngine(in, u)
	e.Infer(name)

	if len(errs.Errors()) != 1 {
		t.Fatalf("expected exactly one diagnostic for one structural failure, got %v", errs.Errors())
	}
	var recursive *compileerr.RecursiveValue
	if !errors.As(errs.Errors()[0], &recursive) {
		t.Fatalf("expected RecursiveValue, got %v", errs.Errors()[0])
	}
	if _, ok := e.Typed[name]; ok {
		t.Fatalf("a recursive top level should not have a typed entry")
	}
}

func TestInferDetectsMutualRecursionWithExactlyOneDiagnostic(t *testing.T) {
	in := interner.New()
	aName := ast.Identifier(in.Store("a"))
	bName := ast.Identifier(in.Store("b"))
	u := map[ast.Identifier]untyped.Expression{
		aName: &untyped.Symbol{Name: bName},
		bName: &untyped.Symbol{Name: aName},
	}
	e, errs := newEngine(in, u)
	e.Infer(aName)

	if len(errs.Errors()) != 1 {
		t.Fatalf("expected exactly one diagnostic for one structural failure, got %v", errs.Errors())
	}
	var recursive *compileerr.RecursiveValue
	if !errors.As(errs.Errors()[0], &recursive) {
		t.Fatalf("expected RecursiveValue, got %v", errs.Errors()[0])
	}
	if _, ok := e.Typed[aName]; ok {
		t.Fatalf("a top level on an unresolved cycle should not have a typed entry")
	}
	if _, ok := e.Typed[bName]; ok {
		t.Fatalf("a top level on an unresolved cycle should not have a typed entry")
	}
}

func TestSelfRecursiveFunctionResolvesThroughPreBinding(t *testing.T) {
	in := interner.New()
	name := ast.Identifier(in.Store("loop"))
	u := map[ast.Identifier]untyped.Expression{
		name: &untyped.Function{
			DeclaredReturn: ast.Identifier(in.Store("i32")),
			Body: &untyped.Call{
				Func: &untyped.Symbol{Name: name},
				Args: nil,
			},
		},
	}
	e, errs := newEngine(in, u)
	e.Infer(name)

	if errs.HasErrors() {
		t.Fatalf("a self-recursive function should resolve through its pre-bound global variable, got %v", errs.Errors())
	}
	if _, ok := e.Typed[name]; !ok {
		t.Fatalf("expected the recursive function to be fully inferred")
	}
}

func TestPlusEqualOnImmutableFails(t *testing.T) {
	in := interner.New()
	name := ast.Identifier(in.Store("start"))
	xName := ast.Identifier(in.Store("x"))
	u := map[ast.Identifier]untyped.Expression{
		name: &untyped.Function{
			DeclaredReturn: ast.Identifier(in.Store("i32")),
			Body: &untyped.Block{
				Expressions: []untyped.Expression{
					&untyped.Define{Name: xName, Value: &untyped.Int{Handle: ast.Identifier(in.Store("0"))}, Mutable: false},
					&untyped.PlusEqual{Name: xName, Value: &untyped.Int{Handle: ast.Identifier(in.Store("1"))}},
				},
			},
		},
	}
	e, errs := newEngine(in, u)
	e.Infer(name)

	var assign *compileerr.AssignToImmutable
	found := false
	for _, err := range errs.Errors() {
		if errors.As(err, &assign) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected AssignToImmutable among %v", errs.Errors())
	}
}

func TestIntrinsicCallConstrainsArgumentAndResultTypes(t *testing.T) {
	in := interner.New()
	name := ast.Identifier(in.Store("start"))
	u := map[ast.Identifier]untyped.Expression{
		name: &untyped.Function{
			DeclaredReturn: ast.Identifier(in.Store("i32")),
			Body: &untyped.Intrinsic{
				Name: ast.Identifier(in.Store("i32_add")),
				Args: []untyped.Expression{
					&untyped.Int{Handle: ast.Identifier(in.Store("1"))},
					&untyped.Int{Handle: ast.Identifier(in.Store("2"))},
				},
			},
		},
	}
	e, errs := newEngine(in, u)
	e.Infer(name)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Errors())
	}

	subst, solveErrs := solve.Solve(e.Constraints)
	if len(solveErrs) != 0 {
		t.Fatalf("unexpected solve errors: %v", solveErrs)
	}
	fn := e.Typed[name].(*typedtree.Function)
	solve.Apply(subst, fn)

	intr := fn.Body.(*typedtree.Intrinsic)
	if !intr.Type().EqualsTo(types.I32) {
		t.Fatalf("expected the intrinsic call to resolve to i32, got %v", intr.Type())
	}
	for _, a := range intr.Args {
		if !a.Type().EqualsTo(types.I32) {
			t.Errorf("expected argument to resolve to i32, got %v", a.Type())
		}
	}
}
