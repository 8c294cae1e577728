package solve

import (
	"errors"
	"testing"

	"oak-compiler/ast"
	"oak-compiler/compileerr"
	"oak-compiler/constraints"
	"oak-compiler/types"
)

func TestUnifyGroundSuccess(t *testing.T) {
	s := newSubstitution()
	if err := unify(types.I32, types.I32, ast.Span{}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnifyGroundMismatch(t *testing.T) {
	s := newSubstitution()
	err := unify(types.I32, types.String, ast.Span{}, s)
	var mismatch *compileerr.TypeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a TypeMismatch, got %v", err)
	}
}

func TestUnifyBindsVariable(t *testing.T) {
	s := newSubstitution()
	v := &types.Var{Index: 1}
	if err := unify(v, types.I32, ast.Span{}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := s.Get(1)
	if !ok || !got.EqualsTo(types.I32) {
		t.Fatalf("expected v1 bound to i32, got %v", got)
	}
}

func TestOccursCheckFailsOnSelfReferentialFunction(t *testing.T) {
	s := newSubstitution()
	v := &types.Var{Index: 1}
	selfRef := &types.Function{Params: []types.MonoType{v}, Return: types.I32}
	err := unify(v, selfRef, ast.Span{}, s)
	var infinite *compileerr.InfiniteType
	if !errors.As(err, &infinite) {
		t.Fatalf("expected an InfiniteType error, got %v", err)
	}
}

func TestArityMismatch(t *testing.T) {
	s := newSubstitution()
	a := &types.Function{Params: []types.MonoType{types.I32}, Return: types.I32}
	b := &types.Function{Params: []types.MonoType{types.I32, types.I32}, Return: types.I32}
	err := unify(a, b, ast.Span{}, s)
	var arity *compileerr.ArityMismatch
	if !errors.As(err, &arity) {
		t.Fatalf("expected an ArityMismatch, got %v", err)
	}
}

func TestNumericDefaultingFixesUnresolvedLiterals(t *testing.T) {
	cs := constraints.New()
	intVar := cs.FreshNumeric(false)
	floatVar := cs.FreshNumeric(true)

	s, errs := Solve(cs)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got, _ := s.Get(intVar.Index)
	if !got.EqualsTo(types.I32) {
		t.Fatalf("expected unresolved int literal to default to i32, got %v", got)
	}
	got, _ = s.Get(floatVar.Index)
	if !got.EqualsTo(types.F64) {
		t.Fatalf("expected unresolved float literal to default to f64, got %v", got)
	}
}

func TestNumericDefaultingDoesNotOverrideConstrainedLiteral(t *testing.T) {
	cs := constraints.New()
	intVar := cs.FreshNumeric(false)
	cs.Equate(intVar, types.I64, ast.Span{})

	s, errs := Solve(cs)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got, _ := s.Get(intVar.Index)
	if !got.EqualsTo(types.I64) {
		t.Fatalf("expected explicitly constrained literal to keep i64, got %v", got)
	}
}

func TestSolverAccumulatesAllFailures(t *testing.T) {
	cs := constraints.New()
	cs.Equate(types.I32, types.String, ast.Span{})
	cs.Equate(types.Bool, types.F64, ast.Span{})

	_, errs := Solve(cs)
	if len(errs) != 2 {
		t.Fatalf("expected both failures accumulated, got %d: %v", len(errs), errs)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	s := newSubstitution()
	v1 := &types.Var{Index: 1}
	v2 := &types.Var{Index: 2}
	s.bind(1, v2)
	s.bind(2, types.I32)

	fn := &types.Function{Params: []types.MonoType{v1}, Return: v2}
	once := s.Resolve(fn)
	twice := s.Resolve(once)
	if !once.EqualsTo(twice) {
		t.Fatalf("expected Resolve to be idempotent, got %v then %v", once, twice)
	}
	if !once.EqualsTo(&types.Function{Params: []types.MonoType{types.I32}, Return: types.I32}) {
		t.Fatalf("expected fully resolved function type, got %v", once)
	}
}
