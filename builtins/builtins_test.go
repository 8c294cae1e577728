package builtins

import (
	"testing"

	"oak-compiler/ast"
	"oak-compiler/internal/interner"
	"oak-compiler/types"
)

func TestKeywordsInternToDistinctHandles(t *testing.T) {
	in := interner.New()
	bi := New(in)

	cases := []struct {
		name   string
		handle interner.Handle
	}{
		{"fn", interner.Handle(bi.Fn)},
		{"if", interner.Handle(bi.If)},
		{"else", interner.Handle(bi.Else)},
		{"true", interner.Handle(bi.True)},
		{"false", interner.Handle(bi.False)},
		{"or", interner.Handle(bi.Or)},
	}
	seen := map[interner.Handle]bool{}
	for _, c := range cases {
		if got := in.Lookup(c.handle); got != c.name {
			t.Errorf("expected handle for %q to look up to itself, got %q", c.name, got)
		}
		if seen[c.handle] {
			t.Errorf("keyword %q collided with another keyword's handle", c.name)
		}
		seen[c.handle] = true
	}
}

func TestGroundTypesCoverAllSevenNames(t *testing.T) {
	in := interner.New()
	bi := New(in)

	want := []string{"void", "bool", "i32", "i64", "f32", "f64", "string"}
	if len(bi.GroundTypes) != len(want) {
		t.Fatalf("expected %d ground types, got %d", len(want), len(bi.GroundTypes))
	}
	for _, name := range want {
		h := ast.Identifier(in.Store(name))
		if _, ok := bi.GroundTypes[h]; !ok {
			t.Errorf("expected ground type %s to be present", name)
		}
	}
}

func TestIntrinsicArithmeticSignaturesPerWidth(t *testing.T) {
	in := interner.New()
	bi := New(in)

	for _, c := range []struct {
		name string
		ty   types.MonoType
	}{
		{"i32_add", types.I32},
		{"i64_sub", types.I64},
		{"f32_mul", types.F32},
		{"f64_div", types.F64},
	} {
		h := ast.Identifier(in.Store(c.name))
		sig, ok := bi.Intrinsics[h]
		if !ok {
			t.Fatalf("expected intrinsic %s to be registered", c.name)
		}
		want := &types.Function{Params: []types.MonoType{c.ty, c.ty}, Return: c.ty}
		if !sig.Type.EqualsTo(want) {
			t.Errorf("%s: expected signature %v, got %v", c.name, want, sig.Type)
		}
	}
}

func TestIntrinsicIntegerDivisionIsSigned(t *testing.T) {
	in := interner.New()
	bi := New(in)

	if _, ok := bi.Intrinsics[ast.Identifier(in.Store("i32_div_s"))]; !ok {
		t.Fatalf("expected i32_div_s to be registered as the signed division intrinsic")
	}
	if _, ok := bi.Intrinsics[ast.Identifier(in.Store("i32_div"))]; ok {
		t.Fatalf("did not expect an unsigned i32_div intrinsic to be registered")
	}
}

func TestIntrinsicConversionsAreBidirectional(t *testing.T) {
	in := interner.New()
	bi := New(in)

	for _, name := range []string{"i32_to_f64", "f64_to_i32", "i32_to_i64", "i64_to_i32", "f32_to_f64", "f64_to_f32"} {
		if _, ok := bi.Intrinsics[ast.Identifier(in.Store(name))]; !ok {
			t.Errorf("expected conversion intrinsic %s to be registered", name)
		}
	}
}
