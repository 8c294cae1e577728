// Package builtins builds the fixed lookup table the tokenizer and
// inference engine are both handed at init: keyword handles, intrinsic
// signatures, and the ground type names.
package builtins

import (
	"oak-compiler/ast"
	"oak-compiler/internal/interner"
	"oak-compiler/types"
)

// Keywords are the only identifier-shaped lexemes the tokenizer
// classifies specially; every other symbol scan yields a generic
// `symbol` token.
const (
	KwFn    = "fn"
	KwIf    = "if"
	KwElse  = "else"
	KwTrue  = "true"
	KwFalse = "false"
	KwOr    = "or"
)

// Intrinsic describes one primitive operation's call signature, keyed by
// its handle so the inference engine can resolve an `intrinsic` node
// without a second string lookup.
type Intrinsic struct {
	Name string
	Type *types.Function
}

// Table is the Builtins table described in the data model: keyword
// handles for the tokenizer, intrinsic signatures and ground type name
// handles for the inference engine.
type Table struct {
	Fn, If, Else, True, False, Or ast.Identifier

	GroundTypes map[ast.Identifier]types.MonoType
	Intrinsics  map[ast.Identifier]*Intrinsic
}

// New interns every builtin name once and assembles the numeric
// intrinsic vocabulary a WebAssembly-targeting backend needs: one entry
// per arithmetic operation per width, plus the narrowing/widening
// conversions `convert` expressions drive.
func New(in *interner.Interner) *Table {
	t := &Table{
		GroundTypes: map[ast.Identifier]types.MonoType{},
		Intrinsics:  map[ast.Identifier]*Intrinsic{},
	}

	t.Fn = ast.Identifier(in.Store(KwFn))
	t.If = ast.Identifier(in.Store(KwIf))
	t.Else = ast.Identifier(in.Store(KwElse))
	t.True = ast.Identifier(in.Store(KwTrue))
	t.False = ast.Identifier(in.Store(KwFalse))
	t.Or = ast.Identifier(in.Store(KwOr))

	for name, gt := range map[string]types.MonoType{
		"void": types.Void, "bool": types.Bool,
		"i32": types.I32, "i64": types.I64,
		"f32": types.F32, "f64": types.F64,
		"string": types.String,
	} {
		t.GroundTypes[ast.Identifier(in.Store(name))] = gt
	}

	binary := func(ty types.MonoType) *types.Function {
		return &types.Function{Params: []types.MonoType{ty, ty}, Return: ty}
	}
	convert := func(from, to types.MonoType) *types.Function {
		return &types.Function{Params: []types.MonoType{from}, Return: to}
	}

	register := func(name string, sig *types.Function) {
		t.Intrinsics[ast.Identifier(in.Store(name))] = &Intrinsic{Name: name, Type: sig}
	}

	for _, width := range []struct {
		suffix string
		ty     types.MonoType
		divOp  string
	}{
		{"i32", types.I32, "div_s"},
		{"i64", types.I64, "div_s"},
		{"f32", types.F32, "div"},
		{"f64", types.F64, "div"},
	} {
		register(width.suffix+"_add", binary(width.ty))
		register(width.suffix+"_sub", binary(width.ty))
		register(width.suffix+"_mul", binary(width.ty))
		register(width.suffix+"_"+width.divOp, binary(width.ty))
	}

	for _, pair := range [][2]types.MonoType{
		{types.I32, types.F64}, {types.F64, types.I32},
		{types.I32, types.I64}, {types.I64, types.I32},
		{types.I32, types.F32}, {types.F32, types.I32},
		{types.F32, types.F64}, {types.F64, types.F32},
	} {
		register(nameOf(pair[0])+"_to_"+nameOf(pair[1]), convert(pair[0], pair[1]))
	}

	return t
}

func nameOf(t types.MonoType) string {
	if g, ok := t.(*types.Ground); ok {
		return g.Name
	}
	return t.String()
}
