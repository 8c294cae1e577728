// Package types implements the monotype algebra the inference engine and
// solver operate over. There is no generalization to polytypes in this
// language: every MonoType is either ground, a type variable, a function
// shape, or the type of a foreign module handle.
package types

import (
	"fmt"

	"oak-compiler/common"
)

// TypeVar is an unsigned integer identity minted monotonically by the
// constraints store.
type TypeVar uint64

// MonoType is the tagged union of every monotype shape.
type MonoType interface {
	fmt.Stringer
	_monoType()
	EqualsTo(o MonoType) bool
}

// Ground is a ground (non-variable, non-function) type.
type Ground struct {
	Name string
}

func (*Ground) _monoType() {}

func (g *Ground) String() string { return g.Name }

func (g *Ground) EqualsTo(o MonoType) bool {
	y, ok := o.(*Ground)
	return ok && g.Name == y.Name
}

var (
	Void   = &Ground{Name: "void"}
	Bool   = &Ground{Name: "bool"}
	I32    = &Ground{Name: "i32"}
	I64    = &Ground{Name: "i64"}
	F32    = &Ground{Name: "f32"}
	F64    = &Ground{Name: "f64"}
	String = &Ground{Name: "string"}
	// Module is the type of a foreign-imported module handle.
	Module = &Ground{Name: "module"}
)

// Var is an unresolved inference variable.
type Var struct {
	Index TypeVar
}

func (*Var) _monoType() {}

func (v *Var) String() string { return fmt.Sprintf("t%d", v.Index) }

func (v *Var) EqualsTo(o MonoType) bool {
	y, ok := o.(*Var)
	return ok && v.Index == y.Index
}

// Function is a first-class function shape. Parameter order is
// significant; a function with zero parameters is permitted; Void is
// only ever valid as Return, never as a Params entry.
type Function struct {
	Params []MonoType
	Return MonoType
}

func (*Function) _monoType() {}

func (f *Function) String() string {
	return fmt.Sprintf("(%s): %s", common.Join(f.Params, ", "), f.Return)
}

func (f *Function) EqualsTo(o MonoType) bool {
	y, ok := o.(*Function)
	if !ok || len(f.Params) != len(y.Params) {
		return false
	}
	for i, p := range f.Params {
		if !p.EqualsTo(y.Params[i]) {
			return false
		}
	}
	return f.Return.EqualsTo(y.Return)
}

// IsTypeVar reports whether t is an unresolved inference variable, and
// returns it if so.
func IsTypeVar(t MonoType) (*Var, bool) {
	v, ok := t.(*Var)
	return v, ok
}
