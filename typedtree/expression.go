// Package typedtree is the output of inference: the same shape the
// (out-of-scope) parser's untyped tree has, except every node carries a
// resolved MonoType and every bound name carries a resolved Global
// marker. Parents exclusively own their children; repeated references
// to a name are resolved by scope lookup, never by a cyclic pointer.
package typedtree

import (
	"fmt"

	"oak-compiler/ast"
	"oak-compiler/token"
	"oak-compiler/types"
)

// Expression is the tagged union of every typed node shape.
type Expression interface {
	fmt.Stringer
	_expression()
	Span() ast.Span
	Type() types.MonoType
}

type base struct {
	span ast.Span
	typ  types.MonoType
}

func (b base) Span() ast.Span     { return b.span }
func (b base) Type() types.MonoType { return b.typ }

// SetType overwrites the node's resolved type in place. The solver's
// Apply pass uses this to rewrite a typed tree's type_var occurrences
// without reconstructing every node.
func (b *base) SetType(t types.MonoType) { b.typ = t }

type Int struct {
	base
	Handle ast.Identifier
}

func NewInt(span ast.Span, typ types.MonoType, handle ast.Identifier) *Int {
	return &Int{base{span, typ}, handle}
}
func (*Int) _expression() {}
func (n *Int) String() string { return fmt.Sprintf("int(%d): %v", n.Handle, n.typ) }

type Float struct {
	base
	Handle ast.Identifier
}

func NewFloat(span ast.Span, typ types.MonoType, handle ast.Identifier) *Float {
	return &Float{base{span, typ}, handle}
}
func (*Float) _expression() {}
func (n *Float) String() string { return fmt.Sprintf("float(%d): %v", n.Handle, n.typ) }

type Bool struct {
	base
	Value bool
}

func NewBool(span ast.Span, value bool) *Bool {
	return &Bool{base{span, types.Bool}, value}
}
func (*Bool) _expression() {}
func (n *Bool) String() string { return fmt.Sprintf("bool(%v)", n.Value) }

type String struct {
	base
	Handle ast.Identifier
}

func NewString(span ast.Span, handle ast.Identifier) *String {
	return &String{base{span, types.String}, handle}
}
func (*String) _expression() {}
func (n *String) String() string { return fmt.Sprintf("string(%d)", n.Handle) }

// Symbol resolves a name through scope. Global reflects whether the
// binding it resolved to lives in the module's global scope.
type Symbol struct {
	base
	Name   ast.Identifier
	Global bool
}

func NewSymbol(span ast.Span, typ types.MonoType, name ast.Identifier, global bool) *Symbol {
	return &Symbol{base{span, typ}, name, global}
}
func (*Symbol) _expression() {}
func (n *Symbol) String() string { return fmt.Sprintf("symbol(%d): %v", n.Name, n.typ) }

// Define introduces a new local binding. Its own type is always Void.
type Define struct {
	base
	Name    ast.Identifier
	Value   Expression
	Mutable bool
}

func NewDefine(span ast.Span, name ast.Identifier, value Expression, mutable bool) *Define {
	return &Define{base{span, types.Void}, name, value, mutable}
}
func (*Define) _expression() {}
func (n *Define) String() string { return fmt.Sprintf("define(%d) = %v", n.Name, n.Value) }

// Drop evaluates Value for effect and discards its result.
type Drop struct {
	base
	Value Expression
}

func NewDrop(span ast.Span, value Expression) *Drop {
	return &Drop{base{span, types.Void}, value}
}
func (*Drop) _expression() {}
func (n *Drop) String() string { return fmt.Sprintf("drop(%v)", n.Value) }

// PlusEqual and TimesEqual both require their Name to resolve to a
// mutable binding; both always have type Void.
type PlusEqual struct {
	base
	Name  ast.Identifier
	Value Expression
}

func NewPlusEqual(span ast.Span, name ast.Identifier, value Expression) *PlusEqual {
	return &PlusEqual{base{span, types.Void}, name, value}
}
func (*PlusEqual) _expression() {}
func (n *PlusEqual) String() string { return fmt.Sprintf("%d += %v", n.Name, n.Value) }

type TimesEqual struct {
	base
	Name  ast.Identifier
	Value Expression
}

func NewTimesEqual(span ast.Span, name ast.Identifier, value Expression) *TimesEqual {
	return &TimesEqual{base{span, types.Void}, name, value}
}
func (*TimesEqual) _expression() {}
func (n *TimesEqual) String() string { return fmt.Sprintf("%d *= %v", n.Name, n.Value) }

// Param is one function parameter: a name bound locally with its
// (possibly still-unresolved) type.
type Param struct {
	Name ast.Identifier
	Type types.MonoType
}

type Function struct {
	base
	Params []Param
	Body   Expression
}

func NewFunction(span ast.Span, typ types.MonoType, params []Param, body Expression) *Function {
	return &Function{base{span, typ}, params, body}
}
func (*Function) _expression() {}
func (n *Function) String() string { return fmt.Sprintf("fn%v: %v", n.Params, n.typ) }

type BinaryOp struct {
	base
	Kind        token.Kind
	Left, Right Expression
}

func NewBinaryOp(span ast.Span, typ types.MonoType, kind token.Kind, left, right Expression) *BinaryOp {
	return &BinaryOp{base{span, typ}, kind, left, right}
}
func (*BinaryOp) _expression() {}
func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%v %v %v): %v", n.Left, n.Kind, n.Right, n.typ)
}

// Group is a sequence of expressions evaluated in order without a scope
// push/pop, unlike Block.
type Group struct {
	base
	Expressions []Expression
}

func NewGroup(span ast.Span, typ types.MonoType, exprs []Expression) *Group {
	return &Group{base{span, typ}, exprs}
}
func (*Group) _expression() {}
func (n *Group) String() string { return fmt.Sprintf("group%v: %v", n.Expressions, n.typ) }

// Block is a scoped sequence of expressions; its type is the last
// expression's type, or Void if empty.
type Block struct {
	base
	Expressions []Expression
}

func NewBlock(span ast.Span, typ types.MonoType, exprs []Expression) *Block {
	return &Block{base{span, typ}, exprs}
}
func (*Block) _expression() {}
func (n *Block) String() string { return fmt.Sprintf("block%v: %v", n.Expressions, n.typ) }

type BranchArm struct {
	Condition, Body Expression
}

type Branch struct {
	base
	Arms []BranchArm
	Else Expression
}

func NewBranch(span ast.Span, typ types.MonoType, arms []BranchArm, els Expression) *Branch {
	return &Branch{base{span, typ}, arms, els}
}
func (*Branch) _expression() {}
func (n *Branch) String() string { return fmt.Sprintf("branch%v else %v: %v", n.Arms, n.Else, n.typ) }

type Call struct {
	base
	Func Expression
	Args []Expression
}

func NewCall(span ast.Span, typ types.MonoType, fn Expression, args []Expression) *Call {
	return &Call{base{span, typ}, fn, args}
}
func (*Call) _expression() {}
func (n *Call) String() string { return fmt.Sprintf("%v(%v): %v", n.Func, n.Args, n.typ) }

// Intrinsic calls a primitive operation resolved directly against the
// builtins table rather than through scope.
type Intrinsic struct {
	base
	Name ast.Identifier
	Args []Expression
}

func NewIntrinsic(span ast.Span, typ types.MonoType, name ast.Identifier, args []Expression) *Intrinsic {
	return &Intrinsic{base{span, typ}, name, args}
}
func (*Intrinsic) _expression() {}
func (n *Intrinsic) String() string { return fmt.Sprintf("intrinsic(%d)%v: %v", n.Name, n.Args, n.typ) }

// ForeignImport's type is a fresh variable the solver must pin through
// use-site constraints; it never resolves through scope.
type ForeignImport struct {
	base
	Module, Name ast.Identifier
}

func NewForeignImport(span ast.Span, typ types.MonoType, module, name ast.Identifier) *ForeignImport {
	return &ForeignImport{base{span, typ}, module, name}
}
func (*ForeignImport) _expression() {}
func (n *ForeignImport) String() string {
	return fmt.Sprintf("foreign_import(%d, %d): %v", n.Module, n.Name, n.typ)
}

type ForeignExport struct {
	base
	Name  ast.Identifier
	Value Expression
}

func NewForeignExport(span ast.Span, name ast.Identifier, value Expression) *ForeignExport {
	return &ForeignExport{base{span, types.Void}, name, value}
}
func (*ForeignExport) _expression() {}
func (n *ForeignExport) String() string { return fmt.Sprintf("foreign_export(%d) = %v", n.Name, n.Value) }

// Convert's type is a fresh variable the solver constrains via
// surrounding context or an intrinsic.
type Convert struct {
	base
	Value Expression
}

func NewConvert(span ast.Span, typ types.MonoType, value Expression) *Convert {
	return &Convert{base{span, typ}, value}
}
func (*Convert) _expression() {}
func (n *Convert) String() string { return fmt.Sprintf("convert(%v): %v", n.Value, n.typ) }

type Undefined struct {
	base
}

func NewUndefined(span ast.Span, typ types.MonoType) *Undefined {
	return &Undefined{base{span, typ}}
}
func (*Undefined) _expression() {}
func (n *Undefined) String() string { return fmt.Sprintf("undefined: %v", n.typ) }
