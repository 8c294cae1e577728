// Package infer implements the inference engine: it walks the untyped
// tree, produces the typed tree, emits equality constraints, and
// resolves names against scope. It never unifies anything itself — that
// is the solver's job, invoked once after every requested export has
// been inferred.
package infer

import (
	"oak-compiler/ast"
	"oak-compiler/builtins"
	"oak-compiler/compileerr"
	"oak-compiler/constraints"
	"oak-compiler/scope"
	"oak-compiler/token"
	"oak-compiler/typedtree"
	"oak-compiler/types"
	"oak-compiler/untyped"
)

// Engine owns the mutable state one inference run threads through:
// the global/local scope stack, the constraint store, the builtins
// table, the untyped input and typed output maps, and the error
// collector. It is the per-module state threaded through every call to
// infer(name).
type Engine struct {
	Scope       *scope.Scope
	Constraints *constraints.Store
	Builtins    *builtins.Table
	Untyped     map[ast.Identifier]untyped.Expression
	Typed       map[ast.Identifier]typedtree.Expression
	Errors      *compileerr.Collector

	inProgress map[ast.Identifier]struct{}
}

func NewEngine(bi *builtins.Table, untypedMap map[ast.Identifier]untyped.Expression, errs *compileerr.Collector) *Engine {
	return &Engine{
		Scope:       scope.New(),
		Constraints: constraints.New(),
		Builtins:    bi,
		Untyped:     untypedMap,
		Typed:       map[ast.Identifier]typedtree.Expression{},
		Errors:      errs,
		inProgress:  map[ast.Identifier]struct{}{},
	}
}

// localAbort unwinds the current top-level's inference. Caught by
// Infer's recover, matching the policy that a local error aborts only
// the current top-level, not the whole run.
type localAbort struct{ err error }

func (e *Engine) fail(err error) {
	panic(localAbort{err})
}

// abortDependency unwinds the current top-level's inference when it
// depends (directly or through a chain of references) on a name whose
// own inference already failed and already recorded its one structured
// error — a cycle detection, or any other local abort. Every frame
// between the failure and the name that owns it swallows this silently,
// so one structural failure produces exactly one diagnostic no matter
// how many names sit on the reference chain back to it.
type abortDependency struct{}

func (e *Engine) abortDependency() {
	panic(abortDependency{})
}

// Infer is the entry point: infer(module, name). If typed[name] already
// exists this is a no-op (the memoization that supports dependency-order
// inference). A function-valued top level pre-binds its global type
// variable before descending into its body, so self- and mutually-
// recursive function references resolve through scope without ever
// re-entering Infer. A non-function top level has no such firewall:
// resolveGlobal detects a reference back to a name still being resolved
// before it would re-enter Infer, and reports it as a recursive-value
// error there instead of looping forever or re-running this function
// against an in-flight name.
func (e *Engine) Infer(name ast.Identifier) {
	if _, done := e.Typed[name]; done {
		return
	}

	value, ok := e.Untyped[name]
	if !ok {
		e.Errors.Add(&compileerr.UnknownSymbol{Name: name})
		return
	}

	e.inProgress[name] = struct{}{}
	defer delete(e.inProgress, name)

	defer func() {
		if r := recover(); r != nil {
			switch a := r.(type) {
			case localAbort:
				e.Errors.Add(a.err)
			case abortDependency:
				// already recorded by whichever frame owns the failure
			default:
				panic(r)
			}
		}
	}()

	if fn, isFn := value.(*untyped.Function); isFn {
		v := e.Constraints.Fresh()
		e.Scope.InsertGlobal(name, scope.Binding{Type: v, Global: true, Mutable: false})
		typedFn := e.inferFunction(fn)
		e.Constraints.Equate(v, typedFn.Type(), fn.Span())
		e.Typed[name] = typedFn
		return
	}

	typedVal := e.inferExpression(value)
	v := e.Constraints.Fresh()
	e.Constraints.Equate(v, typedVal.Type(), value.Span())
	e.Scope.InsertGlobal(name, scope.Binding{Type: v, Global: true, Mutable: false})
	e.Typed[name] = typedVal
}

// resolveGlobal looks a name up in scope, lazily inferring it first if
// it is a known top-level name that has not started yet. If name is
// already mid-inference further up the call stack, that is a genuine
// reference cycle: it is reported once, here, and every frame between
// here and the one that owns name aborts silently rather than each
// reporting its own (misleading) failure.
func (e *Engine) resolveGlobal(name ast.Identifier, span ast.Span) scope.Binding {
	if b, ok := e.Scope.Lookup(name); ok {
		return b
	}
	if _, known := e.Untyped[name]; known {
		if _, active := e.inProgress[name]; active {
			e.Errors.Add(&compileerr.RecursiveValue{Name: name})
			e.abortDependency()
		}
		e.Infer(name)
		if b, ok := e.Scope.Lookup(name); ok {
			return b
		}
		// name's own inference already failed and recorded its error
		// (directly, or by way of abortDependency further down); don't
		// report a second, misleading failure at this reference site.
		e.abortDependency()
	}
	e.fail(&compileerr.UnknownSymbol{Name: name, Span: span})
	panic("unreachable")
}

func (e *Engine) inferFunction(fn *untyped.Function) *typedtree.Function {
	e.Scope.Push()
	defer e.Scope.Pop()

	params := make([]typedtree.Param, len(fn.Params))
	for i, p := range fn.Params {
		pv := types.MonoType(e.Constraints.Fresh())
		if p.DeclaredType != 0 {
			if gt, ok := e.Builtins.GroundTypes[p.DeclaredType]; ok {
				e.Constraints.Equate(pv, gt, fn.Span())
			}
		}
		e.Scope.Insert(p.Name, scope.Binding{Type: pv, Global: false, Mutable: true})
		params[i] = typedtree.Param{Name: p.Name, Type: pv}
	}

	body := e.inferExpression(fn.Body)

	ret := types.MonoType(e.Constraints.Fresh())
	if fn.DeclaredReturn != 0 {
		if gt, ok := e.Builtins.GroundTypes[fn.DeclaredReturn]; ok {
			e.Constraints.Equate(ret, gt, fn.Span())
		}
	}
	e.Constraints.Equate(ret, body.Type(), fn.Span())

	paramTypes := make([]types.MonoType, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	return typedtree.NewFunction(fn.Span(), &types.Function{Params: paramTypes, Return: ret}, params, body)
}

// inferExpression implements the per-variant typing rules: each untyped
// node shape produces its typed counterpart plus whatever equality
// constraints its rule demands.
func (e *Engine) inferExpression(u untyped.Expression) typedtree.Expression {
	switch n := u.(type) {
	case *untyped.Int:
		return typedtree.NewInt(n.Span(), e.Constraints.FreshNumeric(false), n.Handle)

	case *untyped.Float:
		return typedtree.NewFloat(n.Span(), e.Constraints.FreshNumeric(true), n.Handle)

	case *untyped.Bool:
		return typedtree.NewBool(n.Span(), n.Value)

	case *untyped.String:
		return typedtree.NewString(n.Span(), n.Handle)

	case *untyped.Symbol:
		b := e.resolveGlobal(n.Name, n.Span())
		return typedtree.NewSymbol(n.Span(), b.Type, n.Name, b.Global)

	case *untyped.Define:
		val := e.inferExpression(n.Value)
		e.Scope.Insert(n.Name, scope.Binding{Type: val.Type(), Global: false, Mutable: n.Mutable})
		return typedtree.NewDefine(n.Span(), n.Name, val, n.Mutable)

	case *untyped.Drop:
		return typedtree.NewDrop(n.Span(), e.inferExpression(n.Value))

	case *untyped.PlusEqual:
		b := e.mustMutable(n.Name, n.Span())
		val := e.inferExpression(n.Value)
		e.Constraints.Equate(b.Type, val.Type(), n.Span())
		return typedtree.NewPlusEqual(n.Span(), n.Name, val)

	case *untyped.TimesEqual:
		b := e.mustMutable(n.Name, n.Span())
		val := e.inferExpression(n.Value)
		e.Constraints.Equate(b.Type, val.Type(), n.Span())
		return typedtree.NewTimesEqual(n.Span(), n.Name, val)

	case *untyped.Function:
		return e.inferFunction(n)

	case *untyped.BinaryOp:
		left := e.inferExpression(n.Left)
		right := e.inferExpression(n.Right)
		e.Constraints.Equate(left.Type(), right.Type(), n.Span())
		var result types.MonoType
		switch n.Kind {
		case token.EqualEqual, token.Greater, token.Less:
			result = types.Bool
		default:
			result = left.Type()
		}
		return typedtree.NewBinaryOp(n.Span(), result, n.Kind, left, right)

	case *untyped.Group:
		exprs := make([]typedtree.Expression, len(n.Expressions))
		var last types.MonoType = types.Void
		for i, x := range n.Expressions {
			exprs[i] = e.inferExpression(x)
			last = exprs[i].Type()
		}
		if len(exprs) == 0 {
			last = types.Void
		}
		return typedtree.NewGroup(n.Span(), last, exprs)

	case *untyped.Block:
		e.Scope.Push()
		defer e.Scope.Pop()
		exprs := make([]typedtree.Expression, len(n.Expressions))
		var last types.MonoType = types.Void
		for i, x := range n.Expressions {
			exprs[i] = e.inferExpression(x)
			last = exprs[i].Type()
		}
		if len(exprs) == 0 {
			last = types.Void
		}
		return typedtree.NewBlock(n.Span(), last, exprs)

	case *untyped.Branch:
		result := types.MonoType(e.Constraints.Fresh())
		arms := make([]typedtree.BranchArm, len(n.Arms))
		for i, a := range n.Arms {
			cond := e.inferExpression(a.Condition)
			e.Constraints.Equate(cond.Type(), types.Bool, a.Condition.Span())
			body := e.inferExpression(a.Body)
			e.Constraints.Equate(result, body.Type(), a.Body.Span())
			arms[i] = typedtree.BranchArm{Condition: cond, Body: body}
		}
		els := e.inferExpression(n.Else)
		e.Constraints.Equate(result, els.Type(), n.Else.Span())
		return typedtree.NewBranch(n.Span(), result, arms, els)

	case *untyped.Call:
		fn := e.inferExpression(n.Func)
		args := make([]typedtree.Expression, len(n.Args))
		argTypes := make([]types.MonoType, len(n.Args))
		for i, a := range n.Args {
			args[i] = e.inferExpression(a)
			argTypes[i] = args[i].Type()
		}
		ret := types.MonoType(e.Constraints.Fresh())
		e.Constraints.Equate(fn.Type(), &types.Function{Params: argTypes, Return: ret}, n.Span())
		return typedtree.NewCall(n.Span(), ret, fn, args)

	case *untyped.Intrinsic:
		args := make([]typedtree.Expression, len(n.Args))
		sig, ok := e.Builtins.Intrinsics[n.Name]
		for i, a := range n.Args {
			args[i] = e.inferExpression(a)
			if ok && i < len(sig.Type.Params) {
				e.Constraints.Equate(args[i].Type(), sig.Type.Params[i], a.Span())
			}
		}
		if !ok {
			e.fail(&compileerr.UnknownSymbol{Name: n.Name, Span: n.Span()})
		}
		return typedtree.NewIntrinsic(n.Span(), sig.Type.Return, n.Name, args)

	case *untyped.ForeignImport:
		return typedtree.NewForeignImport(n.Span(), e.Constraints.Fresh(), n.Module, n.Name)

	case *untyped.ForeignExport:
		val := e.inferExpression(n.Value)
		return typedtree.NewForeignExport(n.Span(), n.Name, val)

	case *untyped.Convert:
		val := e.inferExpression(n.Value)
		return typedtree.NewConvert(n.Span(), e.Constraints.Fresh(), val)

	case *untyped.Undefined:
		return typedtree.NewUndefined(n.Span(), e.Constraints.Fresh())

	default:
		e.fail(&compileerr.UnknownSymbol{Name: 0, Span: u.Span()})
		panic("unreachable")
	}
}

func (e *Engine) mustMutable(name ast.Identifier, span ast.Span) scope.Binding {
	b := e.resolveGlobal(name, span)
	if !b.Mutable {
		e.fail(&compileerr.AssignToImmutable{Name: name, Span: span})
	}
	return b
}
