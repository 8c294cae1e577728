// Package module assembles a compilation unit from parser output and
// drives it through inference and solving: it is the "module driver"
// component, plus the Module data shape the rest of the core consumes.
package module

import (
	"oak-compiler/ast"
	"oak-compiler/builtins"
	"oak-compiler/compileerr"
	"oak-compiler/infer"
	"oak-compiler/internal/interner"
	"oak-compiler/solve"
	"oak-compiler/typedtree"
	"oak-compiler/types"
	"oak-compiler/untyped"
)

// startName is the implicit export used when no exports are declared.
const startName = "start"

// Module is assembled once from the (out-of-scope) parser's output: an
// untyped expression map keyed by top-level name, the dependency order
// among those names, and the declared foreign exports. The scope is
// populated lazily as definitions are inferred; after Run, every
// MonoType inside Typed contains no type_var that also appears as a key
// in the final substitution.
type Module struct {
	// Order is a topological sort of reference dependencies among
	// top-level names; it is informational here — actual dependency
	// resolution happens through the inference engine's memoization and
	// on-demand lazy inference of referenced globals, not by walking
	// Order directly.
	Order          []ast.Identifier
	Untyped        map[ast.Identifier]untyped.Expression
	ForeignExports []ast.Identifier

	engine *infer.Engine
	errors *compileerr.Collector
}

// New assembles a Module from parser output.
func New(bi *builtins.Table, order []ast.Identifier, untypedMap map[ast.Identifier]untyped.Expression, foreignExports []ast.Identifier) *Module {
	errs := compileerr.NewCollector()
	return &Module{
		Order:          order,
		Untyped:        untypedMap,
		ForeignExports: foreignExports,
		engine:         infer.NewEngine(bi, untypedMap, errs),
		errors:         errs,
	}
}

// Typed exposes the module's typed output map (populated incrementally
// by Run, and fully resolved once Run returns).
func (m *Module) Typed() map[ast.Identifier]typedtree.Expression {
	return m.engine.Typed
}

// Errors exposes the accumulated compile-errors collector.
func (m *Module) Errors() *compileerr.Collector {
	return m.errors
}

// Run calls infer(module, name) for each declared export in order (or
// the implicit `start` export when none are declared), then invokes the
// solver once, then applies the resulting substitution to every typed
// node in the module. Inference's memoization plus fresh pre-binding
// handles forward references among top-level definitions.
func (m *Module) Run(in *interner.Interner) {
	exports := m.ForeignExports
	if len(exports) == 0 {
		exports = []ast.Identifier{ast.Identifier(in.Store(startName))}
	}

	for _, name := range exports {
		m.engine.Infer(name)
	}

	subst, solveErrs := solve.Solve(m.engine.Constraints)
	for _, err := range solveErrs {
		m.errors.Add(err)
	}

	for _, typed := range m.engine.Typed {
		solve.Apply(subst, typed)
	}

	m.reportUnusedForeignImports()
}

// reportUnusedForeignImports is an additive diagnostic: a foreign_import
// whose type variable never took part in a use-site constraint is still
// a bare type_var after Apply (numeric defaulting never touches it,
// since it was never recorded as a numeric literal origin). That is
// added to the same collector as every other error, with no separate
// severity.
func (m *Module) reportUnusedForeignImports() {
	for _, typed := range m.engine.Typed {
		walkForeignImports(typed, func(fi *typedtree.ForeignImport) {
			if _, stillFree := types.IsTypeVar(fi.Type()); stillFree {
				m.errors.Add(&compileerr.UnusedForeignImport{Module: fi.Module, Name: fi.Name, Span: fi.Span()})
			}
		})
	}
}

func walkForeignImports(expr typedtree.Expression, visit func(*typedtree.ForeignImport)) {
	switch n := expr.(type) {
	case *typedtree.ForeignImport:
		visit(n)
	case *typedtree.Define:
		walkForeignImports(n.Value, visit)
	case *typedtree.Drop:
		walkForeignImports(n.Value, visit)
	case *typedtree.PlusEqual:
		walkForeignImports(n.Value, visit)
	case *typedtree.TimesEqual:
		walkForeignImports(n.Value, visit)
	case *typedtree.Function:
		walkForeignImports(n.Body, visit)
	case *typedtree.BinaryOp:
		walkForeignImports(n.Left, visit)
		walkForeignImports(n.Right, visit)
	case *typedtree.Group:
		for _, x := range n.Expressions {
			walkForeignImports(x, visit)
		}
	case *typedtree.Block:
		for _, x := range n.Expressions {
			walkForeignImports(x, visit)
		}
	case *typedtree.Branch:
		for _, a := range n.Arms {
			walkForeignImports(a.Condition, visit)
			walkForeignImports(a.Body, visit)
		}
		walkForeignImports(n.Else, visit)
	case *typedtree.Call:
		walkForeignImports(n.Func, visit)
		for _, a := range n.Args {
			walkForeignImports(a, visit)
		}
	case *typedtree.Intrinsic:
		for _, a := range n.Args {
			walkForeignImports(a, visit)
		}
	case *typedtree.ForeignExport:
		walkForeignImports(n.Value, visit)
	case *typedtree.Convert:
		walkForeignImports(n.Value, visit)
	}
}
