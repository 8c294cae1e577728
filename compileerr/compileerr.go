// Package compileerr implements the structured compile-error kinds the
// inference engine and solver report, and the accumulating collector
// both are handed by the embedder. No formatting is prescribed beyond
// each kind's Error() string; rendering is the embedder's job.
package compileerr

import (
	"fmt"

	"oak-compiler/ast"
	"oak-compiler/types"

	"github.com/hashicorp/go-multierror"
)

// UnknownSymbol is raised when a scope lookup fails.
type UnknownSymbol struct {
	Name ast.Identifier
	Span ast.Span
}

func (e *UnknownSymbol) Error() string {
	return fmt.Sprintf("%v: unknown symbol %d", e.Span, e.Name)
}

// AssignToImmutable is raised when plus_equal/times_equal resolves to a
// binding that is not mutable.
type AssignToImmutable struct {
	Name ast.Identifier
	Span ast.Span
}

func (e *AssignToImmutable) Error() string {
	return fmt.Sprintf("%v: cannot assign to immutable %d", e.Span, e.Name)
}

// TypeMismatch is raised when unification fails on ground disagreement.
type TypeMismatch struct {
	Expected, Found types.MonoType
	Span            ast.Span
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("%v: expected %v, found %v", e.Span, e.Expected, e.Found)
}

// ArityMismatch is raised when function-shape unification disagrees on
// parameter count.
type ArityMismatch struct {
	Expected, Found int
	Span            ast.Span
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("%v: expected %d arguments, found %d", e.Span, e.Expected, e.Found)
}

// InfiniteType is raised by the occurs check.
type InfiniteType struct {
	Var  types.TypeVar
	Type types.MonoType
	Span ast.Span
}

func (e *InfiniteType) Error() string {
	return fmt.Sprintf("%v: infinite type: t%d occurs in %v", e.Span, e.Var, e.Type)
}

// RecursiveValue is raised for a non-function cyclic top-level
// definition: the memoized dependency cycle resolves through pointer
// identity, not through a value.
type RecursiveValue struct {
	Name ast.Identifier
}

func (e *RecursiveValue) Error() string {
	return fmt.Sprintf("recursive value definition: %d", e.Name)
}

// UnsupportedReturnType is surfaced by the embedder when a core-emitted
// type has no WebAssembly representation; the core never raises it
// itself, but the type is defined here so embedders share the same
// structured shape as every other kind.
type UnsupportedReturnType struct {
	Type types.MonoType
}

func (e *UnsupportedReturnType) Error() string {
	return fmt.Sprintf("unsupported return type: %v", e.Type)
}

// UnusedForeignImport is the optional diagnostic the module driver may
// raise when a foreign_import's type variable never took part in a
// use-site constraint and so defaults with no concrete binding.
type UnusedForeignImport struct {
	Module, Name ast.Identifier
	Span         ast.Span
}

func (e *UnusedForeignImport) Error() string {
	return fmt.Sprintf("%v: unused foreign import %d.%d", e.Span, e.Module, e.Name)
}

// Collector accumulates every structured failure across a compilation
// job rather than aborting on the first one, backing the policy that
// inference aborts only the current top-level and the driver continues,
// and that the solver proceeds past each failure with the existing
// bindings.
type Collector struct {
	errs *multierror.Error
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(err error) {
	c.errs = multierror.Append(c.errs, err)
}

// HasErrors reports whether anything has been collected.
func (c *Collector) HasErrors() bool {
	return c.errs != nil && c.errs.Len() > 0
}

// Errors returns the accumulated errors in the order they were added.
func (c *Collector) Errors() []error {
	if c.errs == nil {
		return nil
	}
	return c.errs.Errors
}

// ErrorOrNil returns the accumulated *multierror.Error, or nil when
// nothing was collected, matching the stdlib error-wrapping convention.
func (c *Collector) ErrorOrNil() error {
	if c.errs == nil {
		return nil
	}
	return c.errs.ErrorOrNil()
}
