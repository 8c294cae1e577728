package solve

import (
	"github.com/davecgh/go-spew/spew"

	"oak-compiler/constraints"
)

// DumpConstraints renders a constraint store's accumulated equations for
// diagnosing a failed solve; available to embedders investigating a
// rejected run.
func DumpConstraints(cs *constraints.Store) string {
	return spew.Sdump(cs.Equations())
}

// DumpSubstitution renders a solved substitution's bindings.
func DumpSubstitution(s *Substitution) string {
	return spew.Sdump(s.bindings)
}
