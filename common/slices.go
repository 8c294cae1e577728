// Package common holds small generic helpers shared across the core
// packages, kept minimal since most tree walking here is an explicit
// type switch rather than a generic traversal.
package common

import (
	"fmt"
	"strings"
)

func Map[I, O any](p func(I) O, xs []I) []O {
	result := make([]O, len(xs))
	for i, x := range xs {
		result[i] = p(x)
	}
	return result
}

// Join renders a slice of Stringers the way a function type's parameter
// list needs to print: "t1, t2, t3" with no trailing separator.
func Join[T fmt.Stringer](xs []T, sep string) string {
	return strings.Join(Map(func(x T) string { return x.String() }, xs), sep)
}
