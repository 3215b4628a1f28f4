/*
Package ncurve is a kernel for manipulating rational B-spline (NURBS)
curves.

A NurbsCurve holds an order, a knot vector and homogeneous control points.
Operations either mutate a curve in place (knot insertion/removal,
refinement, clamping, degree change, closing, fairing) or build new
curves (split, concatenation, offset, fillets). A failing operation leaves
its curve untouched: replacement arrays are built first and swapped in
only on success.

The kernel holds no package-level mutable state. Distinct curves may be
processed concurrently; a single curve must not be shared between
goroutines during a call.

Tracing

Operations trace to the selector "ncurve". Nothing is traced unless the
application configures a tracing adapter for it.
*/
package ncurve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ncurve'.
func tracer() tracing.Trace {
	return tracing.Select("ncurve")
}
