package ncurve

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestInsertKnotScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := scenarioCurve(t)
	before := c.Point(1.5)
	orig := c.Clone()
	require.NoError(t, c.InsertKnot(1.5, 1))
	assert.Equal(t, 6, c.Length())
	after := c.Point(1.5)
	assert.LessOrEqual(t, vec3.Distance(&before, &after), EPS)
	diff(t, []float64{0, 0, 0, 1, 1.5, 2, 3, 3, 3}, c.Knots())
	assert.Equal(t, Custom, c.KnotType())
	assert.NoError(t, c.Validate())
	assert.Less(t, maxSampleDistance(orig, c, 50), EPS)
}

func TestInsertKnotToFullMultiplicity(t *testing.T) {
	c := scenarioCurve(t)
	orig := c.Clone()
	require.NoError(t, c.InsertKnot(1, 2))
	assert.Equal(t, 7, c.Length())
	diff(t, []float64{0, 0, 0, 1, 1, 1, 2, 3, 3, 3}, c.Knots())
	assert.NoError(t, c.Validate())
	assert.Less(t, maxSampleDistance(orig, c, 60), EPS)
	// the curve passes through the control point at a full knot
	p := c.Point(1)
	diff(t, p, c.ControlPoints()[3], approx)
}

func TestInsertKnotRational(t *testing.T) {
	c := rationalCurve(t)
	orig := c.Clone()
	require.NoError(t, c.InsertKnot(1.5, 2))
	require.NoError(t, c.InsertKnot(0.3, 1))
	assert.Equal(t, 9, c.Length())
	assert.True(t, c.IsRational())
	assert.Less(t, maxSampleDistance(orig, c, 80), EPS)
}

func TestInsertKnotErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := scenarioCurve(t)
	assert.ErrorIs(t, c.InsertKnot(1, 3), ErrInvalidArgument)
	assert.ErrorIs(t, c.InsertKnot(1.5, 0), ErrInvalidArgument)
	assert.ErrorIs(t, c.InsertKnot(3.5, 1), ErrOutOfRange)
	assert.Equal(t, 5, c.Length())
	diff(t, []float64{0, 0, 0, 1, 2, 3, 3, 3}, c.Knots())
}

func TestRefineKnots(t *testing.T) {
	c := scenarioCurve(t)
	orig := c.Clone()
	require.NoError(t, c.RefineKnots(nil))
	assert.Equal(t, 8, c.Length())
	diff(t, []float64{0, 0, 0, 0.5, 1, 1.5, 2, 2.5, 3, 3, 3}, c.Knots(), approx)
	assert.Equal(t, NURB, c.KnotType())
	assert.Less(t, maxSampleDistance(orig, c, 50), EPS)

	c = scenarioCurve(t)
	require.NoError(t, c.RefineKnots([]float64{2.5, 0.7}))
	assert.Equal(t, 7, c.Length())
	diff(t, []float64{0, 0, 0, 0.7, 1, 2, 2.5, 3, 3, 3}, c.Knots(), approx)
	assert.Equal(t, Custom, c.KnotType())
	assert.Less(t, maxSampleDistance(orig, c, 50), EPS)

	r := rationalCurve(t)
	origR := r.Clone()
	require.NoError(t, r.RefineKnots(nil))
	assert.Less(t, maxSampleDistance(origR, r, 80), EPS)

	assert.ErrorIs(t, c.RefineKnots([]float64{4}), ErrOutOfRange)
}

func TestRemoveKnotAfterInsert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := scenarioCurve(t)
	orig := c.Clone()
	require.NoError(t, c.InsertKnot(1.5, 1))
	removed, err := c.RemoveKnot(1.5, 1, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 5, c.Length())
	diff(t, orig.Knots(), c.Knots(), approx)
	diff(t, orig.ControlPoints(), c.ControlPoints(), approx)

	r := rationalCurve(t)
	origR := r.Clone()
	require.NoError(t, r.InsertKnot(1.5, 2))
	removed, err = r.RemoveKnot(1.5, 5, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 6, r.Length())
	assert.Less(t, maxSampleDistance(origR, r, 80), EPS)
}

func TestRemoveKnotTolerance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := scenarioCurve(t)
	removed, err := c.RemoveKnot(1, 1, 1e-9)
	assert.Equal(t, 0, removed)
	assert.ErrorIs(t, err, ErrToleranceExceeded)
	assert.Equal(t, 5, c.Length())

	// a loose tolerance removes the knot at the cost of shape
	removed, err = c.RemoveKnot(1, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 4, c.Length())
	assert.NoError(t, c.Validate())

	_, err = c.RemoveKnot(0, 1, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.RemoveKnot(1.2, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.RemoveKnot(2, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
