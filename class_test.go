package ncurve

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
	"github.com/ungerik/go3d/float64/vec4"
)

func TestCloseAndOpen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c, err := NewNurbsCurve(3, NURB, []vec3.T{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}, {1, -1, 0}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Open, c.Class())
	require.NoError(t, c.Close(Closed))
	assert.Equal(t, Closed, c.Class())
	cps := c.ControlPoints()
	assert.Equal(t, cps[0], cps[3])
	p := c.Point(1)
	diff(t, vec3.T{0, 0, 0}, p, approx)

	require.NoError(t, c.Open())
	assert.Equal(t, Open, c.Class())
	assert.NotEqual(t, c.ControlPoints()[0], c.ControlPoints()[3])
	diff(t, vec3.T{0.2, 0, 0}, c.ControlPoints()[3], approx)

	s := scenarioCurve(t)
	require.NoError(t, s.Close(Periodic))
	assert.Equal(t, Periodic, s.Class())
	assert.Equal(t, BSpline, s.KnotType())
	cps = s.ControlPoints()
	assert.Equal(t, cps[0], cps[3])
	assert.Equal(t, cps[1], cps[4])
	// the unclamped periodic curve closes smoothly
	min, max := s.Domain()
	start, end := s.Point(min), s.Point(max)
	diff(t, start, end, approx)
	ts, te := s.Tangent(min), s.Tangent(max)
	diff(t, ts, te, approx)

	require.NoError(t, s.Close(Open))
	assert.Equal(t, Open, s.Class())
}

func TestCloseErrors(t *testing.T) {
	line, err := NewNurbsCurve(2, NURB, []vec3.T{{0, 0, 0}, {1, 0, 0}}, nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, line.Close(Closed), ErrOrderTooLow)
	assert.ErrorIs(t, line.Close(CurveClass(9)), ErrInvalidArgument)

	c, err := NewNurbsCurve(3, NURB, []vec3.T{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}}, nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Close(Periodic), ErrOrderTooLow)
	assert.Equal(t, Open, c.Class())
	assert.ErrorIs(t, c.ShiftControlPoints(1, 1), ErrInvalidArgument)
}

func TestRevert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := rationalCurve(t)
	orig := c.Clone()
	c.Revert()
	min, max := c.Domain()
	assert.Equal(t, 0.0, min)
	assert.InDelta(t, 2.0, max, 1e-12)
	for _, s := range orig.Sample(40) {
		p := c.Point(min + max - s.U)
		diff(t, s.Pt, p, approx)
	}
	c.Revert()
	diff(t, orig.Knots(), c.Knots(), approx)
	diff(t, orig.HomogeneousPoints(), c.HomogeneousPoints())
}

func TestShiftControlPoints(t *testing.T) {
	c, err := NewNurbsCurve(2, NURB, []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, Closed, c.Class())
	require.NoError(t, c.ShiftControlPoints(1, 1))
	diff(t, []vec3.T{{0, 1, 0}, {0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, c.ControlPoints())
	assert.Equal(t, Closed, c.Class())

	require.NoError(t, c.ShiftControlPoints(-1, 5))
	diff(t, []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}}, c.ControlPoints())

	v := c.Version()
	require.NoError(t, c.ShiftControlPoints(1, 4))
	assert.Equal(t, v, c.Version())
}

func TestApplyTransform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	// rotation by 90 degrees about z followed by a translation by (1, 2, 3)
	m := mat4.T{
		vec4.T{0, 1, 0, 0},
		vec4.T{-1, 0, 0, 0},
		vec4.T{0, 0, 1, 0},
		vec4.T{1, 2, 3, 1},
	}
	c := rationalCurve(t)
	orig := c.Clone()
	require.NoError(t, c.SetNormals(make([]vec3.T, c.Length())))
	require.NoError(t, c.ApplyTransform(&m))
	diff(t, orig.Weights(), c.Weights(), approx)
	for _, s := range orig.Sample(30) {
		want := vec3.T{1 - s.Pt[1], 2 + s.Pt[0], 3 + s.Pt[2]}
		got := c.Point(s.U)
		diff(t, want, got, approx)
	}
	assert.Len(t, c.Normals(), c.Length())

	require.NoError(t, c.ApplyInverseTransform(&m))
	diff(t, orig.HomogeneousPoints(), c.HomogeneousPoints(), approx)

	var singular mat4.T
	assert.ErrorIs(t, c.ApplyInverseTransform(&singular), ErrDegenerateInput)

	q := quarterCircle(t)
	scale := mat4.T{
		vec4.T{2, 0, 0, 0},
		vec4.T{0, 2, 0, 0},
		vec4.T{0, 0, 2, 0},
		vec4.T{0, 0, 0, 1},
	}
	require.NoError(t, q.ApplyTransform(&scale))
	for _, s := range q.Sample(10) {
		assert.InDelta(t, 2.0, s.Pt.Length(), 1e-12)
	}
	assert.InDelta(t, math.Sqrt2/2, q.Weights()[1], 1e-12)
}
