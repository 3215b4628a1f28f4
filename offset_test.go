package ncurve

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestOffsetLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	line, err := NewNurbsCurve(2, NURB, []vec3.T{{0, 0, 0}, {1, 0, 0}}, nil, nil)
	require.NoError(t, err)
	for _, mode := range []OffsetMode{OffsetPoint, OffsetSection, OffsetHybrid} {
		off, err := line.Offset(mode, 1)
		require.NoError(t, err, mode.String())
		diff(t, []vec3.T{{0, 1, 0}, {1, 1, 0}}, off.ControlPoints(), approx)
		diff(t, line.Knots(), off.Knots())
		assert.Equal(t, 2, off.Order())
	}
	off, err := line.Offset(OffsetPoint, -2)
	require.NoError(t, err)
	diff(t, []vec3.T{{0, -2, 0}, {1, -2, 0}}, off.ControlPoints(), approx)
	// the source is left alone
	diff(t, []vec3.T{{0, 0, 0}, {1, 0, 0}}, line.ControlPoints())
}

func TestOffsetCorner(t *testing.T) {
	c, err := NewNurbsCurve(2, NURB, []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, nil, nil)
	require.NoError(t, err)
	h := 0.5 / math.Sqrt2

	point, err := c.Offset(OffsetPoint, 0.5)
	require.NoError(t, err)
	diff(t, []vec3.T{{0, 0.5, 0}, {1 - h, h, 0}, {0.5, 1, 0}}, point.ControlPoints(), approx)

	section, err := c.Offset(OffsetSection, 0.5)
	require.NoError(t, err)
	diff(t, []vec3.T{{0, 0.5, 0}, {0.5, 0.5, 0}, {0.5, 1, 0}}, section.ControlPoints(), approx)

	hybrid, err := c.Offset(OffsetHybrid, 0.5)
	require.NoError(t, err)
	diff(t, vec3.T{(1 - h + 0.5) / 2, (h + 0.5) / 2, 0}, hybrid.ControlPoints()[1], approx)
}

func TestOffsetClosedSquare(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	sq, err := NewNurbsCurve(2, NURB, []vec3.T{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}},
		[]float64{1, 2, 1, 2, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, Closed, sq.Class())
	inner, err := sq.Offset(OffsetSection, 0.25)
	require.NoError(t, err)
	diff(t, []vec3.T{
		{0.25, 0.25, 0}, {0.75, 0.25, 0}, {0.75, 0.75, 0}, {0.25, 0.75, 0}, {0.25, 0.25, 0},
	}, inner.ControlPoints(), approx)
	assert.Equal(t, Closed, inner.Class())
	diff(t, sq.Weights(), inner.Weights(), approx)
}

func TestOffsetNormalField(t *testing.T) {
	c := scenarioCurve(t)
	_, err := c.Offset(OffsetNormalField, 1)
	assert.ErrorIs(t, err, ErrNoNormalField)
	assert.Equal(t, NoNormalField, KindOf(err))

	normals := make([]vec3.T, c.Length())
	for i := range normals {
		normals[i] = vec3.T{0, 0, 2}
	}
	require.NoError(t, c.SetNormals(normals))
	off, err := c.Offset(OffsetNormalField, 0.5)
	require.NoError(t, err)
	for i, pt := range off.ControlPoints() {
		want := c.ControlPoints()[i]
		want[2] = 0.5
		diff(t, want, pt, approx)
	}

	normals[2] = vec3.T{}
	require.NoError(t, c.SetNormals(normals))
	_, err = c.Offset(OffsetNormalField, 0.5)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestOffsetErrors(t *testing.T) {
	c := scenarioCurve(t)
	_, err := c.Offset(OffsetMode(42), 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// a vertical polygon has no XY edge direction
	v, err := NewNurbsCurve(2, NURB, []vec3.T{{1, 1, 0}, {1, 1, 5}}, nil, nil)
	require.NoError(t, err)
	for _, mode := range []OffsetMode{OffsetPoint, OffsetSection, OffsetHybrid} {
		_, err = v.Offset(mode, 1)
		assert.ErrorIs(t, err, ErrDegenerateInput, mode.String())
	}
	// normals make it offsettable again
	require.NoError(t, v.SetNormals([]vec3.T{{1, 0, 0}, {1, 0, 0}}))
	off, err := v.Offset(OffsetNormalField, 1)
	require.NoError(t, err)
	diff(t, []vec3.T{{2, 1, 0}, {2, 1, 5}}, off.ControlPoints(), approx)
}
