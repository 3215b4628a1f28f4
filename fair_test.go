package ncurve

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func bumpedPolyline(t *testing.T) *NurbsCurve {
	t.Helper()
	c, err := NewNurbsCurve(2, NURB, []vec3.T{
		{0, 0, 0}, {1, 0, 0}, {2, 1, 0}, {3, 0, 0}, {4, 0, 0}, {5, 0, 0},
	}, nil, nil)
	require.NoError(t, err)
	return c
}

func TestFairStraightLine(t *testing.T) {
	c, err := NewNurbsCurve(2, NURB, []vec3.T{
		{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}, {5, 0, 0},
	}, nil, nil)
	require.NoError(t, err)
	v := c.Version()
	dev, err := c.Fair(nil, 1, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, dev, 1e-12)
	assert.Equal(t, v, c.Version())
}

func TestFairWorstOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := bumpedPolyline(t)
	dev, err := c.Fair(nil, 0.25, true)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dev, 1e-12)
	diff(t, []vec3.T{
		{0, 0, 0}, {1, 0, 0}, {2, 0.75, 0}, {3, 0, 0}, {4, 0, 0}, {5, 0, 0},
	}, c.ControlPoints(), approx)
}

func TestFairAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	c := bumpedPolyline(t)
	dev, err := c.Fair(nil, 10, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, dev, 1e-12)
	cps := c.ControlPoints()
	diff(t, vec3.T{2, 0, 0}, cps[2], approx)
	// next to the end the chord of the direct neighbours is used
	diff(t, vec3.T{0.8, 0.4, 0}, cps[1], approx)
	diff(t, vec3.T{3, 2.0 / 3, 0}, cps[3], approx)
	diff(t, vec3.T{4, 0, 0}, cps[4], approx)
	diff(t, vec3.T{0, 0, 0}, cps[0])
	diff(t, vec3.T{5, 0, 0}, cps[5])
}

func TestFairSelected(t *testing.T) {
	c := bumpedPolyline(t)
	dev, err := c.Fair([]int{0, 5}, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dev)

	dev, err = c.Fair([]int{1}, 1, false)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(5), dev, 1e-12)
	diff(t, vec3.T{2, 1, 0}, c.ControlPoints()[2])

	_, err = c.Fair([]int{6}, 1, false)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Fair(nil, 0, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFairClosed(t *testing.T) {
	pts := make([]vec3.T, 0, 7)
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		r := 1.0
		if i == 2 {
			r = 1.5
		}
		pts = append(pts, vec3.T{r * math.Cos(a), r * math.Sin(a), 0})
	}
	pts = append(pts, pts[0])
	c, err := NewNurbsCurve(3, NURB, pts, nil, nil)
	require.NoError(t, err)
	require.Equal(t, Closed, c.Class())

	dev, err := c.Fair(nil, 0.1, false)
	require.NoError(t, err)
	assert.Greater(t, dev, 0.1)
	assert.Equal(t, Closed, c.Class())
	cps := c.ControlPoints()
	assert.Equal(t, cps[0], cps[6])
	assert.Less(t, cps[2].Length(), 1.5)
}
