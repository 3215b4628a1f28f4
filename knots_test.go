package ncurve

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestCheckKnots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	assert.NoError(t, CheckKnots(5, 3, []float64{0, 0, 0, 1, 2, 3, 3, 3}))
	for name, tc := range map[string]struct {
		length, order int
		knots         []float64
		kind          ErrorKind
	}{
		"count":        {5, 3, []float64{0, 0, 0, 1, 2, 3, 3}, InvalidArgument},
		"decreasing":   {5, 3, []float64{0, 0, 0, 2, 1, 3, 3, 3}, InvalidArgument},
		"multiplicity": {5, 3, []float64{0, 0, 0, 0, 1, 2, 2, 2}, InvalidArgument},
		"empty domain": {3, 3, []float64{0, 0, 0, 0, 0, 0}, InvalidArgument},
		"short":        {2, 3, []float64{0, 0, 0, 1, 1}, OrderTooLow},
		"order":        {2, 1, []float64{0, 1, 2}, OrderTooLow},
	} {
		err := CheckKnots(tc.length, tc.order, tc.knots)
		require.Error(t, err, name)
		assert.Equal(t, tc.kind, KindOf(err), name)
	}
}

func TestGenerateKnots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ncurve")
	defer teardown()
	//
	knots, err := GenerateKnots(NURB, 3, 5, nil)
	require.NoError(t, err)
	diff(t, []float64{0, 0, 0, 1.0 / 3, 2.0 / 3, 1, 1, 1}, knots, approx)

	knots, err = GenerateKnots(Bezier, 3, 5, nil)
	require.NoError(t, err)
	diff(t, []float64{0, 0, 0, 0.5, 0.5, 1, 1, 1}, knots, approx)

	_, err = GenerateKnots(Bezier, 3, 4, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	knots, err = GenerateKnots(BSpline, 2, 3, nil)
	require.NoError(t, err)
	diff(t, []float64{0, 0.25, 0.5, 0.75, 1}, knots, approx)

	pts := []vec3.T{{0, 0, 0}, {3, 0, 0}, {3, 4, 0}}
	knots, err = GenerateKnots(Chordal, 2, 3, pts)
	require.NoError(t, err)
	diff(t, []float64{0, 0, 3.0 / 7, 1, 1}, knots, approx)

	_, err = GenerateKnots(Chordal, 2, 3, []vec3.T{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = GenerateKnots(Custom, 3, 5, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClassifyKnots(t *testing.T) {
	assert.Equal(t, NURB, ClassifyKnots(3, []float64{0, 0, 0, 1, 2, 3, 3, 3}, EPS))
	assert.Equal(t, Bezier, ClassifyKnots(3, []float64{0, 0, 0, 1, 1, 1}, EPS))
	assert.Equal(t, Bezier, ClassifyKnots(3, []float64{0, 0, 0, 2, 2, 4, 4, 4}, EPS))
	assert.Equal(t, BSpline, ClassifyKnots(3, []float64{0, 1, 2, 3, 4, 5, 6, 7}, EPS))
	assert.Equal(t, Custom, ClassifyKnots(3, []float64{0, 0, 0, 0.2, 0.9, 1, 1, 1}, EPS))
	assert.Equal(t, Custom, ClassifyKnots(3, []float64{0, 1}, EPS))
}

func TestCurveClassifiesChordKnots(t *testing.T) {
	pts := []vec3.T{{0, 0, 0}, {3, 0, 0}, {3, 4, 0}, {3, 5, 0}}
	c, err := NewNurbsCurve(3, Chordal, pts, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Chordal, c.KnotType())
	assert.Equal(t, Chordal, c.ClassifyKnots(EPS))

	c, err = NewNurbsCurve(3, Centripetal, pts, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Centripetal, c.ClassifyKnots(EPS))
}

func TestFindSpanAndMultiplicity(t *testing.T) {
	knots := []float64{0, 0, 0, 1, 2, 3, 3, 3}
	for _, tc := range []struct {
		u          float64
		span, mult int
	}{
		{0, 2, 3},
		{0.5, 2, 0},
		{1, 3, 1},
		{1.5, 3, 0},
		{2, 4, 1},
		{3, 4, 3},
	} {
		span, mult, err := FindSpanAndMultiplicity(5, 3, tc.u, knots)
		require.NoError(t, err)
		assert.Equal(t, tc.span, span, "span of u=%g", tc.u)
		assert.Equal(t, tc.mult, mult, "multiplicity of u=%g", tc.u)
	}
	_, _, err := FindSpanAndMultiplicity(5, 3, 4, knots)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, _, err = FindSpanAndMultiplicity(6, 3, 1, knots)
	assert.Equal(t, InvalidArgument, KindOf(err))
}

func TestRescaleKnots(t *testing.T) {
	knots, err := RescaleKnots([]float64{0, 1, 2, 4}, 0, 1)
	require.NoError(t, err)
	diff(t, []float64{0, 0.25, 0.5, 1}, knots, approx)
	_, err = RescaleKnots([]float64{0, 1}, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	knots, err = RescaleKnotsToMinDist([]float64{0, 0, 0.1, 1, 1}, 0.5)
	require.NoError(t, err)
	diff(t, []float64{0, 0, 0.5, 5, 5}, knots, approx)

	knots, err = RescaleKnotsToMinDist([]float64{0, 1, 2}, 0.5)
	require.NoError(t, err)
	diff(t, []float64{0, 1, 2}, knots)
}

func TestUnifyKnotVectors(t *testing.T) {
	merged, err := UnifyKnotVectors([]float64{0, 0, 0, 1, 2, 2, 3, 3, 3}, []float64{0, 0, 0, 1.5, 2, 3, 3, 3})
	require.NoError(t, err)
	diff(t, []float64{0, 0, 0, 1, 1.5, 2, 2, 3, 3, 3}, merged)

	_, err = UnifyKnotVectors([]float64{0, 0, 1, 1}, []float64{0, 0, 2, 2})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseKnotType(t *testing.T) {
	for kt := Bezier; kt <= Chordal; kt++ {
		parsed, err := ParseKnotType(kt.String())
		require.NoError(t, err)
		assert.Equal(t, kt, parsed)
	}
	kt, err := ParseKnotType("nurb")
	require.NoError(t, err)
	assert.Equal(t, NURB, kt)
	_, err = ParseKnotType("hermite")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
