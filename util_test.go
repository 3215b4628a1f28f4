package ncurve

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ungerik/go3d/float64/vec3"
)

const testEps = 1e-9

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, testEps)

// scenarioCurve is the planar open curve of order 3 with knots
// [0,0,0,1,2,3,3,3].
func scenarioCurve(t *testing.T) *NurbsCurve {
	t.Helper()
	c, err := NewNurbsCurve(3, NURB, []vec3.T{
		{0, 0, 0}, {1, 2, 0}, {2, -1, 0}, {3, 2, 0}, {4, 0, 0},
	}, nil, []float64{0, 0, 0, 1, 2, 3, 3, 3})
	if err != nil {
		t.Fatalf("scenario curve: %v", err)
	}
	return c
}

// rationalCurve is a cubic with varying weights and non-uniform knots.
func rationalCurve(t *testing.T) *NurbsCurve {
	t.Helper()
	c, err := NewNurbsCurve(4, Custom, []vec3.T{
		{0, 0, 0}, {1, 3, 1}, {3, 4, 0}, {5, 1, -1}, {6, -2, 0}, {8, 0, 2},
	}, []float64{1, 0.5, 2, 1, 1.5, 1}, []float64{0, 0, 0, 0, 0.3, 1.1, 2, 2, 2, 2})
	if err != nil {
		t.Fatalf("rational curve: %v", err)
	}
	return c
}

// uniformCurve is an unclamped order 3 curve with uniform BSpline knots.
func uniformCurve(t *testing.T) *NurbsCurve {
	t.Helper()
	c, err := NewNurbsCurve(3, BSpline, []vec3.T{
		{0, 0, 0}, {1, 1, 0}, {2, 0, 0}, {3, 2, 0}, {4, 1, 0}, {5, 3, 0},
	}, nil, nil)
	if err != nil {
		t.Fatalf("uniform curve: %v", err)
	}
	return c
}

// maxSampleDistance evaluates both curves at n parameters spread over
// the domain of a and returns the largest distance between them.
func maxSampleDistance(a, b *NurbsCurve, n int) float64 {
	var worst float64
	for _, s := range a.Sample(n) {
		pt := b.Point(s.U)
		worst = math.Max(worst, vec3.Distance(&s.Pt, &pt))
	}
	return worst
}

// maxSampleDistanceRelative compares two curves at equal relative
// positions in their domains.
func maxSampleDistanceRelative(a, b *NurbsCurve, n int) float64 {
	var worst float64
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		pa, pb := a.Point(a.relativeParam(t)), b.Point(b.relativeParam(t))
		worst = math.Max(worst, vec3.Distance(&pa, &pb))
	}
	return worst
}
