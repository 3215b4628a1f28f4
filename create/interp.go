package create

import (
	"github.com/alexozer/ncurve"
	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Interpolate builds the curve of the given order passing through all
// points (global interpolation, Algorithm A9.1 of Piegl & Tiller).
func Interpolate(points []vec3.T, order int) (*ncurve.NurbsCurve, error) {
	// 0) build knot vector for curve by normalized chord length
	// 1) construct effective basis function in square matrix (A)
	// 2) solve A c = p for the control points c, per coordinate

	n := len(points)
	if order < 2 || n < order {
		return nil, errorf(ncurve.ErrOrderTooLow, "%d points for order %d", n, order)
	}
	degree := order - 1

	us := make([]float64, n)
	for i := 1; i < n; i++ {
		us[i] = us[i-1] + vec3.Distance(&points[i], &points[i-1])
	}
	max := us[n-1]
	if max < ncurve.EPS {
		return nil, errorf(ncurve.ErrDegenerateInput, "all points coincide")
	}
	for i := range us {
		us[i] /= max
	}

	// knots by averaging the parameters
	knots := make(KnotVec, n+order)
	for j := 1; j < n-degree; j++ {
		var sum float64
		for i := j; i < j+degree; i++ {
			sum += us[i]
		}
		knots[j+degree] = sum / float64(degree)
	}
	for i := n; i < len(knots); i++ {
		knots[i] = 1
	}

	A := NewMatrix(n)
	for i, u := range us {
		span := knots.SpanGivenN(n-1, degree, u)
		basisFuncs := BasisFunctions(span, u, degree, knots)
		copy(A[i][span-degree:], basisFuncs)
	}

	controlPoints := make([]vec3.T, n)
	for dim := 0; dim < 3; dim++ {
		b := make([]float64, n)
		for j := range b {
			b[j] = points[j][dim]
		}
		x, err := A.Solve(b)
		if err != nil {
			return nil, errorf(ncurve.ErrDegenerateInput, "interpolation matrix: %v", err)
		}
		for i := range x {
			controlPoints[i][dim] = x[i]
		}
	}
	return ncurve.NewNurbsCurve(order, ncurve.Custom, controlPoints, nil, knots)
}
