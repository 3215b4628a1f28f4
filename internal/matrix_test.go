package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestMatrixSolve(t *testing.T) {
	A := Matrix{
		{2, 1, 0},
		{1, 3, 1},
		{0, 1, 4},
	}
	x, err := A.Solve([]float64{3, 5, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, x, 1e-12)

	inv, err := A.Inverse()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += A[i][k] * inv[k][j]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, sum, 1e-12)
		}
	}
}

func TestMatrixSingular(t *testing.T) {
	A := Matrix{
		{1, 2},
		{2, 4},
	}
	_, err := A.Solve([]float64{1, 2})
	assert.ErrorIs(t, err, ErrSingular)
}

func TestMat2Solve(t *testing.T) {
	x, y := Mat2Solve(2, 1, 1, 3, 5, 10)
	assert.InDelta(t, 1.0, x, 1e-12)
	assert.InDelta(t, 3.0, y, 1e-12)
}

func TestBasisPartitionOfUnity(t *testing.T) {
	knots := KnotVec{0, 0, 0, 0, 0.3, 1.1, 2, 2, 2, 2}
	for _, u := range []float64{0, 0.1, 0.3, 0.75, 1.5, 2} {
		span := knots.SpanGivenN(5, 3, u)
		var sum float64
		for _, b := range BasisFunctions(span, u, 3, knots) {
			assert.GreaterOrEqual(t, b, -1e-12)
			sum += b
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "u=%g", u)

		assert.Equal(t, span, knots.Span(3, u))
		ders := DerivativeBasisFunctions(span, u, 3, 2, knots)
		assert.InDeltaSlice(t, BasisFunctions(span, u, 3, knots), ders[0], 1e-12)
		var d1 float64
		for _, b := range ders[1] {
			d1 += b
		}
		assert.InDelta(t, 0.0, d1, 1e-9, "u=%g", u)
	}
}

func TestBasisDerivativesMatchDifferences(t *testing.T) {
	knots := KnotVec{0, 0, 0, 0, 0.3, 1.1, 2, 2, 2, 2}
	const h = 1e-6
	for _, u := range []float64{0.1, 0.5, 1.4} {
		span := knots.Span(3, u)
		ders := DerivativeBasisFunctions(span, u, 3, 1, knots)
		lo := BasisFunctions(span, u-h, 3, knots)
		hi := BasisFunctions(span, u+h, 3, knots)
		for j := range lo {
			assert.InDelta(t, (hi[j]-lo[j])/(2*h), ders[1][j], 1e-5, "u=%g j=%d", u, j)
		}
	}
}

func TestHomoPoint(t *testing.T) {
	a := Homogenized(vec3.T{1, 2, 3}, 2)
	assert.Equal(t, vec3.T{2, 4, 6}, a.Vec3)
	assert.Equal(t, vec3.T{1, 2, 3}, a.Dehomogenized())

	zero := Homogenized(vec3.T{1, 2, 3}, 0)
	assert.Equal(t, 1.0, zero.W)

	b := Homogenized(vec3.T{3, 2, 1}, 1)
	mid := HomoInterpolated(&a, &b, 0.5)
	assert.InDelta(t, 1.5, mid.W, 1e-12)
	assert.True(t, Coincident(&a, &a, Epsilon))
	assert.False(t, Coincident(&a, &b, Epsilon))
	assert.True(t, IsRational([]HomoPoint{a, b}))
	assert.False(t, IsRational(Homogenize1d([]vec3.T{{1, 0, 0}, {0, 1, 0}}, nil)))
	assert.Equal(t, []float64{2, 1}, Weight1d([]HomoPoint{a, b}))
	assert.Equal(t, 10.0, Binomial(5, 2))
}
