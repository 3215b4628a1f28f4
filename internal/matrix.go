package internal

import (
	"errors"
	"math"
)

// ErrSingular is returned when a pivot vanishes during LU decomposition.
var ErrSingular = errors.New("singular matrix")

// Matrix is a dense row-major square matrix.
type Matrix [][]float64

func NewMatrix(n int) Matrix {
	return Matrix(zeros2d(n, n))
}

func (this Matrix) Clone() Matrix {
	clone := make(Matrix, len(this))
	for i := range clone {
		clone[i] = append([]float64(nil), this[i]...)
	}

	return clone
}

// Solve solves this * x = vec.
func (this Matrix) Solve(vec []float64) ([]float64, error) {
	lu, err := newLUdecomp(this)
	if err != nil {
		return nil, err
	}
	return lu.solve(vec), nil
}

// Inverse returns the inverse matrix.
func (this Matrix) Inverse() (Matrix, error) {
	lu, err := newLUdecomp(this)
	if err != nil {
		return nil, err
	}
	n := len(this)
	inv := NewMatrix(n)
	unit := make([]float64, n)
	for col := 0; col < n; col++ {
		for i := range unit {
			unit[i] = 0
		}
		unit[col] = 1
		x := lu.solve(unit)
		for row := 0; row < n; row++ {
			inv[row][col] = x[row]
		}
	}
	return inv, nil
}

type luDecomp struct {
	LU [][]float64
	P  []int
}

func newLUdecomp(mat Matrix) (*luDecomp, error) {
	mat = mat.Clone()

	n := len(mat)
	P := make([]int, n)

	for k := 0; k < n; k++ {
		Pk := k
		Ak := mat[k]
		max := math.Abs(Ak[k])

		for j := k + 1; j < n; j++ {
			absAjk := math.Abs(mat[j][k])
			if max < absAjk {
				max = absAjk
				Pk = j
			}
		}
		P[k] = Pk

		if max < 1e-14 {
			return nil, ErrSingular
		}

		if Pk != k {
			mat[k] = mat[Pk]
			mat[Pk] = Ak
			Ak = mat[k]
		}

		Akk := Ak[k]

		for i := k + 1; i < n; i++ {
			mat[i][k] /= Akk
		}

		for i := k + 1; i < n; i++ {
			Ai := mat[i]
			for j := k + 1; j < n; j++ {
				Ai[j] -= Ai[k] * Ak[j]
			}
		}
	}

	return &luDecomp{mat, P}, nil
}

func (this *luDecomp) solve(vec []float64) []float64 {
	x := append([]float64(nil), vec...)
	LU, P := this.LU, this.P

	n := len(LU)

	for i := 0; i < n; i++ {
		Pi := P[i]
		if Pi != i {
			x[i], x[Pi] = x[Pi], x[i]
		}

		LUi := LU[i]
		for j := 0; j < i; j++ {
			x[i] -= x[j] * LUi[j]
		}
	}

	for i := n - 1; i >= 0; i-- {
		LUi := LU[i]
		for j := i + 1; j < n; j++ {
			x[i] -= x[j] * LUi[j]
		}

		x[i] /= LUi[i]
	}

	return x
}

// Mat2Solve solves the 2x2 system [a b; c d] [x y]^T = [f s]^T.
func Mat2Solve(a, b, c, d, f, s float64) (x, y float64) {
	cDivA := c / a
	y = (s - cDivA*f) / (d - b*cDivA)
	x = (f - b*y) / a
	return
}
