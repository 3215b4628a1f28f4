package internal

// BasisFunctions returns the degree+1 basis functions that are non-zero at
// u, N[span-degree] .. N[span] (A2.2 of Piegl & Tiller).
func BasisFunctions(span int, u float64, degree int, knots KnotVec) []float64 {
	n := make([]float64, degree+1)
	left, right := make([]float64, degree+1), make([]float64, degree+1)
	n[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			tmp := n[r] / (right[r+1] + left[j-r])
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}

// basisTriangle holds the basis functions of every degree up to degree in
// its upper triangle (column j for degree j) and the knot differences in
// its lower one.
func basisTriangle(span int, u float64, degree int, knots KnotVec) [][]float64 {
	ndu := zeros2d(degree+1, degree+1)
	left, right := make([]float64, degree+1), make([]float64, degree+1)
	ndu[0][0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			tmp := ndu[r][j-1] / ndu[j][r]
			ndu[r][j] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		ndu[j][j] = saved
	}
	return ndu
}

// DerivativeBasisFunctions returns the non-zero basis functions at u and
// their derivatives up to n (A2.3). Row k holds the k-th derivatives; n
// must not exceed degree.
func DerivativeBasisFunctions(span int, u float64, degree, n int, knots KnotVec) [][]float64 {
	ndu := basisTriangle(span, u, degree, knots)
	ders := zeros2d(n+1, degree+1)
	for j := range ders[0] {
		ders[0][j] = ndu[j][degree]
	}

	// two alternating rows of coefficients
	a := zeros2d(2, degree+1)
	for r := 0; r <= degree; r++ {
		cur, next := 0, 1
		a[0][0] = 1
		for k := 1; k <= n; k++ {
			var d float64
			rk, pk := r-k, degree-k
			if r >= k {
				a[next][0] = a[cur][0] / ndu[pk+1][rk]
				d = a[next][0] * ndu[rk][pk]
			}
			first, last := 1, k-1
			if rk < -1 {
				first = -rk
			}
			if r-1 > pk {
				last = degree - r
			}
			for j := first; j <= last; j++ {
				a[next][j] = (a[cur][j] - a[cur][j-1]) / ndu[pk+1][rk+j]
				d += a[next][j] * ndu[rk+j][pk]
			}
			if r <= pk {
				a[next][k] = -a[cur][k-1] / ndu[pk+1][r]
				d += a[next][k] * ndu[r][pk]
			}
			ders[k][r] = d
			cur, next = next, cur
		}
	}

	// degree!/(degree-k)!
	factor := float64(degree)
	for k := 1; k <= n; k++ {
		for j := range ders[k] {
			ders[k][j] *= factor
		}
		factor *= float64(degree - k)
	}
	return ders
}

func zeros2d(n, m int) [][]float64 {
	result := make([][]float64, n)
	for i := range result {
		result[i] = make([]float64, m)
	}
	return result
}
