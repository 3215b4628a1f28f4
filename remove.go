package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"
)

// RemoveKnot removes up to num copies of the interior knot u, as long as
// the curve stays within tolerance of its original shape. It returns the
// number of knots actually removed, which may be less than num. If not a
// single knot can be removed the curve is unchanged and the error is of
// kind ToleranceExceeded.
func (this *NurbsCurve) RemoveKnot(u float64, num int, tolerance float64) (int, error) {
	const op = "RemoveKnot"
	if num < 1 || tolerance < 0 {
		return 0, newError(op, InvalidArgument, "num=%d, tolerance=%g", num, tolerance)
	}
	min, max := this.Domain()
	if u <= min+Epsilon || u >= max-Epsilon {
		return 0, newError(op, OutOfRange, "u=%g not inside (%g, %g)", u, min, max)
	}
	first, last := this.knots.Run(u)
	if first > last {
		return 0, newError(op, InvalidArgument, "u=%g is not a knot", u)
	}
	s := last - first + 1
	if num > s {
		num = s
	}
	if len(this.controlPoints)-num < this.order {
		num = len(this.controlPoints) - this.order
		if num < 1 {
			return 0, newError(op, OrderTooLow, "length %d cannot shrink below order %d", len(this.controlPoints), this.order)
		}
	}
	t, cps, knots := removeKnotArrays(this.order, this.knots, this.controlPoints, this.knots[last], last, s, num, tolerance)
	if t == 0 {
		return 0, newError(op, ToleranceExceeded, "removing u=%g moves the curve more than %g", u, tolerance)
	}
	this.replace(cps, knots)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("%s: removed u=%g %d of %d times", op, u, t, num)
	return t, nil
}

// removalTolerance converts a distance bound for the curve into a bound for
// the homogeneous control points (see eq. 5.30 of The NURBS book).
func removalTolerance(cps []HomoPoint, d float64) float64 {
	wmin, pmax := math.Inf(1), 0.0
	for i := range cps {
		wmin = math.Min(wmin, cps[i].W)
		pt := cps[i].Dehomogenized()
		pmax = math.Max(pmax, pt.Length())
	}
	return d * wmin / (1 + pmax)
}

//
// Remove the knot u, the last of s equal knots at index r, up to num times
// (corresponds to algorithm A5.8 from The NURBS book, Piegl & Tiller 2nd edition).
// Works on copies; returns how often the knot was removed.
//
func removeKnotArrays(order int, knotsPre KnotVec, cpsPre []HomoPoint, u float64, r, s, num int, d float64) (int, []HomoPoint, KnotVec) {
	p := order - 1
	n := len(cpsPre) - 1
	m := n + p + 1
	U := knotsPre.Clone()
	Pw := append([]HomoPoint(nil), cpsPre...)
	tol := removalTolerance(cpsPre, d)

	fout := (2*r - s - p) / 2
	last := r - s
	first := r - p
	temp := make([]HomoPoint, 2*p+1)

	t := 0
	for ; t < num; t++ {
		off := first - 1
		temp[0] = Pw[off]
		temp[last+1-off] = Pw[last+1]
		i, j := first, last
		ii, jj := 1, last-off

		for j-i > t {
			alfi := (u - U[i]) / (U[i+order+t] - U[i])
			alfj := (u - U[j-t]) / (U[j+order] - U[j-t])
			temp[ii] = HomoCombined(&Pw[i], 1/alfi, &temp[ii-1], -(1-alfi)/alfi)
			temp[jj] = HomoCombined(&Pw[j], 1/(1-alfj), &temp[jj+1], -alfj/(1-alfj))
			i++
			ii++
			j--
			jj--
		}

		var removable bool
		if j-i < t {
			removable = Distance4D(&temp[ii-1], &temp[jj+1]) <= tol
		} else {
			alfi := (u - U[i]) / (U[i+order+t] - U[i])
			blended := HomoInterpolated(&temp[ii-1], &temp[ii+t+1], alfi)
			removable = Distance4D(&Pw[i], &blended) <= tol
		}
		if !removable {
			break
		}

		i, j = first, last
		for j-i > t {
			Pw[i] = temp[i-off]
			Pw[j] = temp[j-off]
			i++
			j--
		}
		first--
		last++
	}

	if t == 0 {
		return 0, nil, nil
	}

	for k := r + 1; k <= m; k++ {
		U[k-t] = U[k]
	}
	j := fout
	i := j
	for k := 1; k < t; k++ {
		if k%2 == 1 {
			i++
		} else {
			j--
		}
	}
	for k := i + 1; k <= n; k++ {
		Pw[j] = Pw[k]
		j++
	}

	return t, Pw[:n+1-t], U[:m+1-t]
}
