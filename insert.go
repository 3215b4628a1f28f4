package ncurve

import (
	"math"
	"sort"

	. "github.com/alexozer/ncurve/internal"
)

// InsertKnot inserts the knot u r times without changing the shape of the
// curve. The multiplicity of u may not exceed order afterwards; raising it
// to order leaves the curve discontinuous at u.
func (this *NurbsCurve) InsertKnot(u float64, r int) error {
	const op = "InsertKnot"
	if r < 1 {
		return newError(op, InvalidArgument, "cannot insert a knot %d times", r)
	}
	min, max := this.Domain()
	if u < min-Epsilon || u > max+Epsilon {
		return newError(op, OutOfRange, "u=%g outside [%g, %g]", u, min, max)
	}
	s := this.knots.MultiplicityOf(u)
	if s+r > this.order {
		return newError(op, InvalidArgument, "multiplicity %d+%d of u=%g exceeds order %d", s, r, u, this.order)
	}
	if len(this.controlPoints)+r > MaxLength {
		return newError(op, AllocationFailure, "length %d exceeds %d", len(this.controlPoints)+r, MaxLength)
	}
	if s > 0 {
		_, last := this.knots.Run(u)
		u = this.knots[last]
	}
	cps, knots := insertKnotArrays(this.order, this.knots, this.controlPoints, u, r)
	this.replace(cps, knots)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("%s: u=%g x%d, length now %d", op, u, r, len(cps))
	return nil
}

// insertKnotArrays inserts u r times into fresh copies of the arrays. The
// caller guarantees s+r <= order. Copies beyond degree duplicate the
// control point the curve passes through at u.
func insertKnotArrays(order int, knots KnotVec, cps []HomoPoint, u float64, r int) ([]HomoPoint, KnotVec) {
	p := order - 1
	s := knots.MultiplicityOf(u)
	boehm := r
	if s+boehm > p {
		boehm = p - s
	}
	if boehm > 0 {
		k := insertionSpan(knots, u, len(cps))
		cps, knots = boehmInsert(p, knots, cps, u, k, s, boehm)
	} else {
		cps, knots = append([]HomoPoint(nil), cps...), knots.Clone()
	}
	for i := boehm; i < r; i++ {
		first, _ := knots.Run(u)
		j := first - 1
		cps = append(cps[:j+1], append([]HomoPoint{cps[j]}, cps[j+1:]...)...)
		knots = append(knots[:first], append(KnotVec{u}, knots[first:]...)...)
	}
	return cps, knots
}

// insertionSpan is the index of the last knot <= u.
func insertionSpan(knots KnotVec, u float64, length int) int {
	if first, last := knots.Run(u); first <= last {
		return last
	}
	return knots.SpanGivenN(length-1, len(knots)-length-1, u)
}

//
// Insert a knot r times into the span k holding s copies of u
// (corresponds to algorithm A5.1 from The NURBS book, Piegl & Tiller 2nd edition).
// Works on homogeneous points, the weights are interpolated with the
// coordinates.
//
func boehmInsert(p int, knotsPost KnotVec, cpsPost []HomoPoint, u float64, k, s, r int) ([]HomoPoint, KnotVec) {
	np := len(cpsPost) - 1
	mp := np + p + 1

	knots := make(KnotVec, len(knotsPost)+r)
	cps := make([]HomoPoint, len(cpsPost)+r)

	for i := 0; i <= k; i++ {
		knots[i] = knotsPost[i]
	}
	for i := 1; i <= r; i++ {
		knots[k+i] = u
	}
	for i := k + 1; i <= mp; i++ {
		knots[i+r] = knotsPost[i]
	}

	for i := 0; i <= k-p; i++ {
		cps[i] = cpsPost[i]
	}
	for i := k - s; i <= np; i++ {
		cps[i+r] = cpsPost[i]
	}

	tmp := make([]HomoPoint, p-s+1)
	for i := range tmp {
		tmp[i] = cpsPost[k-p+i]
	}

	var L int
	for j := 1; j <= r; j++ {
		L = k - p + j
		for i := 0; i <= p-j-s; i++ {
			alpha := (u - knotsPost[L+i]) / (knotsPost[i+k+1] - knotsPost[L+i])
			tmp[i] = HomoInterpolated(&tmp[i], &tmp[i+1], alpha)
		}
		cps[L] = tmp[0]
		cps[k+r-j-s] = tmp[p-j-s]
	}

	for i := L + 1; i < k-s; i++ {
		cps[i] = tmp[i-L]
	}

	return cps, knots
}

// RefineKnots inserts all of the given knots at once. A nil slice inserts
// one knot at the midpoint of every non-empty span of the domain.
func (this *NurbsCurve) RefineKnots(knotsToInsert []float64) error {
	const op = "RefineKnots"
	min, max := this.Domain()
	var X KnotVec
	if knotsToInsert == nil {
		X = this.spanMidpoints()
	} else {
		X = KnotVec(knotsToInsert).Clone()
		sort.Float64s(X)
	}
	if len(X) == 0 {
		return nil
	}
	if X[0] < min-Epsilon || X[len(X)-1] > max+Epsilon {
		return newError(op, OutOfRange, "knots [%g, %g] outside domain [%g, %g]", X[0], X[len(X)-1], min, max)
	}
	if len(this.controlPoints)+len(X) > MaxLength {
		return newError(op, AllocationFailure, "length %d exceeds %d", len(this.controlPoints)+len(X), MaxLength)
	}
	cps, knots := refineArrays(this.order, this.knots, this.controlPoints, X)
	if err := CheckKnots(len(cps), this.order, knots); err != nil {
		return newError(op, InvalidArgument, "refined knot vector invalid: %v", err)
	}
	this.replace(cps, knots)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("%s: inserted %d knots, length now %d, %s knots", op, len(X), len(cps), this.knotType)
	return nil
}

func (this *NurbsCurve) spanMidpoints() KnotVec {
	min, max := this.Domain()
	var mids KnotVec
	for i := this.order - 1; i < len(this.controlPoints); i++ {
		a, b := this.knots[i], this.knots[i+1]
		if b-a > Epsilon && a >= min-Epsilon && b <= max+Epsilon {
			mids = append(mids, (a+b)/2)
		}
	}
	return mids
}

//
// Insert a collection of knots on a curve
// (corresponds to algorithm A5.4 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + order, knots and control points of the curve
// + sorted knots to insert, inside the domain
//
// **returns**
// + the refined control points and knots
//
func refineArrays(order int, knots KnotVec, controlPoints []HomoPoint, knotsToInsert KnotVec) ([]HomoPoint, KnotVec) {
	degree := order - 1
	n := len(controlPoints) - 1
	m := n + degree + 1
	r := len(knotsToInsert) - 1
	a := knots.SpanGivenN(n, degree, knotsToInsert[0])
	b := knots.SpanGivenN(n, degree, knotsToInsert[r]) + 1

	controlPointsPost := make([]HomoPoint, n+r+2)
	knotsPost := make(KnotVec, m+r+2)

	for i := 0; i <= a-degree; i++ {
		controlPointsPost[i] = controlPoints[i]
	}
	for i := b - 1; i <= n; i++ {
		controlPointsPost[i+r+1] = controlPoints[i]
	}
	for i := 0; i <= a; i++ {
		knotsPost[i] = knots[i]
	}
	for i := b + degree; i <= m; i++ {
		knotsPost[i+r+1] = knots[i]
	}

	i := b + degree - 1
	k := b + degree + r

	for j := r; j >= 0; j-- {
		for knotsToInsert[j] <= knots[i] && i > a {
			controlPointsPost[k-degree-1] = controlPoints[i-degree-1]
			knotsPost[k] = knots[i]
			k--
			i--
		}

		controlPointsPost[k-degree-1] = controlPointsPost[k-degree]

		for l := 1; l <= degree; l++ {
			ind := k - degree + l
			alfa := knotsPost[k+l] - knotsToInsert[j]

			if math.Abs(alfa) < Epsilon {
				controlPointsPost[ind-1] = controlPointsPost[ind]
			} else {
				alfa /= knotsPost[k+l] - knots[i-degree+l]
				controlPointsPost[ind-1] = HomoInterpolated(&controlPointsPost[ind], &controlPointsPost[ind-1], alfa)
			}
		}

		knotsPost[k] = knotsToInsert[j]
		k--
	}

	return controlPointsPost, knotsPost
}

// bezierDecomposed returns a clamped copy whose interior knots all have
// multiplicity degree, so that every span is a Bezier segment of order
// control points sharing its end points with its neighbours.
func (this *NurbsCurve) bezierDecomposed() (*NurbsCurve, error) {
	c := this.Clone()
	if err := c.Clamp(ClampBoth); err != nil {
		return nil, err
	}
	p := c.order - 1
	var X KnotVec
	for _, km := range c.knots.InteriorMultiplicities(c.order) {
		for i := km.Mult; i < p; i++ {
			X = append(X, km.Knot)
		}
	}
	if len(X) > 0 {
		cps, knots := refineArrays(c.order, c.knots, c.controlPoints, X)
		c.replace(cps, knots)
		c.knotType = Custom
	}
	return c, nil
}
