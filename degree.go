package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
	"gonum.org/v1/gonum/mat"
)

// ElevateDegree raises the order of the curve to targetOrder without
// changing its shape. Unclamped curves are clamped first. The knot type
// becomes Custom.
func (this *NurbsCurve) ElevateDegree(targetOrder int) error {
	const op = "ElevateDegree"
	if targetOrder < this.order {
		return newError(op, InvalidArgument, "target order %d below order %d", targetOrder, this.order)
	}
	if targetOrder == this.order {
		return nil
	}
	for _, km := range this.knots.InteriorMultiplicities(this.order) {
		if km.Mult >= this.order {
			return newError(op, InvalidArgument, "curve is discontinuous at u=%g", km.Knot)
		}
	}
	work := this
	if !this.knots.IsClampedStart(this.order) || !this.knots.IsClampedEnd(this.order) {
		work = this.Clone()
		if err := work.Clamp(ClampBoth); err != nil {
			return err
		}
	}
	t := targetOrder - this.order
	segments := len(work.knots.InteriorMultiplicities(work.order)) + 1
	if newLength := len(work.controlPoints) + t*segments; newLength > MaxLength {
		return newError(op, AllocationFailure, "length %d exceeds %d", newLength, MaxLength)
	}
	cps, knots := elevateArrays(work.order, work.knots, work.controlPoints, t, segments)
	this.order = targetOrder
	this.knotType = Custom
	this.replace(cps, knots)
	tracer().Debugf("%s: order %d, length %d", op, targetOrder, len(cps))
	return nil
}

//
// Elevate the degree of a clamped curve by t
// (corresponds to algorithm A5.9 from The NURBS book, Piegl & Tiller 2nd edition).
// The curve is decomposed into Bezier segments on the fly; segments is the
// number of non-empty spans.
//
func elevateArrays(order int, knots KnotVec, controlPoints []HomoPoint, t, segments int) ([]HomoPoint, KnotVec) {
	degree := order - 1
	n := len(controlPoints) - 1
	m := n + degree + 1
	ph := degree + t
	ph2 := ph / 2

	// coefficients for degree elevating the Bezier segments
	bezalfs := make([][]float64, ph+1)
	for i := range bezalfs {
		bezalfs[i] = make([]float64, degree+1)
	}
	bezalfs[0][0] = 1.0
	bezalfs[ph][degree] = 1.0

	for i := 1; i <= ph2; i++ {
		inv := 1.0 / Binomial(ph, i)
		mpi := imin(degree, i)
		for j := imax(0, i-t); j <= mpi; j++ {
			bezalfs[i][j] = inv * Binomial(degree, j) * Binomial(t, i-j)
		}
	}
	for i := ph2 + 1; i <= ph-1; i++ {
		mpi := imin(degree, i)
		for j := imax(0, i-t); j <= mpi; j++ {
			bezalfs[i][j] = bezalfs[ph-i][degree-j]
		}
	}

	nh := n + t*segments
	controlPointsPost := make([]HomoPoint, nh+1)
	knotsPost := make(KnotVec, nh+ph+2)

	bpts := make([]HomoPoint, degree+1)
	ebpts := make([]HomoPoint, ph+1)
	nextbpts := make([]HomoPoint, imax(degree-1, 1))
	alfs := make([]float64, imax(degree-1, 1))

	mh := ph
	kind := ph + 1
	r := -1
	a := degree
	b := degree + 1
	cind := 1
	ua := knots[0]

	controlPointsPost[0] = controlPoints[0]
	for i := 0; i <= ph; i++ {
		knotsPost[i] = ua
	}
	copy(bpts, controlPoints[:degree+1])

	for b < m {
		i := b
		for b < m && math.Abs(knots[b]-knots[b+1]) < Epsilon {
			b++
		}
		mul := b - i + 1
		mh += mul + t
		ub := knots[b]
		oldr := r
		r = degree - mul

		lbz := 1
		if oldr > 0 {
			lbz = (oldr + 2) / 2
		}
		rbz := ph
		if r > 0 {
			rbz = ph - (r+1)/2
		}

		// insert knot ub r times
		if r > 0 {
			numer := ub - ua
			for k := degree; k > mul; k-- {
				alfs[k-mul-1] = numer / (knots[a+k] - ua)
			}
			for j := 1; j <= r; j++ {
				save := r - j
				s := mul + j
				for k := degree; k >= s; k-- {
					bpts[k] = HomoInterpolated(&bpts[k-1], &bpts[k], alfs[k-s])
				}
				nextbpts[save] = bpts[degree]
			}
		}

		// degree elevate the Bezier segment
		for i := lbz; i <= ph; i++ {
			ebpts[i] = HomoPoint{}
			mpi := imin(degree, i)
			for j := imax(0, i-t); j <= mpi; j++ {
				scaled := bpts[j].Scaled(bezalfs[i][j])
				ebpts[i].Add(&scaled)
			}
		}

		// remove knot ua oldr-1 times
		if oldr > 1 {
			first := kind - 2
			last := kind
			den := ub - ua
			bet := (ub - knotsPost[kind-1]) / den
			for tr := 1; tr < oldr; tr++ {
				i := first
				j := last
				kj := j - kind + 1
				for j-i > tr {
					if i < cind {
						alf := (ub - knotsPost[i]) / (ua - knotsPost[i])
						controlPointsPost[i] = HomoInterpolated(&controlPointsPost[i-1], &controlPointsPost[i], alf)
					}
					if j >= lbz {
						if j-tr <= kind-ph+oldr {
							gam := (ub - knotsPost[j-tr]) / den
							ebpts[kj] = HomoInterpolated(&ebpts[kj+1], &ebpts[kj], gam)
						} else {
							ebpts[kj] = HomoInterpolated(&ebpts[kj+1], &ebpts[kj], bet)
						}
					}
					i++
					j--
					kj--
				}
				first--
				last++
			}
		}

		// load the knot ua
		if a != degree {
			for i := 0; i < ph-oldr; i++ {
				knotsPost[kind] = ua
				kind++
			}
		}

		// load control points into controlPointsPost
		for j := lbz; j <= rbz; j++ {
			controlPointsPost[cind] = ebpts[j]
			cind++
		}

		if b < m {
			// set up for the next pass through the loop
			for j := 0; j < r; j++ {
				bpts[j] = nextbpts[j]
			}
			for j := r; j <= degree; j++ {
				bpts[j] = controlPoints[b-degree+j]
			}
			a = b
			b++
			ua = ub
		} else {
			// end knot
			for i := 0; i <= ph; i++ {
				knotsPost[kind+i] = ub
			}
		}
	}

	return controlPointsPost, knotsPost
}

// ReduceDegree lowers the order of the curve by one, fitting a curve of the
// lower order to the original in the least squares sense. The maximum
// deviation found while sampling both curves is returned. If it exceeds
// tolerance the curve is left unchanged and the error is of kind
// ToleranceExceeded. Tolerance is a ceiling; the achieved deviation is what
// the fit delivers.
func (this *NurbsCurve) ReduceDegree(tolerance float64) (float64, error) {
	const op = "ReduceDegree"
	if this.order < 3 {
		return 0, newError(op, OrderTooLow, "cannot reduce order %d", this.order)
	}
	if tolerance < 0 || math.IsNaN(tolerance) {
		return 0, newError(op, InvalidArgument, "tolerance %g", tolerance)
	}
	work := this
	if !this.knots.IsClampedStart(this.order) || !this.knots.IsClampedEnd(this.order) {
		work = this.Clone()
		if err := work.Clamp(ClampBoth); err != nil {
			return 0, err
		}
	}
	cps, knots, err := work.reducedArrays()
	if err != nil {
		return 0, err
	}
	reduced := newCurveUnchecked(work.order-1, Custom, cps, knots)
	deviation := maxDeviation(work, reduced, 4*(len(cps)+work.order))
	if deviation > tolerance {
		return deviation, newError(op, ToleranceExceeded, "deviation %g exceeds tolerance %g", deviation, tolerance)
	}
	knotType := this.knotType
	this.order = reduced.order
	this.replace(cps, knots)
	this.knotType = Custom
	if knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("%s: order %d, length %d, deviation %g", op, this.order, len(cps), deviation)
	return deviation, nil
}

// reducedArrays fits control points of order-1 to a clamped curve. The
// end points are kept; interior points solve a least squares problem on
// the homogeneous coordinates of samples along every span.
func (this *NurbsCurve) reducedArrays() ([]HomoPoint, KnotVec, error) {
	order := this.order - 1
	p := order - 1
	min, max := this.Domain()

	knots := make(KnotVec, 0, len(this.knots))
	for i := 0; i < order; i++ {
		knots = append(knots, min)
	}
	var params []float64
	prev := min
	for _, km := range this.knots.InteriorMultiplicities(this.order) {
		for i := 0; i < imax(1, km.Mult-1); i++ {
			knots = append(knots, km.Knot)
		}
		params = appendSpanSamples(params, prev, km.Knot, this.order+2)
		prev = km.Knot
	}
	params = appendSpanSamples(params, prev, max, this.order+2)
	params = append(params, max)
	for i := 0; i < order; i++ {
		knots = append(knots, max)
	}
	length := len(knots) - order

	cps := make([]HomoPoint, length)
	cps[0] = this.controlPoints[0]
	cps[length-1] = this.controlPoints[len(this.controlPoints)-1]
	unknowns := length - 2
	if unknowns == 0 {
		return cps, knots, nil
	}
	if len(params) < unknowns {
		return nil, nil, newError("ReduceDegree", DegenerateInput, "%d samples for %d control points", len(params), unknowns)
	}

	A := mat.NewDense(len(params), unknowns, nil)
	B := mat.NewDense(len(params), 4, nil)
	for row, u := range params {
		span := knots.SpanGivenN(length-1, p, u)
		basis := BasisFunctions(span, u, p, knots)
		target := this.nonRationalPoint(u)
		for j, N := range basis {
			col := span - p + j
			switch {
			case col == 0:
				scaled := cps[0].Scaled(N)
				target.Sub(&scaled)
			case col == length-1:
				scaled := cps[length-1].Scaled(N)
				target.Sub(&scaled)
			default:
				A.Set(row, col-1, N)
			}
		}
		B.Set(row, 0, target.Vec3[0])
		B.Set(row, 1, target.Vec3[1])
		B.Set(row, 2, target.Vec3[2])
		B.Set(row, 3, target.W)
	}

	var X mat.Dense
	if err := X.Solve(A, B); err != nil {
		return nil, nil, newError("ReduceDegree", DegenerateInput, "least squares fit failed: %v", err)
	}
	for i := 0; i < unknowns; i++ {
		w := X.At(i, 3)
		if w < Epsilon {
			return nil, nil, newError("ReduceDegree", DegenerateInput, "fitted weight %g at %d", w, i+1)
		}
		cps[i+1] = HomoPoint{Vec3: vec3.T{X.At(i, 0), X.At(i, 1), X.At(i, 2)}, W: w}
	}
	return cps, knots, nil
}

// appendSpanSamples appends n parameters spaced evenly over [a, b),
// starting at a.
func appendSpanSamples(params []float64, a, b float64, n int) []float64 {
	for i := 0; i < n; i++ {
		params = append(params, a+(b-a)*float64(i)/float64(n))
	}
	return params
}

// maxDeviation samples two curves over their common domain and returns
// the largest distance between corresponding points.
func maxDeviation(a, b *NurbsCurve, samples int) float64 {
	var deviation float64
	for _, s := range a.Sample(samples) {
		pt := b.Point(s.U)
		deviation = math.Max(deviation, vec3.Distance(&pt, &s.Pt))
	}
	return deviation
}

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
