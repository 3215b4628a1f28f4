package ncurve

import (
	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Extend lengthens the curve so that it ends in target. The existing part
// of the curve keeps its shape and parametrization: the end is unclamped,
// one control point is appended and placed so that the clamped curve ends
// exactly in target. The knot appended behind the phantom knots is spaced
// by the ratio of the distance to target and the arc length of the curve.
func (this *NurbsCurve) Extend(target vec3.T) error {
	const op = "Extend"
	n := len(this.controlPoints)
	if n < this.order {
		return newError(op, DegenerateInput, "length %d below order %d", n, this.order)
	}
	lastPt := this.controlPoints[n-1].Dehomogenized()
	if vec3.Distance(&lastPt, &target) <= Epsilon {
		return newError(op, DegenerateInput, "target coincides with the last control point")
	}
	if n+1 > MaxLength {
		return newError(op, AllocationFailure, "length %d exceeds %d", n+1, MaxLength)
	}
	arclen, err := this.EstimateArcLength()
	if err != nil {
		return err
	}

	work := this.Clone()
	p := work.order - 1
	for len(work.controlPoints) < 2*p {
		if err := work.RefineKnots(nil); err != nil {
			return err
		}
	}
	if err := work.Unclamp(ClampEnd); err != nil {
		return err
	}

	min, max := work.Domain()
	end := work.Point(max)
	delta := max - min
	if arclen > Epsilon {
		delta *= vec3.Distance(&end, &target) / arclen
	}
	L := len(work.controlPoints)
	knots := append(work.knots.Clone(), work.knots[len(work.knots)-1]+delta)
	cps := append(append([]HomoPoint(nil), work.controlPoints...), HomoPoint{})

	u := knots[L+1]
	basis := BasisFunctions(L, u, p, knots)
	var fixed HomoPoint
	for j := 0; j < p; j++ {
		scaled := cps[L-p+j].Scaled(basis[j])
		fixed.Add(&scaled)
	}
	alpha := basis[p]
	if alpha < Epsilon {
		return newError(op, DegenerateInput, "empty span at the end of the curve")
	}
	x := target.Scaled(fixed.W + alpha)
	x.Sub(&fixed.Vec3)
	x.Scale(1 / alpha)
	cps[L] = Homogenized(x, 1)

	if clamped, kv, ok := clampEnd(work.order, knots, cps); ok {
		cps, knots = clamped, kv
	}
	if err := CheckKnots(len(cps), work.order, knots); err != nil {
		return newError(op, DegenerateInput, "extended knot vector invalid: %v", err)
	}
	class := this.class
	this.replace(cps, knots)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("%s: to %v, %s curve now %s, length %d", op, target, class, this.class, len(cps))
	return nil
}
