package ncurve

import (
	. "github.com/alexozer/ncurve/internal"
)

// Split cuts the curve at u into two new curves. With relative set, u is
// given in [0, 1] and mapped onto the domain. u must lie strictly inside
// the domain. Both halves are clamped, carry Custom knots and share no
// arrays with the source curve, which is left unchanged.
func (this *NurbsCurve) Split(u float64, relative bool) (*NurbsCurve, *NurbsCurve, error) {
	const op = "Split"
	if relative {
		u = this.relativeParam(u)
	}
	min, max := this.Domain()
	if !(u > min+Epsilon && u < max-Epsilon) {
		return nil, nil, newError(op, OutOfRange, "u=%g not inside (%g, %g)", u, min, max)
	}

	work := this.Clone()
	if err := work.Clamp(ClampBoth); err != nil {
		return nil, nil, err
	}
	p := work.order - 1
	cps, knots := work.controlPoints, work.knots
	s := knots.MultiplicityOf(u)

	var cpsA, cpsB []HomoPoint
	var knotsA, knotsB KnotVec
	if s >= work.order {
		// already discontinuous at u
		first, _ := knots.Run(u)
		cpsA = append([]HomoPoint(nil), cps[:first]...)
		knotsA = append(KnotVec(nil), knots[:first+work.order]...)
		cpsB = append([]HomoPoint(nil), cps[first:]...)
		knotsB = append(KnotVec(nil), knots[first:]...)
	} else {
		if s < p {
			cps, knots = insertKnotArrays(work.order, knots, cps, u, p-s)
		}
		first, last := knots.Run(u)
		u = knots[first]
		cpsA = append([]HomoPoint(nil), cps[:first]...)
		knotsA = append(append(KnotVec(nil), knots[:last+1]...), u)
		cpsB = append([]HomoPoint(nil), cps[first-1:]...)
		knotsB = append(KnotVec{u}, knots[first:]...)
	}

	a := newCurveUnchecked(work.order, Custom, cpsA, knotsA)
	b := newCurveUnchecked(work.order, Custom, cpsB, knotsB)
	tracer().Debugf("%s: at u=%g into %d + %d control points", op, u, len(cpsA), len(cpsB))
	return a, b, nil
}

// ExtractSubcurve returns a new curve tracing the part of this curve
// between umin and umax, given in [0, 1] if relative is set.
func (this *NurbsCurve) ExtractSubcurve(umin, umax float64, relative bool) (*NurbsCurve, error) {
	const op = "ExtractSubcurve"
	if relative {
		umin, umax = this.relativeParam(umin), this.relativeParam(umax)
	}
	if umin >= umax {
		return nil, newError(op, InvalidArgument, "empty range [%g, %g]", umin, umax)
	}
	min, max := this.Domain()
	if umin < min-Epsilon || umax > max+Epsilon {
		return nil, newError(op, OutOfRange, "[%g, %g] exceeds domain [%g, %g]", umin, umax, min, max)
	}
	sub := this
	if umin > min+Epsilon {
		_, b, err := this.Split(umin, false)
		if err != nil {
			return nil, err
		}
		sub = b
	}
	if umax < max-Epsilon {
		a, _, err := sub.Split(umax, false)
		if err != nil {
			return nil, err
		}
		sub = a
	}
	if sub == this {
		sub = this.Clone()
		if err := sub.Clamp(ClampBoth); err != nil {
			return nil, err
		}
		sub.knotType = Custom
	}
	return sub, nil
}
