package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Concatenate joins curves of equal order into one new curve. Curves whose
// ends meet share the junction point. Gaps are bridged by fillets if
// fillGaps is set (see FillGap for tangentScale); otherwise the curve is
// discontinuous there. With closed set, the last curve is connected back
// to the first one, by a fillet or by a straight segment.
//
// knotType Custom keeps the parametrization of every input curve, shifted
// to follow its predecessor. knotType NURB assigns uniform knots to the
// joined control points.
func Concatenate(curves []*NurbsCurve, closed bool, knotType KnotType, fillGaps bool, tangentScale float64) (*NurbsCurve, error) {
	const op = "Concatenate"
	if len(curves) == 0 {
		return nil, newError(op, InvalidArgument, "no curves")
	}
	if knotType != Custom && knotType != NURB {
		return nil, newError(op, InvalidArgument, "cannot concatenate with %s knots", knotType)
	}
	order := 0
	for i, c := range curves {
		if c == nil {
			return nil, newError(op, InvalidArgument, "curve %d is nil", i)
		}
		if i == 0 {
			order = c.order
		} else if c.order != order {
			return nil, newError(op, OrderMismatch, "curve %d has order %d, curve 0 has order %d", i, c.order, order)
		}
	}

	parts := make([]*NurbsCurve, 0, 2*len(curves))
	for i, c := range curves {
		clamped := c.Clone()
		if err := clamped.Clamp(ClampBoth); err != nil {
			return nil, err
		}
		if fillGaps && i > 0 {
			fillet, err := FillGap(order, tangentScale, parts[len(parts)-1], clamped)
			if err != nil {
				return nil, err
			}
			if fillet != nil {
				parts = append(parts, fillet)
			}
		}
		parts = append(parts, clamped)
	}
	if closed {
		last, first := parts[len(parts)-1], parts[0]
		var closing *NurbsCurve
		var err error
		if fillGaps {
			closing, err = FillGap(order, tangentScale, last, first)
		} else if start, end := first.controlPoints[0], last.controlPoints[len(last.controlPoints)-1]; !pointsMeet(&end, &start) {
			closing, err = segmentCurve(order, end.Dehomogenized(), start.Dehomogenized())
		}
		if err != nil {
			return nil, err
		}
		if closing != nil {
			parts = append(parts, closing)
		}
	}

	cps, knots := parts[0].controlPoints, parts[0].knots
	for _, next := range parts[1:] {
		cps, knots = joinArrays(order, cps, knots, next.controlPoints, next.knots)
	}
	if len(cps) > MaxLength {
		return nil, newError(op, AllocationFailure, "length %d exceeds %d", len(cps), MaxLength)
	}
	if knotType == NURB {
		var err error
		if knots, err = generateKnots(NURB, order, len(cps), cps); err != nil {
			return nil, err
		}
	}
	result := newCurveUnchecked(order, knotType, append([]HomoPoint(nil), cps...), knots.Clone())
	if err := result.Validate(); err != nil {
		return nil, err
	}
	tracer().Debugf("%s: %d curves into %s curve of length %d", op, len(curves), result.class, len(cps))
	return result, nil
}

// joinArrays appends the clamped curve (cpsB, knotsB) to the clamped curve
// (cpsA, knotsA). Meeting ends are merged into one control point, after
// scaling the homogeneous points of B to the weight of A's end point.
func joinArrays(order int, cpsA []HomoPoint, knotsA KnotVec, cpsB []HomoPoint, knotsB KnotVec) ([]HomoPoint, KnotVec) {
	endA := cpsA[len(cpsA)-1]
	startB := cpsB[0]
	shift := knotsA[len(knotsA)-1] - knotsB[0]

	cps := make([]HomoPoint, 0, len(cpsA)+len(cpsB))
	cps = append(cps, cpsA...)
	knots := make(KnotVec, 0, len(knotsA)+len(knotsB))
	if pointsMeet(&endA, &startB) {
		f := endA.W / startB.W
		for _, cp := range cpsB[1:] {
			cps = append(cps, cp.Scaled(f))
		}
		knots = append(knots, knotsA[:len(knotsA)-1]...)
	} else {
		cps = append(cps, cpsB...)
		knots = append(knots, knotsA...)
	}
	for _, k := range knotsB[order:] {
		knots = append(knots, k+shift)
	}
	return cps, knots
}

func pointsMeet(a, b *HomoPoint) bool {
	pa, pb := a.Dehomogenized(), b.Dehomogenized()
	return vec3.Distance(&pa, &pb) <= Epsilon
}

// segmentCurve is the straight line from a to b as a clamped curve of the
// given order with evenly spaced control points.
func segmentCurve(order int, a, b vec3.T) (*NurbsCurve, error) {
	cps := make([]HomoPoint, order)
	for i := range cps {
		t := float64(i) / float64(order-1)
		cps[i] = Homogenized(vec3.Interpolate(&a, &b, t), 1)
	}
	knots, err := generateKnots(Bezier, order, order, cps)
	if err != nil {
		return nil, err
	}
	return newCurveUnchecked(order, Bezier, cps, knots), nil
}

// FillGap builds a fillet leading from the end of a to the start of b,
// matching the end tangents of both curves. A non-zero tangentScale builds
// a G1 cubic whose inner control points lie tangentScale times the gap
// width along the tangents. A zero tangentScale builds a C1 cubic
// whose derivatives equal those of a and b, parametrized over the gap
// width divided by the mean speed. The fillet is then brought to
// orderTarget. If the curves already meet, nil is returned.
func FillGap(orderTarget int, tangentScale float64, a, b *NurbsCurve) (*NurbsCurve, error) {
	const op = "FillGap"
	if a == nil || b == nil {
		return nil, newError(op, InvalidArgument, "missing curve")
	}
	if orderTarget < 2 {
		return nil, newError(op, OrderTooLow, "order %d", orderTarget)
	}
	_, amax := a.Domain()
	bmin, _ := b.Domain()
	endA := a.Derivatives(amax, 1)
	startB := b.Derivatives(bmin, 1)
	p0, ta := endA[0], endA[1]
	p1, tb := startB[0], startB[1]
	gap := vec3.Distance(&p0, &p1)
	if gap <= Epsilon {
		return nil, nil
	}

	chord := vec3.Sub(&p1, &p0)
	if ta.Length() < Epsilon {
		ta = chord
	}
	if tb.Length() < Epsilon {
		tb = chord
	}

	h := 1.0
	var d0, d1 vec3.T
	speed := (ta.Length() + tb.Length()) / 2
	if tangentScale == 0 && speed > Epsilon {
		h = gap / speed
		d0, d1 = ta.Scaled(h/3), tb.Scaled(h/3)
	} else {
		if tangentScale == 0 {
			tangentScale = 1.0 / 3.0
		}
		d0 = ta.Normalized()
		d0.Scale(tangentScale * gap)
		d1 = tb.Normalized()
		d1.Scale(tangentScale * gap)
	}
	cps := []HomoPoint{
		Homogenized(p0, 1),
		Homogenized(vec3.Add(&p0, &d0), 1),
		Homogenized(vec3.Sub(&p1, &d1), 1),
		Homogenized(p1, 1),
	}
	knots := KnotVec{0, 0, 0, 0, h, h, h, h}
	fillet := newCurveUnchecked(4, Custom, cps, knots)

	switch {
	case orderTarget > 4:
		if err := fillet.ElevateDegree(orderTarget); err != nil {
			return nil, err
		}
	case orderTarget < 4:
		for fillet.order > orderTarget {
			if _, err := fillet.ReduceDegree(math.Inf(1)); err != nil {
				return nil, err
			}
		}
	}
	fillet.knotType = Custom
	tracer().Debugf("%s: gap %g bridged by order %d fillet", op, gap, fillet.order)
	return fillet, nil
}
