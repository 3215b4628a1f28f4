package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"
)

// MultipleGroups records which control points of a curve coincide. Each
// group is a run of consecutive control point indices sharing their
// coordinates and weight. Groups refer to the control point array of the
// curve version they were computed for.
type MultipleGroups struct {
	version uint64
	groups  [][]int
}

// Groups returns the groups of coincident indices.
func (g *MultipleGroups) Groups() [][]int {
	result := make([][]int, len(g.groups))
	for i, group := range g.groups {
		result[i] = append([]int(nil), group...)
	}
	return result
}

// Valid reports whether the groups still describe the control points of c.
func (g *MultipleGroups) Valid(c *NurbsCurve) bool {
	return g != nil && c != nil && g.version == c.version
}

// GroupOf returns the indices coinciding with index i, including i.
func (g *MultipleGroups) GroupOf(i int) []int {
	for _, group := range g.groups {
		if i >= group[0] && i <= group[len(group)-1] {
			return append([]int(nil), group...)
		}
	}
	return []int{i}
}

// RecomputeMultipleGroups scans the control points for runs of coincident
// points, replacing any previous grouping. Call it after modifying control
// points outside of this package.
func (this *NurbsCurve) RecomputeMultipleGroups(eps float64) *MultipleGroups {
	this.version++
	g := &MultipleGroups{version: this.version}
	cps := this.controlPoints
	for i := 0; i < len(cps); {
		j := i + 1
		for j < len(cps) && Coincident(&cps[i], &cps[j], eps) {
			j++
		}
		if j-i > 1 {
			group := make([]int, 0, j-i)
			for k := i; k < j; k++ {
				group = append(group, k)
			}
			g.groups = append(g.groups, group)
		}
		i = j
	}
	this.multiple = g
	return g
}

// MultiplePoints returns the current groups, recomputing them with EPS if
// the control points changed since they were last computed.
func (this *NurbsCurve) MultiplePoints() *MultipleGroups {
	if !this.multiple.Valid(this) {
		return this.RecomputeMultipleGroups(Epsilon)
	}
	return this.multiple
}

// IncreaseMultiplicity adds one copy of the (possibly multiple) control
// point at index. A point that already appears order-1 times is left
// alone and false is returned. Custom knot vectors get one knot inserted
// next to the point's parameter; other knot types are regenerated.
func (this *NurbsCurve) IncreaseMultiplicity(index int) (bool, error) {
	const op = "IncreaseMultiplicity"
	if index < 0 || index >= len(this.controlPoints) {
		return false, newError(op, OutOfRange, "index %d, length %d", index, len(this.controlPoints))
	}
	group := this.MultiplePoints().GroupOf(index)
	if len(group) >= this.order-1 {
		return false, nil
	}
	class := this.class
	distinct := len(this.controlPoints) - class.wrapped(this.order)
	last := group[len(group)-1]
	if last >= distinct {
		last -= distinct
	}
	cps := make([]HomoPoint, 0, len(this.controlPoints)+1)
	cps = append(cps, this.controlPoints[:last+1]...)
	cps = append(cps, this.controlPoints[last])
	cps = append(cps, this.controlPoints[last+1:distinct]...)
	for i := 0; i < class.wrapped(this.order); i++ {
		cps = append(cps, cps[i])
	}
	knots, kt, err := this.knotsForLength(cps, func() KnotVec {
		// a new knot in the middle of the span holding the point's parameter
		u := this.greville(last)
		span := this.knots.SpanGivenN(len(this.controlPoints)-1, this.order-1, u)
		mid := (this.knots[span] + this.knots[span+1]) / 2
		return append(this.knots[:span+1:span+1], append(KnotVec{mid}, this.knots[span+1:]...)...)
	})
	if err != nil {
		return false, err
	}
	this.knotType = kt
	this.replace(cps, knots)
	if err := this.reclose(class); err != nil {
		return false, err
	}
	tracer().Debugf("%s: point %d now %d-fold", op, index, len(group)+1)
	return true, nil
}

// DecreaseMultiplicity removes one copy of the multiple control point at
// index. Single points are left alone and false is returned.
func (this *NurbsCurve) DecreaseMultiplicity(index int) (bool, error) {
	const op = "DecreaseMultiplicity"
	if index < 0 || index >= len(this.controlPoints) {
		return false, newError(op, OutOfRange, "index %d, length %d", index, len(this.controlPoints))
	}
	group := this.MultiplePoints().GroupOf(index)
	if len(group) < 2 {
		return false, nil
	}
	class := this.class
	ops, _ := class.ops()
	if len(this.controlPoints)-1 < ops.minLength(this.order) {
		return false, newError(op, OrderTooLow, "length %d cannot shrink below %d", len(this.controlPoints), ops.minLength(this.order))
	}
	distinct := len(this.controlPoints) - class.wrapped(this.order)
	last := group[len(group)-1]
	if last >= distinct {
		last -= distinct
	}
	cps := make([]HomoPoint, 0, len(this.controlPoints)-1)
	cps = append(cps, this.controlPoints[:last]...)
	cps = append(cps, this.controlPoints[last+1:distinct]...)
	for i := 0; i < class.wrapped(this.order); i++ {
		cps = append(cps, cps[i])
	}
	knots, kt, err := this.knotsForLength(cps, func() KnotVec {
		// drop the interior knot closest to the point's parameter
		u := this.greville(last)
		lo, hi := this.order, len(this.knots)-this.order-1
		best := lo
		for i := lo; i <= hi; i++ {
			if math.Abs(this.knots[i]-u) < math.Abs(this.knots[best]-u) {
				best = i
			}
		}
		return append(this.knots[:best:best], this.knots[best+1:]...)
	})
	if err != nil {
		return false, err
	}
	this.knotType = kt
	this.replace(cps, knots)
	if err := this.reclose(class); err != nil {
		return false, err
	}
	tracer().Debugf("%s: point %d now %d-fold", op, index, len(group)-1)
	return true, nil
}

// knotsForLength derives a knot vector for a changed control point array:
// Custom knot vectors are edited by custom, other knot types regenerated.
// Bezier knots fall back to NURB knots when the length does not fit.
func (this *NurbsCurve) knotsForLength(cps []HomoPoint, custom func() KnotVec) (KnotVec, KnotType, error) {
	kt := this.knotType
	if kt == Custom {
		knots := custom()
		if err := CheckKnots(len(cps), this.order, knots); err != nil {
			return nil, kt, err
		}
		return knots, kt, nil
	}
	knots, err := generateKnots(kt, this.order, len(cps), cps)
	if err != nil && kt == Bezier {
		kt = NURB
		knots, err = generateKnots(kt, this.order, len(cps), cps)
	}
	return knots, kt, err
}

// greville returns the Greville abscissa of control point i, the average
// of the degree knots following it.
func (this *NurbsCurve) greville(i int) float64 {
	p := this.order - 1
	if p == 0 {
		return this.knots[i]
	}
	var sum float64
	for j := i + 1; j <= i+p; j++ {
		sum += this.knots[j]
	}
	return sum / float64(p)
}
