package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"
)

// Coarsen removes every second control point, keeping the first and the
// last one. Custom knot vectors are thinned to match; other knot types are
// regenerated. Closed and periodic curves are coarsened on their distinct
// points and closed again. The shape is not preserved.
func (this *NurbsCurve) Coarsen() error {
	const op = "Coarsen"
	class := this.class
	wrapped := class.wrapped(this.order)
	distinct := this.controlPoints[:len(this.controlPoints)-wrapped]

	kept := make([]HomoPoint, 0, len(distinct)/2+2)
	for i := 0; i < len(distinct); i += 2 {
		kept = append(kept, distinct[i])
	}
	if class == Open && (len(distinct)-1)%2 != 0 {
		kept = append(kept, distinct[len(distinct)-1])
	}
	for i := 0; i < wrapped; i++ {
		kept = append(kept, kept[i])
	}
	ops, _ := class.ops()
	if len(kept) < ops.minLength(this.order) || len(kept) >= len(this.controlPoints) {
		return newError(op, OrderTooLow, "%s curve of order %d and length %d cannot be coarsened",
			class, this.order, len(this.controlPoints))
	}

	knots, kt, err := this.knotsForLength(kept, func() KnotVec {
		return thinnedKnots(this.knots, this.order, len(kept))
	})
	if err != nil {
		return err
	}
	this.knotType = kt
	this.replace(kept, knots)
	tracer().Debugf("%s: length now %d", op, len(kept))
	return this.reclose(class)
}

// thinnedKnots keeps the order knots at either end of knots and an evenly
// spread selection of the interior knots, for a curve of the given length.
func thinnedKnots(knots KnotVec, order, length int) KnotVec {
	interior := knots[order : len(knots)-order]
	want := length - order
	result := make(KnotVec, 0, length+order)
	result = append(result, knots[:order]...)
	for j := 0; j < want; j++ {
		k := int(math.Round(float64((j+1)*(len(interior)+1))/float64(want+1))) - 1
		result = append(result, interior[k])
	}
	return append(result, knots[len(knots)-order:]...)
}

// MakeCompatible returns copies of curves that share one order and one
// knot vector. Curves are elevated to the highest order among them,
// clamped, mapped onto a common parameter range and refined with the knots
// each one lacks. The input curves are left unchanged.
func MakeCompatible(curves []*NurbsCurve) ([]*NurbsCurve, error) {
	const op = "MakeCompatible"
	if len(curves) == 0 {
		return nil, newError(op, InvalidArgument, "no curves")
	}
	maxOrder := 0
	for i, c := range curves {
		if c == nil {
			return nil, newError(op, InvalidArgument, "curve %d is nil", i)
		}
		maxOrder = imax(maxOrder, c.order)
	}

	unified := make([]*NurbsCurve, len(curves))
	var maxSpan float64
	for i, c := range curves {
		u := c.Clone()
		if err := u.Clamp(ClampBoth); err != nil {
			return nil, err
		}
		if u.order < maxOrder {
			if err := u.ElevateDegree(maxOrder); err != nil {
				return nil, err
			}
		}
		min, max := u.knots[0], u.knots[len(u.knots)-1]
		maxSpan = math.Max(maxSpan, max-min)
		unified[i] = u
	}

	// map all knot vectors onto [0, maxSpan] and merge them
	var merged KnotVec
	for i, u := range unified {
		u.knots = u.knots.Rescaled(0, maxSpan)
		if i == 0 {
			merged = u.knots.Clone()
		} else {
			merged = merged.Union(u.knots)
		}
	}

	for _, u := range unified {
		if missing := merged.Difference(u.knots); len(missing) > 0 {
			if err := u.RefineKnots(missing); err != nil {
				return nil, err
			}
		}
		if len(u.knots) == len(merged) {
			u.knots = merged.Clone()
		}
		u.knotType = Custom
		u.refresh()
		if err := u.Validate(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("%s: %d curves of order %d share %d knots", op, len(curves), maxOrder, len(merged))
	return unified, nil
}
