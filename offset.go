package ncurve

import (
	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// OffsetMode selects how Offset displaces control points.
type OffsetMode int

const (
	// OffsetPoint moves each control point along the mean normal of its
	// two control polygon edges.
	OffsetPoint OffsetMode = iota
	// OffsetSection intersects the offset lines of consecutive edges.
	OffsetSection
	// OffsetHybrid averages the OffsetPoint and OffsetSection results.
	OffsetHybrid
	// OffsetNormalField moves control points along the attached normals.
	OffsetNormalField
)

func (mode OffsetMode) String() string {
	switch mode {
	case OffsetPoint:
		return "point"
	case OffsetSection:
		return "section"
	case OffsetHybrid:
		return "hybrid"
	case OffsetNormalField:
		return "normal field"
	}
	return "OffsetMode(?)"
}

// Offset builds a new curve whose control points are displaced by distance
// from those of this curve. All modes but OffsetNormalField work on the
// XY projection of the control polygon, positive distances offsetting to
// the left of the direction of travel. The new curve keeps order, knots,
// knot type and weights.
func (this *NurbsCurve) Offset(mode OffsetMode, distance float64) (*NurbsCurve, error) {
	const op = "Offset"
	if mode != OffsetNormalField {
		if bb := this.BoundingBox(); bb.AxisLength(0) < Epsilon && bb.AxisLength(1) < Epsilon {
			return nil, newError(op, DegenerateInput, "control polygon has no extent in the XY plane")
		}
	}
	var pts []vec3.T
	var err error
	switch mode {
	case OffsetPoint:
		pts, err = this.pointOffset(op, distance)
	case OffsetSection:
		pts, err = this.sectionOffset(op, distance)
	case OffsetHybrid:
		var section []vec3.T
		if pts, err = this.pointOffset(op, distance); err != nil {
			return nil, err
		}
		if section, err = this.sectionOffset(op, distance); err != nil {
			return nil, err
		}
		for i := range pts {
			pts[i] = vec3.Interpolate(&pts[i], &section[i], 0.5)
		}
	case OffsetNormalField:
		pts, err = this.normalFieldOffset(op, distance)
	default:
		return nil, newError(op, InvalidArgument, "offset mode %d", mode)
	}
	if err != nil {
		return nil, err
	}
	cps := make([]HomoPoint, len(pts))
	for i, pt := range pts {
		cps[i] = Homogenized(pt, this.controlPoints[i].W)
	}
	result := newCurveUnchecked(this.order, this.knotType, cps, this.knots.Clone())
	tracer().Debugf("%s: %s mode, distance %g, %s curve", op, mode, distance, result.class)
	return result, nil
}

// offsetPolygon returns the distinct control points, and whether the
// polygon wraps around.
func (this *NurbsCurve) offsetPolygon() ([]vec3.T, bool) {
	pts := Dehomogenize1d(this.controlPoints)
	wrapped := this.class.wrapped(this.order)
	return pts[:len(pts)-wrapped], this.class != Open
}

// rewrapped appends the copies of the leading points a closed or periodic
// curve repeats at its end.
func (this *NurbsCurve) rewrapped(distinct []vec3.T) []vec3.T {
	for i := 0; i < this.class.wrapped(this.order); i++ {
		distinct = append(distinct, distinct[i])
	}
	return distinct
}

// neighbors returns the indices before and after i, -1 where an open
// polygon ends.
func neighbors(i, n int, cyclic bool) (prev, next int) {
	prev, next = i-1, i+1
	if cyclic {
		prev, next = (i+n-1)%n, (i+1)%n
	} else if next == n {
		next = -1
	}
	return
}

func (this *NurbsCurve) pointOffset(op string, distance float64) ([]vec3.T, error) {
	pts, cyclic := this.offsetPolygon()
	n := len(pts)
	result := make([]vec3.T, n)
	for i := range pts {
		prev, next := neighbors(i, n, cyclic)
		var sum vec3.T
		count := 0
		if prev >= 0 {
			if nrm, ok := leftNormal(&pts[prev], &pts[i]); ok {
				sum.Add(&nrm)
				count++
			}
		}
		if next >= 0 {
			if nrm, ok := leftNormal(&pts[i], &pts[next]); ok {
				sum.Add(&nrm)
				count++
			}
		}
		if count == 0 || sum.Length() < Epsilon {
			nrm, ok := this.fallbackNormal(pts, i, cyclic)
			if !ok {
				return nil, newError(op, DegenerateInput, "no edge direction at control point %d", i)
			}
			sum = nrm
		}
		sum.Normalize()
		result[i] = vec3.Add(&pts[i], sum.Scale(distance))
	}
	return this.rewrapped(result), nil
}

// fallbackNormal returns the normal of the non-degenerate edge nearest to
// control point i.
func (this *NurbsCurve) fallbackNormal(pts []vec3.T, i int, cyclic bool) (vec3.T, bool) {
	n := len(pts)
	for d := 0; d < n; d++ {
		for _, k := range []int{i + d, i - 1 - d} {
			if cyclic {
				k = (k + n) % n
			} else if k < 0 || k+1 >= n {
				continue
			}
			if nrm, ok := leftNormal(&pts[k], &pts[(k+1)%n]); ok {
				return nrm, true
			}
		}
	}
	return vec3.Zero, false
}

func (this *NurbsCurve) sectionOffset(op string, distance float64) ([]vec3.T, error) {
	pts, cyclic := this.offsetPolygon()
	point, err := this.pointOffset(op, distance)
	if err != nil {
		return nil, err
	}
	n := len(pts)
	result := make([]vec3.T, n)
	for i := range pts {
		result[i] = point[i]
		prev, next := neighbors(i, n, cyclic)
		if prev < 0 || next < 0 {
			continue
		}
		if threePointsAreCollinear(&pts[prev], &pts[i], &pts[next], Epsilon*Epsilon) {
			continue
		}
		n0, ok0 := leftNormal(&pts[prev], &pts[i])
		n1, ok1 := leftNormal(&pts[i], &pts[next])
		if !ok0 || !ok1 {
			continue
		}
		a0 := vec3.Add(&pts[prev], n0.Scale(distance))
		a1 := vec3.Add(&pts[i], n1.Scale(distance))
		e0 := vec3.Sub(&pts[i], &pts[prev])
		e1 := vec3.Sub(&pts[next], &pts[i])
		e0[2], e1[2] = 0, 0
		if x, ok := intersectLines(&a0, &e0, &a1, &e1); ok {
			x[2] = pts[i][2]
			result[i] = x
		}
	}
	return this.rewrapped(result), nil
}

func (this *NurbsCurve) normalFieldOffset(op string, distance float64) ([]vec3.T, error) {
	if this.normals == nil {
		return nil, newError(op, NoNormalField, "curve carries no normals")
	}
	pts := Dehomogenize1d(this.controlPoints)
	for i := range pts {
		nrm := this.normals[i]
		if nrm.Length() < Epsilon {
			return nil, newError(op, DegenerateInput, "zero normal at control point %d", i)
		}
		nrm.Normalize()
		pts[i].Add(nrm.Scale(distance))
	}
	return pts, nil
}
