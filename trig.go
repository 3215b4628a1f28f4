package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Determine if three points form a straight line within a given tolerance
// for their 2 * squared area
//
//          * p2
//         / \
//        /   \
//       /     \
//      /       \
//     * p1 ---- * p3
//
// The area metric is 2 * the squared norm of the cross product of two
// edges, requiring no square roots and no divisions.
func threePointsAreCollinear(p1, p2, p3 *vec3.T, tol float64) bool {
	p2mp1 := vec3.Sub(p2, p1)
	p3mp1 := vec3.Sub(p3, p1)
	norm := vec3.Cross(&p2mp1, &p3mp1)
	area := vec3.Dot(&norm, &norm)

	return area < tol
}

// segmentClosestPoint finds the point of segment [segpt0, segpt1] closest
// to pt, together with its parameter interpolated between u0 and u1.
func segmentClosestPoint(pt, segpt0, segpt1 *vec3.T, u0, u1 float64) CurvePoint {
	dif := vec3.Sub(segpt1, segpt0)
	l := dif.Length()

	if l < Epsilon {
		return CurvePoint{u0, *segpt0}
	}

	o := segpt0
	r := dif.Normalize()
	o2pt := vec3.Sub(pt, o)
	do2ptr := vec3.Dot(&o2pt, r)

	if do2ptr < 0 {
		return CurvePoint{u0, *segpt0}
	} else if do2ptr > l {
		return CurvePoint{u1, *segpt1}
	}

	return CurvePoint{
		u0 + (u1-u0)*do2ptr/l,
		vec3.Add(o, r.Scale(do2ptr)),
	}
}

// leftNormal is the unit normal left of the XY projection of the edge
// from a to b. ok is false for edges of zero projected length.
func leftNormal(a, b *vec3.T) (n vec3.T, ok bool) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l := math.Hypot(dx, dy)
	if l < Epsilon {
		return vec3.Zero, false
	}
	return vec3.T{-dy / l, dx / l, 0}, true
}

// intersectLines intersects the XY projections of the lines p0 + s*e0 and
// p1 + t*e1. ok is false for parallel lines.
func intersectLines(p0, e0, p1, e1 *vec3.T) (x vec3.T, ok bool) {
	det := e0[0]*e1[1] - e0[1]*e1[0]
	if math.Abs(det) < Epsilon*Epsilon {
		return vec3.Zero, false
	}
	bx, by := p1[0]-p0[0], p1[1]-p0[1]
	var s float64
	if math.Abs(e0[0]) >= math.Abs(e0[1]) {
		s, _ = Mat2Solve(e0[0], -e1[0], e0[1], -e1[1], bx, by)
	} else {
		s, _ = Mat2Solve(e0[1], -e1[1], e0[0], -e1[0], by, bx)
	}
	x = e0.Scaled(s)
	x.Add(p0)
	return x, true
}
