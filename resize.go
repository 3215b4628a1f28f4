package ncurve

import (
	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Resize changes the number of control points to newLength. Growing
// distributes the new points over the edges of the control polygon, longest
// edges first; shrinking truncates. The shape is not preserved. The knot
// vector is regenerated for the new length, with Custom knots becoming
// NURB knots. Closed and periodic curves are closed again afterwards.
func (this *NurbsCurve) Resize(newLength int) error {
	const op = "Resize"
	class := this.class
	ops, _ := class.ops()
	if newLength < ops.minLength(this.order) {
		return newError(op, OrderTooLow, "length %d below %d for a %s curve of order %d", newLength, ops.minLength(this.order), class, this.order)
	}
	if newLength > MaxLength {
		return newError(op, AllocationFailure, "length %d exceeds %d", newLength, MaxLength)
	}
	if newLength == len(this.controlPoints) {
		return nil
	}
	var cps []HomoPoint
	if newLength > len(this.controlPoints) {
		cps = grownPolygon(this.controlPoints, newLength-len(this.controlPoints))
	} else {
		cps = append([]HomoPoint(nil), this.controlPoints[:newLength]...)
	}
	kt := this.knotType
	if kt == Custom {
		kt = NURB
	}
	knots, err := generateKnots(kt, this.order, newLength, cps)
	if err != nil {
		kt = NURB
		if knots, err = generateKnots(kt, this.order, newLength, cps); err != nil {
			return err
		}
	}
	this.knotType = kt
	this.replace(cps, knots)
	tracer().Debugf("%s: length %d", op, newLength)
	return this.reclose(class)
}

// grownPolygon inserts extra points into the edges of a control polygon.
// Each point goes to the edge whose pieces would stay longest, ties going
// to the earliest edge; within an edge the points are spaced evenly.
func grownPolygon(cps []HomoPoint, extra int) []HomoPoint {
	pts := Dehomogenize1d(cps)
	edges := len(cps) - 1
	lengths := make([]float64, edges)
	for i := range lengths {
		lengths[i] = vec3.Distance(&pts[i], &pts[i+1])
	}
	counts := make([]int, edges)
	for k := 0; k < extra; k++ {
		best := 0
		for i := 1; i < edges; i++ {
			if lengths[i]/float64(counts[i]+1) > lengths[best]/float64(counts[best]+1) {
				best = i
			}
		}
		counts[best]++
	}

	result := make([]HomoPoint, 0, len(cps)+extra)
	for i := 0; i < edges; i++ {
		result = append(result, cps[i])
		for j := 1; j <= counts[i]; j++ {
			t := float64(j) / float64(counts[i]+1)
			pt := vec3.Interpolate(&pts[i], &pts[i+1], t)
			w := (1-t)*cps[i].W + t*cps[i+1].W
			result = append(result, Homogenized(pt, w))
		}
	}
	return append(result, cps[edges])
}
