package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// The zero value for BoundingBox is ready to use
type BoundingBox struct {
	Min, Max    vec3.T
	initialized bool
}

// Add expands the box to contain point. An empty box becomes the point.
func (this *BoundingBox) Add(point *vec3.T) *BoundingBox {
	if !this.initialized {
		this.Min, this.Max = *point, *point
		this.initialized = true
		return this
	}
	for i, val := range point {
		if val > this.Max[i] {
			this.Max[i] = val
		}
		if val < this.Min[i] {
			this.Min[i] = val
		}
	}
	return this
}

func (this *BoundingBox) AddRange(points []vec3.T) *BoundingBox {
	for i := range points {
		this.Add(&points[i])
	}
	return this
}

// Empty reports whether no point was added yet.
func (this *BoundingBox) Empty() bool {
	return !this.initialized
}

// Contains determines if point lies in the box, grown by tol.
func (this *BoundingBox) Contains(point *vec3.T, tol float64) bool {
	if !this.initialized {
		return false
	}
	return this.Intersects(new(BoundingBox).Add(point), tol)
}

func intervalsOverlap(a1, a2, b1, b2 float64, tol float64) bool {
	x1, x2 := math.Min(a1, a2)-tol, math.Max(a1, a2)+tol
	y1, y2 := math.Min(b1, b2)-tol, math.Max(b1, b2)+tol
	return x1 <= y2 && y1 <= x2
}

// Intersects determines if this bounding box intersects with another.
func (this *BoundingBox) Intersects(bb *BoundingBox, tol float64) bool {
	if !this.initialized || !bb.initialized {
		return false
	}
	for i := range this.Min {
		if !intervalsOverlap(this.Min[i], this.Max[i], bb.Min[i], bb.Max[i], tol) {
			return false
		}
	}
	return true
}

// AxisLength returns the extent along axis i (between 0 and 2), 0 for other
// indices.
func (this *BoundingBox) AxisLength(i int) float64 {
	if i < 0 || i > len(this.Min)-1 {
		return 0
	}
	return math.Abs(this.Min[i] - this.Max[i])
}

// BoundingBox returns the box around the control points. By the convex
// hull property it contains the curve.
func (this *NurbsCurve) BoundingBox() BoundingBox {
	var bb BoundingBox
	bb.AddRange(Dehomogenize1d(this.controlPoints))
	return bb
}

// HullsOverlap reports whether the control point boxes of two curves
// overlap within tol. Curves whose boxes are disjoint cannot intersect.
func (this *NurbsCurve) HullsOverlap(other *NurbsCurve, tol float64) bool {
	a, b := this.BoundingBox(), other.BoundingBox()
	return a.Intersects(&b, tol)
}
