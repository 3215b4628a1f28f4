package internal

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// HomoPoint is a control point in homogeneous form: the euclidean
// coordinates premultiplied by the weight, plus the weight.
type HomoPoint struct {
	Vec3 vec3.T
	W    float64
}

func (this *HomoPoint) Add(pt *HomoPoint) *HomoPoint {
	this.Vec3.Add(&pt.Vec3)
	this.W += pt.W

	return this
}

func (this *HomoPoint) Sub(pt *HomoPoint) *HomoPoint {
	this.Vec3.Sub(&pt.Vec3)
	this.W -= pt.W

	return this
}

func (this *HomoPoint) Scale(scale float64) *HomoPoint {
	this.Vec3.Scale(scale)
	this.W *= scale

	return this
}

func (this HomoPoint) Scaled(scale float64) HomoPoint {
	this.Scale(scale)
	return this
}

// Homogenized converts a euclidean point and weight into homogeneous form.
// Weights closer to zero than Epsilon are replaced by 1.
func Homogenized(pt vec3.T, w float64) HomoPoint {
	if math.Abs(w) < Epsilon {
		w = 1
	}
	return HomoPoint{pt.Scaled(w), w}
}

// Homogenize1d converts points and their weights into homogeneous
// form. A nil weights slice means all weights are 1.
func Homogenize1d(pts []vec3.T, weights []float64) []HomoPoint {
	homoPts := make([]HomoPoint, 0, len(pts))
	for i, pt := range pts {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		homoPts = append(homoPts, Homogenized(pt, w))
	}

	return homoPts
}

// Dehomogenized returns the euclidean point.
func (this *HomoPoint) Dehomogenized() vec3.T {
	return this.Vec3.Scaled(1 / this.W)
}

// Dehomogenize1d returns the euclidean points of a slice of homogeneous points.
func Dehomogenize1d(homoPoints []HomoPoint) []vec3.T {
	result := make([]vec3.T, 0, len(homoPoints))
	for _, homoPt := range homoPoints {
		result = append(result, homoPt.Dehomogenized())
	}

	return result
}

// Weight1d extracts the weights of a slice of homogeneous points.
func Weight1d(homoPoints []HomoPoint) (weights []float64) {
	weights = make([]float64, len(homoPoints))
	for i := range weights {
		weights[i] = homoPoints[i].W
	}

	return
}

// HomoInterpolated returns (1-t)*hpt0 + t*hpt1.
func HomoInterpolated(hpt0, hpt1 *HomoPoint, t float64) HomoPoint {
	return HomoPoint{
		vec3.Interpolate(&hpt0.Vec3, &hpt1.Vec3, t),
		(1-t)*hpt0.W + t*hpt1.W,
	}
}

// HomoCombined returns fa*a + fb*b.
func HomoCombined(a *HomoPoint, fa float64, b *HomoPoint, fb float64) HomoPoint {
	sa, sb := a.Vec3.Scaled(fa), b.Vec3.Scaled(fb)
	return HomoPoint{vec3.Add(&sa, &sb), fa*a.W + fb*b.W}
}

// Distance4D is the euclidean distance of two points in homogeneous space.
func Distance4D(a, b *HomoPoint) float64 {
	d := vec3.Sub(&a.Vec3, &b.Vec3)
	dw := a.W - b.W
	return math.Sqrt(vec3.Dot(&d, &d) + dw*dw)
}

// Coincident compares the euclidean coordinates and the weights of two
// points within eps.
func Coincident(a, b *HomoPoint, eps float64) bool {
	if math.Abs(a.W-b.W) > eps {
		return false
	}
	pa, pb := a.Dehomogenized(), b.Dehomogenized()
	return vec3.Distance(&pa, &pb) <= eps
}

// IsRational reports whether any weight differs from 1 by more than Epsilon.
func IsRational(homoPoints []HomoPoint) bool {
	for i := range homoPoints {
		if math.Abs(homoPoints[i].W-1) > Epsilon {
			return true
		}
	}
	return false
}
