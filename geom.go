package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Curvature returns the curvature |v×a|/|v|³ at u. Curves of order
// below 3 and points of zero velocity have curvature 0.
func (this *NurbsCurve) Curvature(u float64) (float64, error) {
	if err := this.checkParam("Curvature", u); err != nil {
		return 0, err
	}
	if this.order < 3 {
		return 0, nil
	}
	ders := this.Derivatives(u, 2)
	v, a := ders[1], ders[2]
	speed := v.Length()
	if speed < Epsilon {
		return 0, nil
	}
	cross := vec3.Cross(&v, &a)
	return cross.Length() / (speed * speed * speed), nil
}

// Torsion returns the torsion (v×a)·j/|v×a|² at u, with j the third
// derivative. Degenerate points have torsion 0.
func (this *NurbsCurve) Torsion(u float64) (float64, error) {
	if err := this.checkParam("Torsion", u); err != nil {
		return 0, err
	}
	if this.order < 3 {
		return 0, nil
	}
	ders := this.Derivatives(u, 3)
	v, a, j := ders[1], ders[2], ders[3]
	if v.Length() < Epsilon {
		return 0, nil
	}
	cross := vec3.Cross(&v, &a)
	sq := vec3.Dot(&cross, &cross)
	if sq < Epsilon*Epsilon {
		return 0, nil
	}
	return vec3.Dot(&cross, &j) / sq, nil
}

func (this *NurbsCurve) checkParam(op string, u float64) error {
	min, max := this.Domain()
	if u < min-Epsilon || u > max+Epsilon || math.IsNaN(u) {
		return newError(op, OutOfRange, "u=%g outside [%g, %g]", u, min, max)
	}
	return nil
}

// EstimateArcLength approximates the length of the curve. The curve is
// decomposed into Bezier segments on a copy; every segment contributes
// the mean of its chord length and its control polygon length.
func (this *NurbsCurve) EstimateArcLength() (float64, error) {
	bez, err := this.bezierDecomposed()
	if err != nil {
		return 0, err
	}
	pts := Dehomogenize1d(bez.controlPoints)
	p := bez.order - 1
	var total float64
	i := 0
	for _, km := range append(bez.knots.InteriorMultiplicities(bez.order), KnotMultiplicity{Mult: p}) {
		total += segmentLengthEstimate(pts[i : i+p+1])
		if km.Mult >= bez.order {
			i += p + 1
		} else {
			i += p
		}
	}
	return total, nil
}

func segmentLengthEstimate(pts []vec3.T) float64 {
	chord := vec3.Distance(&pts[0], &pts[len(pts)-1])
	var polygon float64
	for i := 1; i < len(pts); i++ {
		polygon += vec3.Distance(&pts[i-1], &pts[i])
	}
	return (chord + polygon) / 2
}
