/*
Package create builds curves of common shapes.

Constructors validate their input and report errors wrapping the sentinels
of package ncurve, so ncurve.KindOf and errors.Is work on them.
*/
package create

import (
	"fmt"
	"math"

	"github.com/alexozer/ncurve"
	"github.com/ungerik/go3d/float64/vec3"
)

func errorf(sentinel error, format string, v ...interface{}) error {
	return fmt.Errorf("create: %s: %w", fmt.Sprintf(format, v...), sentinel)
}

// Line is the straight segment from first to last.
func Line(first, last *vec3.T) (*ncurve.NurbsCurve, error) {
	return Polyline([]vec3.T{*first, *last})
}

// Polyline is the order 2 curve through pts, parametrized by chord length
// over [0, 1].
func Polyline(pts []vec3.T) (*ncurve.NurbsCurve, error) {
	if len(pts) < 2 {
		return nil, errorf(ncurve.ErrOrderTooLow, "polyline of %d points", len(pts))
	}
	return ncurve.NewNurbsCurve(2, ncurve.Chordal, pts, nil, nil)
}

// BezierCurve is the single Bezier segment with the given control points.
func BezierCurve(controlPoints []vec3.T) (*ncurve.NurbsCurve, error) {
	return ncurve.NewNurbsCurve(len(controlPoints), ncurve.Bezier, controlPoints, nil, nil)
}

// Arc is the circular arc of the given radius around center, in the plane
// spanned by the orthogonal unit vectors xaxis and yaxis. Angles are in
// radians, 0 pointing along xaxis.
func Arc(center, xaxis, yaxis *vec3.T, radius float64, startAngle, endAngle float64) (*ncurve.NurbsCurve, error) {
	xaxisScaled, yaxisScaled := xaxis.Scaled(radius), yaxis.Scaled(radius)
	return EllipseArc(center, &xaxisScaled, &yaxisScaled, startAngle, endAngle)
}

// Circle is the full circle around center.
func Circle(center, xaxis, yaxis *vec3.T, radius float64) (*ncurve.NurbsCurve, error) {
	return Arc(center, xaxis, yaxis, radius, 0, 2*math.Pi)
}

// Ellipse is the full ellipse with the scaled half axes xaxis and yaxis.
func Ellipse(center, xaxis, yaxis *vec3.T) (*ncurve.NurbsCurve, error) {
	return EllipseArc(center, xaxis, yaxis, 0, 2*math.Pi)
}

// EllipseArc is the exact rational quadratic arc of the ellipse with the
// scaled half axes xaxis and yaxis. An end angle below the start angle
// selects the full ellipse. The arc is split into up to four segments of
// at most 90 degrees (Algorithm A7.1 of Piegl & Tiller).
func EllipseArc(center, xaxis, yaxis *vec3.T, startAngle, endAngle float64) (*ncurve.NurbsCurve, error) {
	if xaxis.Length() < ncurve.EPS || yaxis.Length() < ncurve.EPS {
		return nil, errorf(ncurve.ErrDegenerateInput, "zero axis")
	}
	if endAngle < startAngle {
		endAngle = 2.0*math.Pi + startAngle
	}
	theta := endAngle - startAngle
	if theta < ncurve.EPS {
		return nil, errorf(ncurve.ErrDegenerateInput, "empty arc [%g, %g]", startAngle, endAngle)
	}

	var numArcs int
	switch {
	case theta <= math.Pi/2:
		numArcs = 1
	case theta <= math.Pi:
		numArcs = 2
	case theta <= 3*math.Pi/2:
		numArcs = 3
	default:
		numArcs = 4
	}
	dtheta := theta / float64(numArcs)
	w1 := math.Cos(dtheta / 2)

	// the ellipse is the affine image of the unit circle
	onEllipse := func(angle, r float64) vec3.T {
		x := xaxis.Scaled(r * math.Cos(angle))
		y := yaxis.Scaled(r * math.Sin(angle))
		pt := vec3.Add(&x, &y)
		return *pt.Add(center)
	}

	controlPoints := make([]vec3.T, 2*numArcs+1)
	weights := make([]float64, 2*numArcs+1)
	knots := make([]float64, 2*numArcs+4)
	controlPoints[0], weights[0] = onEllipse(startAngle, 1), 1
	angle := startAngle
	for i := 1; i <= numArcs; i++ {
		mid := angle + dtheta/2
		angle += dtheta
		controlPoints[2*i-1], weights[2*i-1] = onEllipse(mid, 1/w1), w1
		controlPoints[2*i], weights[2*i] = onEllipse(angle, 1), 1
	}
	if theta >= 2*math.Pi-ncurve.EPS {
		controlPoints[2*numArcs] = controlPoints[0]
	}

	j := 2*numArcs + 1
	for i := 0; i < 3; i++ {
		knots[i] = 0
		knots[i+j] = 1
	}
	for i := 1; i < numArcs; i++ {
		knots[2*i+1] = float64(i) / float64(numArcs)
		knots[2*i+2] = float64(i) / float64(numArcs)
	}
	return ncurve.NewNurbsCurve(3, ncurve.Custom, controlPoints, weights, knots)
}

// CircleBSplineLength is the number of control points CircleBSpline
// produces for the given arc, section count and order.
func CircleBSplineLength(arc float64, sections, order int) int {
	if arc >= 2*math.Pi-ncurve.EPS {
		return sections + order - 1
	}
	return sections + 1
}

// CircleBSpline approximates a circular arc of the given radius around the
// origin in the XY plane by a non-rational B-spline whose control points
// lie evenly spaced on the circle. A full circle (arc >= 2*pi) gives a
// periodic curve with BSpline knots, smaller arcs an open curve with NURB
// knots.
//
// If dst is not nil the control points are also written to it. dst must
// then hold exactly CircleBSplineLength(arc, sections, order) points.
func CircleBSpline(radius, arc float64, sections, order int, dst []vec3.T) (*ncurve.NurbsCurve, error) {
	if radius <= ncurve.EPS || arc <= ncurve.EPS {
		return nil, errorf(ncurve.ErrDegenerateInput, "radius %g, arc %g", radius, arc)
	}
	full := arc >= 2*math.Pi-ncurve.EPS
	length := CircleBSplineLength(arc, sections, order)
	switch {
	case order < 2:
		return nil, errorf(ncurve.ErrOrderTooLow, "order %d", order)
	case full && (sections < 3 || sections < order-1):
		return nil, errorf(ncurve.ErrOrderTooLow, "%d sections for a closed circle of order %d", sections, order)
	case sections < 1 || length < order:
		return nil, errorf(ncurve.ErrOrderTooLow, "%d sections for an arc of order %d", sections, order)
	case length > ncurve.MaxLength:
		return nil, errorf(ncurve.ErrAllocationFailure, "length %d exceeds %d", length, ncurve.MaxLength)
	}
	if dst == nil {
		dst = make([]vec3.T, length)
	} else if len(dst) != length {
		return nil, errorf(ncurve.ErrInvalidArgument, "buffer holds %d points, need %d", len(dst), length)
	}

	step := arc / float64(sections)
	if full {
		step = 2 * math.Pi / float64(sections)
	}
	for i := range dst {
		if full && i >= sections {
			dst[i] = dst[i-sections]
			continue
		}
		a := step * float64(i)
		dst[i] = vec3.T{radius * math.Cos(a), radius * math.Sin(a), 0}
	}
	knotType := ncurve.NURB
	if full {
		knotType = ncurve.BSpline
	}
	return ncurve.NewNurbsCurve(order, knotType, dst, nil, nil)
}
