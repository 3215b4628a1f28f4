package ncurve

import (
	"math"
	"strings"

	. "github.com/alexozer/ncurve/internal"
	"github.com/ungerik/go3d/float64/vec3"
)

// KnotType records how a knot vector was derived.
type KnotType int

// Knot types. The numeric values are part of the persisted record format.
const (
	Bezier KnotType = iota
	BSpline
	NURB
	Custom
	Centripetal
	Chordal
)

func (kt KnotType) String() string {
	switch kt {
	case Bezier:
		return "Bezier"
	case BSpline:
		return "BSpline"
	case NURB:
		return "NURB"
	case Custom:
		return "Custom"
	case Centripetal:
		return "Centripetal"
	case Chordal:
		return "Chordal"
	}
	return "KnotType(?)"
}

// ParseKnotType parses the name of a knot type, ignoring case.
func ParseKnotType(s string) (KnotType, error) {
	for kt := Bezier; kt <= Chordal; kt++ {
		if strings.EqualFold(s, kt.String()) {
			return kt, nil
		}
	}
	return Custom, newError("ParseKnotType", InvalidArgument, "unknown knot type %q", s)
}

func (kt KnotType) valid() bool {
	return kt >= Bezier && kt <= Chordal
}

// CheckKnots validates a knot vector for a curve of the given length and
// order: the count must be length+order, values must not decrease, no value
// may repeat more than order times and the domain must not be empty.
func CheckKnots(length, order int, knots []float64) error {
	const op = "CheckKnots"
	if order < 2 {
		return newError(op, OrderTooLow, "order %d < 2", order)
	}
	if length < order {
		return newError(op, OrderTooLow, "length %d < order %d", length, order)
	}
	if len(knots) != length+order {
		return newError(op, InvalidArgument, "got %d knots, want length+order = %d", len(knots), length+order)
	}
	kv := KnotVec(knots)
	if i := kv.DecreasingAt(); i > 0 {
		return newError(op, InvalidArgument, "knots decrease at index %d (%g < %g)", i, kv[i], kv[i-1])
	}
	if m := kv.MaxMultiplicity(); m > order {
		return newError(op, InvalidArgument, "knot multiplicity %d exceeds order %d", m, order)
	}
	if min, max := kv.Domain(order); max-min <= Epsilon {
		return newError(op, InvalidArgument, "empty parameter domain [%g, %g]", min, max)
	}
	return nil
}

// GenerateKnots synthesizes a knot vector of type kt. Chordal and
// Centripetal vectors are derived from the control points; the other types
// ignore them. Custom cannot be synthesized.
func GenerateKnots(kt KnotType, order, length int, controlPoints []vec3.T) ([]float64, error) {
	var hpts []HomoPoint
	if kt == Chordal || kt == Centripetal {
		if len(controlPoints) != length {
			return nil, newError("GenerateKnots", InvalidArgument, "%s knots need %d control points, got %d", kt, length, len(controlPoints))
		}
		hpts = Homogenize1d(controlPoints, nil)
	}
	kv, err := generateKnots(kt, order, length, hpts)
	return []float64(kv), err
}

func generateKnots(kt KnotType, order, length int, cps []HomoPoint) (KnotVec, error) {
	const op = "GenerateKnots"
	if order < 2 || length < order {
		return nil, newError(op, OrderTooLow, "order %d, length %d", order, length)
	}
	if length > MaxLength {
		return nil, newError(op, AllocationFailure, "length %d exceeds %d", length, MaxLength)
	}
	knots := make(KnotVec, length+order)
	switch kt {
	case NURB:
		segments := float64(length - order + 1)
		for i := range knots {
			switch {
			case i < order:
				knots[i] = 0
			case i >= length:
				knots[i] = 1
			default:
				knots[i] = float64(i-order+1) / segments
			}
		}
	case BSpline:
		last := float64(len(knots) - 1)
		for i := range knots {
			knots[i] = float64(i) / last
		}
	case Bezier:
		p := order - 1
		if (length-1)%p != 0 {
			return nil, newError(op, InvalidArgument, "Bezier knots need length = k*(order-1)+1, got length %d for order %d", length, order)
		}
		segments := (length - 1) / p
		knots[0] = 0
		for s := 0; s < segments; s++ {
			for j := 0; j < p; j++ {
				knots[1+s*p+j] = float64(s) / float64(segments)
			}
		}
		for i := length; i < len(knots); i++ {
			knots[i] = 1
		}
	case Chordal, Centripetal:
		params, err := chordParameters(cps, kt == Centripetal)
		if err != nil {
			return nil, err
		}
		p := order - 1
		for i := 0; i < order; i++ {
			knots[i] = 0
			knots[length+i] = 1
		}
		for j := 1; j < length-p; j++ {
			var sum float64
			for i := j; i < j+p; i++ {
				sum += params[i]
			}
			knots[j+p] = sum / float64(p)
		}
	default:
		return nil, newError(op, InvalidArgument, "cannot synthesize %s knots", kt)
	}
	return knots, nil
}

// chordParameters assigns each control point a parameter in [0, 1]
// proportional to the accumulated chord length (or its square root).
func chordParameters(cps []HomoPoint, centripetal bool) ([]float64, error) {
	params := make([]float64, len(cps))
	pts := Dehomogenize1d(cps)
	var total float64
	for i := 1; i < len(pts); i++ {
		d := vec3.Distance(&pts[i], &pts[i-1])
		if centripetal {
			d = math.Sqrt(d)
		}
		total += d
		params[i] = total
	}
	if total < Epsilon {
		return nil, newError("GenerateKnots", DegenerateInput, "control points coincide, no chord lengths")
	}
	for i := range params {
		params[i] /= total
	}
	params[len(params)-1] = 1
	return params, nil
}

// ClassifyKnots recovers the knot type of a knot vector by comparing it,
// mapped onto [0, 1], to the synthesized Bezier, NURB and B-spline vectors.
// Chord-derived vectors need the control points; see
// NurbsCurve.ClassifyKnots.
func ClassifyKnots(order int, knots []float64, eps float64) KnotType {
	length := len(knots) - order
	if order < 2 || length < order {
		return Custom
	}
	normalized := KnotVec(knots).Rescaled(0, 1)
	for _, kt := range []KnotType{Bezier, NURB, BSpline} {
		if generated, err := generateKnots(kt, order, length, nil); err == nil {
			if generated.Equal(normalized, eps) {
				return kt
			}
		}
	}
	return Custom
}

// FindSpanAndMultiplicity locates the knot span of u and counts the knots
// equal to u. For u equal to a knot, the span index is the index of the last
// knot of that value, i.e. the span [u, next knot) starting at u; at the end
// of the domain the last non-empty span is returned.
func FindSpanAndMultiplicity(length, order int, u float64, knots []float64) (span, mult int, err error) {
	kv := KnotVec(knots)
	if len(kv) != length+order {
		return 0, 0, newError("FindSpanAndMultiplicity", InvalidArgument, "got %d knots, want %d", len(kv), length+order)
	}
	min, max := kv.Domain(order)
	if u < min-Epsilon || u > max+Epsilon {
		return 0, 0, newError("FindSpanAndMultiplicity", OutOfRange, "u=%g outside [%g, %g]", u, min, max)
	}
	if first, last := kv.Run(u); last >= first && last < length {
		span = last
	} else {
		span = kv.SpanGivenN(length-1, order-1, u)
	}
	return span, kv.MultiplicityOf(u), nil
}

// RescaleKnots maps a knot vector linearly onto [min, max].
func RescaleKnots(knots []float64, min, max float64) ([]float64, error) {
	if len(knots) < 2 || max-min <= Epsilon {
		return nil, newError("RescaleKnots", InvalidArgument, "cannot map %d knots onto [%g, %g]", len(knots), min, max)
	}
	return []float64(KnotVec(knots).Rescaled(min, max)), nil
}

// RescaleKnotsToMinDist scales a knot vector so that no two distinct knots
// are closer than mindist. Vectors already satisfying the bound are
// returned as a copy.
func RescaleKnotsToMinDist(knots []float64, mindist float64) ([]float64, error) {
	if len(knots) < 2 || mindist <= 0 {
		return nil, newError("RescaleKnotsToMinDist", InvalidArgument, "need at least two knots and mindist > 0")
	}
	kv := KnotVec(knots)
	smallest := kv.SmallestSpacing()
	if smallest == 0 || smallest >= mindist {
		return []float64(kv.Clone()), nil
	}
	scale := mindist / smallest
	result := make([]float64, len(kv))
	for i, k := range kv {
		result[i] = kv[0] + (k-kv[0])*scale
	}
	return result, nil
}

// UnifyKnotVectors returns the smallest knot vector containing both inputs
// with matching multiplicities. Both must share the same parameter range.
func UnifyKnotVectors(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, newError("UnifyKnotVectors", InvalidArgument, "empty knot vector")
	}
	ka, kb := KnotVec(a), KnotVec(b)
	if math.Abs(ka[0]-kb[0]) > Epsilon || math.Abs(ka[len(ka)-1]-kb[len(kb)-1]) > Epsilon {
		return nil, newError("UnifyKnotVectors", InvalidArgument, "ranges differ: [%g, %g] vs [%g, %g]",
			ka[0], ka[len(ka)-1], kb[0], kb[len(kb)-1])
	}
	return []float64(ka.Union(kb)), nil
}
