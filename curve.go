package ncurve

import (
	"math"

	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// EPS is the shared coincidence tolerance of the kernel.
const EPS = Epsilon

// MaxLength bounds the number of control points an operation will allocate.
const MaxLength = 1 << 24

type CurvePoint struct {
	U  float64
	Pt vec3.T
}

// NurbsCurve is a rational B-spline curve of order >= 2.
type NurbsCurve struct {
	// polynomial order, degree+1
	order int

	// how knots were derived; Custom knots are preserved verbatim
	knotType KnotType

	// slice of nondecreasing knot values, len(controlPoints)+order of them
	knots KnotVec

	// slice of control points, each a homogeneous coordinate
	controlPoints []HomoPoint

	// derived caches
	rational bool
	class    CurveClass

	// bumped whenever controlPoints is reallocated or bulk-replaced
	version uint64

	multiple *MultipleGroups
	normals  []vec3.T
}

// NewNurbsCurve creates a curve. weights may be nil (all 1). knots are
// required for Custom knot types and otherwise synthesized; given knots for
// a non-Custom type are validated and their type recovered by
// classification.
func NewNurbsCurve(order int, knotType KnotType, controlPoints []vec3.T, weights []float64, knots []float64) (*NurbsCurve, error) {
	const op = "NewNurbsCurve"
	if weights != nil && len(weights) != len(controlPoints) {
		return nil, newError(op, InvalidArgument, "%d weights for %d control points", len(weights), len(controlPoints))
	}
	if !knotType.valid() {
		return nil, newError(op, InvalidArgument, "knot type %d", knotType)
	}
	return newCurve(op, order, knotType, Homogenize1d(controlPoints, weights), knots)
}

// NewNurbsCurveHomogeneous creates a curve from control points given in
// homogeneous form (x*w, y*w, z*w, w).
func NewNurbsCurveHomogeneous(order int, knotType KnotType, controlPoints [][4]float64, knots []float64) (*NurbsCurve, error) {
	hpts := make([]HomoPoint, len(controlPoints))
	for i, p := range controlPoints {
		hpts[i] = HomoPoint{Vec3: vec3.T{p[0], p[1], p[2]}, W: p[3]}
		if p[3] < Epsilon && p[3] > -Epsilon {
			hpts[i] = HomoPoint{Vec3: vec3.T{p[0], p[1], p[2]}, W: 1}
		}
	}
	return newCurve("NewNurbsCurveHomogeneous", order, knotType, hpts, knots)
}

func newCurve(op string, order int, knotType KnotType, hpts []HomoPoint, knots []float64) (*NurbsCurve, error) {
	length := len(hpts)
	if order < 2 || length < order {
		return nil, newError(op, OrderTooLow, "order %d, length %d", order, length)
	}
	if length > MaxLength {
		return nil, newError(op, AllocationFailure, "length %d exceeds %d", length, MaxLength)
	}
	this := &NurbsCurve{order: order, knotType: knotType, controlPoints: hpts}
	if knots == nil {
		if knotType == Custom {
			return nil, newError(op, InvalidArgument, "Custom knot type needs knots")
		}
		kv, err := generateKnots(knotType, order, length, hpts)
		if err != nil {
			return nil, err
		}
		this.knots = kv
	} else {
		if err := CheckKnots(length, order, knots); err != nil {
			return nil, err
		}
		this.knots = KnotVec(knots).Clone()
		if knotType != Custom {
			this.knotType = this.classifyKnots()
		}
	}
	this.refresh()
	tracer().Debugf("%s: order %d, length %d, %s knots, %s", op, order, length, this.knotType, this.class)
	return this, nil
}

// newCurveUnchecked wraps arrays an algorithm produced; the arrays are not
// copied.
func newCurveUnchecked(order int, knotType KnotType, hpts []HomoPoint, knots KnotVec) *NurbsCurve {
	this := &NurbsCurve{order: order, knotType: knotType, controlPoints: hpts, knots: knots}
	this.refresh()
	return this
}

func (this *NurbsCurve) Order() int {
	return this.order
}

func (this *NurbsCurve) Degree() int {
	return this.order - 1
}

// Length is the number of control points.
func (this *NurbsCurve) Length() int {
	return len(this.controlPoints)
}

func (this *NurbsCurve) KnotType() KnotType {
	return this.knotType
}

func (this *NurbsCurve) IsRational() bool {
	return this.rational
}

func (this *NurbsCurve) Class() CurveClass {
	return this.class
}

// Version changes whenever the control point array is reallocated.
func (this *NurbsCurve) Version() uint64 {
	return this.version
}

func (this *NurbsCurve) ControlPoints() []vec3.T {
	return Dehomogenize1d(this.controlPoints)
}

func (this *NurbsCurve) Weights() []float64 {
	return Weight1d(this.controlPoints)
}

// HomogeneousPoints returns the control points as (x*w, y*w, z*w, w).
func (this *NurbsCurve) HomogeneousPoints() [][4]float64 {
	result := make([][4]float64, len(this.controlPoints))
	for i, p := range this.controlPoints {
		result[i] = [4]float64{p.Vec3[0], p.Vec3[1], p.Vec3[2], p.W}
	}
	return result
}

func (this *NurbsCurve) Knots() []float64 {
	return []float64(this.knots.Clone())
}

// SetControlPoint replaces one control point, keeping the knot vector.
// Weights closer to zero than EPS are replaced by 1. Multiple point groups
// taken before the call become invalid.
func (this *NurbsCurve) SetControlPoint(i int, pt vec3.T, w float64) error {
	if i < 0 || i >= len(this.controlPoints) {
		return newError("SetControlPoint", OutOfRange, "index %d, length %d", i, len(this.controlPoints))
	}
	this.controlPoints[i] = Homogenized(pt, w)
	this.refresh()
	return nil
}

// SetKnots replaces the knot vector; the knot type becomes Custom unless
// the new vector classifies as a synthesized type.
func (this *NurbsCurve) SetKnots(knots []float64) error {
	if err := CheckKnots(len(this.controlPoints), this.order, knots); err != nil {
		return err
	}
	this.knots = KnotVec(knots).Clone()
	this.knotType = this.classifyKnots()
	return nil
}

// SetNormals attaches a normal vector per control point, consumed by
// Offset in NormalField mode. nil detaches the field.
func (this *NurbsCurve) SetNormals(normals []vec3.T) error {
	if normals != nil && len(normals) != len(this.controlPoints) {
		return newError("SetNormals", InvalidArgument, "%d normals for %d control points", len(normals), len(this.controlPoints))
	}
	this.normals = append([]vec3.T(nil), normals...)
	if normals == nil {
		this.normals = nil
	}
	return nil
}

func (this *NurbsCurve) Normals() []vec3.T {
	return append([]vec3.T(nil), this.normals...)
}

// Clone returns a deep copy that shares no arrays with this curve.
func (this *NurbsCurve) Clone() *NurbsCurve {
	c := &NurbsCurve{
		order:         this.order,
		knotType:      this.knotType,
		controlPoints: append([]HomoPoint(nil), this.controlPoints...),
		knots:         this.knots.Clone(),
		rational:      this.rational,
		class:         this.class,
		version:       this.version,
	}
	if this.normals != nil {
		c.normals = append([]vec3.T(nil), this.normals...)
	}
	return c
}

// Domain returns the valid parameter range of the curve.
func (this *NurbsCurve) Domain() (min, max float64) {
	return this.knots.Domain(this.order)
}

// ClassifyKnots recovers the knot type of the curve's knot vector, also
// recognising chord-length and centripetal vectors.
func (this *NurbsCurve) ClassifyKnots(eps float64) KnotType {
	kt := ClassifyKnots(this.order, this.knots, eps)
	if kt != Custom {
		return kt
	}
	normalized := this.knots.Rescaled(0, 1)
	for _, kt := range []KnotType{Chordal, Centripetal} {
		if generated, err := generateKnots(kt, this.order, len(this.controlPoints), this.controlPoints); err == nil {
			if generated.Equal(normalized, eps) {
				return kt
			}
		}
	}
	return Custom
}

func (this *NurbsCurve) classifyKnots() KnotType {
	return this.ClassifyKnots(Epsilon)
}

// replace swaps in freshly built arrays after an operation succeeded.
func (this *NurbsCurve) replace(hpts []HomoPoint, knots KnotVec) {
	if len(hpts) != len(this.controlPoints) {
		this.normals = nil
	}
	this.controlPoints = hpts
	this.knots = knots
	this.refresh()
}

// regenerate synthesizes knots of the current knot type for the current
// control points. Custom curves fall back to NURB knots.
func (this *NurbsCurve) regenerate() (KnotVec, KnotType, error) {
	kt := this.knotType
	if kt == Custom {
		kt = NURB
	}
	knots, err := generateKnots(kt, this.order, len(this.controlPoints), this.controlPoints)
	if err != nil && kt == Bezier {
		kt = NURB
		knots, err = generateKnots(kt, this.order, len(this.controlPoints), this.controlPoints)
	}
	return knots, kt, err
}

// refresh recomputes the derived caches and invalidates multiple point
// groups.
func (this *NurbsCurve) refresh() {
	this.rational = IsRational(this.controlPoints)
	this.class = classify(this.controlPoints, this.order)
	this.version++
	this.multiple = nil
}

// Validate checks the curve's knot vector against its order and length.
func (this *NurbsCurve) Validate() error {
	return CheckKnots(len(this.controlPoints), this.order, this.knots)
}

// Point evaluates the curve at u. Parameters outside the domain are
// clamped to it.
func (this *NurbsCurve) Point(u float64) vec3.T {
	homoPt := this.nonRationalPoint(this.clampedParam(u))
	return homoPt.Dehomogenized()
}

// Tangent returns the first derivative at u.
func (this *NurbsCurve) Tangent(u float64) vec3.T {
	return this.Derivatives(u, 1)[1]
}

//
// Determine the derivatives of a NURBS curve at a given parameter
//
// **params**
// + parameter on the curve at which the point is to be evaluated
// + number of derivatives to evaluate
//
// **returns**
// + numDerivs+1 vectors, the point followed by its derivatives
//
func (this *NurbsCurve) Derivatives(u float64, numDerivs int) []vec3.T {
	ders := this.nonRationalDerivatives(this.clampedParam(u), numDerivs)
	ck := make([]vec3.T, 0, numDerivs+1)

	for k := 0; k <= numDerivs; k++ {
		v := ders[k].Vec3

		for i := 1; i <= k; i++ {
			scaled := ck[k-i].Scaled(Binomial(k, i) * ders[i].W)
			v.Sub(&scaled)
		}
		v.Scale(1 / ders[0].W)
		ck = append(ck, v)
	}

	return ck
}

// Determine the derivatives of the curve in homogeneous space
// (corresponds to algorithm 3.2 from The NURBS book, Piegl & Tiller 2nd edition).
// Derivatives above the degree vanish.
func (this *NurbsCurve) nonRationalDerivatives(u float64, numDerivs int) []HomoPoint {
	degree := this.order - 1
	controlPoints := this.controlPoints
	knots := this.knots

	du := numDerivs
	if du > degree {
		du = degree
	}

	ck := make([]HomoPoint, numDerivs+1)
	knotSpanIndex := knots.Span(degree, u)
	nders := DerivativeBasisFunctions(knotSpanIndex, u, degree, du, knots)

	for k := 0; k <= du; k++ {
		for j := 0; j <= degree; j++ {
			scaled := controlPoints[knotSpanIndex-degree+j]
			scaled.Scale(nders[k][j])
			ck[k].Add(&scaled)
		}
	}

	return ck
}

// Compute a point on the curve in homogeneous space
// (corresponds to algorithm 4.1 from The NURBS book, Piegl & Tiller 2nd edition)
func (this *NurbsCurve) nonRationalPoint(u float64) HomoPoint {
	degree := this.order - 1
	controlPoints := this.controlPoints
	knots := this.knots

	knotSpanIndex := knots.Span(degree, u)
	basisValues := BasisFunctions(knotSpanIndex, u, degree, knots)
	var position HomoPoint

	for j := 0; j <= degree; j++ {
		scaled := controlPoints[knotSpanIndex-degree+j]
		scaled.Scale(basisValues[j])
		position.Add(&scaled)
	}

	return position
}

// Sample evaluates the curve at numSamples equally spaced parameters
// across its domain.
func (this *NurbsCurve) Sample(numSamples int) []CurvePoint {
	min, max := this.Domain()
	return this.regularSampleRange(min, max, numSamples)
}

//
// Sample a range of a NURBS curve at equally spaced parametric intervals
//
// **params**
// + start parameter for sampling
// + end parameter for sampling
// + integer number of samples
//
// **returns**
// + parameter/point pairs
//
func (this *NurbsCurve) regularSampleRange(start, end float64, numSamples int) []CurvePoint {
	if numSamples < 2 {
		numSamples = 2
	}

	samples := make([]CurvePoint, numSamples)
	span := (end - start) / float64(numSamples-1)
	var u float64

	for i := range samples {
		u = start + span*float64(i)
		if i == numSamples-1 {
			u = end
		}

		samples[i] = CurvePoint{u, this.Point(u)}
	}

	return samples
}

func (this *NurbsCurve) clampedParam(u float64) float64 {
	min, max := this.Domain()
	return math.Max(min, math.Min(max, u))
}

// relativeParam maps t in [0, 1] onto the curve's domain.
func (this *NurbsCurve) relativeParam(t float64) float64 {
	min, max := this.Domain()
	return min + t*(max-min)
}
