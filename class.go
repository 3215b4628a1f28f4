package ncurve

import (
	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
	"github.com/ungerik/go3d/float64/vec4"
)

// CurveClass tells how the ends of a curve meet. It is derived from the
// control points and cannot be set directly.
type CurveClass int

// Curve classes. The numeric values are part of the persisted record format.
const (
	Open CurveClass = iota
	Closed
	Periodic
)

func (class CurveClass) String() string {
	switch class {
	case Open:
		return "open"
	case Closed:
		return "closed"
	case Periodic:
		return "periodic"
	}
	return "CurveClass(?)"
}

// classify derives the class of a control polygon. Periodic wins over
// Closed for curves of order 3 and above.
func classify(cps []HomoPoint, order int) CurveClass {
	p := order - 1
	n := len(cps)
	if p >= 2 && n >= 2*p {
		periodic := true
		for i := 0; i < p; i++ {
			if !Coincident(&cps[i], &cps[n-p+i], Epsilon) {
				periodic = false
				break
			}
		}
		if periodic {
			return Periodic
		}
	}
	if n > 2 && Coincident(&cps[0], &cps[n-1], Epsilon) {
		return Closed
	}
	return Open
}

// wrapped is the number of trailing control points that repeat leading
// ones for a curve of the given class.
func (class CurveClass) wrapped(order int) int {
	switch class {
	case Closed:
		return 1
	case Periodic:
		return order - 1
	}
	return 0
}

// classOps holds the per-class implementations of the operations that
// differ between open, closed and periodic curves.
type classOps struct {
	minLength func(order int) int
	close     func(this *NurbsCurve) ([]HomoPoint, KnotVec, KnotType, error)
	open      func(this *NurbsCurve) []HomoPoint
}

var classDispatch = [...]classOps{
	Open: {
		minLength: func(order int) int { return order },
		close: func(this *NurbsCurve) ([]HomoPoint, KnotVec, KnotType, error) {
			return this.controlPoints, this.knots, this.knotType, nil
		},
		open: func(this *NurbsCurve) []HomoPoint { return this.controlPoints },
	},
	Closed: {
		minLength: func(order int) int { return imax(3, order) },
		close:     closeClosed,
		open: func(this *NurbsCurve) []HomoPoint {
			return displaceWrapped(this.controlPoints, 1)
		},
	},
	Periodic: {
		minLength: func(order int) int { return imax(2*(order-1), order) },
		close:     closePeriodic,
		open: func(this *NurbsCurve) []HomoPoint {
			return displaceWrapped(this.controlPoints, this.order-1)
		},
	},
}

func (class CurveClass) ops() (classOps, bool) {
	if class < Open || class > Periodic {
		return classOps{}, false
	}
	return classDispatch[class], true
}

func closeClosed(this *NurbsCurve) ([]HomoPoint, KnotVec, KnotType, error) {
	cps := append([]HomoPoint(nil), this.controlPoints...)
	cps[len(cps)-1] = cps[0]
	kt, knots := this.knotType, this.knots.Clone()
	if kt == BSpline {
		// an unclamped curve does not reach its end points
		kt = NURB
	}
	if kt != Custom {
		var err error
		if knots, err = generateKnots(kt, this.order, len(cps), cps); err != nil {
			kt = NURB
			if knots, err = generateKnots(kt, this.order, len(cps), cps); err != nil {
				return nil, nil, kt, err
			}
		}
	}
	return cps, knots, kt, nil
}

func closePeriodic(this *NurbsCurve) ([]HomoPoint, KnotVec, KnotType, error) {
	p := this.order - 1
	cps := append([]HomoPoint(nil), this.controlPoints...)
	n := len(cps)
	for i := 0; i < p; i++ {
		cps[n-p+i] = cps[i]
	}
	kt, knots := this.knotType, this.knots.Clone()
	if kt != Custom {
		kt = BSpline
		var err error
		if knots, err = generateKnots(kt, this.order, n, cps); err != nil {
			return nil, nil, kt, err
		}
	}
	return cps, knots, kt, nil
}

// displaceWrapped moves each of the last count control points a tenth of
// the way towards its predecessor.
func displaceWrapped(cps []HomoPoint, count int) []HomoPoint {
	result := append([]HomoPoint(nil), cps...)
	n := len(result)
	for i := n - count; i < n; i++ {
		if i < 1 {
			continue
		}
		result[i] = HomoInterpolated(&cps[i], &cps[i-1], 0.1)
	}
	return result
}

// Close makes the curve one of class: for Closed the last control point
// becomes a copy of the first, for Periodic the last order-1 control
// points become copies of the first ones. Closed needs more than two
// control points, Periodic at least 2*(order-1). Closing as Open opens
// the curve.
func (this *NurbsCurve) Close(class CurveClass) error {
	ops, ok := class.ops()
	if !ok {
		return newError("Close", InvalidArgument, "class %d", class)
	}
	if class == Open {
		return this.Open()
	}
	if n := len(this.controlPoints); n < ops.minLength(this.order) {
		return newError("Close", OrderTooLow, "%s curve of order %d needs %d control points, has %d",
			class, this.order, ops.minLength(this.order), n)
	}
	cps, knots, kt, err := ops.close(this)
	if err != nil {
		return err
	}
	this.knotType = kt
	this.replace(cps, knots)
	tracer().Debugf("Close: %s curve, %s knots", this.class, kt)
	return nil
}

// Open separates the wrapped control points of a closed or periodic curve
// from the ones they repeat. Open curves are unaffected.
func (this *NurbsCurve) Open() error {
	if this.class == Open {
		return nil
	}
	ops, _ := this.class.ops()
	this.replace(ops.open(this), this.knots)
	return nil
}

// reclose repairs the wrapped control points of a curve that was of class
// before an operation.
func (this *NurbsCurve) reclose(class CurveClass) error {
	if class == Open || this.class == class {
		return nil
	}
	return this.Close(class)
}

// Revert reverses the direction of the curve. The shape is unchanged.
func (this *NurbsCurve) Revert() {
	n := len(this.controlPoints)
	cps := make([]HomoPoint, n)
	for i, cp := range this.controlPoints {
		cps[n-1-i] = cp
	}
	var normals []vec3.T
	if this.normals != nil {
		normals = make([]vec3.T, n)
		for i, nv := range this.normals {
			normals[n-1-i] = nv
		}
	}
	this.replace(cps, this.knots.Reversed())
	this.normals = normals
}

// ShiftControlPoints rotates the distinct control points of a closed or
// periodic curve by times positions, forwards for dir > 0 and backwards
// otherwise, and repairs the wrapped copies.
func (this *NurbsCurve) ShiftControlPoints(dir, times int) error {
	class := this.class
	if class == Open {
		return newError("ShiftControlPoints", InvalidArgument, "cannot rotate an open curve")
	}
	distinct := len(this.controlPoints) - class.wrapped(this.order)
	shift := times % distinct
	if dir < 0 {
		shift = -shift
	}
	shift = (shift + distinct) % distinct
	if shift == 0 {
		return nil
	}
	cps := make([]HomoPoint, len(this.controlPoints))
	for i := 0; i < distinct; i++ {
		cps[(i+shift)%distinct] = this.controlPoints[i]
	}
	for i := distinct; i < len(cps); i++ {
		cps[i] = cps[i-distinct]
	}
	this.replace(cps, this.knots)
	return this.reclose(class)
}

// ApplyTransform transforms all control points by m. Points are
// transformed in homogeneous form, so weights are kept for affine maps.
func (this *NurbsCurve) ApplyTransform(m *mat4.T) error {
	cps := make([]HomoPoint, len(this.controlPoints))
	for i, cp := range this.controlPoints {
		v := vec4.T{cp.Vec3[0], cp.Vec3[1], cp.Vec3[2], cp.W}
		r := m.MulVec4(&v)
		if r[3] < Epsilon && r[3] > -Epsilon {
			return newError("ApplyTransform", DegenerateInput, "control point %d maps to weight 0", i)
		}
		cps[i] = HomoPoint{Vec3: vec3.T{r[0], r[1], r[2]}, W: r[3]}
	}
	var normals []vec3.T
	if this.normals != nil {
		normals = make([]vec3.T, len(this.normals))
		for i, nv := range this.normals {
			for row := 0; row < 3; row++ {
				normals[i][row] = m[0][row]*nv[0] + m[1][row]*nv[1] + m[2][row]*nv[2]
			}
		}
	}
	this.replace(cps, this.knots)
	this.normals = normals
	return nil
}

// ApplyInverseTransform undoes ApplyTransform(m). Singular matrices are
// rejected as DegenerateInput.
func (this *NurbsCurve) ApplyInverseTransform(m *mat4.T) error {
	A := NewMatrix(4)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			A[row][col] = m[col][row]
		}
	}
	inv, err := A.Inverse()
	if err != nil {
		return newError("ApplyInverseTransform", DegenerateInput, "matrix not invertible: %v", err)
	}
	var mi mat4.T
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			mi[col][row] = inv[row][col]
		}
	}
	return this.ApplyTransform(&mi)
}
