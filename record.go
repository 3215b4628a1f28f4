package ncurve

import (
	"gopkg.in/yaml.v3"
)

// Record is the persisted form of a curve. Knots are stored unless the
// knot type synthesizes them exactly, so a NURB curve on [0, 3] keeps its
// domain. Control points are stored homogeneous, (x*w, y*w, z*w, w).
// Hints carry display settings of the application and are not
// interpreted by the kernel.
type Record struct {
	Order         int                    `yaml:"order"`
	Length        int                    `yaml:"length"`
	KnotType      KnotType               `yaml:"knot_type"`
	Knots         []float64              `yaml:"knots,omitempty"`
	ControlPoints [][4]float64           `yaml:"control_points,flow"`
	Class         CurveClass             `yaml:"class"`
	Hints         map[string]interface{} `yaml:"hints,omitempty"`
}

// Record captures the curve together with opaque display hints.
func (this *NurbsCurve) Record(hints map[string]interface{}) Record {
	r := Record{
		Order:         this.order,
		Length:        len(this.controlPoints),
		KnotType:      this.knotType,
		ControlPoints: this.HomogeneousPoints(),
		Class:         this.class,
		Hints:         hints,
	}
	if !this.knotsSynthesized() {
		r.Knots = this.Knots()
	}
	return r
}

// knotsSynthesized reports whether the knot vector is exactly the one
// generateKnots builds for the curve's knot type.
func (this *NurbsCurve) knotsSynthesized() bool {
	if this.knotType == Custom {
		return false
	}
	generated, err := generateKnots(this.knotType, this.order, len(this.controlPoints), this.controlPoints)
	return err == nil && generated.Equal(this.knots, 0)
}

// Curve rebuilds a curve from a record. The stored length and class must
// agree with the stored control points.
func (r Record) Curve() (*NurbsCurve, error) {
	const op = "Record.Curve"
	if r.Length != len(r.ControlPoints) {
		return nil, newError(op, InvalidArgument, "length %d, %d control points", r.Length, len(r.ControlPoints))
	}
	if !r.KnotType.valid() {
		return nil, newError(op, InvalidArgument, "knot type %d", r.KnotType)
	}
	if r.KnotType == Custom && r.Knots == nil {
		return nil, newError(op, InvalidArgument, "Custom knot type without knots")
	}
	c, err := NewNurbsCurveHomogeneous(r.Order, r.KnotType, r.ControlPoints, r.Knots)
	if err != nil {
		return nil, err
	}
	if c.class != r.Class {
		return nil, newError(op, InvalidArgument, "record says %s, control points make a %s curve", r.Class, c.class)
	}
	return c, nil
}

// MarshalCurve encodes a curve and its display hints as YAML.
func MarshalCurve(c *NurbsCurve, hints map[string]interface{}) ([]byte, error) {
	if c == nil {
		return nil, newError("MarshalCurve", InvalidArgument, "nil curve")
	}
	return yaml.Marshal(c.Record(hints))
}

// UnmarshalCurve decodes a curve encoded by MarshalCurve and returns it with
// its display hints.
func UnmarshalCurve(data []byte) (*NurbsCurve, map[string]interface{}, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, nil, newError("UnmarshalCurve", InvalidArgument, "%v", err)
	}
	c, err := r.Curve()
	if err != nil {
		return nil, nil, err
	}
	return c, r.Hints, nil
}
