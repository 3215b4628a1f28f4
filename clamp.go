package ncurve

import (
	. "github.com/alexozer/ncurve/internal"
)

// ClampSide selects the curve ends Clamp and Unclamp work on.
type ClampSide int

const (
	ClampBoth ClampSide = iota
	ClampStart
	ClampEnd
)

func (side ClampSide) String() string {
	switch side {
	case ClampBoth:
		return "both"
	case ClampStart:
		return "start"
	case ClampEnd:
		return "end"
	}
	return "ClampSide(?)"
}

// Clamp makes the selected ends interpolate their boundary control points
// without changing the shape of the curve. Afterwards the first (last)
// order knots are equal. Ends already clamped are left alone.
func (this *NurbsCurve) Clamp(side ClampSide) error {
	if side < ClampBoth || side > ClampEnd {
		return newError("Clamp", InvalidArgument, "side %d", side)
	}
	if side == ClampBoth && this.periodicKnotEnds() {
		return this.clampPeriodic()
	}
	cps, knots := this.controlPoints, this.knots
	changed := false
	if side != ClampEnd {
		if c, k, ok := clampStart(this.order, knots, cps); ok {
			cps, knots, changed = c, k, true
		}
	}
	if side != ClampStart {
		if c, k, ok := clampEnd(this.order, knots, cps); ok {
			cps, knots, changed = c, k, true
		}
	}
	if !changed {
		return nil
	}
	this.replace(cps, knots)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("Clamp(%s): length now %d", side, len(cps))
	return nil
}

// ClampPeriodic clamps both ends of a curve whose domain ends carry simple
// knots, inserting degree knots at both ends into one working copy. The
// result equals that of Clamp(ClampBoth). Other knot vectors are clamped
// by the general algorithm.
func (this *NurbsCurve) ClampPeriodic() error {
	if !this.periodicKnotEnds() {
		return this.Clamp(ClampBoth)
	}
	return this.clampPeriodic()
}

func (this *NurbsCurve) periodicKnotEnds() bool {
	p := this.order - 1
	min, max := this.Domain()
	return p > 0 && len(this.controlPoints) >= 2*p &&
		this.knots.MultiplicityOf(min) == 1 && this.knots.MultiplicityOf(max) == 1
}

func (this *NurbsCurve) clampPeriodic() error {
	p := this.order - 1
	length := len(this.controlPoints)
	start, end := this.knots[p], this.knots[length]
	ks, ke := p, length
	cps, knots := this.controlPoints, this.knots
	if p > 1 {
		cps, knots = boehmInsert(p, knots, cps, end, ke, 1, p-1)
		cps, knots = boehmInsert(p, knots, cps, start, ks, 1, p-1)
	}

	// the start run now spans indices p..2p-1, the end run is shifted by
	// the p-1 knots inserted at the start
	first := ke + p - 1
	clamped := make([]HomoPoint, first-p+1)
	copy(clamped, cps[p-1:first])
	kv := make(KnotVec, 0, len(clamped)+this.order)
	for i := 0; i < this.order; i++ {
		kv = append(kv, start)
	}
	kv = append(kv, knots[2*p:first]...)
	for i := 0; i < this.order; i++ {
		kv = append(kv, end)
	}
	this.replace(clamped, kv)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("ClampPeriodic: length now %d", len(clamped))
	return nil
}

// clampStart returns clamped copies of the arrays, or ok=false if the
// start is already clamped.
func clampStart(order int, knots KnotVec, cps []HomoPoint) ([]HomoPoint, KnotVec, bool) {
	p := order - 1
	u := knots[p]
	first, last := knots.Run(u)
	if first == 0 {
		return nil, nil, false
	}
	if s := last - first + 1; s < p {
		cps, knots = insertKnotArrays(order, knots, cps, u, p-s)
		_, last = knots.Run(u)
	}
	clamped := append([]HomoPoint(nil), cps[last-p:]...)
	kv := make(KnotVec, 0, len(clamped)+order)
	for i := 0; i < order; i++ {
		kv = append(kv, u)
	}
	kv = append(kv, knots[last+1:]...)
	return clamped, kv, true
}

// clampEnd is the mirror image of clampStart.
func clampEnd(order int, knots KnotVec, cps []HomoPoint) ([]HomoPoint, KnotVec, bool) {
	p := order - 1
	u := knots[len(cps)]
	first, last := knots.Run(u)
	if last == len(knots)-1 {
		return nil, nil, false
	}
	if s := last - first + 1; s < p {
		cps, knots = insertKnotArrays(order, knots, cps, u, p-s)
		first, _ = knots.Run(u)
	}
	clamped := append([]HomoPoint(nil), cps[:first]...)
	kv := make(KnotVec, 0, len(clamped)+order)
	kv = append(kv, knots[:first]...)
	for i := 0; i < order; i++ {
		kv = append(kv, u)
	}
	return clamped, kv, true
}

// Unclamp turns clamped ends into unclamped ones without changing the
// shape of the curve, recovering the control points and knots an
// unclamped curve with the same knot spacing would have. Ends that are
// not clamped are left alone.
func (this *NurbsCurve) Unclamp(side ClampSide) error {
	if side < ClampBoth || side > ClampEnd {
		return newError("Unclamp", InvalidArgument, "side %d", side)
	}
	start := side != ClampEnd && this.knots.IsClampedStart(this.order)
	end := side != ClampStart && this.knots.IsClampedEnd(this.order)
	if !start && !end {
		return nil
	}
	p := this.order - 1
	if len(this.controlPoints) < 2*p {
		return newError("Unclamp", OrderTooLow, "length %d < %d needed to unclamp order %d", len(this.controlPoints), 2*p, this.order)
	}
	cps, knots := unclampArrays(this.order, this.knots, this.controlPoints, start, end)
	if err := CheckKnots(len(cps), this.order, knots); err != nil {
		return newError("Unclamp", DegenerateInput, "unclamped knots invalid: %v", err)
	}
	this.replace(cps, knots)
	if this.knotType != Custom {
		this.knotType = this.classifyKnots()
	}
	tracer().Debugf("Unclamp(%s)", side)
	return nil
}

//
// Unclamp a curve at the given ends
// (corresponds to algorithm A12.1 from The NURBS book, Piegl & Tiller 2nd edition).
// The phantom knots repeat the spacing found at the opposite end.
//
func unclampArrays(order int, knotsPre KnotVec, cpsPre []HomoPoint, start, end bool) ([]HomoPoint, KnotVec) {
	p := order - 1
	n := len(cpsPre) - 1
	U := knotsPre.Clone()
	Pw := append([]HomoPoint(nil), cpsPre...)

	if start {
		for i := 0; i <= p-2; i++ {
			U[p-i-1] = U[p-i] - (U[n-i+1] - U[n-i])
			k := p - 1
			for j := i; j >= 0; j-- {
				alfa := (U[p] - U[k]) / (U[p+j+1] - U[k])
				Pw[j] = HomoCombined(&Pw[j], 1/(1-alfa), &Pw[j+1], -alfa/(1-alfa))
				k--
			}
		}
		U[0] = U[1] - (U[n-p+2] - U[n-p+1])
	}
	if end {
		for i := 0; i <= p-2; i++ {
			U[n+i+2] = U[n+i+1] + (U[p+i+1] - U[p+i])
			for j := i; j >= 0; j-- {
				alfa := (U[n+1] - U[n-j]) / (U[n-j+i+2] - U[n-j])
				Pw[n-j] = HomoCombined(&Pw[n-j], 1/alfa, &Pw[n-j-1], -(1-alfa)/alfa)
			}
		}
		U[n+p+1] = U[n+p] + (U[2*p] - U[2*p-1])
	}
	return Pw, U
}
