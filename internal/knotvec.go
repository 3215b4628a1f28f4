package internal

import (
	"math"
)

// Epsilon is the shared coincidence tolerance for knot values, weights and
// control point coordinates.
const Epsilon = 1.0e-6

type KnotVec []float64

func (this KnotVec) Clone() KnotVec {
	return append(KnotVec(nil), this...)
}

// Domain returns the valid parameter range of a curve of the given order
// built on this knot vector.
func (this KnotVec) Domain(order int) (min, max float64) {
	return this[order-1], this[len(this)-order]
}

// Find the span on the knot vector without supplying n
//
// **params**
// + integer degree of function
// + float parameter
//
// **returns**
// + the index of the knot span
//
func (this KnotVec) Span(degree int, u float64) int {
	m := len(this) - 1
	n := m - degree - 1

	return this.SpanGivenN(n, degree, u)
}

// Find the span on the knot vector of the given parameter
// (corresponds to algorithm 2.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer number of basis functions - 1 = knots.length - degree - 2
// + integer degree of function
// + parameter
//
// **returns**
// + the index of the knot span
//
func (this KnotVec) SpanGivenN(n int, degree int, u float64) int {
	if u >= this[n+1] {
		return n
	}

	if u < this[degree] {
		return degree
	}

	low, high := degree, n+1
	mid := (low + high) / 2

	for u < this[mid] || u >= this[mid+1] {
		if u < this[mid] {
			high = mid
		} else {
			low = mid
		}

		mid = (low + high) / 2
	}

	return mid
}

// Run returns the first and last index of the knots equal to u (within
// Epsilon). If u is not a knot, first > last and last is the index of the
// last knot below u.
func (this KnotVec) Run(u float64) (first, last int) {
	first, last = len(this), -1
	for i, knot := range this {
		if math.Abs(knot-u) <= Epsilon {
			if i < first {
				first = i
			}
			last = i
		} else if knot < u && first == len(this) {
			last = i
		}
	}
	if first == len(this) {
		first = last + 1
	}
	return
}

// MultiplicityOf counts the knots equal to u.
func (this KnotVec) MultiplicityOf(u float64) int {
	first, last := this.Run(u)
	if first > last {
		return 0
	}
	return last - first + 1
}

//
// Determine the multiplicities of the values in a knot vector
//
// **returns**
// + slice of knot value / multiplicity pairs
//
func (this KnotVec) Multiplicities() []KnotMultiplicity {
	mults := []KnotMultiplicity{{this[0], 0}}

	var currI int
	for _, knot := range this {
		if math.Abs(knot-mults[currI].Knot) > Epsilon {
			mults = append(mults, KnotMultiplicity{knot, 0})
			currI++
		}

		mults[currI].Mult++
	}

	return mults
}

// MaxMultiplicity is the largest multiplicity of any knot value.
func (this KnotVec) MaxMultiplicity() (max int) {
	for _, km := range this.Multiplicities() {
		if km.Mult > max {
			max = km.Mult
		}
	}
	return
}

// InteriorMultiplicities lists the distinct knot values strictly inside the
// domain of a curve of the given order.
func (this KnotVec) InteriorMultiplicities(order int) []KnotMultiplicity {
	min, max := this.Domain(order)
	var result []KnotMultiplicity
	for _, km := range this.Multiplicities() {
		if km.Knot > min+Epsilon && km.Knot < max-Epsilon {
			result = append(result, km)
		}
	}
	return result
}

// IsClampedStart reports whether the first order knots coincide.
func (this KnotVec) IsClampedStart(order int) bool {
	for _, knot := range this[1:order] {
		if math.Abs(knot-this[0]) > Epsilon {
			return false
		}
	}
	return true
}

// IsClampedEnd reports whether the last order knots coincide.
func (this KnotVec) IsClampedEnd(order int) bool {
	last := this[len(this)-1]
	for _, knot := range this[len(this)-order:] {
		if math.Abs(knot-last) > Epsilon {
			return false
		}
	}
	return true
}

// DecreasingAt returns the first index whose knot is smaller than its
// predecessor, or -1 for a non-decreasing vector.
func (this KnotVec) DecreasingAt() int {
	for i := 1; i < len(this); i++ {
		if this[i] < this[i-1] {
			return i
		}
	}
	return -1
}

// Reversed mirrors the knot vector so that u maps to first+last-u.
func (this KnotVec) Reversed() KnotVec {
	l := make(KnotVec, len(this))
	l[0] = this[0]

	length := len(this)
	for i := 1; i < length; i++ {
		l[i] = l[i-1] + (this[length-i] - this[length-i-1])
	}

	return l
}

// Rescaled maps the knot vector linearly onto [min, max].
func (this KnotVec) Rescaled(min, max float64) KnotVec {
	lo, hi := this[0], this[len(this)-1]
	result := make(KnotVec, len(this))
	if hi-lo < Epsilon {
		copy(result, this)
		return result
	}
	scale := (max - min) / (hi - lo)
	for i, knot := range this {
		result[i] = min + (knot-lo)*scale
	}
	result[len(result)-1] = max
	return result
}

// SmallestSpacing returns the smallest nonzero distance between
// consecutive knots, or 0 if all knots coincide.
func (this KnotVec) SmallestSpacing() float64 {
	smallest := 0.0
	for i := 1; i < len(this); i++ {
		d := this[i] - this[i-1]
		if d > Epsilon && (smallest == 0 || d < smallest) {
			smallest = d
		}
	}
	return smallest
}

// Equal compares two knot vectors element-wise within eps.
func (this KnotVec) Equal(other KnotVec, eps float64) bool {
	if len(this) != len(other) {
		return false
	}
	for i := range this {
		if math.Abs(this[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

type KnotMultiplicity struct {
	Knot float64
	Mult int
}
