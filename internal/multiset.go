package internal

import "math"

// Union merges two sorted knot vectors into the smallest sorted vector that
// contains both, each value with the larger of its two multiplicities.
func (this KnotVec) Union(other KnotVec) (merged KnotVec) {
	merged = make(KnotVec, 0, len(this)+len(other))

	var thisI, otherI int
	for thisI < len(this) || otherI < len(other) {
		switch {
		case thisI >= len(this):
			merged = append(merged, other[otherI])
			otherI++
		case otherI >= len(other):
			merged = append(merged, this[thisI])
			thisI++
		case math.Abs(this[thisI]-other[otherI]) < Epsilon:
			merged = append(merged, this[thisI])
			thisI++
			otherI++
		case this[thisI] > other[otherI]:
			merged = append(merged, other[otherI])
			otherI++
		default:
			merged = append(merged, this[thisI])
			thisI++
		}
	}

	return
}

// Difference returns the knots of this (a superset) that other lacks,
// counting multiplicities.
func (this KnotVec) Difference(other KnotVec) (result KnotVec) {
	result = make(KnotVec, 0)

	var otherI int
	for _, knot := range this {
		for otherI < len(other) && other[otherI] < knot-Epsilon {
			otherI++
		}
		if otherI < len(other) && math.Abs(knot-other[otherI]) < Epsilon {
			otherI++
			continue
		}
		result = append(result, knot)
	}

	return
}
