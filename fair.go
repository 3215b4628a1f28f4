package ncurve

import (
	. "github.com/alexozer/ncurve/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Fair smooths the control polygon. Each selected control point (all points
// if selected is empty) is moved towards the position a cubic through its
// two neighbours on either side would give it, by at most tolerance. Points
// with fewer neighbours are pulled onto the chord of their direct
// neighbours. The ends of open curves stay fixed.
//
// With worstOnly set, only the point deviating most is moved; callers
// iterate. Fair returns the largest deviation found before moving.
func (this *NurbsCurve) Fair(selected []int, tolerance float64, worstOnly bool) (float64, error) {
	const op = "Fair"
	if !(tolerance > 0) {
		return 0, newError(op, InvalidArgument, "tolerance %g", tolerance)
	}
	n := len(this.controlPoints)
	for _, i := range selected {
		if i < 0 || i >= n {
			return 0, newError(op, OutOfRange, "index %d, length %d", i, n)
		}
	}
	pts, cyclic := this.offsetPolygon()
	m := len(pts)
	if m < 3 {
		return 0, nil
	}
	params := this.fairingParams(m, cyclic)

	candidates := make([]int, 0, m)
	seen := make([]bool, m)
	add := func(i int) {
		if i >= m {
			i -= m
		}
		if !cyclic && (i == 0 || i == m-1) || seen[i] {
			return
		}
		seen[i] = true
		candidates = append(candidates, i)
	}
	if len(selected) == 0 {
		for i := 0; i < m; i++ {
			add(i)
		}
	} else {
		for _, i := range selected {
			add(i)
		}
	}

	type move struct {
		index int
		ideal vec3.T
		dev   float64
	}
	moves := make([]move, 0, len(candidates))
	worst := -1
	maxDev := 0.0
	for _, i := range candidates {
		ideal, err := idealPosition(pts, params, i, cyclic)
		if err != nil {
			return 0, newError(op, DegenerateInput, "control point %d: %v", i, err)
		}
		dev := vec3.Distance(&ideal, &pts[i])
		if dev > maxDev {
			maxDev, worst = dev, len(moves)
		}
		moves = append(moves, move{i, ideal, dev})
	}
	if worstOnly && worst >= 0 {
		moves = moves[worst : worst+1]
	}

	cps := append([]HomoPoint(nil), this.controlPoints...)
	moved := 0
	for _, mv := range moves {
		if mv.dev < Epsilon {
			continue
		}
		step := vec3.Sub(&mv.ideal, &pts[mv.index])
		if mv.dev > tolerance {
			step.Scale(tolerance / mv.dev)
		}
		pt := vec3.Add(&pts[mv.index], &step)
		cps[mv.index] = Homogenized(pt, cps[mv.index].W)
		moved++
	}
	for i := m; i < n; i++ {
		cps[i] = cps[i-m]
	}
	if moved > 0 {
		this.replace(cps, this.knots)
	}
	tracer().Debugf("%s: moved %d of %d points, max deviation %g", op, moved, len(candidates), maxDev)
	return maxDev, nil
}

// fairingParams assigns a parameter to each distinct control point:
// Greville abscissae for open curves, point indices for wrapping curves
// and for open curves with coinciding abscissae.
func (this *NurbsCurve) fairingParams(m int, cyclic bool) []float64 {
	params := make([]float64, m)
	useIndex := cyclic
	for i := range params {
		params[i] = this.greville(i)
		if i > 0 && params[i]-params[i-1] < Epsilon {
			useIndex = true
		}
	}
	if useIndex {
		for i := range params {
			params[i] = float64(i)
		}
	}
	return params
}

// idealPosition interpolates the neighbours of point i. With two
// neighbours on either side the cubic through them is evaluated at the
// parameter of i; otherwise i is projected onto the chord of its direct
// neighbours.
func idealPosition(pts []vec3.T, params []float64, i int, cyclic bool) (vec3.T, error) {
	m := len(pts)
	at := func(k int) (vec3.T, float64) {
		if !cyclic {
			return pts[k], params[k] - params[i]
		}
		j := ((k % m) + m) % m
		return pts[j], float64(k - i)
	}
	if !cyclic && (i < 2 || i > m-3) || cyclic && m < 5 {
		prev, _ := at(i - 1)
		next, _ := at(i + 1)
		return segmentClosestPoint(&pts[i], &prev, &next, 0, 1).Pt, nil
	}

	var nb [4]vec3.T
	vt := NewMatrix(4)
	for col, k := range [4]int{i - 2, i - 1, i + 1, i + 2} {
		pt, t := at(k)
		nb[col] = pt
		pow := 1.0
		for row := 0; row < 4; row++ {
			vt[row][col] = pow
			pow *= t
		}
	}
	// blend weights of the neighbours for the value at t = 0
	w, err := vt.Solve([]float64{1, 0, 0, 0})
	if err != nil {
		return vec3.Zero, err
	}
	var ideal vec3.T
	for col := range nb {
		ideal.Add(nb[col].Scale(w[col]))
	}
	return ideal, nil
}
