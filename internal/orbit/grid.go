package orbit

import "math"

// Axis returns the sample positions -bound + k*delta for k = 0, 1, ...
// while the position stays below bound.
//
// Positions are computed by multiplication so rounding does not drift
// along the axis. A delta that is not positive (or NaN) or a bound that is
// not positive and finite yields nil.
func Axis(bound, delta float64) []float64 {
	if !(delta > 0) || !(bound > 0) || math.IsInf(bound, 1) {
		return nil
	}

	var hint int
	if n := (2 * bound) / delta; n < 1<<24 {
		hint = int(n) + 1
	}
	xs := make([]float64, 0, hint)
	for k := 0; ; k++ {
		x := -bound + float64(k)*delta
		if !(x < bound) {
			break
		}
		xs = append(xs, x)
	}
	return xs
}

// Grid returns the Cartesian product of Axis(bound, delta) with itself.
// The real part is the outer index, so the grid is
// (x0,y0), (x0,y1), ..., (x1,y0), ...
func Grid(bound, delta float64) []complex128 {
	axis := Axis(bound, delta)
	grid := make([]complex128, 0, len(axis)*len(axis))
	for _, re := range axis {
		for _, im := range axis {
			grid = append(grid, complex(re, im))
		}
	}
	return grid
}
