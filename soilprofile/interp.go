package soilprofile

// interpSeries evaluates a piecewise-linear function given by knots xs
// (non-decreasing, duplicates allowed) and values ys at position x.
// Outside the knot range the boundary value is held. A duplicated knot
// encodes a jump at a layer transition; the value on the deeper side is
// returned there, which is how boundary nodes take the layer below.
//
// gonum's interp package is not used here because its interpolators require
// strictly increasing abscissae; the duplicated transition knots are the
// point of this representation.
func interpSeries(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	// Last index with xs[j] <= x; the interval [xs[j], xs[j+1]] owns x.
	j := 0
	for j < n-1 && xs[j+1] <= x {
		j++
	}
	if x == xs[j] || xs[j+1] == xs[j] {
		return ys[j]
	}
	t := (x - xs[j]) / (xs[j+1] - xs[j])
	return ys[j] + t*(ys[j+1]-ys[j])
}
