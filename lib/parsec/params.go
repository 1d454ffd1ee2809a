package parsec

import "strconv"

// grid is the classification of a physical parameter: either a single point
// or an evenly spaced range described by its bounds and mean step.
type grid struct {
	low    float64
	high   float64
	step   float64
	ranged bool
}

// classify reduces a parameter to its range form. A nil or single-element
// slice is a single point. Two or more elements become a range whose step is
// the mean of consecutive differences; callers are expected to pass evenly
// spaced values, uneven spacing is not detected.
func classify(xs []float64) grid {
	if len(xs) == 0 {
		return grid{}
	}
	if len(xs) == 1 {
		return grid{low: xs[0], high: xs[0]}
	}
	sum := 0.0
	for i := 1; i < len(xs); i++ {
		sum += xs[i] - xs[i-1]
	}
	return grid{
		low:    xs[0],
		high:   xs[len(xs)-1],
		step:   sum / float64(len(xs)-1),
		ranged: true,
	}
}

// fnum renders a float the way the form expects, without a fixed precision.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
