package profile

import "math"

// trendThreshold is the |r| against row order beyond which a column counts as
// trending rather than stable.
const trendThreshold = 0.5

// shapeThreshold is the |skewness| below which a distribution counts as
// normal.
const shapeThreshold = 0.5

// classifyTrend correlates the values with their row positions. A strong
// positive correlation means the column grows down the file.
func classifyTrend(values []float64) Trend {
	if len(values) < 2 {
		return TrendStable
	}

	idx := make([]float64, len(values))
	for i := range idx {
		idx[i] = float64(i)
	}

	r := Pearson(values, idx)
	switch {
	case r > trendThreshold:
		return TrendIncreasing
	case r < -trendThreshold:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// classifyShape maps a skewness coefficient to a distribution shape.
func classifyShape(skewness float64) Shape {
	switch {
	case math.Abs(skewness) < shapeThreshold:
		return ShapeNormal
	case skewness > 0:
		return ShapeRightSkewed
	default:
		return ShapeLeftSkewed
	}
}
