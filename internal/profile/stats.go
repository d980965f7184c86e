package profile

import (
	"math"
	"sort"
)

// =============================================================================
// Statistical primitives
// =============================================================================

// iqrFence is the multiplier applied to the interquartile range when flagging
// outliers.
const iqrFence = 1.5

// Mean computes the arithmetic mean. Empty input returns 0.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev computes the sample standard deviation (n-1). Fewer than two values
// returns 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// Percentile computes the p-th percentile (0..100) of an ascending-sorted
// slice using linear interpolation between ranks.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Pearson computes the Pearson correlation coefficient of two equal-length
// samples. Fewer than two pairs or zero variance on either side returns 0.
// The result is clamped to [-1, 1] to absorb float drift.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		x, y := xs[i], ys[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}

	fn := float64(n)
	den := math.Sqrt((fn*sumXX - sumX*sumX) * (fn*sumYY - sumY*sumY))
	if den == 0 || math.IsNaN(den) {
		return 0
	}

	r := (fn*sumXY - sumX*sumY) / den
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}

// Skewness computes the adjusted Fisher-Pearson coefficient (the estimator
// pandas uses). Fewer than three values or zero variance returns 0.
func Skewness(values []float64) float64 {
	n := len(values)
	if n < 3 {
		return 0
	}

	mean := Mean(values)
	var m2, m3 float64
	for _, v := range values {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)

	if m2 == 0 {
		return 0
	}

	g1 := m3 / math.Pow(m2, 1.5)
	fn := float64(n)
	return g1 * math.Sqrt(fn*(fn-1)) / (fn - 2)
}

// OutlierBounds returns the IQR fences for the given quartiles. Values
// outside [lo, hi] count as outliers.
func OutlierBounds(q1, q3 float64) (lo, hi float64) {
	iqr := q3 - q1
	return q1 - iqrFence*iqr, q3 + iqrFence*iqr
}

// CountOutliers counts values outside the IQR fences of the sample.
func CountOutliers(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := OutlierBounds(Percentile(sorted, 25), Percentile(sorted, 75))
	count := 0
	for _, v := range values {
		if v < lo || v > hi {
			count++
		}
	}
	return count
}
