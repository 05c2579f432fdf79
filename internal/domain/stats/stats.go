// Package stats provides the numeric kernels used by the descriptive analysis
// stages: mean, sample standard deviation, interpolated percentiles and IQR
// outlier fences. All functions are pure.
package stats

import (
	"math"
	"sort"
)

// IQR fence multiplier for outlier detection.
const fenceFactor = 1.5

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Sum returns the total of the slice.
func Sum(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum
}

// SampleStd returns the sample standard deviation (n-1 denominator).
// A slice with fewer than two observations yields 0, not NaN.
func SampleStd(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// Percentile returns the p-th percentile (0 <= p <= 1) using linear
// interpolation between closest ranks, matching the default quantile method
// of common dataframe libraries. Returns 0 for an empty slice.
func Percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Fences returns the lower and upper IQR outlier fences for the given
// quartiles: Q1 - 1.5*IQR and Q3 + 1.5*IQR.
func Fences(q1, q3 float64) (lower, upper float64) {
	iqr := q3 - q1
	return q1 - fenceFactor*iqr, q3 + fenceFactor*iqr
}

// Summary is a five-number summary plus count, mean and sample std for one
// numeric column, mirroring a dataframe describe() row.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"25%"`
	Median float64 `json:"50%"`
	Q3     float64 `json:"75%"`
	Max    float64 `json:"max"`
}

// Describe computes the summary statistics for one column of values.
func Describe(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	return Summary{
		Count:  len(xs),
		Mean:   Mean(xs),
		Std:    SampleStd(xs),
		Min:    Percentile(xs, 0),
		Q1:     Percentile(xs, 0.25),
		Median: Percentile(xs, 0.5),
		Q3:     Percentile(xs, 0.75),
		Max:    Percentile(xs, 1),
	}
}
