package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Percentile calculates the p-th percentile (0-100) of the data using linear
// interpolation between order statistics.
//
// The rank is computed as p/100 * (n-1) and the result is interpolated between
// the two adjacent sorted values. This matches the standard percentile
// convention (not nearest-rank), which is load-bearing for reproducing the
// engine's numeric output.
//
// Args:
//   - data: Sample values (unsorted; the input slice is not modified)
//   - p: Percentile in [0, 100]
//
// Returns:
//   - The interpolated percentile value, or 0 for empty input
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	if len(data) == 1 {
		return data[0]
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// TailMean calculates the mean of all values at or below the p-th percentile.
//
// This is the conditional tail expectation used for CVaR: for p=5 it averages
// the worst 5% of outcomes (including the interpolated threshold boundary).
//
// Args:
//   - data: Sample values
//   - p: Percentile in [0, 100] defining the tail cutoff
//
// Returns:
//   - Mean of the tail values, or 0 for empty input
func TailMean(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	threshold := Percentile(data, p)

	tail := make([]float64, 0, len(data))
	for _, v := range data {
		if v <= threshold {
			tail = append(tail, v)
		}
	}

	if len(tail) == 0 {
		return threshold
	}
	return stat.Mean(tail, nil)
}
