// Package agg has aggregation logic for repository and commit signal data.
package agg

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// mean returns the arithmetic mean of values, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// median returns the midpoint-interpolating median of values, 0 for an
// empty slice. For even-length input it averages the two middle values.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdev returns the sample standard deviation, 0 when fewer than two values.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
