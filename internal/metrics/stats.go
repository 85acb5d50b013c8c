// Package metrics holds score statistics and the Prometheus collectors of the
// live dashboard.
package metrics

import (
	"math"
	"slices"
)

// Spread describes how a team's per-judge scores are distributed.
type Spread struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// Summarize computes the spread of values. The zero Spread is returned for
// empty input.
func Summarize(values []float64) Spread {
	if len(values) == 0 {
		return Spread{}
	}
	return Spread{
		Min:    slices.Min(values),
		Max:    slices.Max(values),
		Mean:   Mean(values),
		StdDev: StdDev(values),
	}
}

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}
