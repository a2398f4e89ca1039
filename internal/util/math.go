package util

import "math"

// Finite replaces NaN and ±Inf with zero.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Clamp bounds v to [lo, hi] after discarding non-finite values.
func Clamp(v, lo, hi float64) float64 {
	v = Finite(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
