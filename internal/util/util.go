// Package util provides small numeric helpers used across the
// transform engine.
package util

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AlmostEqual reports whether a and b differ by less than eps.
func AlmostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// NearZero reports whether v is within eps of zero. Transform code
// uses it to detect degenerate denominators before dividing.
func NearZero(v, eps float64) bool {
	return math.Abs(v) < eps
}
