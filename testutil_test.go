package stockassess

import "math"

// different reports whether a and b differ by more than tolerance,
// relative to the magnitude of b (or absolute, near zero).
func different(a, b, tolerance float64) bool {
	scale := math.Abs(b)
	if scale < 1 {
		scale = 1
	}
	return math.Abs(a-b)/scale > tolerance
}
