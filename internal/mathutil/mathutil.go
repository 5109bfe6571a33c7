package mathutil

import "math"

// BoolToInt returns 1 for true and 0 for false.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Exp2 returns 2^exp.
func Exp2(exp int) float64 {
	return math.Ldexp(1, exp)
}

// MaxPositive returns 2^bits - 1 for bits >= 0.
// Exact below 64 bits; above that the result rounds to the nearest float64,
// which is 2^bits itself.
func MaxPositive(bits int) float64 {
	if bits < 64 {
		return float64(uint64(1)<<uint(bits) - 1)
	}
	return math.Ldexp(1, bits)
}
