// package fix provides helpers for scaled fixed-point accumulators: int16
// samples carried in an int32 with some number of fractional bits.
package fix

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	// MaxSample is the highest int16 sample.
	MaxSample int16 = 0x7fff
	// MinSample is the lowest int16 sample.
	MinSample int16 = -0x8000

	// MaxScale is the most fractional bits an int32 accumulator can
	// carry for any int16 sample, with room left to round.
	MaxScale = 16
)

// Shl scales a sample up into an accumulator with scale fractional bits.
func Shl(x int16, scale uint8) int32 {
	return int32(x) << scale
}

// Round converts an accumulator with scale fractional bits back into whole
// units, rounding to the nearest and breaking ties upwards. A scale of zero is
// returned as is.
func Round(acc int32, scale uint8) int32 {
	if scale == 0 {
		return acc
	}
	return (acc + 1<<(scale-1)) >> scale
}

// Sat16 narrows v to an int16, clamping to the maximum or minimum values.
func Sat16(v int32) int16 {
	return int16(min(max(v, int32(MinSample)), int32(MaxSample)))
}

// Sat16Wide is Sat16 for values parsed into an int64.
func Sat16Wide(v int64) int16 {
	return int16(min(max(v, int64(MinSample)), int64(MaxSample)))
}

// SAdd is a saturating +, clipping to the minimum or maximum sample.
func SAdd(a, b int16) int16 {
	return ssadd(a, b)
}

// SSub is a saturating -, clipping to the minimum or maximum sample.
func SSub(a, b int16) int16 {
	return sssub(a, b)
}

// ToFloat converts an accumulator with scale fractional bits into a float in
// sample units.
func ToFloat[T constraints.Float](acc int32, scale uint8) T {
	// ideally this would be const, but apparently it can't be.
	var unit = 1.0 / T(int64(1)<<scale)
	return T(acc) * unit
}

// FromFloat converts a float in sample units into an accumulator with scale
// fractional bits, rounding to the nearest and clamping to the range of scaled
// samples.
func FromFloat[T constraints.Float](f T, scale uint8) int32 {
	lo, hi := Shl(MinSample, scale), Shl(MaxSample, scale)
	v := math.Round(float64(f) * float64(int64(1)<<scale))
	if v <= float64(lo) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int32(v)
}
