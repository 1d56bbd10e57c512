package fix

// sat.go contains 16 bit saturating arithmetic. Most functions have a few
// implementations, the top level functions use whichever reads best, the
// others stay around so the tests can check they all agree. The differences
// are usually quite small.

const (
	maxInt16 int16 = 0x7fff
	minInt16 int16 = -0x8000
)

// ssadd is a signed saturating add.
func ssadd(a, b int16) int16 {
	return ssaddbig(a, b)
}

// ssaddbranch is a simple starting point for ssadd implementations,
// checking for overflow before carrying out the addition.
func ssaddbranch(a, b int16) int16 {
	// These checks are not great.
	if a > 0 && b > 0 && a > maxInt16-b {
		return maxInt16
	}
	if a < 0 && b < 0 && a < minInt16-b {
		return minInt16
	}
	return a + b
}

func ssaddbranchless(a, b int16) int16 {
	x := a + b
	same := uint16(^(a ^ b)) >> 15 // 1 if a and b are the same sign
	s := uint16(^(x ^ a)) >> 15    // 1 if a and x are the same sign
	// maxInt16 or minInt16 depending on the sign bit of a
	r := int16(uint16(a)>>15 + 0x7fff)
	if (s^same)&same != 0 {
		x = r
	}
	return x
}

// ssaddbig just uses bigger numbers so the overflow checks are easy.
func ssaddbig(a, b int16) int16 {
	x := int32(a) + int32(b)
	return int16(max(min(x, 0x7fff), -0x8000))
}

// sssub is signed, saturating subtraction.
func sssub(a, b int16) int16 {
	return sssubbig(a, b)
}

// sssub by going in and out of int32s.
func sssubbig(a, b int16) int16 {
	return int16(min(max(int32(a)-int32(b), -0x8000), 0x7fff))
}

func sssubdirect(a, b int16) int16 {
	x := a - b
	// The result overflowed if:
	// - a is negative, b is positive, x is positive
	// - a is positive, b is negative, x is negative
	// if both signs are the same, overflow is impossible.
	abDifferent := 1 & ((a ^ b) >> 15)
	axDifferent := 1 & ((a ^ x) >> 15)
	if abDifferent&axDifferent != 0 {
		// overflow happened
		x = int16(uint16(a)>>15 + 0x7fff)
	}
	return x
}
