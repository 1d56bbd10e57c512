package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Exponent selects how much an EMA smooths: each new sample moves the average
// 1/2^e of the way towards it. Larger exponents respond more slowly.
type Exponent uint8

const (
	Smooth1 Exponent = iota
	Smooth2
	Smooth4
	Smooth8
	Smooth16
	Smooth32
	Smooth64
	Smooth128
	Smooth256
	Smooth512

	maxExponent = Smooth512
)

// ErrExponent is returned for smoothing exponents outside Smooth1 to Smooth512.
var ErrExponent = errors.New("invalid smoothing exponent")

// Valid reports whether e is one of the defined exponents.
func (e Exponent) Valid() bool { return e <= maxExponent }

// Factor is the smoothing divisor, 2^e.
func (e Exponent) Factor() int { return 1 << e }

func (e Exponent) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Exponent(%d)", uint8(e))
	}
	return fmt.Sprintf("1/%d", e.Factor())
}

// ExponentOf returns the exponent for a smoothing factor, which must be one of
// 1, 2, 4, ... 512.
func ExponentOf(factor int) (Exponent, error) {
	for e := Smooth1; e <= maxExponent; e++ {
		if e.Factor() == factor {
			return e, nil
		}
	}
	return 0, fmt.Errorf("factor %d: %w", factor, ErrExponent)
}

// ParseExponent parses a smoothing factor written as "16", "1/16" or
// "Smooth16".
func ParseExponent(s string) (Exponent, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "Smooth")
	t = strings.TrimPrefix(t, "1/")
	f, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", s, ErrExponent)
	}
	return ExponentOf(f)
}
