// package filter provides fixed-point filters that only shift and add.
package filter

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/pfcm/shifty"
	"github.com/pfcm/shifty/fix"
)

const (
	// DefaultScale is the number of fractional bits used by Default.
	DefaultScale = 4
	// MaxScale is the most fractional bits an EMA can carry. Any int16
	// shifted up by MaxScale, plus rounding, still fits the int32
	// accumulator.
	MaxScale = fix.MaxScale
)

// ErrScale is returned for scales outside 1 to MaxScale.
var ErrScale = errors.New("invalid scale")

// EMA is an exponential moving average over int16 samples using only integer
// shifts, adds and subtracts. Internally the average is kept scaled up by
// 2^scale so the fractional part survives the right shifts:
//
//	avg' = avg - avg>>e + (x<<scale)>>e
//
// which is avg + (x - avg)/2^e with the division done as a shift. The first
// sample after construction or Reset seeds the average directly.
//
// An EMA is not safe for concurrent use.
type EMA struct {
	exp      Exponent
	scale    uint8
	rounding int32

	scaled int32
	primed bool
}

// New returns an EMA smoothing by 2^e with scale fractional bits. The scale
// has to be between 1 and MaxScale.
func New(e Exponent, scale uint8) (*EMA, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("exponent %d: %w", uint8(e), ErrExponent)
	}
	if scale < 1 || scale > MaxScale {
		return nil, fmt.Errorf("scale %d: must be in [1, %d]: %w", scale, MaxScale, ErrScale)
	}
	return &EMA{
		exp:      e,
		scale:    scale,
		rounding: 1 << (scale - 1),
	}, nil
}

// MustNew is New, but panics if the parameters are invalid.
func MustNew(e Exponent, scale uint8) *EMA {
	f, err := New(e, scale)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns an EMA with DefaultScale fractional bits.
func Default(e Exponent) *EMA {
	return MustNew(e, DefaultScale)
}

// Update adds a sample to the average.
func (f *EMA) Update(x int16) {
	if !f.primed {
		f.scaled = fix.Shl(x, f.scale)
		f.primed = true
		return
	}
	f.scaled = f.scaled - f.scaled>>f.exp + fix.Shl(x, f.scale)>>f.exp
}

// Next adds a sample and returns the updated average.
func (f *EMA) Next(x int16) int16 {
	f.Update(x)
	return f.Value()
}

// Value returns the current average rounded to the nearest sample, with ties
// rounding up. It is zero before the first Update.
func (f *EMA) Value() int16 {
	// The accumulator never leaves the scaled range of the samples, so
	// this can't overflow.
	return int16((f.scaled + f.rounding) >> f.scale)
}

// Scaled returns the raw accumulator: the average times 2^Scale.
func (f *EMA) Scaled() int32 { return f.scaled }

// Reset forgets every sample, so the next one seeds the average again.
func (f *EMA) Reset() {
	f.primed = false
	f.scaled = 0
}

// Primed reports whether the EMA has seen a sample since construction or the
// last Reset.
func (f *EMA) Primed() bool { return f.primed }

func (f *EMA) Exponent() Exponent { return f.exp }
func (f *EMA) Scale() uint8       { return f.scale }
func (f *EMA) Rounding() int32    { return f.rounding }

// Float returns the average held by f without rounding it to a whole sample.
func Float[T constraints.Float](f *EMA) T {
	return fix.ToFloat[T](f.scaled, f.scale)
}

var _ shifty.Ticker = &EMA{}

func (*EMA) Inputs() int  { return 1 }
func (*EMA) Outputs() int { return 1 }

func (f *EMA) String() string {
	return fmt.Sprintf("EMA(%v,%d)", f.exp, f.scale)
}

// Tick smooths a block of samples, writing the average after each one.
func (f *EMA) Tick(in, out [][]int16) {
	for i, x := range in[0] {
		out[0][i] = f.Next(x)
	}
}
