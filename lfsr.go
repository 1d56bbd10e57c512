package shifty

import (
	"fmt"
)

// LFSR is a ticker that uses a 16 bit linear-feedback shift register to make
// noise. The register is reinterpreted as a signed sample and arithmetic
// shifted right to set the amplitude.
type LFSR struct {
	state uint16
	taps  uint16
	shift uint8
}

const defaultTaps uint16 = 0xd008

// Noise returns full-scale noise shifted right by shift bits, so that shift 8
// gives noise in roughly +/-128.
func Noise(shift uint8) *LFSR {
	return &LFSR{
		state: 0xffff,
		taps:  defaultTaps,
		shift: min(shift, 15),
	}
}

func (*LFSR) Inputs() int      { return 0 }
func (*LFSR) Outputs() int     { return 1 }
func (l *LFSR) String() string { return fmt.Sprintf("LFSR(%04x>>%d)", l.taps, l.shift) }

func (l *LFSR) Tick(in, out [][]int16) {
	for i := range out[0] {
		fb := l.state & 1
		l.state >>= 1
		if fb == 1 {
			l.state ^= l.taps
		}
		out[0][i] = int16(l.state) >> l.shift
	}
}
