// package shifty does block processing of integer sample streams, mostly so
// that fixed-point filters can be chained together and run per channel.
package shifty

import (
	"fmt"
	"strings"

	"github.com/pfcm/shifty/fix"
)

// Ticker is something that processes samples.
type Ticker interface {
	// Inputs returns the number of expected input channels.
	Inputs() int
	// Outputs returns the number of expected output channels.
	Outputs() int
	// Tick processes a chunk of samples. The first dimension of the input
	// slice is always Inputs, and the first dimension of the output
	// slice is always Outputs. Each individual element of both slices
	// is always the same length. Tickers may overwrite the input buffer.
	Tick(input, output [][]int16)

	fmt.Stringer
}

// BlockSize is the largest block a Chain will carry between its stages.
const BlockSize = 4096

// Const is a Ticker that always fills its single output with a given value.
type Const struct {
	Val int16
}

var _ Ticker = Const{}

func (c Const) Inputs() int    { return 0 }
func (c Const) Outputs() int   { return 1 }
func (c Const) String() string { return fmt.Sprintf("Const(%d)", c.Val) }

func (c Const) Tick(_, output [][]int16) {
	for i := range output[0] {
		output[0][i] = c.Val
	}
}

// Chain is a ticker that applies a sequence of Tickers. The inputs and outputs all
// need to line up.
type Chain struct {
	ts              []Ticker
	inputs, outputs int
	b1, b2          [][]int16
}

var _ Ticker = Chain{}

// Serially chains ts together, panicking if there are none or if the outputs of
// one don't match the inputs of the next.
func Serially(ts ...Ticker) Chain {
	if len(ts) == 0 {
		panic(fmt.Errorf("empty chain"))
	}
	maxChans := ts[0].Inputs()
	for i := 1; i < len(ts); i++ {
		if ts[i-1].Outputs() != ts[i].Inputs() {
			panic(fmt.Errorf(
				"outputs/inputs mismatch:\n%v (%d outputs)\n->\n%v (%d inputs)",
				ts[i-1], ts[i-1].Outputs(), ts[i], ts[i].Inputs()))
		}
		maxChans = max(ts[i-1].Outputs(), maxChans)
		maxChans = max(ts[i].Inputs(), maxChans)
	}
	maxChans = max(ts[len(ts)-1].Outputs(), maxChans)
	b1 := make([][]int16, maxChans)
	for i := range b1 {
		b1[i] = make([]int16, BlockSize)
	}
	b2 := make([][]int16, maxChans)
	for i := range b2 {
		b2[i] = make([]int16, BlockSize)
	}
	return Chain{
		ts:      ts,
		inputs:  ts[0].Inputs(),
		outputs: ts[len(ts)-1].Outputs(),
		b1:      b1,
		b2:      b2,
	}
}

func (c Chain) Inputs() int    { return c.inputs }
func (c Chain) Outputs() int   { return c.outputs }
func (c Chain) String() string { return fmt.Sprintf("Chain(%v)", c.ts) }

// Tick runs every stage in order. Blocks longer than BlockSize are processed
// in pieces.
func (c Chain) Tick(input, output [][]int16) {
	n := blockLen(input, output)
	for off := 0; off < n; off += BlockSize {
		end := min(off+BlockSize, n)
		c.tick(window(input, off, end), window(output, off, end), end-off)
	}
}

func (c Chain) tick(input, output [][]int16, n int) {
	// TODO: we could certainly skip some copies, but also that gets messy.
	in, out := c.b1, c.b2
	for i := range in {
		in[i] = in[i][:n]
		out[i] = out[i][:n]
	}
	for i := range input {
		copy(in[i], input[i])
	}
	in = in[:len(input)]
	for _, t := range c.ts {
		out = out[:t.Outputs()]
		t.Tick(in, out)
		in, out = out, in[:cap(in)]
	}
	for i := range output {
		copy(output[i], in[i])
	}
}

// blockLen is the number of samples in a block, which has to be worked out
// from the outputs when there are no inputs.
func blockLen(input, output [][]int16) int {
	if len(input) > 0 {
		return len(input[0])
	}
	if len(output) > 0 {
		return len(output[0])
	}
	return 0
}

func window(chans [][]int16, start, end int) [][]int16 {
	w := make([][]int16, len(chans))
	for i, c := range chans {
		w[i] = c[start:end]
	}
	return w
}

// Mixer mixes together a number of inputs, first right-shifting each by its
// entry in Shifts. The sum saturates rather than wrapping.
type Mixer struct {
	Shifts []uint8
}

var _ Ticker = Mixer{}

func (m Mixer) Inputs() int    { return len(m.Shifts) }
func (m Mixer) Outputs() int   { return 1 }
func (m Mixer) String() string { return fmt.Sprintf("Mixer%v", m.Shifts) }

func (m Mixer) Tick(input, output [][]int16) {
	for i := range output[0] {
		var s int16
		for j, sh := range m.Shifts {
			s = fix.SAdd(s, input[j][i]>>sh)
		}
		output[0][i] = s
	}
}

// Concurrent is a Ticker that joins a group of tickers side by side, each
// getting its own slice of the channels.
type Concurrent struct {
	ts              []Ticker
	inputs, outputs int
}

func Concurrently(ts ...Ticker) Concurrent {
	ins, outs := 0, 0
	for _, t := range ts {
		ins += t.Inputs()
		outs += t.Outputs()
	}
	return Concurrent{
		ts:      ts,
		inputs:  ins,
		outputs: outs,
	}
}

var _ Ticker = Concurrent{}

func (c Concurrent) Inputs() int  { return c.inputs }
func (c Concurrent) Outputs() int { return c.outputs }

func (c Concurrent) String() string {
	s := make([]string, len(c.ts))
	for i, t := range c.ts {
		s[i] = t.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(s, ","))
}

func (c Concurrent) Tick(inputs, outputs [][]int16) {
	in, out := 0, 0
	for _, t := range c.ts {
		ni, no := in+t.Inputs(), out+t.Outputs()
		t.Tick(inputs[in:ni], outputs[out:no])
		in, out = ni, no
	}
}

// Mult copies a single input to the provided number of outputs.
type Mult struct {
	N int
}

var _ Ticker = Mult{}

func (Mult) Inputs() int      { return 1 }
func (m Mult) Outputs() int   { return m.N }
func (m Mult) String() string { return fmt.Sprintf("Mult(%d)", m.N) }

func (m Mult) Tick(inputs, outputs [][]int16) {
	for _, o := range outputs {
		copy(o, inputs[0])
	}
}

// Noop is a Ticker that just copies its inputs to its outputs.
type Noop struct {
	N int
}

func (n Noop) Inputs() int    { return n.N }
func (n Noop) Outputs() int   { return n.N }
func (n Noop) String() string { return fmt.Sprintf("Noop(%d)", n.N) }

func (n Noop) Tick(inputs, outputs [][]int16) {
	for i := range inputs {
		copy(outputs[i], inputs[i])
	}
}

// Rectify is a Ticker that outputs the absolute value of each of its N
// inputs. The most negative sample saturates.
type Rectify struct {
	N int
}

func (r Rectify) Inputs() int    { return r.N }
func (r Rectify) Outputs() int   { return r.N }
func (r Rectify) String() string { return fmt.Sprintf("Rectify(%d)", r.N) }

func (r Rectify) Tick(inputs, outputs [][]int16) {
	for c, in := range inputs {
		for i, s := range in {
			if s < 0 {
				s = fix.SSub(0, s)
			}
			outputs[c][i] = s
		}
	}
}
