package shifty

import (
	"fmt"
)

// tickFn is a generic ticker that helps us avoid some boilerplate.
type tickFn struct {
	name            string
	inputs, outputs int
	tick            func([][]int16, [][]int16)
}

func (t tickFn) Inputs() int         { return t.inputs }
func (t tickFn) Outputs() int        { return t.outputs }
func (t tickFn) String() string      { return t.name }
func (t tickFn) Tick(i, o [][]int16) { t.tick(i, o) }

// Step creates a Ticker that outputs before for the first at samples it
// produces and after from then on.
func Step(before, after int16, at int) Ticker {
	samples := 0
	return tickFn{
		name:    fmt.Sprintf("Step(%d,%d,%d)", before, after, at),
		inputs:  0,
		outputs: 1,
		tick: func(_, outputs [][]int16) {
			for i := range outputs[0] {
				if samples < at {
					outputs[0][i] = before
					samples++
					continue
				}
				outputs[0][i] = after
			}
		},
	}
}

// Pulse creates a Ticker that outputs val once every interval samples, starting
// with the first, and zero everywhere else.
func Pulse(val int16, interval int) Ticker {
	if interval < 1 {
		panic(fmt.Errorf("pulse interval %d: must be positive", interval))
	}
	samples := 0
	return tickFn{
		name:    fmt.Sprintf("Pulse(%d,%d)", val, interval),
		inputs:  0,
		outputs: 1,
		tick: func(_, outputs [][]int16) {
			for i := range outputs[0] {
				outputs[0][i] = 0
				if samples == 0 {
					outputs[0][i] = val
				}
				samples++
				if samples == interval {
					samples = 0
				}
			}
		},
	}
}

// Once creates a ticker that outputs a value once, in the first sample it
// produces and produces entirely zeros after that.
func Once(val int16) Ticker {
	done := false
	return tickFn{
		name:    fmt.Sprintf("Once(%d)", val),
		inputs:  0,
		outputs: 1,
		tick: func(_, outputs [][]int16) {
			for i := range outputs[0] {
				outputs[0][i] = 0
			}
			if !done && len(outputs[0]) > 0 {
				outputs[0][0] = val
				done = true
			}
		},
	}
}
