package filter

import (
	"fmt"

	"github.com/pfcm/shifty"
)

// Cascade returns n EMAs in series. Each stage smooths the output of the
// previous one, which gives a steeper rolloff than a single stage at the cost
// of more lag.
func Cascade(e Exponent, scale uint8, n int) (shifty.Chain, error) {
	if n < 1 {
		return shifty.Chain{}, fmt.Errorf("cascade of %d stages: need at least one", n)
	}
	ts := make([]shifty.Ticker, n)
	for i := range ts {
		f, err := New(e, scale)
		if err != nil {
			return shifty.Chain{}, err
		}
		ts[i] = f
	}
	return shifty.Serially(ts...), nil
}

// Bank returns one independent EMA per channel, run side by side.
func Bank(e Exponent, scale uint8, channels int) (shifty.Concurrent, error) {
	if channels < 1 {
		return shifty.Concurrent{}, fmt.Errorf("bank of %d channels: need at least one", channels)
	}
	ts := make([]shifty.Ticker, channels)
	for i := range ts {
		f, err := New(e, scale)
		if err != nil {
			return shifty.Concurrent{}, err
		}
		ts[i] = f
	}
	return shifty.Concurrently(ts...), nil
}
