package main

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// maxRecorded bounds how many frames per channel a recorder keeps.
const maxRecorded = 1 << 22

// recorder is a Ticker that passes its inputs through untouched, keeping a
// copy of the first maxRecorded frames.
type recorder struct {
	name     string
	channels int

	mu      sync.Mutex
	samples [][]float64
	frames  int
}

func newRecorder(name string, channels int) *recorder {
	return &recorder{
		name:     name,
		channels: channels,
		samples:  make([][]float64, channels),
	}
}

func (r *recorder) Inputs() int    { return r.channels }
func (r *recorder) Outputs() int   { return r.channels }
func (r *recorder) String() string { return fmt.Sprintf("recorder(%s,%d)", r.name, r.channels) }

func (r *recorder) Tick(in, out [][]int16) {
	for i := range in {
		copy(out[i], in[i])
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(in) > 0 {
		r.frames += len(in[0])
	}
	for i, ch := range in {
		for _, s := range ch {
			if len(r.samples[i]) >= maxRecorded {
				break
			}
			r.samples[i] = append(r.samples[i], float64(s))
		}
	}
}

// channelStats summarises one channel of a stream.
type channelStats struct {
	Mean, StdDev float64
	// Roughness is the standard deviation of the differences between
	// consecutive samples, which smoothing should shrink.
	Roughness float64
}

func summarise(xs []float64) channelStats {
	var cs channelStats
	if len(xs) == 0 {
		return cs
	}
	cs.Mean, cs.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) > 2 {
		d := make([]float64, len(xs)-1)
		for i := range d {
			d[i] = xs[i+1] - xs[i]
		}
		cs.Roughness = stat.StdDev(d, nil)
	}
	return cs
}

func (r *recorder) stats() []channelStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	cs := make([]channelStats, len(r.samples))
	for i, xs := range r.samples {
		cs[i] = summarise(xs)
	}
	return cs
}

// report writes a per-channel comparison of the input and output.
func report(w io.Writer, in, out *recorder) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "%d frames, %d channels\n", in.frames, in.channels); err != nil {
		return err
	}
	if in.frames > maxRecorded {
		p.Fprintf(w, "statistics cover the first %d frames\n", maxRecorded)
	}
	is, outs := in.stats(), out.stats()
	for c := range is {
		_, err := p.Fprintf(w, "channel %d: mean %.2f -> %.2f, stddev %.2f -> %.2f, roughness %.2f -> %.2f\n",
			c, is[c].Mean, outs[c].Mean, is[c].StdDev, outs[c].StdDev, is[c].Roughness, outs[c].Roughness)
		if err != nil {
			return err
		}
	}
	return nil
}
