// show-ema traces a fixed-point EMA over a few samples, mostly for checking
// the arithmetic by hand.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pfcm/shifty/filter"
	"github.com/pfcm/shifty/fix"
)

var (
	expFlag   = flag.String("exp", "4", "smoothing `factor`: one of 1, 2, 4, ... 512, optionally written 1/N")
	scaleFlag = flag.Uint("scale", filter.DefaultScale, "number of fractional `bits` in the accumulator")
	resetFlag = flag.Int("reset", -1, "reset the filter before the sample at this `index`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptional arguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		fail("Need at least one sample.")
	}
	e, err := filter.ParseExponent(*expFlag)
	if err != nil {
		fail(err.Error())
	}
	if *scaleFlag > filter.MaxScale {
		fail(fmt.Sprintf("scale %d is more than %d", *scaleFlag, filter.MaxScale))
	}
	f, err := filter.New(e, uint8(*scaleFlag))
	if err != nil {
		fail(err.Error())
	}
	samples := make([]int16, flag.NArg())
	for i, a := range flag.Args() {
		s, err := parse(a)
		if err != nil {
			fail(err.Error())
		}
		samples[i] = s
	}

	w := tabwriter.NewWriter(os.Stdout, 8, 1, 1, ' ', 0)
	show(w, f, samples, *resetFlag)
	if err := w.Flush(); err != nil {
		fail(err.Error())
	}
}

func parse(s string) (int16, error) {
	raw, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, err
	}
	if raw != int64(fix.Sat16Wide(raw)) {
		return 0, fmt.Errorf("%d doesn't fit in 16 bits", raw)
	}
	return int16(raw), nil
}

func show(w io.Writer, f *filter.EMA, samples []int16, reset int) {
	fmt.Fprintf(w, "%v\trounding %d\n\n", f, f.Rounding())
	fmt.Fprintln(w, "step\tin\tscaled\tout\texact\t")
	for i, s := range samples {
		if i == reset {
			f.Reset()
			fmt.Fprintln(w, "reset\t\t\t\t\t")
		}
		out := f.Next(s)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.4f\t\n", i, s, f.Scaled(), out, filter.Float[float64](f))
	}
}

func fail(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprint(os.Stderr, help+"\n")
	os.Exit(1)
}

const help = `show-ema shows each step of a fixed-point exponential moving average.
Usage:
	show-ema [-exp N] [-scale N] [-reset I] sample [sample...]

Where each sample is an integer literal in Go syntax that fits in an int16.
`
