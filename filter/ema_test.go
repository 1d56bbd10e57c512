package filter

import (
	"errors"
	"testing"

	"github.com/pfcm/shifty"
	"github.com/pfcm/shifty/fix"
)

var (
	allExponents = []Exponent{
		Smooth1, Smooth2, Smooth4, Smooth8, Smooth16,
		Smooth32, Smooth64, Smooth128, Smooth256, Smooth512,
	}
	someScales  = []uint8{1, 2, DefaultScale, 8, 12, MaxScale}
	someSamples = []int16{0, 1, -1, 7, -7, 100, -100, 1023, -1024, 32767, -32768}
)

func TestNew(t *testing.T) {
	for _, c := range []struct {
		e     Exponent
		scale uint8
		err   error
	}{
		{Smooth1, 1, nil},
		{Smooth4, DefaultScale, nil},
		{Smooth512, MaxScale, nil},
		{Smooth4, 0, ErrScale},
		{Smooth4, MaxScale + 1, ErrScale},
		{Smooth512 + 1, 4, ErrExponent},
		{Exponent(40), 4, ErrExponent},
	} {
		f, err := New(c.e, c.scale)
		if !errors.Is(err, c.err) {
			t.Errorf("New(%v, %d): got err %v, want: %v", c.e, c.scale, err, c.err)
			continue
		}
		if err != nil {
			continue
		}
		if f.Primed() {
			t.Errorf("New(%v, %d): primed before any samples", c.e, c.scale)
		}
		if f.Scaled() != 0 {
			t.Errorf("New(%v, %d): Scaled() = %d, want: 0", c.e, c.scale, f.Scaled())
		}
		if want := int32(1) << (c.scale - 1); f.Rounding() != want {
			t.Errorf("New(%v, %d): Rounding() = %d, want: %d", c.e, c.scale, f.Rounding(), want)
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustNew(Smooth4, 0) didn't panic")
		}
	}()
	MustNew(Smooth4, 0)
}

func TestSeeding(t *testing.T) {
	for _, e := range allExponents {
		for _, scale := range someScales {
			for _, x := range someSamples {
				f := MustNew(e, scale)
				if got := f.Next(x); got != x {
					t.Errorf("%v: first Next(%d) = %d, want: %d", f, x, got, x)
				}
				if !f.Primed() {
					t.Errorf("%v: not primed after a sample", f)
				}
			}
		}
	}
}

func TestIdempotentRead(t *testing.T) {
	f := Default(Smooth8)
	for _, x := range someSamples {
		f.Update(x)
		a, sa := f.Value(), f.Scaled()
		b, sb := f.Value(), f.Scaled()
		if a != b || sa != sb {
			t.Errorf("reads after Update(%d) disagree: %d/%d then %d/%d", x, a, sa, b, sb)
		}
	}
}

func TestResetReseeds(t *testing.T) {
	for _, e := range allExponents {
		f := MustNew(e, 6)
		for _, x := range someSamples {
			f.Update(x)
		}
		f.Reset()
		if f.Primed() || f.Scaled() != 0 {
			t.Errorf("%v: after Reset: primed %t, scaled %d", f, f.Primed(), f.Scaled())
		}
		if f.Exponent() != e || f.Scale() != 6 || f.Rounding() != 32 {
			t.Errorf("%v: Reset changed the parameters", f)
		}
		for _, x := range someSamples {
			f.Reset()
			if got := f.Next(x); got != x {
				t.Errorf("%v: Next(%d) after Reset = %d, want: %d", f, x, got, x)
			}
		}
	}
}

func TestConstantIsStationary(t *testing.T) {
	for _, e := range allExponents {
		for _, scale := range someScales {
			for _, x := range someSamples {
				f := MustNew(e, scale)
				f.Update(x)
				for i := 0; i < 200; i++ {
					if got := f.Next(x); got != x {
						t.Fatalf("%v: step %d of constant %d: got %d", f, i, x, got)
					}
				}
			}
		}
	}
}

func TestStepConvergence(t *testing.T) {
	for _, e := range allExponents {
		for _, scale := range []uint8{1, 4, 8, MaxScale} {
			for _, x := range []int16{1000, -1000, 32767, -32768} {
				f := MustNew(e, scale)
				f.Update(0)
				prev := f.Value()
				for i := 0; i < 20000; i++ {
					got := f.Next(x)
					if x > 0 && (got < prev || got > x) {
						t.Fatalf("%v: step %d towards %d: %d after %d", f, i, x, got, prev)
					}
					if x < 0 && (got > prev || got < x) {
						t.Fatalf("%v: step %d towards %d: %d after %d", f, i, x, got, prev)
					}
					prev = got
				}
				// Truncating shifts can leave the average short of
				// the target by up to 2^e units of the accumulator.
				slack := int32(1)<<e>>scale + 1
				if d := int32(x) - int32(prev); d > slack || d < -slack {
					t.Errorf("%v: settled at %d towards %d, more than %d away", f, prev, x, slack)
				}
			}
		}
	}
}

func TestStepConvergesExactly(t *testing.T) {
	f := MustNew(Smooth4, DefaultScale)
	f.Update(0)
	var got int16
	for i := 0; i < 1000; i++ {
		got = f.Next(1000)
	}
	if got != 1000 {
		t.Errorf("%v: settled at %d, want: 1000", f, got)
	}
}

func TestWorkedExample(t *testing.T) {
	f := MustNew(Smooth4, 4)
	for _, c := range []struct {
		in     int16
		scaled int32
		out    int16
		float  float64
	}{
		{100, 1600, 100, 100},
		{200, 2000, 125, 125},    // 1600 - 400 + 800
		{200, 2300, 144, 143.75}, // 2000 - 500 + 800
		{200, 2525, 158, 157.8125},
		{0, 1894, 118, 118.375}, // 2525 - 631 + 0
	} {
		got := f.Next(c.in)
		if got != c.out || f.Scaled() != c.scaled {
			t.Errorf("Next(%d) = %d (scaled %d), want: %d (scaled %d)", c.in, got, f.Scaled(), c.out, c.scaled)
		}
		if fl := Float[float64](f); fl != c.float {
			t.Errorf("after Next(%d): Float = %f, want: %f", c.in, fl, c.float)
		}
	}
}

func TestScaledConsistency(t *testing.T) {
	noise := shifty.Noise(2)
	block := [][]int16{make([]int16, 512)}
	noise.Tick(nil, block)
	for _, e := range allExponents {
		for _, scale := range someScales {
			f := MustNew(e, scale)
			for _, x := range block[0] {
				f.Update(x)
				want := fix.Round(f.Scaled(), f.Scale())
				if got := f.Value(); int32(got) != want {
					t.Fatalf("%v: Value() = %d, (Scaled()+Rounding())>>Scale() = %d", f, got, want)
				}
				if want := (f.Scaled() + f.Rounding()) >> f.Scale(); int32(f.Value()) != want {
					t.Fatalf("%v: Value() = %d, want: %d", f, f.Value(), want)
				}
			}
		}
	}
}

func TestTickMatchesNext(t *testing.T) {
	in := [][]int16{make([]int16, 300)}
	shifty.Noise(4).Tick(nil, in)
	want := make([]int16, len(in[0]))
	g := Default(Smooth16)
	for i, x := range in[0] {
		want[i] = g.Next(x)
	}

	f := Default(Smooth16)
	out := [][]int16{make([]int16, len(in[0]))}
	f.Tick(in, out)
	for i := range want {
		if out[0][i] != want[i] {
			t.Fatalf("Tick output %d = %d, want: %d", i, out[0][i], want[i])
		}
	}
}

func TestExtremesDontOverflow(t *testing.T) {
	for _, e := range allExponents {
		f := MustNew(e, MaxScale)
		for i := 0; i < 2000; i++ {
			x := fix.MaxSample
			if (i/50)%2 == 1 {
				x = fix.MinSample
			}
			got := f.Next(x)
			if f.Scaled() > fix.Shl(fix.MaxSample, MaxScale) || f.Scaled() < fix.Shl(fix.MinSample, MaxScale) {
				t.Fatalf("%v: accumulator %d left the scaled sample range", f, f.Scaled())
			}
			if e == Smooth1 && got != x {
				t.Fatalf("%v: Next(%d) = %d", f, x, got)
			}
		}
	}
}
