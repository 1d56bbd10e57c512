package filter

import (
	"testing"

	"github.com/pfcm/shifty"
)

func TestBankChannelsAreIndependent(t *testing.T) {
	b, err := Bank(Smooth8, DefaultScale, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b.Inputs() != 2 || b.Outputs() != 2 {
		t.Fatalf("%v: %d inputs, %d outputs, want: 2, 2", b, b.Inputs(), b.Outputs())
	}
	in := [][]int16{make([]int16, 64), make([]int16, 64)}
	for i := range in[0] {
		in[0][i] = 100
		in[1][i] = -50
	}
	out := [][]int16{make([]int16, 64), make([]int16, 64)}
	b.Tick(in, out)
	for i := range out[0] {
		if out[0][i] != 100 || out[1][i] != -50 {
			t.Fatalf("sample %d: got %d, %d, want: 100, -50", i, out[0][i], out[1][i])
		}
	}
}

func TestCascade(t *testing.T) {
	if _, err := Cascade(Smooth4, DefaultScale, 0); err == nil {
		t.Errorf("Cascade with no stages: want an error")
	}
	if _, err := Cascade(Smooth4, 0, 2); err == nil {
		t.Errorf("Cascade with scale 0: want an error")
	}

	c, err := Cascade(Smooth4, DefaultScale, 3)
	if err != nil {
		t.Fatal(err)
	}
	single := Default(Smooth4)

	step := shifty.Serially(shifty.Step(0, 1000, 1), shifty.Mult{N: 2})
	in := [][]int16{make([]int16, 40), make([]int16, 40)}
	step.Tick(nil, in)

	out := [][]int16{make([]int16, 40)}
	c.Tick(in[:1], out)
	ref := [][]int16{make([]int16, 40)}
	single.Tick(in[1:], ref)

	if out[0][0] != 0 {
		t.Errorf("cascade seeded at %d, want: 0", out[0][0])
	}
	// More stages lag a single one, but never pass the step.
	for i := 1; i < len(out[0]); i++ {
		if out[0][i] > ref[0][i] || out[0][i] > 1000 || out[0][i] < out[0][i-1] {
			t.Fatalf("sample %d: cascade %d, single %d, previous %d", i, out[0][i], ref[0][i], out[0][i-1])
		}
	}
}
