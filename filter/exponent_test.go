package filter

import (
	"errors"
	"testing"
)

func TestExponentOf(t *testing.T) {
	for e := Smooth1; e <= Smooth512; e++ {
		got, err := ExponentOf(e.Factor())
		if err != nil {
			t.Fatalf("ExponentOf(%d): %v", e.Factor(), err)
		}
		if got != e {
			t.Errorf("ExponentOf(%d) = %v, want: %v", e.Factor(), got, e)
		}
	}
	for _, f := range []int{0, 3, -4, 1024} {
		if _, err := ExponentOf(f); !errors.Is(err, ErrExponent) {
			t.Errorf("ExponentOf(%d) err = %v, want: %v", f, err, ErrExponent)
		}
	}
}

func TestParseExponent(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Exponent
		err  bool
	}{
		{"16", Smooth16, false},
		{"1/16", Smooth16, false},
		{"Smooth16", Smooth16, false},
		{" 512 ", Smooth512, false},
		{"1", Smooth1, false},
		{"12", 0, true},
		{"1/0", 0, true},
		{"sixteen", 0, true},
		{"", 0, true},
	} {
		got, err := ParseExponent(c.in)
		if c.err {
			if !errors.Is(err, ErrExponent) {
				t.Errorf("ParseExponent(%q) err = %v, want: %v", c.in, err, ErrExponent)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("ParseExponent(%q) = %v, %v, want: %v", c.in, got, err, c.want)
		}
	}
}

func TestExponentString(t *testing.T) {
	if got := Smooth4.String(); got != "1/4" {
		t.Errorf("Smooth4.String() = %q, want: %q", got, "1/4")
	}
	if got := Exponent(10).String(); got != "Exponent(10)" {
		t.Errorf("Exponent(10).String() = %q, want: %q", got, "Exponent(10)")
	}
	if Exponent(10).Valid() {
		t.Errorf("Exponent(10).Valid() = true, want: false")
	}
}
