package mandel

import "testing"

func TestIterateOriginNeverEscapes(t *testing.T) {
	if got := Iterate(complex(0, 0)); got != DidNotEscape {
		t.Errorf("Iterate(0) = %d, want DidNotEscape", got)
	}
}

func TestIterateInteriorPoint(t *testing.T) {
	// c = -1 cycles between -1 and 0 forever.
	if got := Iterate(complex(-1, 0)); got != DidNotEscape {
		t.Errorf("Iterate(-1) = %d, want DidNotEscape", got)
	}
}

func TestIterateImmediateEscape(t *testing.T) {
	tests := []struct {
		c    complex128
		want int
	}{
		{complex(2, 0), 1},
		{complex(-2.5, 0), 1},
		{complex(0, 3), 1},
	}
	for _, tt := range tests {
		if got := Iterate(tt.c); got != tt.want {
			t.Errorf("Iterate(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestIterateBounded(t *testing.T) {
	// A sweep over finite inputs must always land in [0, MaxIterations].
	for re := -3.0; re <= 3.0; re += 0.25 {
		for im := -3.0; im <= 3.0; im += 0.25 {
			n := Iterate(complex(re, im))
			if n < 0 || n > MaxIterations {
				t.Fatalf("Iterate(%g%+gi) = %d, outside [0, %d]", re, im, n, MaxIterations)
			}
		}
	}
}

func TestIterateEscapeOrdering(t *testing.T) {
	// Points further from the set escape no later than nearer ones along
	// the positive real axis.
	prev := Iterate(complex(0.26, 0)) // just outside the cardioid
	for re := 0.5; re <= 2.0; re += 0.25 {
		n := Iterate(complex(re, 0))
		if n == DidNotEscape {
			t.Fatalf("Iterate(%g) did not escape", re)
		}
		if n > prev {
			t.Errorf("Iterate(%g) = %d escaped later than nearer point (%d)", re, n, prev)
		}
		prev = n
	}
}
