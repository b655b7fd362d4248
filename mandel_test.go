package mandel

import (
	"math"
	"testing"
)

func TestViewportAtLinearity(t *testing.T) {
	v := Viewport{UpperLeft: complex(-2.0, 1.0), LowerRight: complex(1.0, -1.0)}
	const rows, cols = 100, 100

	if got := v.At(0, 0, rows, cols); got != complex(-2.0, 1.0) {
		t.Errorf("At(0,0) = %v, want (-2+1i)", got)
	}
	if im := imag(v.At(50, 0, rows, cols)); im != 0.0 {
		t.Errorf("row 50 imaginary = %g, want 0", im)
	}
	if re := real(v.At(0, 50, rows, cols)); re != -0.5 {
		t.Errorf("column 50 real = %g, want -0.5", re)
	}
	// The last in-bounds row sits strictly above the lower edge.
	if im := imag(v.At(rows-1, 0, rows, cols)); im <= -1.0 {
		t.Errorf("row %d imaginary = %g, want > -1", rows-1, im)
	}
	// One past the last row would land exactly on it.
	if im := imag(v.At(rows, 0, rows, cols)); im != -1.0 {
		t.Errorf("row %d imaginary = %g, want -1", rows, im)
	}
}

func TestViewportValidate(t *testing.T) {
	tests := []struct {
		name    string
		v       Viewport
		wantErr bool
	}{
		{"ok", Viewport{complex(-2, 1), complex(1, -1)}, false},
		{"degenerate ok", Viewport{complex(0, 0), complex(0, 0)}, false},
		{"real flipped", Viewport{complex(1, 1), complex(-2, -1)}, true},
		{"imaginary flipped", Viewport{complex(-2, -1), complex(1, 1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLandmarkViewportsAreValid(t *testing.T) {
	landmarks := map[string]Viewport{
		"classic":  ClassicView,
		"seahorse": SeahorseValley,
		"elephant": ElephantValley,
		"minibrot": SpiralMinibrot,
		"triple":   TripleSpiral,
		"dragon":   ValleyOfTheDragon,
	}
	for name, v := range landmarks {
		if err := v.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRasterValidate(t *testing.T) {
	if err := (Raster{Rows: 4, Columns: 4}).Validate(); err != nil {
		t.Errorf("4x4: %v", err)
	}
	if err := (Raster{Rows: 0, Columns: 4}).Validate(); err == nil {
		t.Error("0 rows: want error")
	}
	if err := (Raster{Rows: 4, Columns: -1}).Validate(); err == nil {
		t.Error("negative columns: want error")
	}
	if err := (Raster{Rows: math.MaxInt / 2, Columns: 3}).Validate(); err == nil {
		t.Error("overflowing raster: want error")
	}
}
