// Package mandel computes escape-time renderings of the Mandelbrot set.
//
// The root package holds the complex-plane geometry and the per-point math:
// viewports, rasters, the escape-time evaluator and the color mapping.
// Work partitioning lives in package chunk, progress accounting in package
// progress and the parallel/sequential orchestration in package render.
package mandel

import (
	"fmt"
	"math"
)

// Viewport is an axis-aligned rectangle in the complex plane. UpperLeft
// carries the smallest real part and the largest imaginary part.
type Viewport struct {
	UpperLeft  complex128
	LowerRight complex128
}

// Validate checks the corner ordering invariant.
func (v Viewport) Validate() error {
	if real(v.UpperLeft) > real(v.LowerRight) {
		return fmt.Errorf("viewport: upper left real %g right of lower right %g", real(v.UpperLeft), real(v.LowerRight))
	}
	if imag(v.UpperLeft) < imag(v.LowerRight) {
		return fmt.Errorf("viewport: upper left imaginary %g below lower right %g", imag(v.UpperLeft), imag(v.LowerRight))
	}
	return nil
}

// At maps a raster position onto the plane. Row 0 lands on the upper edge
// and column 0 on the left edge; row == rows would land exactly on the lower
// edge, so the last valid row stays strictly inside it (half-open sampling).
func (v Viewport) At(row, col, rows, cols int) complex128 {
	re := real(v.UpperLeft) + (real(v.LowerRight)-real(v.UpperLeft))*float64(col)/float64(cols)
	im := imag(v.UpperLeft) + (imag(v.LowerRight)-imag(v.UpperLeft))*float64(row)/float64(rows)
	return complex(re, im)
}

// Classic viewports / landmarks in the Mandelbrot set
var (
	// ClassicView frames the whole set the way the desktop app first shows it
	ClassicView = Viewport{
		UpperLeft:  complex(-2.1, 1.2),
		LowerRight: complex(0.6, -1.2),
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Viewport{
		UpperLeft:  complex(-0.8, 0.15),
		LowerRight: complex(-0.7, 0.05),
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Viewport{
		UpperLeft:  complex(-1.85, -0.02),
		LowerRight: complex(-1.75, -0.10),
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Viewport{
		UpperLeft:  complex(-0.7435, 0.1325),
		LowerRight: complex(-0.7420, 0.1310),
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Viewport{
		UpperLeft:  complex(-0.7480, 0.0980),
		LowerRight: complex(-0.7450, 0.0950),
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Viewport{
		UpperLeft:  complex(-0.7400, 0.1850),
		LowerRight: complex(-0.7350, 0.1800),
	}
)

// Raster describes the target pixel grid.
type Raster struct {
	Rows    int
	Columns int
}

// Pixels returns the flat buffer length the raster needs.
func (r Raster) Pixels() int { return r.Rows * r.Columns }

// Validate checks that the grid is positive and addressable.
func (r Raster) Validate() error {
	if r.Rows <= 0 || r.Columns <= 0 {
		return fmt.Errorf("raster: dimensions must be positive, got %dx%d", r.Rows, r.Columns)
	}
	if r.Rows > math.MaxInt/r.Columns {
		return fmt.Errorf("raster: %dx%d overflows the addressable buffer size", r.Rows, r.Columns)
	}
	return nil
}
