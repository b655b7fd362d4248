package render

import (
	"errors"
	"testing"
	"time"

	mandel "github.com/robertmryan/Mandelbrot"
)

func TestParallelMatchesSequential(t *testing.T) {
	// Odd dimensions so chunks straddle row boundaries.
	raster := mandel.Raster{Rows: 33, Columns: 17}
	v := mandel.ClassicView

	seq := make(mandel.Buffer, raster.Pixels())
	job, err := New(Config{}).Sequential(v, raster, seq)
	if err != nil {
		t.Fatal(err)
	}
	job.Wait()

	for _, workers := range []int{1, 2, 4, 7} {
		par := make(mandel.Buffer, raster.Pixels())
		job, err := New(Config{Workers: workers}).Parallel(v, raster, par)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		job.Wait()

		for i := range seq {
			if par[i] != seq[i] {
				t.Fatalf("workers=%d: pixel %d = %#08x, sequential wrote %#08x",
					workers, i, uint32(par[i]), uint32(seq[i]))
			}
		}
	}
}

func TestProgressTotal(t *testing.T) {
	raster := mandel.Raster{Rows: 20, Columns: 30}
	buf := make(mandel.Buffer, raster.Pixels())

	for _, cfg := range []Config{
		{},
		{Workers: 1},
		{Workers: 3, ChunksPerWorker: 2},
		{Workers: 8, ChunksPerWorker: 16},
	} {
		job, err := New(cfg).Parallel(mandel.ClassicView, raster, buf)
		if err != nil {
			t.Fatalf("%+v: %v", cfg, err)
		}
		job.Wait()
		if got := job.Completed(); got != int64(raster.Pixels()) {
			t.Errorf("%+v: completed %d pixels, want %d", cfg, got, raster.Pixels())
		}
		if got := job.Fraction(); got != 1.0 {
			t.Errorf("%+v: fraction %g, want 1", cfg, got)
		}
	}
}

func TestSequentialProgressTotal(t *testing.T) {
	raster := mandel.Raster{Rows: 8, Columns: 8}
	buf := make(mandel.Buffer, raster.Pixels())
	job, err := New(Config{}).Sequential(mandel.ClassicView, raster, buf)
	if err != nil {
		t.Fatal(err)
	}
	job.Wait()
	if got := job.Completed(); got != 64 {
		t.Errorf("completed %d pixels, want 64", got)
	}
}

func TestValidationErrors(t *testing.T) {
	eng := New(Config{})
	raster := mandel.Raster{Rows: 4, Columns: 4}

	// Undersized buffer.
	if _, err := eng.Parallel(mandel.ClassicView, raster, make(mandel.Buffer, 3)); !errors.Is(err, ErrBufferSize) {
		t.Errorf("short buffer err = %v, want ErrBufferSize", err)
	}
	if _, err := eng.Sequential(mandel.ClassicView, raster, nil); !errors.Is(err, ErrBufferSize) {
		t.Errorf("nil buffer err = %v, want ErrBufferSize", err)
	}

	// Flipped viewport corners.
	flipped := mandel.Viewport{UpperLeft: complex(1, -1), LowerRight: complex(-2, 1)}
	if _, err := eng.Parallel(flipped, raster, make(mandel.Buffer, raster.Pixels())); err == nil {
		t.Error("flipped viewport: want error")
	}

	// Degenerate raster.
	if _, err := eng.Parallel(mandel.ClassicView, mandel.Raster{Rows: 0, Columns: 4}, nil); err == nil {
		t.Error("zero rows: want error")
	}
}

func TestEndToEndSmallRaster(t *testing.T) {
	v := mandel.Viewport{UpperLeft: complex(-2.1, 1.2), LowerRight: complex(0.6, -1.2)}
	raster := mandel.Raster{Rows: 4, Columns: 4}
	buf := make(mandel.Buffer, raster.Pixels())

	job, err := New(Config{Workers: 2}).Parallel(v, raster, buf)
	if err != nil {
		t.Fatal(err)
	}
	job.Wait()

	if len(buf) != 16 {
		t.Fatalf("buffer holds %d cells, want 16", len(buf))
	}

	var interior, exterior int
	for i, c := range buf {
		switch {
		case c == mandel.Background:
			interior++
		case c.B() == 255 && c.A() == 255 && c.R() == c.G():
			exterior++
		default:
			t.Errorf("pixel %d = %#08x, neither background nor gradient", i, uint32(c))
		}
	}
	if exterior == 0 {
		t.Error("no escaped pixels in the classic frame")
	}
	// Row 2, column 2 maps to -0.75+0i, inside the set.
	if buf[2*4+2] != mandel.Background {
		t.Errorf("center pixel = %#08x, want background", uint32(buf[2*4+2]))
	}

	// Top-left corner (-2.1+1.2i) escapes on the first iteration.
	if want := mandel.ColorFor(1); buf[0] != want {
		t.Errorf("top-left pixel = %#08x, want %#08x", uint32(buf[0]), uint32(want))
	}
}

func TestJobWatch(t *testing.T) {
	raster := mandel.Raster{Rows: 50, Columns: 50}
	buf := make(mandel.Buffer, raster.Pixels())
	job, err := New(Config{}).Parallel(mandel.ClassicView, raster, buf)
	if err != nil {
		t.Fatal(err)
	}

	final := make(chan float64, 1)
	job.Watch(time.Millisecond, func(f float64) {
		select {
		case <-job.Done():
			select {
			case final <- f:
			default:
			}
		default:
		}
	})

	job.Wait()
	select {
	case f := <-final:
		if f != 1.0 {
			t.Errorf("final sample = %g, want 1", f)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no final progress sample after completion")
	}
}

func TestJobDoneChannel(t *testing.T) {
	raster := mandel.Raster{Rows: 10, Columns: 10}
	buf := make(mandel.Buffer, raster.Pixels())
	job, err := New(Config{}).Parallel(mandel.ClassicView, raster, buf)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-job.Done():
	case <-time.After(30 * time.Second):
		t.Fatal("rendering never completed")
	}

	// Every cell was written: none keep the sentinel fill.
	for i, c := range buf {
		if c == 0 {
			t.Fatalf("pixel %d left unwritten", i)
		}
	}
}
