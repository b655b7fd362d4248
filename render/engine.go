// Package render orchestrates Mandelbrot rasterization into a shared pixel
// buffer, either sequentially or forked across a fixed worker pool.
package render

import (
	"errors"
	"fmt"
	"time"

	mandel "github.com/robertmryan/Mandelbrot"
	"github.com/robertmryan/Mandelbrot/chunk"
	"github.com/robertmryan/Mandelbrot/progress"
)

// ErrBufferSize flags a caller-provided buffer that does not match the
// requested raster. Detected before any pixel is touched.
var ErrBufferSize = errors.New("render: buffer does not match raster")

// Oversubscribe is the default number of chunks handed to every worker.
// Points near the set boundary cost far more iterations than points that
// escape immediately; slicing the index space finer than the worker count
// evens that imbalance out.
const Oversubscribe = 8

// Config controls how an Engine schedules work. The zero value uses all
// available cores and the default oversubscription factor.
type Config struct {
	// Workers is the worker pool size; <= 0 means GOMAXPROCS.
	Workers int

	// ChunksPerWorker scales how finely the pixel space is partitioned;
	// <= 0 means Oversubscribe.
	ChunksPerWorker int
}

// Engine renders viewports into caller-owned buffers. Engines are stateless
// between renderings and safe for concurrent use as long as each rendering
// gets its own buffer.
type Engine struct {
	cfg Config
}

// New creates an engine with the given scheduling configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) workers() int {
	return chunk.Workers(e.cfg.Workers)
}

func (e *Engine) chunks() int {
	per := e.cfg.ChunksPerWorker
	if per <= 0 {
		per = Oversubscribe
	}
	return e.workers() * per
}

// Job is one in-flight rendering. A started rendering always runs to
// completion; there is no cancellation path.
type Job struct {
	tracker *progress.Tracker
	done    chan struct{}
}

func newJob(total int) *Job {
	return &Job{
		tracker: progress.NewTracker(int64(total)),
		done:    make(chan struct{}),
	}
}

// Done is closed once every pixel has been written.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the rendering completes.
func (j *Job) Wait() { <-j.done }

// Completed returns the number of pixels written so far.
func (j *Job) Completed() int64 { return j.tracker.Completed() }

// Fraction reports completed pixels as a value in [0, 1]. It is safe to call
// from one observing goroutine while workers are still writing.
func (j *Job) Fraction() float64 { return j.tracker.Fraction() }

// Watch streams coalesced progress fractions to fn on a dedicated goroutine
// until the rendering finishes; fn receives a final sample after completion.
// fn runs on the watcher goroutine, decoupled from the worker pool.
func (j *Job) Watch(interval time.Duration, fn func(float64)) {
	go progress.Watch(j.tracker, interval, j.done, fn)
}

// Parallel rasterizes the viewport into buf across the configured worker
// pool and returns immediately with a Job handle. The pixel index space is
// partitioned into workers*ChunksPerWorker contiguous ranges; every range
// owns a disjoint subslice of buf, so workers never contend on the buffer.
// Validation failures are reported synchronously before any work is forked.
func (e *Engine) Parallel(v mandel.Viewport, raster mandel.Raster, buf mandel.Buffer) (*Job, error) {
	if err := validate(v, raster, buf); err != nil {
		return nil, err
	}
	ranges, err := chunk.Split(raster.Pixels(), e.chunks())
	if err != nil {
		return nil, err
	}

	job := newJob(raster.Pixels())
	workers := e.workers()
	go func() {
		defer close(job.done)
		// fill has no failure path; the per-pixel work is pure arithmetic.
		_ = chunk.Each(workers, ranges, func(r chunk.Range) error {
			fill(v, raster, buf[r.Start:r.End:r.End], r.Start, job.tracker)
			return nil
		})
	}()
	return job, nil
}

// Sequential rasterizes the viewport on a single goroutine in strict
// row-major order. The result is bit-identical to Parallel for the same
// inputs.
func (e *Engine) Sequential(v mandel.Viewport, raster mandel.Raster, buf mandel.Buffer) (*Job, error) {
	if err := validate(v, raster, buf); err != nil {
		return nil, err
	}

	job := newJob(raster.Pixels())
	go func() {
		defer close(job.done)
		fill(v, raster, buf, 0, job.tracker)
	}()
	return job, nil
}

func validate(v mandel.Viewport, raster mandel.Raster, buf mandel.Buffer) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := raster.Validate(); err != nil {
		return err
	}
	if len(buf) != raster.Pixels() {
		return fmt.Errorf("%w: need %d cells, have %d", ErrBufferSize, raster.Pixels(), len(buf))
	}
	return nil
}

// fill rasterizes the linear pixel indices [offset, offset+len(dst)) into
// dst, which aliases exactly that sub-range of the full buffer. Every index
// maps to a plane point, runs the escape loop and lands as one packed color
// plus one unit of progress.
func fill(v mandel.Viewport, raster mandel.Raster, dst mandel.Buffer, offset int, tr *progress.Tracker) {
	for i := range dst {
		idx := offset + i
		row, col := idx/raster.Columns, idx%raster.Columns
		c := v.At(row, col, raster.Rows, raster.Columns)
		dst[i] = mandel.ColorFor(mandel.Iterate(c))
		tr.Add(1)
	}
}
