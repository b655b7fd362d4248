// Package chunk partitions a linear iteration space into contiguous,
// near-equal ranges and runs them on a fixed set of worker goroutines.
//
// Ranges produced for one partition are pairwise disjoint and cover the
// space exactly, which is what lets callers hand each worker its own slice
// of a shared buffer without any locking.
package chunk

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrInvalidPartition flags malformed partition arguments.
var ErrInvalidPartition = errors.New("chunk: invalid partition")

// Range is a half-open interval [Start, End) of linear indices.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.End - r.Start }

// Split divides [0, n) into min(n, k) contiguous ranges whose lengths differ
// by at most one. The first n%count ranges carry the extra element. A single
// degenerate range is produced for n == 0 so that callers always get
// something to run.
func Split(n, k int) ([]Range, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative iteration count %d", ErrInvalidPartition, n)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: chunk count must be positive, got %d", ErrInvalidPartition, k)
	}

	count := min(n, k)
	if count < 1 {
		count = 1
	}

	base, rem := n/count, n%count
	ranges := make([]Range, count)
	for i := range ranges {
		start := i*base + min(i, rem)
		length := base
		if i < rem {
			length++
		}
		ranges[i] = Range{Start: start, End: start + length}
	}
	return ranges, nil
}

// Workers resolves a worker count: w when positive, otherwise GOMAXPROCS.
// Keeping the environment read here makes the scheduler itself testable with
// injected counts.
func Workers(w int) int {
	if w > 0 {
		return w
	}
	return runtime.GOMAXPROCS(0)
}

// Each runs fn once per range on up to workers goroutines and blocks until
// every range has finished. Ranges are handed out in slice order but may
// complete in any order; the indices inside one range are visited by exactly
// one worker, in increasing order. With a single worker or a single range the
// calls happen synchronously on the caller's goroutine.
//
// Failures do not abort the remaining ranges: Each drains the whole
// partition and returns the joined errors afterwards.
func Each(workers int, ranges []Range, fn func(Range) error) error {
	if len(ranges) == 0 {
		return nil
	}

	workers = Workers(workers)
	if workers > len(ranges) {
		workers = len(ranges)
	}
	if workers == 1 {
		var errs []error
		for _, r := range ranges {
			if err := fn(r); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	feed := make(chan Range)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for r := range feed {
				if err := fn(r); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	for _, r := range ranges {
		feed <- r
	}
	close(feed)
	wg.Wait()
	return errors.Join(errs...)
}
