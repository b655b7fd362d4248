// Package progress coalesces many small completion signals into periodic
// observations for a single consumer.
package progress

import (
	"sync/atomic"
	"time"
)

// DefaultInterval is a comfortable UI refresh cadence.
const DefaultInterval = 250 * time.Millisecond

// Tracker counts completed work units for one computation. Any number of
// producers may Add concurrently; a single consumer samples Fraction on its
// own schedule instead of waking up per signal.
type Tracker struct {
	total     int64
	completed atomic.Int64
}

// NewTracker creates a tracker expecting total units of work.
func NewTracker(total int64) *Tracker {
	return &Tracker{total: total}
}

// Add records n completed units.
func (t *Tracker) Add(n int) {
	t.completed.Add(int64(n))
}

// Completed returns the units finished so far.
func (t *Tracker) Completed() int64 {
	return t.completed.Load()
}

// Total returns the unit count the tracker was created with.
func (t *Tracker) Total() int64 {
	return t.total
}

// Fraction returns completed/total clamped to [0, 1]. An empty computation
// counts as finished.
func (t *Tracker) Fraction() float64 {
	if t.total <= 0 {
		return 1
	}
	f := float64(t.Completed()) / float64(t.total)
	if f > 1 {
		f = 1
	}
	return f
}

// Watch invokes fn with the current fraction once per interval until stop is
// closed, then delivers one final sample and returns. Bursts of Add calls
// collapse into whatever tick comes next, so producers never block on the
// consumer. Watch blocks; run it on the goroutine that should observe the
// updates. An interval <= 0 selects DefaultInterval.
func Watch(t *Tracker, interval time.Duration, stop <-chan struct{}, fn func(float64)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fn(t.Fraction())
		case <-stop:
			fn(t.Fraction())
			return
		}
	}
}
