package util

import (
	"sync"
	"time"
)

// Debouncer is a resettable idle timer: C fires once the configured
// duration passes without a Reset. The encoder sinks use it to flush
// buffered output when commits go quiet.
//
//	flusher := NewDebouncer(200 * time.Millisecond)
//	defer flusher.Stop()
//
//	for {
//	    select {
//	    case block := <-blocks:
//	        buffer(block)
//	        flusher.Reset()
//	    case <-flusher.C():
//	        flush()
//	    }
//	}
//
// Safe for concurrent use.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	stopped  bool
}

// NewDebouncer creates a debouncer that first fires after duration.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
		timer:    time.NewTimer(duration),
	}
}

// Reset pushes the next firing out to a full duration from now. After
// Stop it is a no-op.
func (d *Debouncer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	// Drain a pending fire so the timer can be reused.
	if !d.timer.Stop() {
		select {
		case <-d.timer.C:
		default:
		}
	}
	d.timer.Reset(d.duration)
}

// C returns the firing channel.
func (d *Debouncer) C() <-chan time.Time {
	return d.timer.C
}

// Stop halts the timer and disables further resets. Safe to call more
// than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.stopped {
		d.timer.Stop()
		d.stopped = true
	}
}
