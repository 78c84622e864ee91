package util

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned by Ring.Read, Ring.Peek and Ring.Discard
// when the buffer holds fewer elements than requested. Callers are expected
// to check Len first; hitting this error indicates a contract violation.
var ErrInsufficientData = errors.New("ring: insufficient buffered data")

// Ring is a fixed-capacity circular buffer with overwrite-on-overflow
// semantics: writing more than the free capacity silently discards the
// oldest unread elements instead of blocking or failing. It is a lossy,
// capacity-bounded FIFO.
//
// Ring performs no internal locking; concurrent callers must provide their
// own mutual exclusion.
type Ring[T any] struct {
	data  []T
	head  int // index of the oldest unread element
	count int // number of unread elements
}

// NewRing creates a Ring holding up to capacity elements.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("ring: capacity must be positive, got %d", capacity))
	}
	return &Ring[T]{data: make([]T, capacity)}
}

// Len returns the number of unread elements.
func (r *Ring[T]) Len() int { return r.count }

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.data) }

// Write copies src into the buffer. If src exceeds the free capacity the
// oldest unread elements are dropped first, so after the call the buffer
// holds the most recent Cap() (or fewer) elements written, in order.
func (r *Ring[T]) Write(src []T) {
	n := len(r.data)
	if len(src) == 0 {
		return
	}
	if len(src) >= n {
		// Only the tail of src survives.
		copy(r.data, src[len(src)-n:])
		r.head = 0
		r.count = n
		return
	}
	if overflow := len(src) - (n - r.count); overflow > 0 {
		r.head = (r.head + overflow) % n
		r.count -= overflow
	}
	tail := (r.head + r.count) % n
	copied := copy(r.data[tail:], src)
	copy(r.data, src[copied:])
	r.count += len(src)
}

// Read copies exactly len(dst) elements into dst and consumes them.
func (r *Ring[T]) Read(dst []T) error {
	if err := r.Peek(dst); err != nil {
		return err
	}
	return r.Discard(len(dst))
}

// Peek copies exactly len(dst) elements into dst without consuming them.
func (r *Ring[T]) Peek(dst []T) error {
	if len(dst) > r.count {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, r.count, len(dst))
	}
	copied := copy(dst, r.data[r.head:])
	copy(dst[copied:], r.data)
	return nil
}

// Discard consumes n elements without copying them out.
func (r *Ring[T]) Discard(n int) error {
	if n > r.count {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, r.count, n)
	}
	r.head = (r.head + n) % len(r.data)
	r.count -= n
	return nil
}

// Clear drops all unread elements. The backing storage is retained.
func (r *Ring[T]) Clear() {
	r.head = 0
	r.count = 0
}
