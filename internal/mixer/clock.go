package mixer

import "time"

// systemClock reports nanoseconds elapsed since its construction, backed
// by the runtime's monotonic clock so wall-time adjustments never move
// block timestamps backwards.
type systemClock struct {
	epoch time.Time
}

// NewSystemClock returns a monotonic Clock starting at zero.
func NewSystemClock() Clock {
	return &systemClock{epoch: time.Now()}
}

func (c *systemClock) Now() int64 {
	return time.Since(c.epoch).Nanoseconds()
}
