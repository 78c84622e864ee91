package mixer

import "errors"

// Consumer receives mixed blocks, typically an encoder. CommitSamples is
// invoked synchronously on whichever producer goroutine completed a mix
// block; implementations must not call back into the coordinator.
type Consumer interface {
	// CommitSamples accepts one interleaved float PCM mix block and its
	// timestamp in nanoseconds. The samples slice is owned by the callee.
	CommitSamples(samples []float32, timestamp int64) error
}

// Clock supplies timestamps for emitted mix blocks, in nanoseconds. The
// coordinator reads it while holding its lock so block timestamps are
// assigned in emission order.
type Clock interface {
	Now() int64
}

// Channel identifies one of the coordinator's two input sources.
type Channel int

const (
	// ChannelDevice is the hardware audio device source (microphone).
	ChannelDevice Channel = iota
	// ChannelEngine is the engine audio render source (game audio).
	ChannelEngine

	channelCount
)

func (c Channel) String() string {
	switch c {
	case ChannelDevice:
		return "device"
	case ChannelEngine:
		return "engine"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidGain indicates a negative or NaN device gain.
	ErrInvalidGain = errors.New("mixer: device gain must be a non-negative number")

	// ErrChannelMismatch indicates a push whose channel count does not
	// match the coordinator's configured interleaving.
	ErrChannelMismatch = errors.New("mixer: interleaved channel count mismatch")

	// ErrConsumerFailure wraps an error returned by the consumer while
	// committing a mixed block. The blocks involved stay buffered; the
	// next push retries the drain.
	ErrConsumerFailure = errors.New("mixer: consumer rejected mixed block")

	// ErrClosed indicates a push on a closed coordinator.
	ErrClosed = errors.New("mixer: coordinator is closed")
)
