package mixer

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/config"
	"github.com/videokit-ai/mixdown/pkg/audio"
	"github.com/videokit-ai/mixdown/pkg/util"
)

// Coordinator accepts interleaved float PCM from two independently clocked
// producers, the hardware audio device and the engine audio renderer, and
// emits soft-clipped mix blocks to a single consumer.
type Coordinator interface {
	// AddDeviceSamples pushes samples captured from the audio device.
	// Called from the device's capture goroutine.
	AddDeviceSamples(samples []float32, channels int) error

	// AddEngineSamples pushes samples from the engine render callback.
	// Called from the engine's render goroutine.
	AddEngineSamples(samples []float32, channels int) error

	// Close tears the coordinator down. Idempotent and safe to call from
	// any goroutine; pushes after Close fail with ErrClosed.
	Close() error
}

type coordinator struct {
	logger   *zap.Logger
	consumer Consumer
	clock    Clock
	tap      *BlockTap

	channels    int
	blockSize   int
	deviceGain  float32
	idleTimeout time.Duration

	// mu guards everything below: both rings, the signal, the idle
	// bookkeeping and the emission sequence. A single lock keeps the
	// two producer goroutines and Close trivially deadlock-free, at the
	// cost of a little cross-thread contention.
	mu       sync.Mutex
	buffers  [channelCount]*util.Ring[float32]
	signal   *SharedSignal
	lastPush [channelCount]time.Time
	seq      uint64
	closed   bool

	// Drain scratch space, reused across blocks.
	deviceBlock []float32
	engineBlock []float32
	mixed       []float32
}

// NewCoordinator creates a Coordinator wired to the given consumer. A nil
// clock is allowed; block timestamps are then always zero. A nil tap
// disables block retention.
func NewCoordinator(logger *zap.Logger, cfg *config.Config, consumer Consumer, clock Clock, tap *BlockTap) (Coordinator, error) {
	gain := cfg.Audio.DeviceGain
	if gain < 0 || math.IsNaN(float64(gain)) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidGain, gain)
	}

	blockSize := cfg.Audio.BlockSize
	capacity := blockSize * cfg.Audio.BufferBlocks

	c := &coordinator{
		logger:      logger,
		consumer:    consumer,
		clock:       clock,
		tap:         tap,
		channels:    cfg.Audio.Channels,
		blockSize:   blockSize,
		deviceGain:  gain,
		idleTimeout: cfg.Audio.IdleTimeout(),
		signal:      NewSharedSignal(int(channelCount)),
		deviceBlock: make([]float32, blockSize),
		engineBlock: make([]float32, blockSize),
		mixed:       make([]float32, blockSize),
	}
	for ch := range c.buffers {
		c.buffers[ch] = util.NewRing[float32](capacity)
	}

	logger.Info("Created mix coordinator",
		zap.Int("block_size", blockSize),
		zap.Int("buffer_capacity", capacity),
		zap.Float32("device_gain", gain),
		zap.Duration("idle_timeout", c.idleTimeout))

	return c, nil
}

func (c *coordinator) AddDeviceSamples(samples []float32, channels int) error {
	return c.push(ChannelDevice, samples, channels)
}

func (c *coordinator) AddEngineSamples(samples []float32, channels int) error {
	return c.push(ChannelEngine, samples, channels)
}

// push admits one producer callback's worth of samples and drains any mix
// blocks that became complete. Runs entirely on the calling goroutine.
func (c *coordinator) push(ch Channel, samples []float32, channels int) error {
	if channels != c.channels || len(samples)%c.channels != 0 {
		return fmt.Errorf("%w: got %d samples x %d channels, want %d channels",
			ErrChannelMismatch, len(samples), channels, c.channels)
	}
	if len(samples) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	now := time.Now()
	if c.idleTimeout > 0 && c.signal.Signaled() {
		if last := c.lastPush[ch]; !last.IsZero() && now.Sub(last) > c.idleTimeout {
			// This source went silent and is resuming; whatever the other
			// source buffered meanwhile is stale against it. Start a new
			// epoch so the realignment below kicks in.
			c.logger.Debug("Source resumed after idle, starting new epoch",
				zap.Stringer("channel", ch),
				zap.Duration("idle", now.Sub(last)))
			c.signal.Reset()
		}
	}
	c.lastPush[ch] = now

	c.signal.Signal(ch.index())
	if !c.signal.Signaled() {
		// First contribution of a fresh epoch. Drop both buffers so the
		// mix restarts with the sources aligned at buffer-empty, then
		// re-arm this channel's flag.
		for i := range c.buffers {
			c.buffers[i].Clear()
		}
		c.signal.Reset()
		c.signal.Signal(ch.index())
	}

	c.buffers[ch.index()].Write(samples)

	if !c.signal.Signaled() {
		// The other source has not contributed this epoch; keep buffering.
		return nil
	}
	return c.drain()
}

// drain mixes and emits complete blocks while both buffers hold at least
// one. Blocks are peeked, mixed and committed before being consumed, so a
// consumer failure leaves both buffers intact for the next push to retry.
// Caller must hold c.mu.
func (c *coordinator) drain() error {
	device := c.buffers[ChannelDevice.index()]
	engine := c.buffers[ChannelEngine.index()]

	for device.Len() >= c.blockSize && engine.Len() >= c.blockSize {
		if err := device.Peek(c.deviceBlock); err != nil {
			return err
		}
		if err := engine.Peek(c.engineBlock); err != nil {
			return err
		}
		if err := audio.MixBlocks(c.mixed, c.deviceBlock, c.engineBlock, c.deviceGain); err != nil {
			return err
		}

		var timestamp int64
		if c.clock != nil {
			timestamp = c.clock.Now()
		}

		block := make([]float32, c.blockSize)
		copy(block, c.mixed)

		if err := c.consumer.CommitSamples(block, timestamp); err != nil {
			c.logger.Warn("Consumer rejected mixed block, retaining buffered audio",
				zap.Uint64("seq", c.seq),
				zap.Error(err))
			return fmt.Errorf("%w: %w", ErrConsumerFailure, err)
		}

		if c.tap != nil {
			c.tap.Record(c.seq, block, timestamp)
		}
		c.seq++

		_ = device.Discard(c.blockSize)
		_ = engine.Discard(c.blockSize)
	}
	return nil
}

func (c *coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	for i := range c.buffers {
		c.buffers[i].Clear()
	}
	c.signal.Reset()

	c.logger.Info("Mix coordinator closed", zap.Uint64("blocks_emitted", c.seq))
	return nil
}

func (ch Channel) index() int { return int(ch) }
