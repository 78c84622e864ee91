package source

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/mixer"
)

// PushFunc delivers one interleaved block to the mix coordinator. It is
// one of Coordinator.AddDeviceSamples or Coordinator.AddEngineSamples.
type PushFunc func(samples []float32, channels int) error

// Synth produces one mono sample per call; the generator duplicates it
// across the interleaved channels.
type Synth interface {
	Next() float32
}

// Sine is a fixed-frequency sine synth.
type Sine struct {
	Frequency  float64
	Amplitude  float64
	SampleRate int
	n          int
}

func (s *Sine) Next() float32 {
	v := s.Amplitude * math.Sin(2*math.Pi*s.Frequency*float64(s.n)/float64(s.SampleRate))
	s.n++
	return float32(v)
}

// Noise is a reproducible white-noise synth driven by a linear
// congruential generator.
type Noise struct {
	Amplitude float64
	Seed      uint32
}

func (n *Noise) Next() float32 {
	n.Seed = n.Seed*1103515245 + 12345
	return float32((float64(n.Seed)/float64(1<<32) - 0.5) * 2 * n.Amplitude)
}

// Generator synthesizes interleaved PCM and pushes it on a fixed cadence
// from its own goroutine, standing in for a hardware capture callback or
// an engine render callback. Two generators with different cadences give
// the coordinator the independently clocked producers it is built for.
type Generator struct {
	logger   *zap.Logger
	name     string
	push     PushFunc
	synth    Synth
	channels int
	samples  int // interleaved samples per push
	interval time.Duration
}

// NewGenerator creates a generator pushing samples interleaved samples
// every interval.
func NewGenerator(logger *zap.Logger, name string, push PushFunc, synth Synth, channels, samples int, interval time.Duration) *Generator {
	return &Generator{
		logger:   logger,
		name:     name,
		push:     push,
		synth:    synth,
		channels: channels,
		samples:  samples,
		interval: interval,
	}
}

// Fill synthesizes the next len(block) samples into block.
func (g *Generator) Fill(block []float32) {
	for i := 0; i < len(block); i += g.channels {
		v := g.synth.Next()
		for ch := 0; ch < g.channels; ch++ {
			block[i+ch] = v
		}
	}
}

// Run pushes blocks until the context is canceled or the coordinator is
// closed. It is the producer thread of this source.
func (g *Generator) Run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	block := make([]float32, g.samples)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.Fill(block)
			if err := g.push(block, g.channels); err != nil {
				if errors.Is(err, mixer.ErrClosed) {
					return
				}
				g.logger.Warn("Push rejected",
					zap.String("source", g.name),
					zap.Error(err))
			}
		}
	}
}
