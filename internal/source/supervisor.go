package source

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/config"
	"github.com/videokit-ai/mixdown/internal/mixer"
)

// Supervisor owns the two producer goroutines and the teardown order:
// producers stop first, then the coordinator closes.
type Supervisor struct {
	logger *zap.Logger
	coord  mixer.Coordinator
	device *Generator
	engine *Generator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSupervisor builds the device and engine generators from config. The
// device pushes whole mix blocks; the engine pushes half blocks at twice
// the rate, so the two cadences never line up and the rings absorb the
// mismatch.
func NewSupervisor(logger *zap.Logger, cfg *config.Config, coord mixer.Coordinator) *Supervisor {
	channels := cfg.Audio.Channels
	blockSamples := cfg.Audio.BlockSize
	frames := blockSamples / channels
	blockDur := time.Duration(int64(frames) * int64(time.Second) / int64(cfg.Audio.SampleRate))

	device := NewGenerator(logger, "device", coord.AddDeviceSamples,
		&Noise{Amplitude: 0.3, Seed: 0x2545F491},
		channels, blockSamples, blockDur)
	engine := NewGenerator(logger, "engine", coord.AddEngineSamples,
		&Sine{Frequency: 220, Amplitude: 0.4, SampleRate: cfg.Audio.SampleRate},
		channels, blockSamples/2, blockDur/2)

	return &Supervisor{
		logger: logger,
		coord:  coord,
		device: device,
		engine: engine,
	}
}

// Start launches both producer goroutines.
func (s *Supervisor) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.device.Run(runCtx)
	}()
	go func() {
		defer s.wg.Done()
		s.engine.Run(runCtx)
	}()

	s.logger.Info("Started capture sources")
	return nil
}

// Stop halts the producers, waits for in-flight pushes to finish and
// closes the coordinator.
func (s *Supervisor) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()

	s.logger.Info("Stopped capture sources")
	return s.coord.Close()
}
