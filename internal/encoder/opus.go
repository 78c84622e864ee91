package encoder

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"layeh.com/gopus"

	"github.com/videokit-ai/mixdown/internal/config"
	"github.com/videokit-ai/mixdown/pkg/audio"
)

// maxOpusPacket is the encode output ceiling per frame, generous for any
// bitrate we configure.
const maxOpusPacket = 4000

// OpusWriter encodes mixed blocks with Opus and appends each packet to a
// log file framed as [uint32 length][int64 timestamp][packet], all
// little-endian. One mix block must be exactly one Opus frame.
type OpusWriter struct {
	logger    *zap.Logger
	channels  int
	frameSize int // samples per channel
	blockSize int // interleaved samples per block

	mu        sync.Mutex
	enc       *gopus.Encoder
	file      *os.File
	out       *bufio.Writer
	packets   uint64
	finalized bool
}

// NewOpusWriter validates the mix format against Opus framing rules and
// opens the packet log.
func NewOpusWriter(logger *zap.Logger, cfg *config.Config) (*OpusWriter, error) {
	sampleRate := cfg.Audio.SampleRate
	channels := cfg.Audio.Channels
	frameSize := cfg.Audio.BlockSize / channels

	switch sampleRate {
	case 8000, 12000, 16000, 24000, 48000:
	default:
		return nil, fmt.Errorf("opus does not support sample rate %d", sampleRate)
	}
	if !validOpusFrame(sampleRate, frameSize) {
		return nil, fmt.Errorf("block size %d (%d samples per channel) is not an opus frame at %d Hz",
			cfg.Audio.BlockSize, frameSize, sampleRate)
	}

	enc, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return nil, fmt.Errorf("create opus encoder: %w", err)
	}
	if cfg.Encoder.Bitrate > 0 {
		enc.SetBitrate(cfg.Encoder.Bitrate)
	}

	file, err := os.Create(cfg.Encoder.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("create opus packet log: %w", err)
	}

	logger.Info("Created Opus sink",
		zap.String("path", cfg.Encoder.OutputPath),
		zap.Int("sample_rate", sampleRate),
		zap.Int("frame_size", frameSize),
		zap.Int("bitrate", cfg.Encoder.Bitrate))

	return &OpusWriter{
		logger:    logger,
		channels:  channels,
		frameSize: frameSize,
		blockSize: cfg.Audio.BlockSize,
		enc:       enc,
		file:      file,
		out:       bufio.NewWriter(file),
	}, nil
}

// CommitSamples encodes one mix block and appends the packet.
func (w *OpusWriter) CommitSamples(samples []float32, timestamp int64) error {
	if len(samples) != w.blockSize {
		return fmt.Errorf("%w: got %d, want %d", audio.ErrBlockSizeMismatch, len(samples), w.blockSize)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return ErrFinalized
	}

	packet, err := w.enc.Encode(audio.PCMFloat32ToInt16(samples), w.frameSize, maxOpusPacket)
	if err != nil {
		return fmt.Errorf("encode opus frame: %w", err)
	}

	le := binary.LittleEndian
	if err := binary.Write(w.out, le, uint32(len(packet))); err != nil {
		return fmt.Errorf("write packet frame: %w", err)
	}
	if err := binary.Write(w.out, le, timestamp); err != nil {
		return fmt.Errorf("write packet timestamp: %w", err)
	}
	if _, err := w.out.Write(packet); err != nil {
		return fmt.Errorf("write packet payload: %w", err)
	}
	w.packets++
	return nil
}

// Close flushes and closes the packet log. Idempotent.
func (w *OpusWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finalized {
		return nil
	}
	w.finalized = true

	if err := w.out.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush opus packet log: %w", err)
	}
	w.logger.Info("Finalized Opus sink", zap.Uint64("packets", w.packets))
	return w.file.Close()
}

// validOpusFrame reports whether frameSize is one of the Opus frame
// durations (2.5, 5, 10, 20, 40 or 60 ms) at the given rate.
func validOpusFrame(sampleRate, frameSize int) bool {
	switch frameSize {
	case sampleRate / 400, sampleRate / 200, sampleRate / 100,
		sampleRate / 50, sampleRate / 25, 3 * sampleRate / 50:
		return frameSize > 0
	default:
		return false
	}
}
