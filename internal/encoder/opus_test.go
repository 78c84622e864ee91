package encoder_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/config"
	"github.com/videokit-ai/mixdown/internal/encoder"
)

func opusConfig(t *testing.T, sampleRate, channels, blockSize int) *config.Config {
	t.Helper()
	return &config.Config{
		Audio: config.AudioConfig{
			SampleRate: sampleRate,
			Channels:   channels,
			BlockSize:  blockSize,
		},
		Encoder: config.EncoderConfig{
			Format:     "opus",
			OutputPath: filepath.Join(t.TempDir(), "out.opus"),
			Bitrate:    96000,
		},
	}
}

func TestNewOpusWriterRejectsBadFormats(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		channels   int
		blockSize  int
	}{
		{"unsupported sample rate", 44100, 2, 1764},
		{"not an opus frame duration", 48000, 2, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encoder.NewOpusWriter(zap.NewNop(), opusConfig(t, tt.sampleRate, tt.channels, tt.blockSize))
			assert.Error(t, err)
		})
	}
}

func TestOpusWriterEncodesFrames(t *testing.T) {
	// 960 samples per channel = 20 ms at 48 kHz stereo.
	cfg := opusConfig(t, 48000, 2, 1920)
	w, err := encoder.NewOpusWriter(zap.NewNop(), cfg)
	require.NoError(t, err)

	block := make([]float32, 1920)
	for i := range block {
		block[i] = 0.25
	}
	require.NoError(t, w.CommitSamples(block, 1_000_000))
	require.NoError(t, w.Close())
}

func TestOpusWriterRejectsWrongBlockSize(t *testing.T) {
	cfg := opusConfig(t, 48000, 2, 1920)
	w, err := encoder.NewOpusWriter(zap.NewNop(), cfg)
	require.NoError(t, err)
	defer w.Close()

	err = w.CommitSamples(make([]float32, 960), 0)
	assert.Error(t, err)
}

func TestOpusWriterRejectsCommitAfterClose(t *testing.T) {
	cfg := opusConfig(t, 48000, 2, 1920)
	w, err := encoder.NewOpusWriter(zap.NewNop(), cfg)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.CommitSamples(make([]float32, 1920), 0)
	assert.ErrorIs(t, err, encoder.ErrFinalized)
}
