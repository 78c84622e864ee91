package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videokit-ai/mixdown/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
audio:
  sample_rate: 24000
  channels: 1
  block_size: 480
  buffer_blocks: 4
  device_gain: 2.0
  idle_timeout_ms: 250
  tap_blocks: 16
encoder:
  format: opus
  output_path: session.opus
  bitrate: 96000
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 24000, cfg.Audio.SampleRate)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, 480, cfg.Audio.BlockSize)
	assert.Equal(t, 4, cfg.Audio.BufferBlocks)
	assert.Equal(t, float32(2.0), cfg.Audio.DeviceGain)
	assert.Equal(t, 250*time.Millisecond, cfg.Audio.IdleTimeout())
	assert.Equal(t, 16, cfg.Audio.TapBlocks)
	assert.Equal(t, "opus", cfg.Encoder.Format)
	assert.Equal(t, "session.opus", cfg.Encoder.OutputPath)
	assert.Equal(t, 96000, cfg.Encoder.Bitrate)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, `log_level: info`))
	require.NoError(t, err)

	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.Equal(t, 2, cfg.Audio.Channels)
	assert.Equal(t, 1920, cfg.Audio.BlockSize)
	assert.Equal(t, 8, cfg.Audio.BufferBlocks)
	assert.Equal(t, float32(1.0), cfg.Audio.DeviceGain)
	assert.Zero(t, cfg.Audio.IdleTimeout())
	assert.Equal(t, "wav", cfg.Encoder.Format)
	assert.Equal(t, "mixdown.wav", cfg.Encoder.OutputPath)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "block size not a multiple of channels",
			contents: `
audio:
  channels: 2
  block_size: 481
`,
		},
		{
			name: "unknown encoder format",
			contents: `
encoder:
  format: flac
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
