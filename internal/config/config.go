package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/videokit-ai/mixdown/pkg/audio"
)

// AudioConfig stores mix pipeline configurations.
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`

	// BlockSize is the mix block length in interleaved samples.
	BlockSize int `yaml:"block_size"`

	// BufferBlocks is the per-source ring headroom, in mix blocks.
	BufferBlocks int `yaml:"buffer_blocks"`

	// DeviceGain boosts the device (microphone) source relative to the
	// engine source before soft clipping.
	DeviceGain float32 `yaml:"device_gain"`

	// IdleTimeoutMS is how long a source may go silent, in milliseconds,
	// before its next push realigns both sources from empty buffers. Zero
	// disables idle-resumption realignment.
	IdleTimeoutMS int `yaml:"idle_timeout_ms"`

	// TapBlocks is the size of the recent-block debug tap. Zero disables
	// the tap.
	TapBlocks int `yaml:"tap_blocks"`
}

// EncoderConfig stores encoder sink configurations.
type EncoderConfig struct {
	// Format selects the sink: "wav" or "opus".
	Format string `yaml:"format"`

	// OutputPath is the file the sink writes to.
	OutputPath string `yaml:"output_path"`

	// Bitrate applies to the Opus sink only.
	Bitrate int `yaml:"bitrate"`
}

// Config stores the application configuration.
type Config struct {
	Audio    AudioConfig   `yaml:"audio"`
	Encoder  EncoderConfig `yaml:"encoder"`
	LogLevel string        `yaml:"log_level"`
}

// LoadConfig loads the configuration from the given file path and applies
// defaults for omitted fields.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IdleTimeout returns the configured idle timeout as a duration.
func (c *AudioConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMS) * time.Millisecond
}

func (c *Config) applyDefaults() {
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = audio.DefaultSampleRate
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = audio.DefaultChannels
	}
	if c.Audio.BlockSize == 0 {
		c.Audio.BlockSize = audio.DefaultBlockSize
	}
	if c.Audio.BufferBlocks == 0 {
		c.Audio.BufferBlocks = audio.DefaultBufferBlocks
	}
	if c.Audio.DeviceGain == 0 {
		c.Audio.DeviceGain = 1.0
	}
	if c.Encoder.Format == "" {
		c.Encoder.Format = "wav"
	}
	if c.Encoder.OutputPath == "" {
		c.Encoder.OutputPath = "mixdown." + c.Encoder.Format
	}
}

func (c *Config) validate() error {
	if c.Audio.Channels < 1 {
		return fmt.Errorf("channels must be at least 1, got %d", c.Audio.Channels)
	}
	if c.Audio.BlockSize < 1 || c.Audio.BlockSize%c.Audio.Channels != 0 {
		return fmt.Errorf("block_size %d must be a positive multiple of channels %d",
			c.Audio.BlockSize, c.Audio.Channels)
	}
	if c.Audio.BufferBlocks < 1 {
		return fmt.Errorf("buffer_blocks must be at least 1, got %d", c.Audio.BufferBlocks)
	}
	switch c.Encoder.Format {
	case "wav", "opus":
	default:
		return fmt.Errorf("unknown encoder format %q", c.Encoder.Format)
	}
	return nil
}
