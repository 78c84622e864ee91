package audio

// Format constants shared by the mixer and encoder layers.
const (
	// Engine render format: interleaved stereo float PCM at 48 kHz, the
	// layout both producers are expected to deliver.
	DefaultSampleRate = 48_000 // Hz
	DefaultChannels   = 2      // interleaved stereo

	// DefaultBlockSize is the mix block length in interleaved samples
	// (both channels counted), 960 frames = 20 ms at 48 kHz stereo.
	DefaultBlockSize = 1920

	// DefaultBufferBlocks is the ring headroom per source, sized to absorb
	// worst-case callback jitter between the two producers.
	DefaultBufferBlocks = 8
)
