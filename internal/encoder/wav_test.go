package encoder_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/encoder"
	"github.com/videokit-ai/mixdown/pkg/audio"
)

func TestWAVWriterProducesValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, err := encoder.NewWAVWriter(zap.NewNop(), path, 48000, 2)
	require.NoError(t, err)

	block := []float32{0.5, -0.5, 0.25, -0.25}
	require.NoError(t, w.CommitSamples(block, 0))
	require.NoError(t, w.CommitSamples(block, 20_000_000))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 44+16) // header + 8 samples x 2 bytes

	le := binary.LittleEndian
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, uint32(36+16), le.Uint32(data[4:8]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, "fmt ", string(data[12:16]))
	assert.Equal(t, uint16(1), le.Uint16(data[20:22]))      // PCM
	assert.Equal(t, uint16(2), le.Uint16(data[22:24]))      // channels
	assert.Equal(t, uint32(48000), le.Uint32(data[24:28]))  // sample rate
	assert.Equal(t, uint32(192000), le.Uint32(data[28:32])) // byte rate
	assert.Equal(t, uint16(4), le.Uint16(data[32:34]))      // block align
	assert.Equal(t, uint16(16), le.Uint16(data[34:36]))     // bit depth
	assert.Equal(t, "data", string(data[36:40]))
	assert.Equal(t, uint32(16), le.Uint32(data[40:44]))

	samples := audio.LEToPCMInt16(data[44:])
	assert.Equal(t, int16(16384), samples[0])
	assert.Equal(t, int16(-16384), samples[1])
}

func TestWAVWriterRejectsCommitAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, err := encoder.NewWAVWriter(zap.NewNop(), path, 48000, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	err = w.CommitSamples([]float32{0.1}, 0)
	assert.ErrorIs(t, err, encoder.ErrFinalized)
}

func TestWAVWriterCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, err := encoder.NewWAVWriter(zap.NewNop(), path, 48000, 1)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWAVWriterEmptySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, err := encoder.NewWAVWriter(zap.NewNop(), path, 44100, 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 44)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[40:44]))
}
