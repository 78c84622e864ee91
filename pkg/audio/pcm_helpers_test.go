package audio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/videokit-ai/mixdown/pkg/audio"
)

func TestPCMFloat32ToInt16Clamps(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 1.5, -1.5}
	out := audio.PCMFloat32ToInt16(in)

	assert.Equal(t, int16(0), out[0])
	assert.Equal(t, int16(16384), out[1])
	assert.Equal(t, int16(-16384), out[2])
	assert.Equal(t, int16(32767), out[3])
	assert.Equal(t, int16(-32768), out[4])
}

func TestPCMInt16LERoundTrip(t *testing.T) {
	in := []int16{0, 1, -1, 32767, -32768, 12345}
	assert.Equal(t, in, audio.LEToPCMInt16(audio.PCMInt16ToLE(in)))
}

func TestPCMInt16ToLEByteOrder(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x80}, audio.PCMInt16ToLE([]int16{1, -32768}))
}
