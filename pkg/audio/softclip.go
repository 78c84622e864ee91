package audio

import (
	"errors"
	"fmt"
	"math"
)

// ErrBlockSizeMismatch is returned by MixBlocks when the source and
// destination slices do not share a single length.
var ErrBlockSizeMismatch = errors.New("audio: mismatched block sizes")

// SoftClip maps x smoothly into (-1, 1) with a tanh-shaped sigmoid,
// 1 - 2/(1+e^x). Summed signals that exceed full scale are compressed
// toward the bound instead of truncated, so a hot microphone over loud
// engine audio saturates without the harshness of a hard clip.
//
// SoftClip(0) == 0 and the function is strictly increasing.
func SoftClip(x float32) float32 {
	return float32(1 - 2/(1+math.Exp(float64(x))))
}

// MixBlocks blends one device block and one engine block into dst:
//
//	dst[i] = SoftClip(deviceGain*device[i] + engine[i])
//
// The transfer is stateless per sample. All three slices must have the
// same length; otherwise ErrBlockSizeMismatch is returned and dst is left
// unmodified.
func MixBlocks(dst, device, engine []float32, deviceGain float32) error {
	if len(device) != len(engine) || len(dst) != len(device) {
		return fmt.Errorf("%w: dst=%d device=%d engine=%d",
			ErrBlockSizeMismatch, len(dst), len(device), len(engine))
	}
	for i := range dst {
		dst[i] = SoftClip(deviceGain*device[i] + engine[i])
	}
	return nil
}
