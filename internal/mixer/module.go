// Package mixer combines two realtime PCM sources into one encoded stream.
package mixer

import (
	"go.uber.org/fx"

	"github.com/videokit-ai/mixdown/internal/config"
)

// Module provides the mix pipeline dependencies.
var Module = fx.Module("mixer",
	fx.Provide(
		NewSystemClock,
		NewBlockTapFromConfig,
		NewCoordinator,
	),
)

// NewBlockTapFromConfig creates the debug tap sized from config, or a nil
// tap when disabled.
func NewBlockTapFromConfig(cfg *config.Config) (*BlockTap, error) {
	if cfg.Audio.TapBlocks <= 0 {
		return nil, nil
	}
	return NewBlockTap(cfg.Audio.TapBlocks)
}
