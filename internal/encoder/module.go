// Package encoder provides the downstream sinks mixed audio is committed to.
package encoder

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/config"
	"github.com/videokit-ai/mixdown/internal/mixer"
)

// Module provides the encoder sink selected by configuration.
var Module = fx.Module("encoder",
	fx.Provide(NewConsumer),
)

// NewConsumer builds the configured sink and ties its finalization to the
// application lifecycle.
func NewConsumer(logger *zap.Logger, cfg *config.Config, lc fx.Lifecycle) (mixer.Consumer, error) {
	var (
		sink interface {
			mixer.Consumer
			io.Closer
		}
		err error
	)

	switch cfg.Encoder.Format {
	case "wav":
		sink, err = NewWAVWriter(logger, cfg.Encoder.OutputPath, cfg.Audio.SampleRate, cfg.Audio.Channels)
	case "opus":
		sink, err = NewOpusWriter(logger, cfg)
	default:
		return nil, fmt.Errorf("unknown encoder format %q", cfg.Encoder.Format)
	}
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return sink.Close()
		},
	})

	return sink, nil
}
