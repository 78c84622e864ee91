package infrastructure_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/videokit-ai/mixdown/pkg/infrastructure"
)

func TestFxLoggerAdapterLogsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := infrastructure.NewFxLoggerAdapter(zap.New(core))

	adapter.LogEvent(&fxevent.OnStartExecuted{FunctionName: "start"})
	adapter.LogEvent(&fxevent.Started{})
	adapter.LogEvent(&fxevent.Invoked{FunctionName: "run", Err: errors.New("boom")})

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.InfoLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestFxLoggerAdapterUnknownEvent(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	adapter := infrastructure.NewFxLoggerAdapter(zap.New(core))

	assert.NotPanics(t, func() {
		adapter.LogEvent(&fxevent.Run{})
	})
	assert.NotEmpty(t, logs.All())
}
