// Package app provides the main application structure and lifecycle management.
package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/videokit-ai/mixdown/internal/source"
)

// Application represents the main application with its lifecycle.
type Application struct {
	app *fx.App
}

// New creates a new Application with the provided modules and options.
func New(modules ...fx.Option) *Application {
	options := append(modules, fx.Invoke(registerLifecycleHooks))

	return &Application{
		app: fx.New(options...),
	}
}

// Run starts the application and blocks until it's stopped.
func (a *Application) Run() {
	a.app.Run()
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	return a.app.Stop(ctx)
}

// registerLifecycleHooks ties the capture supervisor to the application
// lifecycle. Sink finalization is registered by the encoder module and
// runs after the supervisor's OnStop, so the last mixed blocks land in
// the file before the header is patched.
func registerLifecycleHooks(lc fx.Lifecycle, sup *source.Supervisor, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting mixdown session")
			if err := sup.Start(ctx); err != nil {
				logger.Error("Failed to start capture sources", zap.Error(err))
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping mixdown session")
			if err := sup.Stop(ctx); err != nil {
				logger.Error("Failed to stop capture sources", zap.Error(err))
				return err
			}
			return nil
		},
	})
}
