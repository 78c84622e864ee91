// Package main provides the entry point for the mixdown capture application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/videokit-ai/mixdown/internal/app"
	"github.com/videokit-ai/mixdown/internal/config"
	"github.com/videokit-ai/mixdown/internal/encoder"
	"github.com/videokit-ai/mixdown/internal/infrastructure"
	"github.com/videokit-ai/mixdown/internal/mixer"
	"github.com/videokit-ai/mixdown/internal/source"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	application := app.New(
		// Core modules
		config.Module,
		infrastructure.LoggerModule,

		// Pipeline modules
		mixer.Module,
		encoder.Module,
		source.Module,

		// Supply the config path
		fx.Supply(configPath),

		// Configure Fx to use our Zap logger for its own internal logging
		fx.WithLogger(infrastructure.NewFxLoggerAdapter),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go application.Run()

	sig := <-sigCh
	fmt.Printf("Received signal: %s, initiating shutdown.\n", sig)

	// Give the pipeline 30 seconds to drain and finalize the sink.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := application.Stop(shutdownCtx)
	cancel()

	if err != nil {
		fmt.Printf("Error during shutdown: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Session finalized.")
}
