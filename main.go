package main

import (
	"context"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
)

func main() {
	fs := NewOsFsFn()
	ctx, cancel := ContextWithCancelFn(context.Background())
	defer cancel()

	logger := GetLoggerFn()

	// Secrets and storage settings may live in a .env file next to the
	// binary; load it before the environment snapshot is taken.
	if envFile, err := LoadDotEnvFn(fs); err != nil {
		logger.Warn("unable to load .env file", "env-file", envFile, "error", err)
	}

	environ, err := SetupEnvironmentFn(fs)
	if err != nil {
		logger.Error("failed to set up environment", "error", err)
		OsExitFn(1)
		return
	}

	setupSignalHandler(cancel, logger)

	rootCmd := NewRootCommandFn(fs, ctx, environ, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

// setupEnvironment initializes the environment using the filesystem.
func setupEnvironment(fs afero.Fs) (*environment.Environment, error) {
	environ, err := environment.NewEnvironment(fs, nil)
	if err != nil {
		return nil, err
	}
	return environ, nil
}

// setupSignalHandler cancels the root context when SIGINT or SIGTERM arrives
// so the serve command can drain in-flight uploads before exiting.
func setupSignalHandler(cancelFunc context.CancelFunc, logger *logging.Logger) {
	sigs := make(chan os.Signal, 1)
	SignalNotifyFn(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigs
		logger.Debug("received signal, shutting down", "signal", sig)
		cancelFunc()
	}()
}
