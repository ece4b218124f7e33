package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/cmd"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
)

// Injectable functions for testability
var (
	// OS operations
	OsExitFn       = os.Exit
	SignalNotifyFn = signal.Notify

	// Filesystem and context
	NewOsFsFn           = afero.NewOsFs
	ContextWithCancelFn = context.WithCancel

	// Environment functions
	LoadDotEnvFn       = environment.LoadDotEnv
	SetupEnvironmentFn = setupEnvironment

	// Command functions
	NewRootCommandFn = cmd.NewRootCommand

	// Logging functions
	GetLoggerFn = logging.GetLogger
)
