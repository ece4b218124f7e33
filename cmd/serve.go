package cmd

import (
	"context"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmpstash/tmpstash/pkg"
	"github.com/tmpstash/tmpstash/pkg/config"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/server"
)

// NewServeCommand creates the 'serve' command running the browser-facing
// upload server.
func NewServeCommand(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, logger *logging.Logger) *cobra.Command {
	var port uint16
	var trustedProxies []string

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server", "s"},
		Example: "$ PASSWORD=hunter2 tmpstash serve --port 8080",
		Short:   "Serve the upload form and ingestion endpoint",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(fs, ctx, environ, cfg, port, trustedProxies, logger)
		},
	}

	cmd.Flags().Uint16VarP(&port, "port", "p", pkg.DefaultPortNum, "Port the HTTP server listens on")
	cmd.Flags().StringSliceVar(&trustedProxies, "trusted-proxies", nil, "Proxy addresses or CIDRs trusted to set client IP headers")

	return cmd
}

func runServe(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, port uint16, trustedProxies []string, logger *logging.Logger) error {
	store, err := resolveStore(fs, ctx, environ, cfg, logger)
	if err != nil {
		return err
	}

	if environ.UploadSecret == "" {
		logger.Warn("PASSWORD is not set; uploads will be rejected until it is configured")
	}

	scratchRoot := environ.ScratchDir
	if scratchRoot == "" {
		scratchRoot = os.TempDir()
	}

	srv := server.New(fs, store, server.Options{
		HostIP:         pkg.DefaultHostIP,
		Port:           port,
		Secret:         environ.UploadSecret,
		ScratchRoot:    scratchRoot,
		MaxUploadSize:  cfg.MaxSize,
		TrustedProxies: trustedProxies,
	}, logger)

	return srv.Run(ctx)
}
