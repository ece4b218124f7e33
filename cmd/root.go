package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmpstash/tmpstash/pkg/config"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/storage"
	"github.com/tmpstash/tmpstash/pkg/version"
)

// NewRootCommand creates the root command and adds the subcommands. Storage
// flags default to the values resolved from the environment, so a flag given
// on the command line always wins over an environment variable.
func NewRootCommand(fs afero.Fs, ctx context.Context, environ *environment.Environment, logger *logging.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false

	cfg := config.FromEnvironment(environ)

	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "tmpstash",
		Short: "Share files through short-lived links backed by S3-compatible storage",
		Long: `Tmpstash uploads files to an S3-compatible bucket and hands back presigned
download links. Every object carries a TTL; once it elapses the object is
removed from the bucket again.`,
		Version: version.Full(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.Bucket, "bucket", cfg.Bucket, "Bucket holding the uploaded objects")
	rootCmd.PersistentFlags().StringVar(&cfg.Region, "region", cfg.Region, "Region of the bucket")
	rootCmd.PersistentFlags().StringVar(&cfg.AccessKey, "access-key", cfg.AccessKey, "Access key for the object store")
	rootCmd.PersistentFlags().StringVar(&cfg.SecretKey, "secret-key", cfg.SecretKey, "Secret key for the object store")
	rootCmd.PersistentFlags().StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Custom S3-compatible endpoint URL")
	rootCmd.PersistentFlags().Uint64Var(&cfg.MaxSize, "max-size", cfg.MaxSize, "Maximum upload size in bytes")
	rootCmd.AddCommand(NewUploadCommand(fs, ctx, environ, cfg, logger))
	rootCmd.AddCommand(NewDownloadCommand(fs, ctx, environ, cfg, logger))
	rootCmd.AddCommand(NewListCommand(fs, ctx, environ, cfg, logger))
	rootCmd.AddCommand(NewDeleteCommand(fs, ctx, environ, cfg, logger))
	rootCmd.AddCommand(NewServeCommand(fs, ctx, environ, cfg, logger))
	return rootCmd
}

// resolveStore finalizes the storage credentials and opens the object store
// client. Missing credentials trigger the interactive setup unless the
// environment forbids prompts.
func resolveStore(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, logger *logging.Logger) (storage.ObjectStore, error) {
	if _, err := config.GenerateConfiguration(fs, environ, cfg, logger); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := NewObjectStoreFn(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open object store: %w", err)
	}

	logger.Debug("object store ready", "bucket", cfg.Bucket, "region", cfg.Region, "endpoint", cfg.Endpoint)

	return store, nil
}
