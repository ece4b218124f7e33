package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmpstash/tmpstash/pkg"
	"github.com/tmpstash/tmpstash/pkg/config"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/messages"
	"github.com/tmpstash/tmpstash/pkg/ttl"
	"github.com/tmpstash/tmpstash/pkg/upload"
)

// NewUploadCommand creates the 'upload' command for pushing a local file to
// the object store.
func NewUploadCommand(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, logger *logging.Logger) *cobra.Command {
	var expires uint64

	cmd := &cobra.Command{
		Use:     "upload [file]",
		Aliases: []string{"u", "put"},
		Example: "$ tmpstash upload ./notes.pdf",
		Short:   "Upload a file and print a presigned download link",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runUpload(fs, ctx, environ, cfg, args[0], expires, logger)
		},
	}

	cmd.Flags().Uint64Var(&expires, "expires", pkg.DefaultPresignExpirySeconds, "Lifetime of the presigned link in seconds")

	return cmd
}

func runUpload(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, filePath string, expires uint64, logger *logging.Logger) error {
	store, err := resolveStore(fs, ctx, environ, cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("uploading file", "path", filePath, "max-size", cfg.MaxSize)

	key, url, err := upload.PutFile(ctx, store, fs, filePath, cfg.MaxSize, ttl.Duration(expires))
	if err != nil {
		return err
	}

	fmt.Printf(messages.MsgUploadedTo+"\n", key, url)

	return nil
}
