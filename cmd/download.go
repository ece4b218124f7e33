package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmpstash/tmpstash/pkg"
	"github.com/tmpstash/tmpstash/pkg/config"
	"github.com/tmpstash/tmpstash/pkg/download"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/messages"
	"github.com/tmpstash/tmpstash/pkg/ttl"
)

// NewDownloadCommand creates the 'download' command for fetching an object or
// minting a presigned link for it.
func NewDownloadCommand(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, logger *logging.Logger) *cobra.Command {
	var (
		output  string
		presign bool
		expires uint64
	)

	cmd := &cobra.Command{
		Use:     "download [file]",
		Aliases: []string{"d", "get"},
		Example: "$ tmpstash download notes.pdf --output ./notes.pdf",
		Short:   "Download an object from the bucket",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			return runDownload(fs, ctx, environ, cfg, args[0], output, presign, expires, verbose, logger)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to the object name in the current directory)")
	cmd.Flags().BoolVar(&presign, "presign", false, "Print a presigned URL instead of downloading")
	cmd.Flags().Uint64Var(&expires, "expires", pkg.DefaultPresignExpirySeconds, "Lifetime of the presigned link in seconds")

	return cmd
}

func runDownload(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, fileName, output string, presign bool, expires uint64, verbose bool, logger *logging.Logger) error {
	store, err := resolveStore(fs, ctx, environ, cfg, logger)
	if err != nil {
		return err
	}

	if presign {
		url, err := store.PresignGet(ctx, fileName, ttl.Duration(expires))
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	}

	if output == "" {
		output = filepath.Join(environ.Pwd, fileName)
	}

	if err := download.SaveObject(fs, ctx, store, fileName, output, logger, !verbose); err != nil {
		return err
	}

	fmt.Printf(messages.MsgSavedTo+"\n", output)

	return nil
}
