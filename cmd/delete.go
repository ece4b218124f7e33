package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmpstash/tmpstash/pkg/config"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/messages"
)

// NewDeleteCommand creates the 'delete' command for removing an object from
// the bucket before its TTL elapses.
func NewDeleteCommand(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [file]",
		Aliases: []string{"rm"},
		Example: "$ tmpstash delete notes.pdf",
		Short:   "Delete an object from the bucket",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDelete(fs, ctx, environ, cfg, args[0], logger)
		},
	}
}

func runDelete(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, fileName string, logger *logging.Logger) error {
	store, err := resolveStore(fs, ctx, environ, cfg, logger)
	if err != nil {
		return err
	}

	if err := store.Delete(ctx, fileName); err != nil {
		return err
	}

	fmt.Printf(messages.MsgDeletedFile+"\n", fileName)

	return nil
}
