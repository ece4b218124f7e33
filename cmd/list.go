package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmpstash/tmpstash/pkg"
	"github.com/tmpstash/tmpstash/pkg/config"
	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/messages"
)

var (
	listHeader = lipgloss.NewStyle().Bold(true)
	listKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6495ED")).Bold(true)
)

// NewListCommand creates the 'list' command for enumerating the objects
// currently stored in the bucket.
func NewListCommand(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, logger *logging.Logger) *cobra.Command {
	var (
		prefix string
		limit  int32
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Example: "$ tmpstash list --prefix reports/",
		Short:   "List the objects stored in the bucket",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runList(fs, ctx, environ, cfg, prefix, limit, logger)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list keys starting with this prefix")
	cmd.Flags().Int32Var(&limit, "limit", pkg.DefaultListLimit, "Maximum number of keys to return")

	return cmd
}

func runList(fs afero.Fs, ctx context.Context, environ *environment.Environment, cfg *config.StorageConfig, prefix string, limit int32, logger *logging.Logger) error {
	store, err := resolveStore(fs, ctx, environ, cfg, logger)
	if err != nil {
		return err
	}

	logger.Debug("listing objects", "bucket", cfg.Bucket, "prefix", prefix, "limit", limit)

	objects, err := store.List(ctx, prefix, limit)
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		fmt.Println(messages.MsgNoFilesFound)
		return nil
	}

	fmt.Println(listHeader.Render(fmt.Sprintf(messages.MsgFoundFiles, len(objects))))
	for i, object := range objects {
		fmt.Printf(messages.MsgListEntry+"\n", i+1, listKey.Render(object.Key), object.Size, object.LastModified.UTC().Format(time.RFC3339))
	}

	return nil
}
