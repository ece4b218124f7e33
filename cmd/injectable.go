package cmd

import (
	"context"

	"github.com/tmpstash/tmpstash/pkg/storage"
)

// Injectable functions for testability (shared across cmd package)
var (
	// Object store construction
	NewObjectStoreFn = func(ctx context.Context, opts storage.S3Options) (storage.ObjectStore, error) {
		return storage.NewS3Store(ctx, opts)
	}
)
