// Package storage provides the backing object store consumed by the upload
// pipeline and the CLI commands.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectNotFound indicates the requested object does not exist in the
// backing store.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectInfo describes one stored object in a listing.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is the durable store surface. Implementations must be safe for
// concurrent use; deletion timers and request handlers share one instance.
type ObjectStore interface {
	// Put streams body into the store under key. Size is the exact body
	// length in bytes.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// GetStream opens the object for reading. The caller closes the stream.
	GetStream(ctx context.Context, key string) (io.ReadCloser, int64, error)

	// List returns up to limit objects whose keys start with prefix.
	List(ctx context.Context, prefix string, limit int32) ([]ObjectInfo, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PresignGet returns a time-bounded retrieval URL for the object.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}
