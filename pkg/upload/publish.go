package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/storage"
	"github.com/tmpstash/tmpstash/pkg/ttl"
)

const defaultContentType = "application/octet-stream"

// Result is the per-file outcome of a publish attempt. Err is nil on
// success; failed files carry the error and no URL.
type Result struct {
	Name       string
	Key        string
	URL        string
	TTLSeconds uint64
	Err        error
}

// Publisher uploads staged files to the backing store, issues retrieval
// links, and schedules the deferred deletion of every published object.
type Publisher struct {
	Store   storage.ObjectStore
	Fs      afero.Fs
	MaxSize uint64
	Logger  *logging.Logger

	// after is the deletion timer source; tests swap it to fire on
	// demand. nil falls back to time.After, so a Publisher built as a
	// plain struct literal still works.
	after func(time.Duration) <-chan time.Time
}

// NewPublisher wires a Publisher with the real timer source. MaxSize zero
// means no size limit.
func NewPublisher(store storage.ObjectStore, fs afero.Fs, maxSize uint64, logger *logging.Logger) *Publisher {
	return &Publisher{
		Store:   store,
		Fs:      fs,
		MaxSize: maxSize,
		Logger:  logger,
		after:   time.After,
	}
}

// PublishAll attempts every staged file in order and returns one Result per
// file. A failure never stops the remaining files, and each staged copy is
// removed from scratch space whatever its outcome.
func (p *Publisher) PublishAll(ctx context.Context, sub *Submission, ttlSeconds uint64) []Result {
	results := make([]Result, 0, len(sub.Files))
	for _, file := range sub.Files {
		results = append(results, p.publishOne(ctx, file, ttlSeconds))
	}
	return results
}

func (p *Publisher) publishOne(ctx context.Context, file *StagedFile, ttlSeconds uint64) Result {
	name := filepath.Base(file.Path)
	defer p.removeStaged(file)

	key, url, err := PutFile(ctx, p.Store, p.Fs, file.Path, p.MaxSize, ttl.Duration(ttlSeconds))
	if err != nil {
		return Result{Name: name, Err: err}
	}

	p.scheduleDeletion(key, ttlSeconds)

	p.Logger.Info("published object", "key", key, "ttl_seconds", ttlSeconds)
	return Result{Name: name, Key: key, URL: url, TTLSeconds: ttlSeconds}
}

// PutFile streams one local file into the store under its basename and
// returns the object key plus a presigned retrieval link good for expires.
// It is the single-shot path shared by the CLI and the publisher; callers
// own any cleanup of the source file.
func PutFile(ctx context.Context, store storage.ObjectStore, fs afero.Fs, path string, maxSize uint64, expires time.Duration) (string, string, error) {
	key := filepath.Base(path)

	info, err := fs.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("stat file: %w", err)
	}
	if maxSize > 0 && uint64(info.Size()) > maxSize {
		return "", "", fmt.Errorf("file size %s exceeds the %s limit",
			humanize.Bytes(uint64(info.Size())), humanize.Bytes(maxSize))
	}

	contentType := detectContentType(fs, path)

	in, err := fs.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	err = store.Put(ctx, key, contentType, in, info.Size())
	in.Close()
	if err != nil {
		return "", "", fmt.Errorf("upload: %w", err)
	}

	url, err := store.PresignGet(ctx, key, expires)
	if err != nil {
		return "", "", fmt.Errorf("presign: %w", err)
	}
	return key, url, nil
}

// scheduleDeletion spawns the detached deletion timer for a published object.
// There is no cancellation registry: re-publishing a key before its timer
// fires leaves the older timer live, and its delete can remove the newer
// object early.
func (p *Publisher) scheduleDeletion(key string, ttlSeconds uint64) {
	if ttlSeconds == 0 {
		return
	}

	logger := p.Logger.With("key", key, "ttl_seconds", ttlSeconds)
	logger.Debug("scheduled deferred deletion")

	after := p.after
	if after == nil {
		after = time.After
	}
	timerC := after(ttl.Duration(ttlSeconds))
	go func() {
		<-timerC
		// Detached from the request; the submission's context is long gone.
		if err := p.Store.Delete(context.Background(), key); err != nil {
			logger.Error("deferred deletion failed", "error", err)
			return
		}
		logger.Info("expired object deleted")
	}()
}

// removeStaged deletes one staged copy from scratch space. Failures are
// logged and never propagate; the next submission stages into a fresh
// directory either way.
func (p *Publisher) removeStaged(file *StagedFile) {
	if err := p.Fs.Remove(file.Path); err != nil {
		p.Logger.Warn("failed to remove staged file", "path", file.Path, "error", err)
	}
}

// detectContentType sniffs the file's leading bytes, falling back to a
// generic type when detection fails.
func detectContentType(fs afero.Fs, path string) string {
	f, err := fs.Open(path)
	if err != nil {
		return defaultContentType
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return defaultContentType
	}
	return mtype.String()
}
