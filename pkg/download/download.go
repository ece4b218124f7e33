package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/storage"
)

// WriteCounter tracks the total number of bytes written and prints download
// progress. When Size is known the progress line includes a percentage.
type WriteCounter struct {
	Total uint64
	Size  uint64
	Key   string
	Quiet bool
}

// Write implements the io.Writer interface and updates the total byte count.
func (wc *WriteCounter) Write(p []byte) (int, error) {
	n := len(p)
	wc.Total += uint64(n)
	wc.PrintProgress()
	return n, nil
}

// PrintProgress displays the download progress in the terminal.
func (wc *WriteCounter) PrintProgress() {
	if wc.Quiet {
		return
	}
	fmt.Printf("\r%s", strings.Repeat(" ", 50)) // Clear the line
	if wc.Size > 0 {
		percent := uint64(float64(wc.Total) / float64(wc.Size) * 100)
		fmt.Printf("\rDownloading %s - %d%% (%s/%s) ", wc.Key, percent, humanize.Bytes(wc.Total), humanize.Bytes(wc.Size))
		return
	}
	fmt.Printf("\rDownloading %s - %s complete ", wc.Key, humanize.Bytes(wc.Total))
}

// SaveObject streams an object from the store into filePath, creating parent
// directories as needed. The bytes land in a temporary file that is renamed
// into place only after the full body has been copied.
func SaveObject(fs afero.Fs, ctx context.Context, store storage.ObjectStore, key, filePath string, logger *logging.Logger, quiet bool) error {
	if filePath == "" {
		return errors.New("invalid file path")
	}

	body, size, err := store.GetStream(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to fetch object: %w", err)
	}
	defer body.Close()

	if dir := filepath.Dir(filePath); dir != "." && dir != "/" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmpFilePath := filePath + ".tmp"
	out, err := fs.Create(tmpFilePath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer out.Close()

	counter := &WriteCounter{Key: key, Quiet: quiet}
	if size > 0 {
		counter.Size = uint64(size)
	}
	if _, err = io.Copy(out, io.TeeReader(body, counter)); err != nil {
		return fmt.Errorf("failed to copy data: %w", err)
	}
	if !counter.Quiet {
		fmt.Println() // Move to the next line after download progress
	}

	if err = fs.Rename(tmpFilePath, filePath); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	logger.Debug("object saved", "key", key, "path", filePath, "size", humanize.Bytes(counter.Total))
	return nil
}
