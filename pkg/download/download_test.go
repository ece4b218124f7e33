package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/storage"
)

// stubStore serves objects from a map.
type stubStore struct {
	data   map[string][]byte
	getErr error
}

func (s *stubStore) Put(context.Context, string, string, io.Reader, int64) error {
	return errors.New("not implemented")
}

func (s *stubStore) GetStream(_ context.Context, key string) (io.ReadCloser, int64, error) {
	if s.getErr != nil {
		return nil, 0, s.getErr
	}
	b, ok := s.data[key]
	if !ok {
		return nil, 0, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), nil
}

func (s *stubStore) List(context.Context, string, int32) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (s *stubStore) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func (s *stubStore) PresignGet(context.Context, string, time.Duration) (string, error) {
	return "", errors.New("not implemented")
}

func TestWriteCounterWrite(t *testing.T) {
	counter := &WriteCounter{Quiet: true}
	data := []byte("Hello, World!")
	n, err := counter.Write(data)

	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, uint64(len(data)), counter.Total)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	defer func() { os.Stdout = stdout }()
	os.Stdout = w

	fn()

	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Error(err)
	}
	return buf.String()
}

func TestWriteCounterPrintProgress(t *testing.T) {
	counter := &WriteCounter{Key: "scan.pdf", Total: 512, Size: 1024}

	out := captureStdout(t, counter.PrintProgress)

	expected := "\r                                                  \rDownloading scan.pdf - 50% (512 B/1.0 kB) "
	assert.Equal(t, expected, out)
}

func TestWriteCounterPrintProgressUnknownSize(t *testing.T) {
	counter := &WriteCounter{Key: "scan.pdf", Total: 1024}

	out := captureStdout(t, counter.PrintProgress)

	expected := "\r                                                  \rDownloading scan.pdf - 1.0 kB complete "
	assert.Equal(t, expected, out)
}

func TestWriteCounterQuiet(t *testing.T) {
	counter := &WriteCounter{Key: "scan.pdf", Total: 512, Size: 1024, Quiet: true}

	out := captureStdout(t, counter.PrintProgress)
	assert.Empty(t, out)
}

func TestSaveObject(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := &stubStore{data: map[string][]byte{"scan.pdf": []byte("pdf bytes")}}

	err := SaveObject(fs, context.Background(), store, "scan.pdf", "/out/nested/scan.pdf", logging.NewTestLogger(), true)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/out/nested/scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))

	// The temporary staging file must be gone after the rename.
	exists, err := afero.Exists(fs, "/out/nested/scan.pdf.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSaveObjectMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := &stubStore{data: map[string][]byte{}}

	err := SaveObject(fs, context.Background(), store, "nope.txt", "/out/nope.txt", logging.NewTestLogger(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestSaveObjectFetchError(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := &stubStore{getErr: errors.New("connection reset")}

	err := SaveObject(fs, context.Background(), store, "scan.pdf", "/out/scan.pdf", logging.NewTestLogger(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch object")
}

func TestSaveObjectEmptyPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := &stubStore{data: map[string][]byte{"scan.pdf": []byte("x")}}

	err := SaveObject(fs, context.Background(), store, "scan.pdf", "", logging.NewTestLogger(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file path")
}
