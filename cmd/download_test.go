package cmd

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/storage"
)

func TestDownloadCommand(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]byte{"report.pdf": []byte("%PDF-1.4 payload")}}
	withStoreStub(t, store)

	fs := afero.NewMemMapFs()
	out, err := executeCommand(t, fs, newTestEnvironment(), logging.NewTestSafeLogger(),
		"download", "report.pdf", "--output", "/downloads/report.pdf")
	require.NoError(t, err)

	assert.Contains(t, out, "Saved to: /downloads/report.pdf")

	data, err := afero.ReadFile(fs, "/downloads/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 payload", string(data))
}

func TestDownloadCommandDefaultOutput(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]byte{"report.pdf": []byte("data")}}
	withStoreStub(t, store)

	fs := afero.NewMemMapFs()
	out, err := executeCommand(t, fs, newTestEnvironment(), logging.NewTestSafeLogger(), "download", "report.pdf")
	require.NoError(t, err)

	// The environment's working directory is the fallback destination.
	assert.Contains(t, out, "Saved to: /work/report.pdf")
	exists, err := afero.Exists(fs, "/work/report.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDownloadCommandPresign(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]byte{"report.pdf": []byte("data")}}
	withStoreStub(t, store)

	fs := afero.NewMemMapFs()
	out, err := executeCommand(t, fs, newTestEnvironment(), logging.NewTestSafeLogger(), "download", "report.pdf", "--presign")
	require.NoError(t, err)

	assert.Equal(t, "https://signed.example/report.pdf\n", out)
	require.Len(t, store.presignExp, 1)
	assert.Equal(t, time.Hour, store.presignExp[0])

	// Nothing is written locally when only the link is requested.
	exists, err := afero.Exists(fs, "/work/report.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDownloadCommandPresignCustomExpiry(t *testing.T) {
	store := &fakeObjectStore{objects: map[string][]byte{"report.pdf": []byte("data")}}
	withStoreStub(t, store)

	_, err := executeCommand(t, afero.NewMemMapFs(), newTestEnvironment(), logging.NewTestSafeLogger(),
		"download", "report.pdf", "--presign", "--expires", "7200")
	require.NoError(t, err)

	require.Len(t, store.presignExp, 1)
	assert.Equal(t, 2*time.Hour, store.presignExp[0])
}

func TestDownloadCommandMissingObject(t *testing.T) {
	store := &fakeObjectStore{}
	withStoreStub(t, store)

	_, err := executeCommand(t, afero.NewMemMapFs(), newTestEnvironment(), logging.NewTestSafeLogger(), "download", "absent.bin")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}
