package config

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
)

func testEnvironment() *environment.Environment {
	return &environment.Environment{
		Home:           "/home/user",
		Pwd:            "/work",
		Bucket:         "stash-bucket",
		Region:         "eu-west-1",
		AccessKey:      "AKIA123",
		SecretKey:      "s3cr3t",
		Endpoint:       "http://minio.local:9000",
		MaxUploadSize:  1024,
		NonInteractive: "1",
	}
}

func withPromptStub(t *testing.T, accessKey, secretKey string, err error) {
	t.Helper()

	restore := promptCredentials
	promptCredentials = func() (string, string, error) { return accessKey, secretKey, err }
	t.Cleanup(func() { promptCredentials = restore })
}

func TestFromEnvironment(t *testing.T) {
	cfg := FromEnvironment(testEnvironment())

	assert.Equal(t, "stash-bucket", cfg.Bucket)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "AKIA123", cfg.AccessKey)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, "http://minio.local:9000", cfg.Endpoint)
	assert.Equal(t, uint64(1024), cfg.MaxSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		accessKey string
		secretKey string
		wantErr   bool
	}{
		{"both present", "AKIA123", "s3cr3t", false},
		{"missing access key", "", "s3cr3t", true},
		{"missing secret key", "AKIA123", "", true},
		{"missing both", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StorageConfig{AccessKey: tt.accessKey, SecretKey: tt.secretKey}
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "access key and secret key")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := FromEnvironment(testEnvironment())
	opts := cfg.StoreOptions()

	assert.Equal(t, "stash-bucket", opts.Bucket)
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.Equal(t, "AKIA123", opts.AccessKey)
	assert.Equal(t, "s3cr3t", opts.SecretKey)
	assert.Equal(t, "http://minio.local:9000", opts.Endpoint)
}

func TestGenerateConfigurationCredentialsPresent(t *testing.T) {
	environ := testEnvironment()
	cfg := FromEnvironment(environ)

	path, err := GenerateConfiguration(afero.NewMemMapFs(), environ, cfg, logging.NewTestLogger())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestGenerateConfigurationNonInteractive(t *testing.T) {
	environ := testEnvironment()
	environ.AccessKey = ""
	environ.SecretKey = ""
	cfg := FromEnvironment(environ)

	_, err := GenerateConfiguration(afero.NewMemMapFs(), environ, cfg, logging.NewTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access key and secret key")
}

func TestGenerateConfigurationWritesEnvFile(t *testing.T) {
	environ := testEnvironment()
	environ.AccessKey = ""
	environ.SecretKey = ""
	environ.NonInteractive = "0"
	cfg := FromEnvironment(environ)
	withPromptStub(t, "AKIA999", "shhh", nil)

	fs := afero.NewMemMapFs()
	path, err := GenerateConfiguration(fs, environ, cfg, logging.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, "/work/.env", path)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "STORAGE_ACCESS_KEY=AKIA999\nSTORAGE_SECRET_KEY=shhh\n", string(content))
	assert.Equal(t, "AKIA999", cfg.AccessKey)
	assert.Equal(t, "shhh", cfg.SecretKey)
}

func TestGenerateConfigurationAppendsToExistingEnv(t *testing.T) {
	environ := testEnvironment()
	environ.AccessKey = ""
	environ.SecretKey = ""
	environ.NonInteractive = "0"
	cfg := FromEnvironment(environ)
	withPromptStub(t, "AKIA999", "shhh", nil)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/.env", []byte("PASSWORD=hunter2"), 0o600))

	path, err := GenerateConfiguration(fs, environ, cfg, logging.NewTestLogger())
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "PASSWORD=hunter2\nSTORAGE_ACCESS_KEY=AKIA999\nSTORAGE_SECRET_KEY=shhh\n", string(content))
}

func TestGenerateConfigurationFallsBackToHome(t *testing.T) {
	environ := testEnvironment()
	environ.AccessKey = ""
	environ.SecretKey = ""
	environ.NonInteractive = "0"
	environ.Pwd = ""
	cfg := FromEnvironment(environ)
	withPromptStub(t, "AKIA999", "shhh", nil)

	fs := afero.NewMemMapFs()
	path, err := GenerateConfiguration(fs, environ, cfg, logging.NewTestLogger())
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.env", path)
}

func TestGenerateConfigurationPromptFailure(t *testing.T) {
	environ := testEnvironment()
	environ.AccessKey = ""
	environ.SecretKey = ""
	environ.NonInteractive = "0"
	cfg := FromEnvironment(environ)
	withPromptStub(t, "", "", errors.New("aborted by user"))

	_, err := GenerateConfiguration(afero.NewMemMapFs(), environ, cfg, logging.NewTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted by user")
}
