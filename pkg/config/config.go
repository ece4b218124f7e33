package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"

	"github.com/tmpstash/tmpstash/pkg/environment"
	"github.com/tmpstash/tmpstash/pkg/logging"
	"github.com/tmpstash/tmpstash/pkg/messages"
	"github.com/tmpstash/tmpstash/pkg/storage"
)

// StorageConfig is the resolved object-store configuration shared by every
// command: environment values first, then flag overrides on top.
type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
	MaxSize   uint64
}

// FromEnvironment seeds a StorageConfig from the resolved environment.
func FromEnvironment(environ *environment.Environment) *StorageConfig {
	return &StorageConfig{
		Bucket:    environ.Bucket,
		Region:    environ.Region,
		AccessKey: environ.AccessKey,
		SecretKey: environ.SecretKey,
		Endpoint:  environ.Endpoint,
		MaxSize:   environ.MaxUploadSize,
	}
}

// Validate enforces the credential requirement shared by every command.
func (c *StorageConfig) Validate() error {
	if c.AccessKey == "" || c.SecretKey == "" {
		return errors.New(messages.ErrCredentialsRequired)
	}
	return nil
}

// StoreOptions converts the configuration into S3 client options.
func (c *StorageConfig) StoreOptions() storage.S3Options {
	return storage.S3Options{
		Bucket:    c.Bucket,
		Region:    c.Region,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Endpoint:  c.Endpoint,
	}
}

// promptCredentials collects the access and secret keys interactively. It is
// a variable so tests can swap it out; huh needs a real terminal.
var promptCredentials = func() (string, string, error) {
	var confirm bool
	if err := huh.Run(
		huh.NewConfirm().
			Title("Storage credentials not found. Do you want to set them up now?").
			Description("The access key and secret key are saved to a .env file and loaded on the next run.").
			Value(&confirm),
	); err != nil {
		return "", "", fmt.Errorf("could not prompt for credentials: %w", err)
	}
	if !confirm {
		return "", "", errors.New("aborted by user")
	}

	var accessKey, secretKey string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Storage access key").
			Prompt("> ").
			Validate(notEmpty).
			Value(&accessKey),
		huh.NewInput().
			Title("Storage secret key").
			Prompt("> ").
			EchoMode(huh.EchoModePassword).
			Validate(notEmpty).
			Value(&secretKey),
	)).Run(); err != nil {
		return "", "", fmt.Errorf("could not prompt for credentials: %w", err)
	}
	return accessKey, secretKey, nil
}

func notEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("value cannot be empty")
	}
	return nil
}

// GenerateConfiguration fills in missing credentials. When the environment is
// interactive it prompts for them and appends them to the .env file so later
// runs pick them up; otherwise missing credentials are an error. It returns
// the path of the written file, or "" when nothing had to be done.
func GenerateConfiguration(fs afero.Fs, environ *environment.Environment, cfg *StorageConfig, logger *logging.Logger) (string, error) {
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		return "", nil
	}
	if environ.NonInteractive == "1" {
		return "", errors.New(messages.ErrCredentialsRequired)
	}

	accessKey, secretKey, err := promptCredentials()
	if err != nil {
		return "", err
	}

	dir := environ.Pwd
	if dir == "" {
		dir = environ.Home
	}
	envFile := filepath.Join(dir, environment.DotEnvFileName)

	var content []byte
	if existing, err := afero.ReadFile(fs, envFile); err == nil {
		content = existing
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
	}
	content = append(content, fmt.Sprintf("STORAGE_ACCESS_KEY=%s\nSTORAGE_SECRET_KEY=%s\n", accessKey, secretKey)...)

	// The file holds secrets; keep it owner-only.
	if err := afero.WriteFile(fs, envFile, content, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", envFile, err)
	}

	cfg.AccessKey = accessKey
	cfg.SecretKey = secretKey
	logger.Info("storage credentials saved", "env-file", envFile)
	return envFile, nil
}
