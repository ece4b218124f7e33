package environment

import (
	"os"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

const DotEnvFileName = ".env"

// loadDotEnvFn is swappable in tests so .env loading can be observed without
// touching the process environment.
var loadDotEnvFn = godotenv.Load

// Environment holds environment configurations loaded from the OS or defaults.
type Environment struct {
	Home           string `env:"HOME"`
	Pwd            string `env:"PWD"`
	Bucket         string `env:"STORAGE_BUCKET,default=default-bucket"`
	Region         string `env:"STORAGE_REGION,default=us-east-1"`
	AccessKey      string `env:"STORAGE_ACCESS_KEY"`
	SecretKey      string `env:"STORAGE_SECRET_KEY"`
	Endpoint       string `env:"STORAGE_URL"`
	MaxUploadSize  uint64 `env:"STORAGE_MAX_SIZE,default=104857600"`
	UploadSecret   string `env:"PASSWORD"`
	ScratchDir     string `env:"SCRATCH_DIR"`
	NonInteractive string `env:"NON_INTERACTIVE,default=0"`
	DotEnv         string
	Extras         env.EnvSet
}

// checkDotEnv checks if a .env file exists in the given directory.
func checkDotEnv(fs afero.Fs, baseDir string) (string, error) {
	envFile := filepath.Join(baseDir, DotEnvFileName)
	exists, err := afero.Exists(fs, envFile)
	if err == nil && exists {
		return envFile, nil
	}
	return "", err
}

// findDotEnv searches for a .env file in both the Pwd and Home directories.
func findDotEnv(fs afero.Fs, pwd, home string) string {
	if envFile, _ := checkDotEnv(fs, pwd); envFile != "" {
		return envFile
	}
	if envFile, _ := checkDotEnv(fs, home); envFile != "" {
		return envFile
	}
	return ""
}

// LoadDotEnv finds and loads a .env file before environment resolution.
// Existing process variables win over file entries. Returns the loaded path,
// or empty when no file was found.
func LoadDotEnv(fs afero.Fs) (string, error) {
	envFile := findDotEnv(fs, os.Getenv("PWD"), os.Getenv("HOME"))
	if envFile == "" {
		return "", nil
	}
	if err := loadDotEnvFn(envFile); err != nil {
		return "", err
	}
	return envFile, nil
}

// NewEnvironment initializes and returns a new Environment based on provided or default settings.
func NewEnvironment(fs afero.Fs, environ *Environment) (*Environment, error) {
	if environ != nil {
		// If an environment is provided, prioritize overriding configurations
		dotEnvFile := environ.DotEnv
		if dotEnvFile == "" {
			dotEnvFile = findDotEnv(fs, environ.Pwd, environ.Home)
		}

		return &Environment{
			Home:           environ.Home,
			Pwd:            environ.Pwd,
			Bucket:         environ.Bucket,
			Region:         environ.Region,
			AccessKey:      environ.AccessKey,
			SecretKey:      environ.SecretKey,
			Endpoint:       environ.Endpoint,
			MaxUploadSize:  environ.MaxUploadSize,
			UploadSecret:   environ.UploadSecret,
			ScratchDir:     environ.ScratchDir,
			NonInteractive: "1", // Prioritize non-interactive mode for overridden environments
			DotEnv:         dotEnvFile,
		}, nil
	}

	// Load environment variables into a new Environment struct
	environment := &Environment{}
	extras, err := env.UnmarshalFromEnviron(environment)
	if err != nil {
		return nil, err
	}
	environment.Extras = extras

	// Ensure NonInteractive is set from the environment variable
	environment.NonInteractive = os.Getenv("NON_INTERACTIVE")

	return &Environment{
		Home:           environment.Home,
		Pwd:            environment.Pwd,
		Bucket:         environment.Bucket,
		Region:         environment.Region,
		AccessKey:      environment.AccessKey,
		SecretKey:      environment.SecretKey,
		Endpoint:       environment.Endpoint,
		MaxUploadSize:  environment.MaxUploadSize,
		UploadSecret:   environment.UploadSecret,
		ScratchDir:     environment.ScratchDir,
		NonInteractive: environment.NonInteractive,
		DotEnv:         findDotEnv(fs, environment.Pwd, environment.Home),
		Extras:         environment.Extras,
	}, nil
}
