package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/storage"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
	"github.com/go-playground/validator/v10"
)

const (
	UploadBackendAPI = "api"
	UploadBackendS3  = "s3"
)

// Config holds runtime settings for the casekeeper CLI.
type Config struct {
	APIBaseURL        string        `validate:"required,http_url"`
	RequestTimeout    time.Duration `validate:"gt=0"`
	RequestsPerSecond float64       `validate:"gte=0"`
	RequestBurst      int           `validate:"gte=1"`
	DatabasePath      string        `validate:"required"`
	LogDriver         string        `validate:"oneof=slog zap"`
	UploadBackend     string        `validate:"oneof=api s3"`
	LogLevel          string
	S3                storage.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.RequestsPerSecond = 10
	c.RequestBurst = 5
	c.DatabasePath = "casekeeper.db"
	c.LogLevel = "info"
	c.LogDriver = "slog"
	c.UploadBackend = UploadBackendAPI
}

// Validate checks the combined result of all sources.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.UploadBackend == UploadBackendS3 && c.S3.Bucket == "" {
		return fmt.Errorf("invalid config: upload_backend %q needs an S3 bucket", UploadBackendS3)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the environment, an optional
// JSON file and the given command-line arguments, in that order.
func LoadConfig(args []string) (*Config, error) {
	return load(args, ".env", os.LookupEnv)
}

func load(args []string, envFile string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	env, err := readEnv(envFile, lookup)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, env); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args, env); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
