package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/casekeeper/internal/flagx"
	"github.com/dmitrijs2005/casekeeper/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second"`
	RequestBurst      *int            `json:"request_burst"`
	DatabasePath      *string         `json:"database_path"`
	LogLevel          *string         `json:"log_level"`
	LogDriver         *string         `json:"log_driver"`
	UploadBackend     *string         `json:"upload_backend"`
	S3                *JsonS3Config   `json:"s3"`
}

type JsonS3Config struct {
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	BaseEndpoint  string `json:"base_endpoint"`
	AccessKey     string `json:"access_key"`
	SecretKey     string `json:"secret_key"`
	PublicBaseURL string `json:"public_base_url"`
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// parseJson overlays cfg with the JSON file named by -c/-config, falling
// back to CASEKEEPER_CONFIG. No path means nothing to load.
func parseJson(cfg *Config, args []string, env map[string]string) error {
	path := flagx.JsonConfigPath(args)
	if path == "" {
		path = env[EnvConfigFile]
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	set(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	set(&cfg.RequestBurst, jc.RequestBurst)
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogDriver, jc.LogDriver)
	set(&cfg.UploadBackend, jc.UploadBackend)
	if s := jc.S3; s != nil {
		cfg.S3.Bucket = s.Bucket
		cfg.S3.Region = s.Region
		cfg.S3.BaseEndpoint = s.BaseEndpoint
		cfg.S3.AccessKey = s.AccessKey
		cfg.S3.SecretKey = s.SecretKey
		cfg.S3.PublicBaseURL = s.PublicBaseURL
	}
	return nil
}
