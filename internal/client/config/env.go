package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL        = "CASEKEEPER_API_URL"
	EnvConfigFile    = "CASEKEEPER_CONFIG"
	EnvTimeout       = "CASEKEEPER_TIMEOUT"
	EnvDatabasePath  = "CASEKEEPER_DB"
	EnvLogLevel      = "CASEKEEPER_LOG_LEVEL"
	EnvLogDriver     = "CASEKEEPER_LOG_DRIVER"
	EnvUploadBackend = "CASEKEEPER_UPLOAD_BACKEND"
	EnvS3Bucket      = "CASEKEEPER_S3_BUCKET"
	EnvS3Region      = "CASEKEEPER_S3_REGION"
	EnvS3Endpoint    = "CASEKEEPER_S3_ENDPOINT"
	EnvS3AccessKey   = "CASEKEEPER_S3_ACCESS_KEY"
	EnvS3SecretKey   = "CASEKEEPER_S3_SECRET_KEY"
	EnvS3PublicURL   = "CASEKEEPER_S3_PUBLIC_URL"
)

var envKeys = []string{
	EnvAPIURL, EnvConfigFile, EnvTimeout, EnvDatabasePath, EnvLogLevel, EnvLogDriver,
	EnvUploadBackend, EnvS3Bucket, EnvS3Region, EnvS3Endpoint, EnvS3AccessKey,
	EnvS3SecretKey, EnvS3PublicURL,
}

// readEnv merges the .env file with the process environment. A missing
// file is not an error.
func readEnv(path string, lookup func(string) (string, bool)) (map[string]string, error) {
	out := map[string]string{}

	if path != "" {
		file, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		default:
			for _, k := range envKeys {
				if v, ok := file[k]; ok {
					out[k] = v
				}
			}
		}
	}

	for _, k := range envKeys {
		if v, ok := lookup(k); ok {
			out[k] = v
		}
	}
	return out, nil
}

func parseEnv(cfg *Config, env map[string]string) error {
	strs := map[string]*string{
		EnvAPIURL:        &cfg.APIBaseURL,
		EnvDatabasePath:  &cfg.DatabasePath,
		EnvLogLevel:      &cfg.LogLevel,
		EnvLogDriver:     &cfg.LogDriver,
		EnvUploadBackend: &cfg.UploadBackend,
		EnvS3Bucket:      &cfg.S3.Bucket,
		EnvS3Region:      &cfg.S3.Region,
		EnvS3Endpoint:    &cfg.S3.BaseEndpoint,
		EnvS3AccessKey:   &cfg.S3.AccessKey,
		EnvS3SecretKey:   &cfg.S3.SecretKey,
		EnvS3PublicURL:   &cfg.S3.PublicBaseURL,
	}
	for k, dst := range strs {
		if v, ok := env[k]; ok && v != "" {
			*dst = v
		}
	}

	if v := env[EnvTimeout]; v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// parseSeconds accepts a Go duration ("15s") or a plain number of seconds.
func parseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
