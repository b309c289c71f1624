package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8080", c.APIBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, UploadBackendAPI, c.UploadBackend)
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := load(nil, "", noEnv)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_Precedence(t *testing.T) {
	dotenv := writeFile(t, ".env", "CASEKEEPER_API_URL=http://dotenv:1\nCASEKEEPER_DB=from-dotenv.db\nCASEKEEPER_LOG_DRIVER=zap\n")
	jsonPath := writeFile(t, "cfg.json", `{"api_base_url":"http://json:2","request_timeout":"30s","request_burst":9}`)

	env := envOf(map[string]string{
		EnvDatabasePath: "from-env.db",
		EnvTimeout:      "20",
	})

	cfg, err := load([]string{"-c", jsonPath, "-l", "debug", "shell"}, dotenv, env)
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "http://json:2"
	want.DatabasePath = "from-env.db"
	want.LogDriver = "zap"
	want.RequestTimeout = 30 * time.Second
	want.RequestBurst = 9
	want.LogLevel = "debug"

	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoad_FlagsWin(t *testing.T) {
	jsonPath := writeFile(t, "cfg.json", `{"api_base_url":"http://json:2","request_timeout":"1500ms"}`)

	cfg, err := load([]string{"--config=" + jsonPath, "-a", "https://flag:3", "cases", "list"}, "", noEnv)
	require.NoError(t, err)
	assert.Equal(t, "https://flag:3", cfg.APIBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout, "timeout untouched without -t")

	cfg, err = load([]string{"-t", "3"}, "", noEnv)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	jsonPath := writeFile(t, "cfg.json", `{
		"upload_backend": "s3",
		"s3": {"bucket": "cases", "region": "eu-central-1", "base_endpoint": "http://minio:9000",
		       "access_key": "ak", "secret_key": "sk", "public_base_url": "http://cdn/cases"}
	}`)

	cfg, err := load(nil, "", envOf(map[string]string{EnvConfigFile: jsonPath}))
	require.NoError(t, err)
	assert.Equal(t, UploadBackendS3, cfg.UploadBackend)
	assert.Equal(t, storage.S3Config{
		Bucket: "cases", Region: "eu-central-1", BaseEndpoint: "http://minio:9000",
		AccessKey: "ak", SecretKey: "sk", PublicBaseURL: "http://cdn/cases",
	}, cfg.S3)
}

func TestLoad_Errors(t *testing.T) {
	bad := writeFile(t, "bad.json", `{ this is not valid json`)

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing json file", []string{"-c", filepath.Join(t.TempDir(), "nope.json")}, nil},
		{"invalid json", []string{"-c", bad}, nil},
		{"bad timeout flag", []string{"-t", "abc"}, nil},
		{"bad timeout env", nil, map[string]string{EnvTimeout: "soon"}},
		{"bad url", []string{"-a", "localhost:8080"}, nil},
		{"bad level", []string{"-l", "loud"}, nil},
		{"bad driver", nil, map[string]string{EnvLogDriver: "logrus"}},
		{"s3 without bucket", nil, map[string]string{EnvUploadBackend: "s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.args, "", envOf(tt.env))
			require.Error(t, err)
		})
	}
}

func TestFlagsAreStrippable(t *testing.T) {
	assert.ElementsMatch(t, []string{"-a", "-t", "-l", "-c", "-config"}, Flags)
}
