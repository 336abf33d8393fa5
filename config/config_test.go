//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv clears the environment and applies vars for the rest of the test.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	saved := os.Environ()
	os.Clearenv()
	t.Cleanup(func() {
		os.Clearenv()
		for _, kv := range saved {
			if k, v, ok := strings.Cut(kv, "="); ok {
				_ = os.Setenv(k, v)
			}
		}
	})
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, 64, cfg.Server.StreamBuffer)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, EvictionFIFO, cfg.Cache.Eviction)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Zero(t, cfg.Source.Retries)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Environment(t *testing.T) {
	setEnv(t, map[string]string{
		"PORT":              "9090",
		"RATE_LIMIT":        "50",
		"RATE_WINDOW":       "30s",
		"CACHE_SIZE":        "2",
		"CACHE_TTL":         "5s",
		"CACHE_EVICTION":    "LRU",
		"SOURCE_BASE_URL":   "https://cdn.example.com/data/",
		"SOURCE_TIMEOUT":    "3s",
		"SOURCE_RETRIES":    "2",
		"SOURCE_ENVELOPE":   "data",
		"SOURCE_WARMUP":     "true",
		"MONGODB_ENABLED":   "true",
		"OPERATOR_API_KEYS": "ops-1, ,ops-2",
		"STREAM_HEARTBEAT":  "5s",
		"SHUTDOWN_TIMEOUT":  "20s",
		"LOG_LEVEL":         "debug",
		"LOG_PRETTY":        "1",
	})

	cfg, err := Load()
	require.NoError(t, err)

	want := Defaults()
	want.Server.Port = "9090"
	want.Server.RateLimit = 50
	want.Server.RateWindow = 30 * time.Second
	want.Server.OperatorKeys = []string{"ops-1", "ops-2"}
	want.Server.StreamHeartbeat = 5 * time.Second
	want.Server.ShutdownTimeout = 20 * time.Second
	want.Cache = CacheConfig{Size: 2, TTL: 5 * time.Second, Eviction: EvictionLRU}
	want.Source.BaseURL = "https://cdn.example.com/data"
	want.Source.Timeout = 3 * time.Second
	want.Source.Retries = 2
	want.Source.Envelope = "data"
	want.Source.Warmup = true
	want.Database.Enabled = true
	want.Log = LogConfig{Level: "debug", Pretty: true}
	assert.Equal(t, want, cfg)
}

func TestLoad_MalformedEnvironmentKeepsDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"RATE_LIMIT":      "lots",
		"RATE_WINDOW":     "a minute",
		"MONGODB_ENABLED": "sure",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_CORSOriginsExtendDefaults(t *testing.T) {
	setEnv(t, map[string]string{"CORS_ORIGINS": " https://app.example.com , "})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://app.example.com"}, cfg.Server.CORSOrigins)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		env     map[string]string
		wantErr string
	}{
		{env: map[string]string{"CACHE_EVICTION": "random"}, wantErr: "eviction"},
		{env: map[string]string{"CACHE_SIZE": "0"}, wantErr: "cache size"},
		{env: map[string]string{"CACHE_TTL": "0s"}, wantErr: "cache ttl"},
		{env: map[string]string{"STREAM_BUFFER": "0"}, wantErr: "stream buffer"},
		{env: map[string]string{"SOURCE_TIMEOUT": "-1s"}, wantErr: "source timeout"},
		{env: map[string]string{"SOURCE_RETRIES": "-1"}, wantErr: "source retries"},
		{env: map[string]string{"REQUEST_TIMEOUT": "10s"}, wantErr: "source timeout budget"},
		{env: map[string]string{"REQUEST_TIMEOUT": "25s", "SOURCE_TIMEOUT": "5s", "SOURCE_RETRIES": "4"}, wantErr: "request timeout 25s"},
	}

	for _, tt := range tests {
		t.Run(tt.wantErr, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
  operator_keys: [file-key]
cache:
  size: 10
  ttl: 90s
source:
  base_url: https://content.example.com
  timeout: 2s
  warmup: true
log:
  level: warn
`), 0o600))

	t.Run("file values override defaults", func(t *testing.T) {
		setEnv(t, map[string]string{"CONFIG_FILE": path})

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, []string{"file-key"}, cfg.Server.OperatorKeys)
		assert.Equal(t, 10, cfg.Cache.Size)
		assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
		assert.Equal(t, "https://content.example.com", cfg.Source.BaseURL)
		assert.True(t, cfg.Source.Warmup)
		assert.Equal(t, "warn", cfg.Log.Level)
		// untouched keys keep their defaults
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, "courses", cfg.Source.CoursesPath)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		setEnv(t, map[string]string{"CONFIG_FILE": path, "CACHE_SIZE": "3"})

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Cache.Size)
		assert.Equal(t, "7070", cfg.Server.Port)
	})

	t.Run("missing file", func(t *testing.T) {
		setEnv(t, map[string]string{"CONFIG_FILE": filepath.Join(dir, "missing.yaml")})
		_, err := Load()
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("malformed file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("cache: [unclosed"), 0o600))
		setEnv(t, map[string]string{"CONFIG_FILE": bad})
		_, err := Load()
		assert.ErrorContains(t, err, "parse config file")
	})
}
