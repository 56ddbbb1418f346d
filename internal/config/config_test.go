package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "API_BASE_URL", "DATABASE_URL", "SESSION_SECRET", "SESSION_TTL",
		"CORS_ORIGINS", "TIMEZONE", "SENTRY_DSN", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
port: "9000"
api_base_url: https://api.example.com
session_secret: file-secret-0123456789
session_ttl: 2h
cors_origins: [https://app.example.com]
timezone: Europe/London
rate_limit:
  rps: 2
  burst: 4
`)
	t.Setenv("PORT", "9100")
	t.Setenv("RATE_LIMIT_BURST", "20")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port, "env beats file")
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 2.0, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, Default().DatabaseURL, cfg.DatabaseURL, "defaults survive")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Europe/London", cfg.Location().String())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CORS_ORIGINS": " https://a.io , ,https://b.io",
		"SESSION_TTL":  "30m",
		"SENTRY_DSN":   "https://key@sentry.example/1",
	}
	cfg := Default()
	require.NoError(t, cfg.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "https://key@sentry.example/1", cfg.SentryDSN)

	tests := map[string]string{
		"SESSION_TTL":      "forever",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "1.5",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := Default()
			err := cfg.applyEnv(func(k string) string {
				if k == key {
					return val
				}
				return ""
			})
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_secret is required")

	cfg.SessionSecret = "short"
	assert.ErrorContains(t, cfg.Validate(), "at least 16 bytes")

	cfg.SessionSecret = "0123456789abcdef"
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.APIBaseURL = "/relative"
	bad.Timezone = "Mars/Olympus"
	bad.RateLimit.Burst = 0
	err = bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_base_url")
	assert.Contains(t, err.Error(), "timezone")
	assert.Contains(t, err.Error(), "rate_limit")
}

func TestLocationFallback(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Nowhere/Special"
	assert.Equal(t, time.UTC, cfg.Location())
}
