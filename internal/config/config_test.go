package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, values map[string]string) {
	t.Helper()
	for _, key := range []string{"ENV", "PORT", "REDIS_URL", "MAX_PAYLOAD_BYTES", "CAPTURE_TTL", "CHECK_INTERVAL", "WEBHOOK_URL"} {
		t.Setenv(key, values[key])
	}
	// Tests run in the package directory, which has no .env file.
	t.Chdir(t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	setEnv(t, map[string]string{"REDIS_URL": "redis://localhost:6379/0"})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.Development())
	assert.Equal(t, "7900", cfg.Port)
	assert.Equal(t, int64(4<<20), cfg.MaxPayloadBytes)
	assert.Equal(t, 7*24*time.Hour, cfg.CaptureTTL)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
	assert.Empty(t, cfg.WebhookURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"ENV":               "production",
		"PORT":              "8080",
		"REDIS_URL":         "redis://cache:6379/2",
		"MAX_PAYLOAD_BYTES": "1024",
		"CAPTURE_TTL":       "12h",
		"CHECK_INTERVAL":    "30s",
		"WEBHOOK_URL":       "https://discord.com/api/webhooks/1/abc",
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Development())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, int64(1024), cfg.MaxPayloadBytes)
	assert.Equal(t, 12*time.Hour, cfg.CaptureTTL)
	assert.Equal(t, 30*time.Second, cfg.CheckInterval)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.WebhookURL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		errMsg string
	}{
		{
			name:   "missing redis url",
			values: map[string]string{"ENV": "production"},
			errMsg: "REDIS_URL must be set",
		},
		{
			name:   "payload cap not a number",
			values: map[string]string{"ENV": "production", "REDIS_URL": "redis://x", "MAX_PAYLOAD_BYTES": "lots"},
			errMsg: "MAX_PAYLOAD_BYTES",
		},
		{
			name:   "negative payload cap",
			values: map[string]string{"ENV": "production", "REDIS_URL": "redis://x", "MAX_PAYLOAD_BYTES": "-1"},
			errMsg: "MAX_PAYLOAD_BYTES",
		},
		{
			name:   "bad ttl",
			values: map[string]string{"ENV": "production", "REDIS_URL": "redis://x", "CAPTURE_TTL": "a week"},
			errMsg: "CAPTURE_TTL",
		},
		{
			name:   "zero interval",
			values: map[string]string{"ENV": "production", "REDIS_URL": "redis://x", "CHECK_INTERVAL": "0s"},
			errMsg: "CHECK_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.values)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
