package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := &Config{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	cfg.ApplyEnv()
	return cfg
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	cfg := parse(t)

	assert.Equal(t, "localhost:8080", cfg.RunAddress)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "@every 10m", cfg.RevenueSchedule)
	assert.Equal(t, 256, cfg.RenderCacheSize)
	assert.Error(t, cfg.Validate(), "secret is required")
}

func TestConfig_FlagsThenEnv(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	require.NoError(t, os.Unsetenv("AUTH_SECRET"))
	t.Setenv("RUN_ADDRESS", ":9000")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("RENDER_CACHE_SIZE", "nope")
	t.Setenv("SECURE_COOKIES", "true")

	cfg := parse(t, "-a", ":7000", "-s", "flag-secret", "--cache-size", "32")

	assert.Equal(t, ":9000", cfg.RunAddress, "env wins over flag")
	assert.Equal(t, "flag-secret", cfg.AuthSecret)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 32, cfg.RenderCacheSize, "invalid env falls back to flag")
	assert.True(t, cfg.SecureCookies)
	assert.NoError(t, cfg.Validate())
}
