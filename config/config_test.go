package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	cfg, err := ParseFlags([]string{
		"-port", "8080",
		"-token-secret", "s3cret",
		"-token-ttl", "60",
		"-admin-user", "admin",
		"-admin-password", "pw",
		"-db-url", "/tmp/x.sqlite",
	})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.Url())
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.Equal(t, "/tmp/x.sqlite", cfg.DBUrl)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Debug)
}

func TestParseFlagsEnvironmentDefaults(t *testing.T) {
	t.Setenv("SURVEY_TOKEN_SECRET", "from-env")
	t.Setenv("SURVEY_PORT", "9000")
	t.Setenv("SURVEY_DEBUG", "true")
	t.Setenv("SURVEY_LOG_FORMAT", "json")

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TokenSecret)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)

	cfg, err = ParseFlags([]string{"-port", "7000"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7000", cfg.Addr, "flags win over environment")
}

func TestParseFlagsValidation(t *testing.T) {
	t.Setenv("SURVEY_TOKEN_SECRET", "")

	_, err := ParseFlags([]string{"-admin-user", "admin", "-log-format", "xml", "-token-ttl", "0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing parameter -token-secret")
	assert.Contains(t, err.Error(), "-admin-user and -admin-password go together")
	assert.Contains(t, err.Error(), `unknown -log-format "xml"`)
	assert.Contains(t, err.Error(), "-token-ttl must be positive")
}
