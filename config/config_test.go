package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("SITE_URL", "https://bettercalljon.com/")
	t.Setenv("NOTIFY_BACKEND", "SMTP")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://bettercalljon.com", cfg.SiteURL)
	assert.Equal(t, "smtp", cfg.NotifyBackend)
	assert.False(t, cfg.SanityUseCDN)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_LIST", " kafka-1:9092, ,kafka-2:9092 ")

	assert.Equal(t, 42, getEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("TEST_BAD_INT", 1))
	assert.True(t, getEnvBool("TEST_BOOL", false))
	assert.False(t, getEnvBool("TEST_MISSING_BOOL", false))
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, getEnvList("TEST_LIST"))
	assert.Nil(t, getEnvList("TEST_MISSING_LIST"))
}
