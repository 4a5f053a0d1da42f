package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PUBLIC_BASE_URL", "https://screener.example.com")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 3, cfg.QuestionCount)
	assert.Equal(t, 90, cfg.MaxRecordingSeconds)
	assert.Equal(t, 4, cfg.PipelineWorkers)
	assert.Equal(t, 64, cfg.PipelineQueueSize)
	assert.Equal(t, 2*time.Minute, cfg.StaleAfter)
	assert.Equal(t, 3, cfg.MaxAttempts)
}

func TestLoadConfigRequiresPublicBaseURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigTrimsBaseURLSlash(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://screener.example.com/")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://screener.example.com", cfg.PublicBaseURL)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigBoundsQuestionCount(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QUESTION_COUNT", "25")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestIsWhitelisted(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OUTBOUND_WHITELIST", "+15550001111, +6591234567")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsWhitelisted("+15550001111"))
	assert.True(t, cfg.IsWhitelisted("+6591234567"))
	assert.False(t, cfg.IsWhitelisted("+15559998888"))

	open := &Config{}
	assert.True(t, open.IsWhitelisted("+15559998888"), "empty whitelist allows all destinations")
}
