package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsync/skillsync/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "deepseek/deepseek-r1-0528-qwen3-8b:free", cfg.ChatModel)
	assert.Equal(t, 1000, cfg.ChatMaxTokens)
	assert.InDelta(t, 0.3, cfg.ChatTemperature, 0.001)
	assert.Equal(t, 10*time.Second, cfg.OracleTimeout)
	assert.Equal(t, 3, cfg.OracleMaxAttempts)
	assert.Equal(t, "data/job_dataset.json", cfg.DatasetPath)
	// The whole-request deadline must outlast the full oracle retry budget.
	assert.Greater(t, cfg.RequestTimeout, time.Duration(cfg.OracleMaxAttempts)*cfg.OracleTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ORACLE_MAX_ATTEMPTS", "5")
	t.Setenv("CHAT_MODEL", "some/other-model")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, 5, cfg.OracleMaxAttempts)
	assert.Equal(t, "some/other-model", cfg.ChatModel)
}

func TestEnvHelpers(t *testing.T) {
	assert.True(t, config.Config{AppEnv: "dev"}.IsDev())
	assert.True(t, config.Config{AppEnv: "PROD"}.IsProd())
	assert.True(t, config.Config{AppEnv: "test"}.IsTest())
	assert.False(t, config.Config{AppEnv: "prod"}.IsDev())
}
