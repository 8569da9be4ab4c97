package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 4000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_MAX_TOKENS", "1500")
	t.Setenv("HTTP_ENABLED", "yes")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 1500, cfg.OpenAI.MaxTokens)
	assert.True(t, cfg.Server.Enabled)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "не число")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.OpenAI.MaxTokens)
}
