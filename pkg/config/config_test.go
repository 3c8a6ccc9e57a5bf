package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg := LoadFromEnv()

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "us-east-1", cfg.LLM.Anthropic.Region)
	assert.Equal(t, 1024, cfg.LLM.Anthropic.MaxTokens)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "local", cfg.Transcript.Type)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("AGENTCHAT_LLM_OPENAI_API_KEY", "sk-test")
	t.Setenv("AGENTCHAT_LLM_OPENAI_MODEL", "gpt-4o")
	t.Setenv("AGENTCHAT_REDIS_ADDRESS", "redis:6380")
	t.Setenv("AGENTCHAT_TRACING_ENABLED", "true")

	cfg := LoadFromEnv()

	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "redis:6380", cfg.Redis.Address)
	assert.True(t, cfg.Tracing.Enabled)
}
