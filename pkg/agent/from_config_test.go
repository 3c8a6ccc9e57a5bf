package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/agentchat-go/pkg/agentconfig"
	"github.com/Ingenimax/agentchat-go/pkg/config"
	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

func intPtr(v int) *int { return &v }

func TestNewFromDefinitionClientless(t *testing.T) {
	def := agentconfig.AgentDefinition{
		Name:                    "proxy",
		HumanInputMode:          "NEVER",
		MaxConsecutiveAutoReply: intPtr(2),
		DefaultAutoReply:        "Please continue.",
	}

	a, err := NewFromDefinition(context.Background(), def, &config.Config{})
	require.NoError(t, err)

	assert.Equal(t, "proxy", a.Name())
	assert.False(t, a.HasBackend())
	assert.Equal(t, 2, a.MaxConsecutiveAutoReply())
	assert.Equal(t, "Please continue.", a.DefaultAutoReply())
}

func TestNewFromDefinitionExpandsSystemPrompt(t *testing.T) {
	t.Setenv("TUTOR_SUBJECT", "algebra")
	def := agentconfig.AgentDefinition{
		Name:         "assistant",
		SystemPrompt: "You are a ${TUTOR_SUBJECT} tutor.",
	}

	llm := &mockLLM{name: "openai", completion: &interfaces.Completion{Content: "ok", Model: "gpt-4o-mini"}}
	a, err := NewFromDefinition(context.Background(), def, &config.Config{}, WithLLM(llm))
	require.NoError(t, err)

	_, err = a.GenerateReply(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, llm.gotOptions)
	assert.Equal(t, "You are a algebra tutor.", llm.gotOptions.SystemPrompt)
}

func TestNewFromDefinitionInvalid(t *testing.T) {
	_, err := NewFromDefinition(context.Background(), agentconfig.AgentDefinition{}, &config.Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, agentconfig.ErrMissingName)
}

func TestNewFromDefinitionUnsupportedProvider(t *testing.T) {
	def := agentconfig.AgentDefinition{Name: "assistant", Provider: "watsonx"}

	_, err := NewFromDefinition(context.Background(), def, &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestNewFromDefinitionExtraOptionsOverride(t *testing.T) {
	def := agentconfig.AgentDefinition{
		Name:             "proxy",
		DefaultAutoReply: "Please continue.",
	}

	a, err := NewFromDefinition(context.Background(), def, &config.Config{}, WithDefaultAutoReply("Keep going."))
	require.NoError(t, err)
	assert.Equal(t, "Keep going.", a.DefaultAutoReply())
}
