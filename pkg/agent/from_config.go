package agent

import (
	"context"
	"fmt"

	"github.com/Ingenimax/agentchat-go/pkg/agentconfig"
	"github.com/Ingenimax/agentchat-go/pkg/config"
)

// NewFromDefinition builds an agent from a declarative definition,
// wiring an LLM backend when the definition names a provider. Extra
// options are applied after the definition and can override it.
func NewFromDefinition(ctx context.Context, def agentconfig.AgentDefinition, cfg *config.Config, extra ...Option) (*Agent, error) {
	if err := agentconfig.Validate(def); err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(extra)+5)

	if def.SystemPrompt != "" {
		options = append(options, WithSystemPrompt(ExpandEnv(def.SystemPrompt)))
	}
	if def.HumanInputMode != "" {
		options = append(options, WithHumanInputMode(HumanInputMode(def.HumanInputMode)))
	}
	if def.MaxConsecutiveAutoReply != nil {
		options = append(options, WithMaxConsecutiveAutoReply(*def.MaxConsecutiveAutoReply))
	}
	if def.DefaultAutoReply != "" {
		options = append(options, WithDefaultAutoReply(def.DefaultAutoReply))
	}

	if def.Provider != "" {
		llm, err := NewLLMFromConfig(ctx, def.Provider, ExpandEnv(def.Model), cfg)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", def.Name, err)
		}
		options = append(options, WithLLM(llm))
	}

	options = append(options, extra...)
	return New(def.Name, options...)
}
