package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ingenimax/agentchat-go/pkg/config"
	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/llm/anthropic"
	"github.com/Ingenimax/agentchat-go/pkg/llm/gemini"
	"github.com/Ingenimax/agentchat-go/pkg/llm/openai"
)

// NewLLMFromConfig creates a model backend client for a provider name.
// An empty model falls back to the configured default for that
// provider.
func NewLLMFromConfig(ctx context.Context, provider, model string, cfg *config.Config) (interfaces.ChatLLM, error) {
	if cfg == nil {
		cfg = config.LoadFromEnv()
	}

	switch strings.ToLower(provider) {
	case "openai":
		return createOpenAIClient(model, cfg)
	case "anthropic":
		return createAnthropicClient(ctx, model, cfg)
	case "gemini":
		return createGeminiClient(ctx, model, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: openai, anthropic, gemini)", provider)
	}
}

func createOpenAIClient(model string, cfg *config.Config) (interfaces.ChatLLM, error) {
	apiKey := cfg.LLM.OpenAI.APIKey
	if apiKey == "" {
		apiKey = GetEnvValue("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for OpenAI provider (set AGENTCHAT_LLM_OPENAI_API_KEY or OPENAI_API_KEY)")
	}

	options := []openai.Option{}
	if model == "" {
		model = cfg.LLM.OpenAI.Model
	}
	if model != "" {
		options = append(options, openai.WithModel(ExpandEnv(model)))
	}
	if cfg.LLM.OpenAI.BaseURL != "" {
		options = append(options, openai.WithBaseURL(cfg.LLM.OpenAI.BaseURL))
	}

	return openai.NewClient(apiKey, options...), nil
}

func createAnthropicClient(ctx context.Context, model string, cfg *config.Config) (interfaces.ChatLLM, error) {
	options := []anthropic.Option{
		anthropic.WithRegion(cfg.LLM.Anthropic.Region),
	}
	if model == "" {
		model = cfg.LLM.Anthropic.Model
	}
	if model != "" {
		options = append(options, anthropic.WithModel(ExpandEnv(model)))
	}
	if cfg.LLM.Anthropic.MaxTokens > 0 {
		options = append(options, anthropic.WithMaxTokens(cfg.LLM.Anthropic.MaxTokens))
	}

	client, err := anthropic.NewBedrockClient(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic Bedrock client: %w", err)
	}
	return client, nil
}

func createGeminiClient(ctx context.Context, model string, cfg *config.Config) (interfaces.ChatLLM, error) {
	apiKey := cfg.LLM.Gemini.APIKey
	if apiKey == "" {
		apiKey = GetEnvValue("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for Gemini provider (set AGENTCHAT_LLM_GEMINI_API_KEY or GEMINI_API_KEY)")
	}

	options := []gemini.Option{}
	if model == "" {
		model = cfg.LLM.Gemini.Model
	}
	if model != "" {
		options = append(options, gemini.WithModel(ExpandEnv(model)))
	}

	client, err := gemini.NewClient(ctx, apiKey, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}
