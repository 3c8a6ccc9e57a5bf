// Package gemini provides a chat client for the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/llm"
	"github.com/Ingenimax/agentchat-go/pkg/logging"
)

// DefaultModel is the chat model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// Client implements the chat backend over the Gemini API
type Client struct {
	client *genai.Client
	model  string
	logger logging.Logger
}

// Option represents an option for configuring the Gemini client
type Option func(*Client)

// WithModel sets the chat model
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Gemini chat client
func NewClient(ctx context.Context, apiKey string, options ...Option) (*Client, error) {
	c := &Client{
		model: DefaultModel,
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = logging.New()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, llm.NewProviderError("gemini", "create client", err)
	}
	c.client = client
	return c, nil
}

// Complete generates the next assistant message via the Gemini API
func (c *Client) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	opts := interfaces.ApplyCompleteOptions(options...)
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}

	system, contents := buildContents(messages, opts.SystemPrompt)

	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if opts.Temperature > 0 {
		temperature := float32(opts.Temperature)
		config.Temperature = &temperature
	}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	if len(opts.StopSequences) > 0 {
		config.StopSequences = opts.StopSequences
	}

	c.logger.Debug(ctx, "Requesting chat completion", map[string]interface{}{
		"model":    model,
		"messages": len(contents),
	})

	result, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		c.logger.Error(ctx, "Chat completion failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return nil, llm.NewProviderError("gemini", "generate content", err)
	}
	if len(result.Candidates) == 0 {
		return nil, llm.NewProviderError("gemini", "generate content", errors.New("response contained no candidates"))
	}

	completion := &interfaces.Completion{
		Content: result.Text(),
		Model:   model,
	}
	if result.UsageMetadata != nil {
		completion.PromptTokens = int64(result.UsageMetadata.PromptTokenCount)
		completion.CompletionTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		completion.CacheHit = result.UsageMetadata.CachedContentTokenCount > 0
		completion.Cost = llm.CostFor(model, completion.PromptTokens, completion.CompletionTokens)
	}
	return completion, nil
}

// buildContents converts the neutral message sequence into Gemini
// contents. System messages are folded into the system instruction
// alongside the configured system prompt.
func buildContents(messages []interfaces.Message, systemPrompt string) (string, []*genai.Content) {
	var system []string
	if systemPrompt != "" {
		system = append(system, systemPrompt)
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case interfaces.MessageRoleSystem:
			system = append(system, m.Content)
		case interfaces.MessageRoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}

// Name returns the provider name
func (c *Client) Name() string {
	return "gemini"
}

// Model returns the configured model
func (c *Client) Model() string {
	return c.model
}

var _ interfaces.ChatLLM = (*Client)(nil)
