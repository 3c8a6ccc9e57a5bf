// Package openai provides a chat client for the OpenAI API.
package openai

import (
	"context"
	"errors"
	"net/http"

	sdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/llm"
	"github.com/Ingenimax/agentchat-go/pkg/logging"
)

// DefaultModel is the chat model used when none is configured
const DefaultModel = "gpt-4o-mini"

// Client implements the chat backend over the OpenAI API
type Client struct {
	client     sdk.Client
	model      string
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// Option represents an option for configuring the OpenAI client
type Option func(*Client)

// WithModel sets the chat model
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL points the client at a compatible API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an OpenAI chat client
func NewClient(apiKey string, options ...Option) *Client {
	c := &Client{
		model: DefaultModel,
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = logging.New()
	}

	requestOptions := []option.RequestOption{option.WithAPIKey(apiKey)}
	if c.baseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(c.baseURL))
	}
	if c.httpClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(c.httpClient))
	}
	c.client = sdk.NewClient(requestOptions...)
	return c
}

// Complete generates the next assistant message via the chat
// completions API
func (c *Client) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	opts := interfaces.ApplyCompleteOptions(options...)
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}

	params := buildParams(model, messages, opts)

	c.logger.Debug(ctx, "Requesting chat completion", map[string]interface{}{
		"model":    model,
		"messages": len(params.Messages),
	})

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error(ctx, "Chat completion failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return nil, llm.NewProviderError("openai", "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, llm.NewProviderError("openai", "chat completion", errors.New("response contained no choices"))
	}

	usedModel := string(resp.Model)
	if usedModel == "" {
		usedModel = model
	}

	return &interfaces.Completion{
		Content:          resp.Choices[0].Message.Content,
		Model:            usedModel,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		Cost:             llm.CostFor(usedModel, resp.Usage.PromptTokens, resp.Usage.CompletionTokens),
	}, nil
}

// buildParams converts the neutral message sequence into chat
// completion parameters
func buildParams(model string, messages []interfaces.Message, opts *interfaces.CompleteOptions) sdk.ChatCompletionNewParams {
	converted := make([]sdk.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if opts.SystemPrompt != "" {
		converted = append(converted, sdk.SystemMessage(opts.SystemPrompt))
	}
	for _, m := range messages {
		switch m.Role {
		case interfaces.MessageRoleSystem:
			converted = append(converted, sdk.SystemMessage(m.Content))
		case interfaces.MessageRoleAssistant:
			converted = append(converted, sdk.AssistantMessage(m.Content))
		default:
			converted = append(converted, sdk.UserMessage(m.Content))
		}
	}

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: converted,
	}
	if opts.Temperature > 0 {
		params.Temperature = sdk.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(int64(opts.MaxTokens))
	}
	if len(opts.StopSequences) > 0 {
		params.Stop = sdk.ChatCompletionNewParamsStopUnion{OfStringArray: opts.StopSequences}
	}
	return params
}

// Name returns the provider name
func (c *Client) Name() string {
	return "openai"
}

// Model returns the configured model
func (c *Client) Model() string {
	return c.model
}

var _ interfaces.ChatLLM = (*Client)(nil)
