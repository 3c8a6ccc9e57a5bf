// Package anthropic provides a chat client for Anthropic models served
// through AWS Bedrock.
package anthropic

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/llm"
	"github.com/Ingenimax/agentchat-go/pkg/logging"
)

// DefaultModel is the Bedrock model identifier used when none is
// configured
const DefaultModel = "anthropic.claude-3-5-sonnet-20241022-v2:0"

// DefaultMaxTokens caps the generated reply when none is configured
const DefaultMaxTokens = 1024

// DefaultRegion is the AWS region used when none is configured
const DefaultRegion = "us-east-1"

// anthropicVersion is required by Bedrock for Anthropic-format bodies
const anthropicVersion = "bedrock-2023-05-31"

// BedrockClient implements the chat backend over the Bedrock runtime
type BedrockClient struct {
	client    *bedrockruntime.Client
	model     string
	region    string
	maxTokens int
	awsConfig *aws.Config
	logger    logging.Logger
}

// Option represents an option for configuring the Bedrock client
type Option func(*BedrockClient)

// WithModel sets the Bedrock model identifier
func WithModel(model string) Option {
	return func(c *BedrockClient) {
		c.model = model
	}
}

// WithRegion sets the AWS region
func WithRegion(region string) Option {
	return func(c *BedrockClient) {
		c.region = region
	}
}

// WithMaxTokens caps the generated reply length
func WithMaxTokens(maxTokens int) Option {
	return func(c *BedrockClient) {
		c.maxTokens = maxTokens
	}
}

// WithAWSConfig supplies an existing AWS config, bypassing the default
// credential chain
func WithAWSConfig(cfg aws.Config) Option {
	return func(c *BedrockClient) {
		c.awsConfig = &cfg
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger logging.Logger) Option {
	return func(c *BedrockClient) {
		c.logger = logger
	}
}

// NewBedrockClient creates a Bedrock-backed Anthropic client. Without
// an explicit AWS config the default credential chain is used.
func NewBedrockClient(ctx context.Context, options ...Option) (*BedrockClient, error) {
	c := &BedrockClient{
		model:     DefaultModel,
		region:    DefaultRegion,
		maxTokens: DefaultMaxTokens,
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = logging.New()
	}

	if c.awsConfig == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.region))
		if err != nil {
			return nil, llm.NewProviderError("anthropic", "load aws config", err)
		}
		c.awsConfig = &cfg
	} else if c.awsConfig.Region != "" {
		c.region = c.awsConfig.Region
	}

	c.client = bedrockruntime.NewFromConfig(*c.awsConfig)
	return c, nil
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invokeRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	MaxTokens        int              `json:"max_tokens"`
	System           string           `json:"system,omitempty"`
	Messages         []messagePayload `json:"messages"`
	Temperature      float64          `json:"temperature,omitempty"`
	StopSequences    []string         `json:"stop_sequences,omitempty"`
}

type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

// Complete generates the next assistant message via InvokeModel
func (c *BedrockClient) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	opts := interfaces.ApplyCompleteOptions(options...)
	model := c.model
	if opts.Model != "" {
		model = opts.Model
	}
	maxTokens := c.maxTokens
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}

	system, payload := buildMessages(messages, opts.SystemPrompt)
	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		System:           system,
		Messages:         payload,
		Temperature:      opts.Temperature,
		StopSequences:    opts.StopSequences,
	})
	if err != nil {
		return nil, llm.NewProviderError("anthropic", "encode request", err)
	}

	c.logger.Debug(ctx, "Invoking Bedrock model", map[string]interface{}{
		"model":  model,
		"region": c.region,
	})

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		c.logger.Error(ctx, "Bedrock invocation failed", map[string]interface{}{
			"model":  model,
			"region": c.region,
			"error":  err.Error(),
		})
		return nil, llm.NewProviderError("anthropic", "invoke model", err)
	}

	var response invokeResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, llm.NewProviderError("anthropic", "decode response", err)
	}

	var content strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	usedModel := response.Model
	if usedModel == "" {
		usedModel = model
	}

	return &interfaces.Completion{
		Content:          content.String(),
		Model:            usedModel,
		PromptTokens:     response.Usage.InputTokens,
		CompletionTokens: response.Usage.OutputTokens,
		Cost:             llm.CostFor(usedModel, response.Usage.InputTokens, response.Usage.OutputTokens),
	}, nil
}

// buildMessages folds system-role messages into the system field and
// merges consecutive same-role messages, which Bedrock requires
func buildMessages(messages []interfaces.Message, systemPrompt string) (string, []messagePayload) {
	system := systemPrompt
	payload := make([]messagePayload, 0, len(messages))

	for _, m := range messages {
		if m.Role == interfaces.MessageRoleSystem {
			if system == "" {
				system = m.Content
			} else {
				system += "\n\n" + m.Content
			}
			continue
		}

		role := "user"
		if m.Role == interfaces.MessageRoleAssistant {
			role = "assistant"
		}
		if n := len(payload); n > 0 && payload[n-1].Role == role {
			payload[n-1].Content += "\n\n" + m.Content
			continue
		}
		payload = append(payload, messagePayload{Role: role, Content: m.Content})
	}
	return system, payload
}

// Name returns the provider name
func (c *BedrockClient) Name() string {
	return "anthropic"
}

// Model returns the configured model identifier
func (c *BedrockClient) Model() string {
	return c.model
}

var _ interfaces.ChatLLM = (*BedrockClient)(nil)
