package interfaces

import "context"

// ChatLLM represents a chat-completion model backend
type ChatLLM interface {
	// Complete generates the next assistant message for a conversation.
	// Failures are reported as errors, never as a malformed Completion.
	Complete(ctx context.Context, messages []Message, options ...CompleteOption) (*Completion, error)

	// Name returns the name of the LLM provider
	Name() string
}

// Completion represents one model backend reply together with its
// token and cost accounting
type Completion struct {
	// Content is the generated assistant text
	Content string `json:"content"`

	// Model is the model identifier that served the request
	Model string `json:"model"`

	// PromptTokens is the number of tokens in the prompt
	PromptTokens int64 `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the generated reply
	CompletionTokens int64 `json:"completion_tokens"`

	// Cost is the price of the call in USD
	Cost float64 `json:"cost"`

	// CacheHit reports whether the reply was served from a completion
	// cache without incurring new billable token cost
	CacheHit bool `json:"cache_hit"`
}

// TotalTokens returns prompt plus completion tokens
func (c *Completion) TotalTokens() int64 {
	return c.PromptTokens + c.CompletionTokens
}

// CompleteOption represents options for a completion request
type CompleteOption func(options *CompleteOptions)

// CompleteOptions contains configuration for a completion request
type CompleteOptions struct {
	Model         string   // Model override for this request
	SystemPrompt  string   // System message for chat models
	Temperature   float64  // Temperature for the generation
	MaxTokens     int      // Maximum tokens to generate (0 = provider default)
	StopSequences []string // Stop sequences for the generation
}

// WithModel creates a CompleteOption to override the model for one request
func WithModel(model string) CompleteOption {
	return func(options *CompleteOptions) {
		options.Model = model
	}
}

// WithSystemPrompt creates a CompleteOption to set the system message
func WithSystemPrompt(prompt string) CompleteOption {
	return func(options *CompleteOptions) {
		options.SystemPrompt = prompt
	}
}

// WithTemperature creates a CompleteOption to set the temperature
func WithTemperature(temperature float64) CompleteOption {
	return func(options *CompleteOptions) {
		options.Temperature = temperature
	}
}

// WithMaxTokens creates a CompleteOption to cap the generated tokens
func WithMaxTokens(maxTokens int) CompleteOption {
	return func(options *CompleteOptions) {
		options.MaxTokens = maxTokens
	}
}

// WithStopSequences creates a CompleteOption to set the stop sequences
func WithStopSequences(stopSequences []string) CompleteOption {
	return func(options *CompleteOptions) {
		options.StopSequences = stopSequences
	}
}

// ApplyCompleteOptions folds options into a CompleteOptions struct
func ApplyCompleteOptions(options ...CompleteOption) *CompleteOptions {
	opts := &CompleteOptions{}
	for _, opt := range options {
		opt(opts)
	}
	return opts
}
