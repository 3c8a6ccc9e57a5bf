// Package llm holds plumbing shared by the model backend clients:
// the provider error type and the model pricing table.
package llm

import (
	"errors"
	"fmt"
)

// ProviderError represents a failed call to a model backend
type ProviderError struct {
	Provider string // Provider name (openai, anthropic, gemini)
	Op       string // The operation that failed (e.g., "Complete")
	Err      error  // The underlying error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a ProviderError
func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// AsProviderError extracts a ProviderError from an error chain
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	ok := errors.As(err, &pe)
	return pe, ok
}
