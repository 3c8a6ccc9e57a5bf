// Package memory provides conversation stores agents use to mirror the
// messages a session appends for them.
package memory

import (
	"context"
	"sync"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// DefaultBufferSize is the message cap applied when none is configured
const DefaultBufferSize = 10

// ConversationBuffer keeps the most recent messages in memory
type ConversationBuffer struct {
	mu       sync.RWMutex
	messages []interfaces.Message
	maxSize  int
}

// ConversationBufferOption represents an option for configuring the buffer
type ConversationBufferOption func(*ConversationBuffer)

// WithMaxSize sets how many recent messages the buffer retains
func WithMaxSize(size int) ConversationBufferOption {
	return func(b *ConversationBuffer) {
		b.maxSize = size
	}
}

// NewConversationBuffer creates an in-memory conversation store
func NewConversationBuffer(options ...ConversationBufferOption) *ConversationBuffer {
	b := &ConversationBuffer{
		maxSize: DefaultBufferSize,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// AddMessage appends a message, evicting the oldest beyond the cap
func (b *ConversationBuffer) AddMessage(ctx context.Context, message interfaces.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.messages = append(b.messages, message)
	if b.maxSize > 0 && len(b.messages) > b.maxSize {
		b.messages = b.messages[len(b.messages)-b.maxSize:]
	}
	return nil
}

// GetMessages returns the retained messages, oldest first
func (b *ConversationBuffer) GetMessages(ctx context.Context, options ...interfaces.GetMessagesOption) ([]interfaces.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return filterMessages(b.messages, options...), nil
}

// Clear removes all retained messages
func (b *ConversationBuffer) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
	return nil
}

// filterMessages applies role and limit options to a message sequence,
// returning a copy. Limit keeps the most recent messages.
func filterMessages(messages []interfaces.Message, options ...interfaces.GetMessagesOption) []interfaces.Message {
	opts := &interfaces.GetMessagesOptions{}
	for _, option := range options {
		option(opts)
	}

	filtered := make([]interfaces.Message, 0, len(messages))
	for _, message := range messages {
		if len(opts.Roles) > 0 && !roleMatches(message.Role, opts.Roles) {
			continue
		}
		filtered = append(filtered, message)
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}
	return filtered
}

func roleMatches(role interfaces.MessageRole, roles []interfaces.MessageRole) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

var _ interfaces.Memory = (*ConversationBuffer)(nil)
