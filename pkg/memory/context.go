package memory

import "context"

type conversationIDKey struct{}

// WithConversationID scopes memory operations in the context to one
// conversation
func WithConversationID(ctx context.Context, conversationID string) context.Context {
	return context.WithValue(ctx, conversationIDKey{}, conversationID)
}

// GetConversationID returns the conversation ID from the context
func GetConversationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(conversationIDKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
