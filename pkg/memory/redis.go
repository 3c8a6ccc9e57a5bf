package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/multitenancy"
)

// RedisMemory stores a conversation as a Redis list of JSON messages.
// Keys are scoped by organization and conversation ID; a conversation
// ID in the context overrides the instance default.
type RedisMemory struct {
	client                *redis.Client
	prefix                string
	defaultConversationID string
}

// RedisMemoryOption represents an option for configuring RedisMemory
type RedisMemoryOption func(*RedisMemory)

// WithRedisKeyPrefix overrides the Redis key namespace
func WithRedisKeyPrefix(prefix string) RedisMemoryOption {
	return func(m *RedisMemory) {
		m.prefix = prefix
	}
}

// WithDefaultConversationID pins the conversation used when the
// context carries none
func WithDefaultConversationID(conversationID string) RedisMemoryOption {
	return func(m *RedisMemory) {
		m.defaultConversationID = conversationID
	}
}

// NewRedisMemory creates a conversation store on an existing Redis
// client. Without a pinned conversation ID a fresh one is generated.
func NewRedisMemory(client *redis.Client, options ...RedisMemoryOption) *RedisMemory {
	m := &RedisMemory{
		client: client,
		prefix: "agentchat:memory",
	}
	for _, option := range options {
		option(m)
	}
	if m.defaultConversationID == "" {
		m.defaultConversationID = uuid.New().String()
	}
	return m
}

// AddMessage appends a message to the conversation list
func (m *RedisMemory) AddMessage(ctx context.Context, message interfaces.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if err := m.client.RPush(ctx, m.key(ctx), data).Err(); err != nil {
		return fmt.Errorf("failed to append message to redis: %w", err)
	}
	return nil
}

// GetMessages returns the conversation's messages, oldest first
func (m *RedisMemory) GetMessages(ctx context.Context, options ...interfaces.GetMessagesOption) ([]interfaces.Message, error) {
	raw, err := m.client.LRange(ctx, m.key(ctx), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read messages from redis: %w", err)
	}

	messages := make([]interfaces.Message, 0, len(raw))
	for _, item := range raw {
		var message interfaces.Message
		if err := json.Unmarshal([]byte(item), &message); err != nil {
			return nil, fmt.Errorf("failed to decode stored message: %w", err)
		}
		messages = append(messages, message)
	}
	return filterMessages(messages, options...), nil
}

// Clear removes the conversation's messages
func (m *RedisMemory) Clear(ctx context.Context) error {
	if err := m.client.Del(ctx, m.key(ctx)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation in redis: %w", err)
	}
	return nil
}

// key builds the org- and conversation-scoped Redis key
func (m *RedisMemory) key(ctx context.Context) string {
	orgID, err := multitenancy.GetOrgID(ctx)
	if err != nil {
		orgID = "default"
	}
	conversationID, ok := GetConversationID(ctx)
	if !ok {
		conversationID = m.defaultConversationID
	}
	return fmt.Sprintf("%s:%s:%s", m.prefix, orgID, conversationID)
}

var _ interfaces.Memory = (*RedisMemory)(nil)
