package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// DefaultRedisKeyPrefix namespaces completion entries in Redis
const DefaultRedisKeyPrefix = "agentchat:completion:"

// RedisStore persists completions in Redis as JSON values
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption represents an option for configuring the Redis store
type RedisOption func(*RedisStore)

// WithTTL expires entries after the given duration; zero keeps them
// indefinitely
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithKeyPrefix overrides the Redis key namespace
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a completion store on an existing Redis client
func NewRedisStore(client *redis.Client, options ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: DefaultRedisKeyPrefix,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Get returns the completion stored under key
func (s *RedisStore) Get(ctx context.Context, key string) (*interfaces.Completion, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read completion from redis: %w", err)
	}

	var completion interfaces.Completion
	if err := json.Unmarshal(data, &completion); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached completion: %w", err)
	}
	return &completion, true, nil
}

// Set stores a completion under key, applying the configured TTL
func (s *RedisStore) Set(ctx context.Context, key string, completion *interfaces.Completion) error {
	data, err := json.Marshal(completion)
	if err != nil {
		return fmt.Errorf("failed to encode completion: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write completion to redis: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
