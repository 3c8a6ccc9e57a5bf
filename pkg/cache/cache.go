// Package cache provides a completion cache middleware. A cached reply
// is returned with its original cost and token figures flagged as a
// cache hit, so usage counters can keep billable and total views apart.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/logging"
)

// CachingLLM wraps a model backend with a completion cache
type CachingLLM struct {
	llm    interfaces.ChatLLM
	store  Store
	seed   int64
	logger logging.Logger
}

// Option represents an option for configuring the cache middleware
type Option func(*CachingLLM)

// WithSeed partitions the cache key space; different seeds never share
// entries
func WithSeed(seed int64) Option {
	return func(c *CachingLLM) {
		c.seed = seed
	}
}

// WithLogger sets the logger for the cache middleware
func WithLogger(logger logging.Logger) Option {
	return func(c *CachingLLM) {
		c.logger = logger
	}
}

// New wraps an LLM client with a completion cache
func New(llm interfaces.ChatLLM, store Store, options ...Option) *CachingLLM {
	c := &CachingLLM{
		llm:   llm,
		store: store,
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = logging.New()
	}
	return c
}

// Complete serves the reply from the cache when an identical request
// was seen before, otherwise delegates and stores the result. Cache
// failures degrade to a plain backend call, never to a request error.
func (c *CachingLLM) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	key := c.requestKey(messages, options...)

	cached, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn(ctx, "Completion cache read failed", map[string]interface{}{
			"provider": c.llm.Name(),
			"error":    err.Error(),
		})
	}
	if ok {
		hit := *cached
		hit.CacheHit = true
		c.logger.Debug(ctx, "Completion cache hit", map[string]interface{}{
			"provider": c.llm.Name(),
			"model":    hit.Model,
		})
		return &hit, nil
	}

	completion, err := c.llm.Complete(ctx, messages, options...)
	if err != nil {
		return nil, err
	}

	stored := *completion
	stored.CacheHit = false
	if err := c.store.Set(ctx, key, &stored); err != nil {
		c.logger.Warn(ctx, "Completion cache write failed", map[string]interface{}{
			"provider": c.llm.Name(),
			"error":    err.Error(),
		})
	}
	return completion, nil
}

// Name returns the underlying provider name
func (c *CachingLLM) Name() string {
	return c.llm.Name()
}

// requestKey derives the cache key from the provider, effective model,
// seed and the full message sequence
func (c *CachingLLM) requestKey(messages []interfaces.Message, options ...interfaces.CompleteOption) string {
	opts := interfaces.ApplyCompleteOptions(options...)
	model := opts.Model
	if model == "" {
		if provider, ok := c.llm.(interface{ Model() string }); ok {
			model = provider.Model()
		}
	}

	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00", c.llm.Name(), model, c.seed)
	for _, m := range messages {
		fmt.Fprintf(h, "%s\x00%s\x00%s\x00", m.Role, m.Sender, m.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}

var _ interfaces.ChatLLM = (*CachingLLM)(nil)
