package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// TracedLLM wraps a model backend so every completion runs inside a
// span carrying provider, model and usage attributes
type TracedLLM struct {
	llm    interfaces.ChatLLM
	tracer trace.Tracer
}

// NewTracedLLM wraps an LLM client with span instrumentation on the
// global tracer provider
func NewTracedLLM(llm interfaces.ChatLLM) *TracedLLM {
	return &TracedLLM{llm: llm, tracer: otel.Tracer(tracerName)}
}

// Complete calls the underlying backend inside an llm.complete span.
// Tracing never alters the reply or the error.
func (t *TracedLLM) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	ctx, span := t.tracer.Start(ctx, "llm.complete",
		trace.WithAttributes(
			attribute.String("llm.provider", t.llm.Name()),
			attribute.Int("llm.message_count", len(messages)),
		))
	defer span.End()

	completion, err := t.llm.Complete(ctx, messages, options...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("llm.model", completion.Model),
		attribute.Int64("llm.prompt_tokens", completion.PromptTokens),
		attribute.Int64("llm.completion_tokens", completion.CompletionTokens),
		attribute.Float64("llm.cost", completion.Cost),
		attribute.Bool("llm.cache_hit", completion.CacheHit),
	)
	return completion, nil
}

// Name returns the underlying provider name
func (t *TracedLLM) Name() string {
	return t.llm.Name()
}

var _ interfaces.ChatLLM = (*TracedLLM)(nil)
