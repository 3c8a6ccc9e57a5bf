package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionTracer emits one span per conversation session and one per
// turn. A nil SessionTracer is valid and records nothing.
type SessionTracer struct {
	tracer trace.Tracer
}

// NewSessionTracer creates a session tracer on the global provider
func NewSessionTracer() *SessionTracer {
	return &SessionTracer{tracer: otel.Tracer(tracerName)}
}

// NewSessionTracerWithProvider creates a session tracer on an explicit
// provider, useful in tests
func NewSessionTracerWithProvider(provider trace.TracerProvider) *SessionTracer {
	return &SessionTracer{tracer: provider.Tracer(tracerName)}
}

// StartSession opens the root span for one conversation. The returned
// end function records the termination reason and closes the span.
func (t *SessionTracer) StartSession(ctx context.Context, sessionID string) (context.Context, func(reason string)) {
	if t == nil || t.tracer == nil {
		return ctx, func(string) {}
	}
	ctx, span := t.tracer.Start(ctx, "agentchat.session",
		trace.WithAttributes(attribute.String("agentchat.session_id", sessionID)))
	return ctx, func(reason string) {
		span.SetAttributes(attribute.String("agentchat.termination_reason", reason))
		span.End()
	}
}

// StartTurn opens a span for one turn of the conversation. The end
// function records the decided action and any turn error.
func (t *SessionTracer) StartTurn(ctx context.Context, turn int, speaker string) (context.Context, func(action string, err error)) {
	if t == nil || t.tracer == nil {
		return ctx, func(string, error) {}
	}
	ctx, span := t.tracer.Start(ctx, "agentchat.turn",
		trace.WithAttributes(
			attribute.Int("agentchat.turn", turn),
			attribute.String("agentchat.speaker", speaker),
		))
	return ctx, func(action string, err error) {
		span.SetAttributes(attribute.String("agentchat.action", action))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
