// Package agentchat drives automated conversations between agents. A
// session owns the turn loop: it applies each agent's reply policy,
// appends produced messages to an append-only history, tracks
// consecutive auto replies, and derives a summary when the
// conversation stops.
package agentchat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ingenimax/agentchat-go/pkg/agent"
	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/logging"
	"github.com/Ingenimax/agentchat-go/pkg/tracing"
	"github.com/Ingenimax/agentchat-go/pkg/usage"
)

// TerminationReason states why a conversation stopped
type TerminationReason string

const (
	// ReasonPolicyTerminate means an agent's reply policy decided to stop,
	// including auto-reply budget exhaustion
	ReasonPolicyTerminate TerminationReason = "policy_terminate"
	// ReasonTurnLimitExceeded means the session's safety ceiling was hit
	ReasonTurnLimitExceeded TerminationReason = "turn_limit_exceeded"
	// ReasonHumanTerminate means a human ended the conversation
	ReasonHumanTerminate TerminationReason = "human_terminate"
	// ReasonBackendError means a model backend call failed mid-session
	ReasonBackendError TerminationReason = "backend_error"
)

// HumanExitKeyword is the human reply that ends a conversation, in
// addition to an empty reply
const HumanExitKeyword = "exit"

// Result is the immutable outcome of a finished conversation
type Result struct {
	// SessionID identifies the conversation
	SessionID string `json:"session_id"`

	// History is a snapshot copy of the full message sequence
	History []interfaces.Message `json:"history"`

	// Summary is the condensed takeaway per the configured method
	Summary string `json:"summary"`

	// Reason states why the conversation stopped
	Reason TerminationReason `json:"termination_reason"`
}

// Session coordinates conversations between agents. One Session value
// may run any number of conversations; per-conversation state lives for
// the duration of a single Initiate call.
type Session struct {
	logger          logging.Logger
	summaryMethod   SummaryMethod
	summaryPrompt   string
	transcriptStore interfaces.TranscriptStore
	tracer          *tracing.SessionTracer
}

// Option represents an option for configuring a session
type Option func(*Session)

// WithLogger sets the logger for the session
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSummaryMethod sets how the conversation summary is derived
func WithSummaryMethod(method SummaryMethod) Option {
	return func(s *Session) {
		s.summaryMethod = method
	}
}

// WithSummaryPrompt overrides the reflection prompt used by the
// reflection summary method
func WithSummaryPrompt(prompt string) Option {
	return func(s *Session) {
		s.summaryPrompt = prompt
	}
}

// WithTranscriptStore persists each finished conversation to a store
func WithTranscriptStore(store interfaces.TranscriptStore) Option {
	return func(s *Session) {
		s.transcriptStore = store
	}
}

// WithTracer emits spans for sessions and turns
func WithTracer(tracer *tracing.SessionTracer) Option {
	return func(s *Session) {
		s.tracer = tracer
	}
}

// New creates a session with the given options
func New(options ...Option) *Session {
	s := &Session{
		summaryMethod: SummaryLastMessage,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = logging.New()
	}
	return s
}

// Initiate runs a conversation between two agents. The opening message
// is appended attributed to the initiator, then the responder speaks
// first and turns alternate until an agent's policy stops, a human
// ends it, a backend fails, or the turn ceiling is reached. A cancelled
// context aborts with the context error and no Result.
func (s *Session) Initiate(ctx context.Context, initiator, responder *agent.Agent, opening string) (*Result, error) {
	if initiator == nil || responder == nil {
		return nil, ErrNilParticipant
	}
	if initiator == responder {
		return nil, ErrSameParticipant
	}

	maxBudget := initiator.MaxConsecutiveAutoReply()
	if responder.MaxConsecutiveAutoReply() > maxBudget {
		maxBudget = responder.MaxConsecutiveAutoReply()
	}
	// ceiling covers both budgets plus the surrounding human turns, so
	// a misconfigured pair still terminates
	turnLimit := 2*(maxBudget+1) + 2

	s.logger.Info(ctx, "Conversation started", map[string]interface{}{
		"initiator": initiator.Name(),
		"responder": responder.Name(),
	})

	return s.runLoop(ctx, []*agent.Agent{initiator, responder}, opening, turnLimit)
}

// runLoop drives the rotation shared by two-party and group chats.
// participants[0] owns the opening message and participants[1] speaks
// first; speakers then rotate in order.
func (s *Session) runLoop(ctx context.Context, participants []*agent.Agent, opening string, turnLimit int) (*Result, error) {
	sessionID := uuid.New().String()
	ctx, endSession := s.tracer.StartSession(ctx, sessionID)

	history := make([]interfaces.Message, 0, 8)
	counters := make([]int, len(participants))
	s.append(ctx, &history, interfaces.NewUserMessage(participants[0].Name(), opening), participants)

	active := 1
	var reason TerminationReason

	for turn := 0; ; turn++ {
		if err := ctx.Err(); err != nil {
			endSession("cancelled")
			return nil, err
		}
		if turn >= turnLimit {
			reason = ReasonTurnLimitExceeded
			break
		}

		speaker := participants[active]
		latest := history[len(history)-1]
		turnCtx, endTurn := s.tracer.StartTurn(ctx, turn, speaker.Name())

		action := speaker.Decide(latest, counters[active])
		s.logger.Debug(turnCtx, "Turn decided", map[string]interface{}{
			"session_id": sessionID,
			"turn":       turn,
			"speaker":    speaker.Name(),
			"action":     action.String(),
		})

		var turnErr error
		switch action {
		case agent.ActionSolicitHuman:
			reply, err := speaker.HumanInputChannel().Prompt(turnCtx, history)
			if err != nil {
				endTurn(action.String(), err)
				endSession("human_input_error")
				return nil, fmt.Errorf("human input for agent %q: %w", speaker.Name(), err)
			}
			if reply == "" || reply == HumanExitKeyword {
				reason = ReasonHumanTerminate
			} else {
				s.append(turnCtx, &history, interfaces.NewUserMessage(speaker.Name(), reply), participants)
				counters[active] = 0
			}
		case agent.ActionInvokeBackend:
			completion, err := speaker.GenerateReply(turnCtx, history)
			if err != nil {
				turnErr = err
				reason = ReasonBackendError
			} else {
				s.append(turnCtx, &history, interfaces.NewAssistantMessage(speaker.Name(), completion.Content), participants)
				if completion.CacheHit {
					counters[active] = 0
				} else {
					counters[active]++
				}
			}
		case agent.ActionEmitDefault:
			s.append(turnCtx, &history, interfaces.NewUserMessage(speaker.Name(), speaker.DefaultAutoReply()), participants)
			counters[active]++
		default:
			reason = ReasonPolicyTerminate
		}

		endTurn(action.String(), turnErr)
		if reason != "" {
			break
		}
		active = (active + 1) % len(participants)
	}

	summary := s.deriveSummary(ctx, history, reason, participants)
	result := &Result{
		SessionID: sessionID,
		History:   snapshot(history),
		Summary:   summary,
		Reason:    reason,
	}

	s.logger.Info(ctx, "Conversation finished", map[string]interface{}{
		"session_id": sessionID,
		"reason":     string(reason),
		"messages":   len(result.History),
	})
	s.persistTranscript(ctx, result, participants)
	endSession(string(reason))
	return result, nil
}

// deriveSummary applies the configured summary method. A session that
// stopped on a backend error never re-invokes the backend for
// reflection.
func (s *Session) deriveSummary(ctx context.Context, history []interfaces.Message, reason TerminationReason, participants []*agent.Agent) string {
	if reason == ReasonBackendError {
		return lastMessageContent(history)
	}
	return s.summarize(ctx, history, participants)
}

// append adds a message to the history and mirrors it into every
// participant's memory. Memory failures are logged, never fatal.
func (s *Session) append(ctx context.Context, history *[]interfaces.Message, message interfaces.Message, participants []*agent.Agent) {
	*history = append(*history, message)
	for _, p := range participants {
		if err := p.RememberMessage(ctx, message); err != nil {
			s.logger.Warn(ctx, "Failed to mirror message to memory", map[string]interface{}{
				"agent": p.Name(),
				"error": err.Error(),
			})
		}
	}
}

type transcriptRecord struct {
	Result
	Usage usage.Report `json:"usage"`
}

// persistTranscript saves the finished conversation when a store is
// configured. Persistence failures are logged, never fatal.
func (s *Session) persistTranscript(ctx context.Context, result *Result, participants []*agent.Agent) {
	if s.transcriptStore == nil {
		return
	}

	providers := make([]usage.Provider, len(participants))
	for i, p := range participants {
		providers[i] = p
	}
	record := transcriptRecord{Result: *result, Usage: usage.Gather(providers...)}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		s.logger.Warn(ctx, "Failed to encode transcript", map[string]interface{}{"error": err.Error()})
		return
	}
	location, err := s.transcriptStore.Save(ctx, result.SessionID, data)
	if err != nil {
		s.logger.Warn(ctx, "Failed to save transcript", map[string]interface{}{
			"session_id": result.SessionID,
			"error":      err.Error(),
		})
		return
	}
	s.logger.Debug(ctx, "Transcript saved", map[string]interface{}{
		"session_id": result.SessionID,
		"location":   location,
	})
}

func snapshot(history []interfaces.Message) []interfaces.Message {
	copied := make([]interfaces.Message, len(history))
	copy(copied, history)
	return copied
}
