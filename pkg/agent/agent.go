package agent

import (
	"context"
	"fmt"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/logging"
	"github.com/Ingenimax/agentchat-go/pkg/usage"
)

// HumanInputMode controls when an agent solicits input from a human
// instead of replying automatically
type HumanInputMode string

const (
	// HumanInputAlways solicits human input on every turn
	HumanInputAlways HumanInputMode = "ALWAYS"
	// HumanInputNever never solicits human input
	HumanInputNever HumanInputMode = "NEVER"
	// HumanInputTerminate solicits human input only when the incoming
	// message is a termination signal
	HumanInputTerminate HumanInputMode = "TERMINATE"
)

// DefaultMaxConsecutiveAutoReply is the auto-reply budget applied when
// none is configured
const DefaultMaxConsecutiveAutoReply = 100

// Action is the reply policy's decision for one turn
type Action int

const (
	// ActionSolicitHuman asks the human input channel for the reply
	ActionSolicitHuman Action = iota
	// ActionInvokeBackend generates the reply with the model backend
	ActionInvokeBackend
	// ActionEmitDefault replies with the configured default auto reply
	ActionEmitDefault
	// ActionTerminate ends the conversation
	ActionTerminate
)

// String returns the action name for logs
func (a Action) String() string {
	switch a {
	case ActionSolicitHuman:
		return "solicit_human"
	case ActionInvokeBackend:
		return "invoke_backend"
	case ActionEmitDefault:
		return "emit_default"
	case ActionTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Agent represents a conversation participant. Agents with a model
// backend generate replies and accrue usage; agents without one act as
// proxies that relay human input or a fixed default reply.
type Agent struct {
	name                    string
	llm                     interfaces.ChatLLM
	humanInput              interfaces.HumanInput
	memory                  interfaces.Memory
	systemPrompt            string
	humanInputMode          HumanInputMode
	maxConsecutiveAutoReply int
	defaultAutoReply        string
	isTermination           func(interfaces.Message) bool
	counter                 *usage.Counter
	logger                  logging.Logger
}

// Option represents an option for configuring an agent
type Option func(*Agent)

// WithLLM sets the model backend for the agent
func WithLLM(llm interfaces.ChatLLM) Option {
	return func(a *Agent) {
		a.llm = llm
	}
}

// WithHumanInput sets the human input channel for the agent
func WithHumanInput(humanInput interfaces.HumanInput) Option {
	return func(a *Agent) {
		a.humanInput = humanInput
	}
}

// WithMemory sets the memory that mirrors the agent's conversations
func WithMemory(memory interfaces.Memory) Option {
	return func(a *Agent) {
		a.memory = memory
	}
}

// WithSystemPrompt sets the system prompt for the agent
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.systemPrompt = prompt
	}
}

// WithHumanInputMode sets when the agent solicits human input
func WithHumanInputMode(mode HumanInputMode) Option {
	return func(a *Agent) {
		a.humanInputMode = mode
	}
}

// WithMaxConsecutiveAutoReply caps how many times in a row the agent
// may reply without human involvement
func WithMaxConsecutiveAutoReply(max int) Option {
	return func(a *Agent) {
		a.maxConsecutiveAutoReply = max
	}
}

// WithDefaultAutoReply sets the fixed reply used when the agent has no
// model backend
func WithDefaultAutoReply(reply string) Option {
	return func(a *Agent) {
		a.defaultAutoReply = reply
	}
}

// WithTerminationPredicate overrides how the agent recognizes a
// termination message
func WithTerminationPredicate(predicate func(interfaces.Message) bool) Option {
	return func(a *Agent) {
		a.isTermination = predicate
	}
}

// WithLogger sets the logger for the agent
func WithLogger(logger logging.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New creates a new agent with the given options. Configuration errors
// are reported here, never mid-session.
func New(name string, options ...Option) (*Agent, error) {
	agent := &Agent{
		name:                    name,
		humanInputMode:          HumanInputNever,
		maxConsecutiveAutoReply: DefaultMaxConsecutiveAutoReply,
	}

	for _, option := range options {
		option(agent)
	}

	if agent.name == "" {
		return nil, ErrEmptyName
	}
	if agent.maxConsecutiveAutoReply < 0 {
		return nil, fmt.Errorf("agent %q: %w", agent.name, ErrNegativeAutoReplyBudget)
	}
	switch agent.humanInputMode {
	case HumanInputAlways, HumanInputTerminate:
		if agent.humanInput == nil {
			return nil, fmt.Errorf("agent %q: mode %s: %w", agent.name, agent.humanInputMode, ErrHumanInputRequired)
		}
	case HumanInputNever:
	default:
		return nil, fmt.Errorf("agent %q: %q: %w", agent.name, agent.humanInputMode, ErrInvalidHumanInputMode)
	}

	if agent.isTermination == nil {
		agent.isTermination = DefaultTerminationPredicate
	}
	if agent.logger == nil {
		agent.logger = logging.New()
	}
	if agent.llm != nil {
		agent.counter = usage.NewCounter()
	}

	return agent, nil
}

// Name returns the agent's name
func (a *Agent) Name() string {
	return a.name
}

// HasBackend reports whether a model backend is attached
func (a *Agent) HasBackend() bool {
	return a.llm != nil
}

// HumanInputChannel returns the wired human input channel, nil when
// none is configured
func (a *Agent) HumanInputChannel() interfaces.HumanInput {
	return a.humanInput
}

// MaxConsecutiveAutoReply returns the agent's auto-reply budget
func (a *Agent) MaxConsecutiveAutoReply() int {
	return a.maxConsecutiveAutoReply
}

// DefaultAutoReply returns the fixed reply, empty when unset
func (a *Agent) DefaultAutoReply() string {
	return a.defaultAutoReply
}

// IsTermination reports whether a message is a termination signal for
// this agent
func (a *Agent) IsTermination(message interfaces.Message) bool {
	return a.isTermination(message)
}

// Decide applies the reply policy for one turn. The first matching
// rule wins:
//
//  1. mode ALWAYS, or mode TERMINATE with a terminating incoming
//     message, solicits human input
//  2. an exhausted auto-reply budget terminates; the check precedes
//     backend invocation, so a budget of zero never reaches the backend
//  3. an attached model backend is invoked
//  4. a configured default auto reply is emitted
//  5. otherwise the conversation terminates
func (a *Agent) Decide(incoming interfaces.Message, consecutiveReplies int) Action {
	switch {
	case a.humanInputMode == HumanInputAlways,
		a.humanInputMode == HumanInputTerminate && a.IsTermination(incoming):
		return ActionSolicitHuman
	case consecutiveReplies >= a.maxConsecutiveAutoReply:
		return ActionTerminate
	case a.llm != nil:
		return ActionInvokeBackend
	case a.defaultAutoReply != "":
		return ActionEmitDefault
	default:
		return ActionTerminate
	}
}

// GenerateReply invokes the model backend over the history and records
// the completion's token and cost figures on the agent's counter
func (a *Agent) GenerateReply(ctx context.Context, history []interfaces.Message) (*interfaces.Completion, error) {
	if a.llm == nil {
		return nil, fmt.Errorf("agent %q: %w", a.name, ErrNoBackend)
	}

	var options []interfaces.CompleteOption
	if a.systemPrompt != "" {
		options = append(options, interfaces.WithSystemPrompt(a.systemPrompt))
	}

	completion, err := a.llm.Complete(ctx, history, options...)
	if err != nil {
		a.logger.Error(ctx, "Backend invocation failed", map[string]interface{}{
			"agent":    a.name,
			"provider": a.llm.Name(),
			"error":    err.Error(),
		})
		return nil, err
	}

	a.counter.Record(completion.Model, completion.Cost, completion.PromptTokens, completion.CompletionTokens, completion.CacheHit)
	a.logger.Debug(ctx, "Backend reply generated", map[string]interface{}{
		"agent":     a.name,
		"model":     completion.Model,
		"tokens":    completion.TotalTokens(),
		"cache_hit": completion.CacheHit,
	})
	return completion, nil
}

// RememberMessage mirrors a message into the agent's memory when one
// is configured
func (a *Agent) RememberMessage(ctx context.Context, message interfaces.Message) error {
	if a.memory == nil {
		return nil
	}
	return a.memory.AddMessage(ctx, message)
}

// UsageCounter exposes the agent's counter to the aggregator. Agents
// without a model backend return nil and are skipped when gathering.
func (a *Agent) UsageCounter() *usage.Counter {
	return a.counter
}

// ActualUsage returns the billable usage recorded for this agent.
// Agents without a model backend report an empty summary.
func (a *Agent) ActualUsage() usage.Summary {
	if a.counter == nil {
		return usage.Summary{Models: map[string]usage.ModelUsage{}}
	}
	return a.counter.ActualUsage()
}

// TotalUsage returns the usage including cached completions
func (a *Agent) TotalUsage() usage.Summary {
	if a.counter == nil {
		return usage.Summary{Models: map[string]usage.ModelUsage{}}
	}
	return a.counter.TotalUsage()
}

// ResetUsage clears the agent's counter
func (a *Agent) ResetUsage() {
	if a.counter != nil {
		a.counter.Reset()
	}
}
