package agentchat

import (
	"context"

	"github.com/Ingenimax/agentchat-go/pkg/agent"
)

// DefaultMaxRounds bounds a group chat when no round limit is set
const DefaultMaxRounds = 10

// GroupChat runs a round-robin conversation over two or more agents.
// Speakers rotate in registration order; the reply policy, counters and
// termination rules are the same as in a two-party session, and any
// agent deciding to terminate ends the chat for everyone.
type GroupChat struct {
	session   *Session
	agents    []*agent.Agent
	maxRounds int
}

// GroupChatOption represents an option for configuring a group chat
type GroupChatOption func(*GroupChat)

// WithMaxRounds caps how many full rotations the group may speak
func WithMaxRounds(rounds int) GroupChatOption {
	return func(g *GroupChat) {
		g.maxRounds = rounds
	}
}

// NewGroupChat creates a group chat over the given agents. The session
// carries the conversation-wide policy (summary method, transcript
// store, tracing, logging); a nil session uses defaults.
func NewGroupChat(session *Session, agents []*agent.Agent, options ...GroupChatOption) (*GroupChat, error) {
	if len(agents) < 2 {
		return nil, ErrTooFewParticipants
	}
	for _, a := range agents {
		if a == nil {
			return nil, ErrNilParticipant
		}
	}
	if session == nil {
		session = New()
	}

	g := &GroupChat{
		session:   session,
		agents:    agents,
		maxRounds: DefaultMaxRounds,
	}
	for _, option := range options {
		option(g)
	}
	if g.maxRounds < 1 {
		g.maxRounds = DefaultMaxRounds
	}
	return g, nil
}

// Run starts the group conversation with an opening message attributed
// to the first registered agent; the second agent speaks first.
func (g *GroupChat) Run(ctx context.Context, opening string) (*Result, error) {
	g.session.logger.Info(ctx, "Group chat started", map[string]interface{}{
		"participants": len(g.agents),
		"max_rounds":   g.maxRounds,
	})
	return g.session.runLoop(ctx, g.agents, opening, g.maxRounds*len(g.agents))
}
