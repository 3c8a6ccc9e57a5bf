package agentchat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/agentchat-go/pkg/agent"
	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

func TestNewGroupChatValidation(t *testing.T) {
	a, err := agent.New("a", agent.WithDefaultAutoReply("x"))
	require.NoError(t, err)

	_, err = NewGroupChat(nil, []*agent.Agent{a})
	assert.ErrorIs(t, err, ErrTooFewParticipants)

	_, err = NewGroupChat(nil, []*agent.Agent{a, nil})
	assert.ErrorIs(t, err, ErrNilParticipant)
}

func TestGroupChatRoundRobin(t *testing.T) {
	names := []string{"planner", "coder", "critic"}
	agents := make([]*agent.Agent, 0, len(names))
	for _, name := range names {
		a, err := agent.New(name, agent.WithDefaultAutoReply(name+" reply"))
		require.NoError(t, err)
		agents = append(agents, a)
	}

	group, err := NewGroupChat(nil, agents, WithMaxRounds(2))
	require.NoError(t, err)

	result, err := group.Run(context.Background(), "kickoff")
	require.NoError(t, err)

	assert.Equal(t, ReasonTurnLimitExceeded, result.Reason)
	// opening plus two full rotations
	require.Len(t, result.History, 7)
	assert.Equal(t, "planner", result.History[0].Sender)
	expectedOrder := []string{"coder", "critic", "planner", "coder", "critic", "planner"}
	for i, sender := range expectedOrder {
		assert.Equal(t, sender, result.History[i+1].Sender)
	}
}

func TestGroupChatPolicyTerminateEndsEveryone(t *testing.T) {
	talker, err := agent.New("talker", agent.WithDefaultAutoReply("more"))
	require.NoError(t, err)
	silent, err := agent.New("silent", agent.WithMaxConsecutiveAutoReply(0))
	require.NoError(t, err)
	extra, err := agent.New("extra", agent.WithDefaultAutoReply("never speaks"))
	require.NoError(t, err)

	group, err := NewGroupChat(nil, []*agent.Agent{talker, silent, extra})
	require.NoError(t, err)

	result, err := group.Run(context.Background(), "kickoff")
	require.NoError(t, err)

	assert.Equal(t, ReasonPolicyTerminate, result.Reason)
	require.Len(t, result.History, 1)
	assert.Equal(t, "talker", result.History[0].Sender)
}

func TestGroupChatBackendSpeakers(t *testing.T) {
	llm := &scriptedLLM{name: "openai", replies: []*interfaces.Completion{
		completion("draft ready", "gpt-4o-mini"),
	}}

	lead, err := agent.New("lead", agent.WithDefaultAutoReply("continue"), agent.WithMaxConsecutiveAutoReply(1))
	require.NoError(t, err)
	writer, err := agent.New("writer", agent.WithLLM(llm), agent.WithMaxConsecutiveAutoReply(2))
	require.NoError(t, err)

	group, err := NewGroupChat(New(), []*agent.Agent{lead, writer}, WithMaxRounds(5))
	require.NoError(t, err)

	result, err := group.Run(context.Background(), "write a draft")
	require.NoError(t, err)

	assert.Equal(t, ReasonPolicyTerminate, result.Reason)
	assert.Equal(t, 2, llm.calls)
	assert.Contains(t, writer.TotalUsage().Models, "gpt-4o-mini")
}
