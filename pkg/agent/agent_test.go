package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

type mockLLM struct {
	name       string
	completion *interfaces.Completion
	err        error
	calls      int
	gotHistory []interfaces.Message
	gotOptions *interfaces.CompleteOptions
}

func (m *mockLLM) Complete(ctx context.Context, messages []interfaces.Message, options ...interfaces.CompleteOption) (*interfaces.Completion, error) {
	m.calls++
	m.gotHistory = messages
	m.gotOptions = interfaces.ApplyCompleteOptions(options...)
	if m.err != nil {
		return nil, m.err
	}
	return m.completion, nil
}

func (m *mockLLM) Name() string { return m.name }

type mockHumanInput struct {
	reply string
	err   error
}

func (m *mockHumanInput) Prompt(ctx context.Context, history []interfaces.Message) (string, error) {
	return m.reply, m.err
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		agent   string
		options []Option
		wantErr error
	}{
		{
			name:    "empty name",
			agent:   "",
			wantErr: ErrEmptyName,
		},
		{
			name:    "negative auto reply budget",
			agent:   "proxy",
			options: []Option{WithMaxConsecutiveAutoReply(-1)},
			wantErr: ErrNegativeAutoReplyBudget,
		},
		{
			name:    "ALWAYS without human input channel",
			agent:   "proxy",
			options: []Option{WithHumanInputMode(HumanInputAlways)},
			wantErr: ErrHumanInputRequired,
		},
		{
			name:    "TERMINATE without human input channel",
			agent:   "proxy",
			options: []Option{WithHumanInputMode(HumanInputTerminate)},
			wantErr: ErrHumanInputRequired,
		},
		{
			name:    "unknown human input mode",
			agent:   "proxy",
			options: []Option{WithHumanInputMode("SOMETIMES")},
			wantErr: ErrInvalidHumanInputMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.agent, tt.options...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestNewDefaults(t *testing.T) {
	a, err := New("assistant")
	require.NoError(t, err)

	assert.Equal(t, "assistant", a.Name())
	assert.Equal(t, DefaultMaxConsecutiveAutoReply, a.MaxConsecutiveAutoReply())
	assert.False(t, a.HasBackend())
	assert.Nil(t, a.UsageCounter())
	assert.Empty(t, a.DefaultAutoReply())
}

func TestNewWithBackendCreatesCounter(t *testing.T) {
	a, err := New("assistant", WithLLM(&mockLLM{name: "openai"}))
	require.NoError(t, err)

	assert.True(t, a.HasBackend())
	require.NotNil(t, a.UsageCounter())
	assert.Empty(t, a.ActualUsage().Models)
}

func TestNewZeroBudgetIsValid(t *testing.T) {
	a, err := New("proxy", WithMaxConsecutiveAutoReply(0))
	require.NoError(t, err)
	assert.Equal(t, 0, a.MaxConsecutiveAutoReply())
}

func TestDecide(t *testing.T) {
	humanInput := &mockHumanInput{}
	terminating := interfaces.Message{Sender: "assistant", Role: interfaces.MessageRoleAssistant, Content: "All done. TERMINATE"}
	ordinary := interfaces.Message{Sender: "assistant", Role: interfaces.MessageRoleAssistant, Content: "What is 2+2?"}

	tests := []struct {
		name               string
		options            []Option
		incoming           interfaces.Message
		consecutiveReplies int
		expected           Action
	}{
		{
			name:     "ALWAYS solicits a human even with a backend attached",
			options:  []Option{WithHumanInputMode(HumanInputAlways), WithHumanInput(humanInput), WithLLM(&mockLLM{})},
			incoming: ordinary,
			expected: ActionSolicitHuman,
		},
		{
			name:               "ALWAYS solicits a human even past the budget",
			options:            []Option{WithHumanInputMode(HumanInputAlways), WithHumanInput(humanInput), WithMaxConsecutiveAutoReply(0)},
			incoming:           ordinary,
			consecutiveReplies: 5,
			expected:           ActionSolicitHuman,
		},
		{
			name:     "TERMINATE solicits a human on a terminating message",
			options:  []Option{WithHumanInputMode(HumanInputTerminate), WithHumanInput(humanInput), WithLLM(&mockLLM{})},
			incoming: terminating,
			expected: ActionSolicitHuman,
		},
		{
			name:     "TERMINATE falls through on an ordinary message",
			options:  []Option{WithHumanInputMode(HumanInputTerminate), WithHumanInput(humanInput), WithLLM(&mockLLM{})},
			incoming: ordinary,
			expected: ActionInvokeBackend,
		},
		{
			name:               "exhausted budget terminates before the backend",
			options:            []Option{WithLLM(&mockLLM{}), WithMaxConsecutiveAutoReply(3)},
			incoming:           ordinary,
			consecutiveReplies: 3,
			expected:           ActionTerminate,
		},
		{
			name:     "zero budget never reaches the backend",
			options:  []Option{WithLLM(&mockLLM{}), WithMaxConsecutiveAutoReply(0)},
			incoming: ordinary,
			expected: ActionTerminate,
		},
		{
			name:               "backend is invoked under the budget",
			options:            []Option{WithLLM(&mockLLM{}), WithMaxConsecutiveAutoReply(3)},
			incoming:           ordinary,
			consecutiveReplies: 2,
			expected:           ActionInvokeBackend,
		},
		{
			name:     "default auto reply without a backend",
			options:  []Option{WithDefaultAutoReply("Please continue.")},
			incoming: ordinary,
			expected: ActionEmitDefault,
		},
		{
			name:     "nothing configured terminates",
			options:  nil,
			incoming: ordinary,
			expected: ActionTerminate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New("agent", tt.options...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a.Decide(tt.incoming, tt.consecutiveReplies))
		})
	}
}

func TestGenerateReplyRecordsUsage(t *testing.T) {
	llm := &mockLLM{
		name: "openai",
		completion: &interfaces.Completion{
			Content:          "4",
			Model:            "gpt-4o-mini",
			PromptTokens:     100,
			CompletionTokens: 50,
			Cost:             0.1,
		},
	}
	a, err := New("assistant", WithLLM(llm))
	require.NoError(t, err)

	history := []interfaces.Message{interfaces.NewUserMessage("proxy", "What is 2+2?")}
	completion, err := a.GenerateReply(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "4", completion.Content)
	assert.Equal(t, history, llm.gotHistory)

	actual := a.ActualUsage()
	require.Contains(t, actual.Models, "gpt-4o-mini")
	assert.InDelta(t, 0.1, actual.TotalCost, 1e-9)
	assert.Equal(t, int64(100), actual.Models["gpt-4o-mini"].PromptTokens)
	assert.Equal(t, int64(50), actual.Models["gpt-4o-mini"].CompletionTokens)
	assert.Equal(t, int64(150), actual.Models["gpt-4o-mini"].TotalTokens)
	assert.True(t, actual.Equal(a.TotalUsage()))
}

func TestGenerateReplyCacheHitSkipsActual(t *testing.T) {
	llm := &mockLLM{
		name: "openai",
		completion: &interfaces.Completion{
			Content:          "4",
			Model:            "gpt-4o-mini",
			PromptTokens:     100,
			CompletionTokens: 50,
			Cost:             0.1,
			CacheHit:         true,
		},
	}
	a, err := New("assistant", WithLLM(llm))
	require.NoError(t, err)

	_, err = a.GenerateReply(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, a.ActualUsage().Models)
	assert.Contains(t, a.TotalUsage().Models, "gpt-4o-mini")
}

func TestGenerateReplyPassesSystemPrompt(t *testing.T) {
	llm := &mockLLM{name: "openai", completion: &interfaces.Completion{Content: "ok", Model: "gpt-4o-mini"}}
	a, err := New("assistant", WithLLM(llm), WithSystemPrompt("You are a math tutor."))
	require.NoError(t, err)

	_, err = a.GenerateReply(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, llm.gotOptions)
	assert.Equal(t, "You are a math tutor.", llm.gotOptions.SystemPrompt)
}

func TestGenerateReplyBackendError(t *testing.T) {
	backendErr := errors.New("rate limited")
	llm := &mockLLM{name: "openai", err: backendErr}
	a, err := New("assistant", WithLLM(llm))
	require.NoError(t, err)

	_, err = a.GenerateReply(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, backendErr)
	assert.Empty(t, a.TotalUsage().Models)
}

func TestGenerateReplyWithoutBackend(t *testing.T) {
	a, err := New("proxy")
	require.NoError(t, err)

	_, err = a.GenerateReply(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestClientlessUsageAccessors(t *testing.T) {
	a, err := New("proxy", WithDefaultAutoReply("Please continue."))
	require.NoError(t, err)

	assert.Nil(t, a.UsageCounter())
	assert.Zero(t, a.ActualUsage().TotalCost)
	assert.Empty(t, a.ActualUsage().Models)
	assert.Empty(t, a.TotalUsage().Models)
	a.ResetUsage() // no-op, must not panic
}

func TestResetUsage(t *testing.T) {
	llm := &mockLLM{name: "openai", completion: &interfaces.Completion{Content: "ok", Model: "gpt-4o-mini", Cost: 0.1}}
	a, err := New("assistant", WithLLM(llm))
	require.NoError(t, err)

	_, err = a.GenerateReply(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, a.TotalUsage().Models)

	a.ResetUsage()
	assert.Empty(t, a.TotalUsage().Models)
	assert.Empty(t, a.ActualUsage().Models)
}

func TestCustomTerminationPredicate(t *testing.T) {
	a, err := New("assistant", WithTerminationPredicate(func(m interfaces.Message) bool {
		return m.Content == "goodbye"
	}))
	require.NoError(t, err)

	assert.True(t, a.IsTermination(interfaces.Message{Content: "goodbye"}))
	assert.False(t, a.IsTermination(interfaces.Message{Content: "TERMINATE"}))
}
