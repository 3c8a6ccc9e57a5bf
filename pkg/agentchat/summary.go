package agentchat

import (
	"context"

	"github.com/Ingenimax/agentchat-go/pkg/agent"
	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// SummaryMethod selects how a finished conversation is condensed
type SummaryMethod string

const (
	// SummaryLastMessage uses the content of the final message verbatim
	SummaryLastMessage SummaryMethod = "last_message"
	// SummaryReflectionWithLLM asks a model backend to reflect over the
	// full conversation
	SummaryReflectionWithLLM SummaryMethod = "reflection_with_llm"
)

// DefaultReflectionPrompt is the reflection instruction used when no
// custom prompt is configured
const DefaultReflectionPrompt = "Summarize the takeaway from the conversation. Do not add any introductory phrases."

// summarize derives the conversation summary. Reflection runs on the
// first participant that has a backend; its usage lands on that agent's
// counter. Any reflection failure degrades to the last message rather
// than failing the conversation.
func (s *Session) summarize(ctx context.Context, history []interfaces.Message, participants []*agent.Agent) string {
	if s.summaryMethod != SummaryReflectionWithLLM {
		return lastMessageContent(history)
	}

	var owner *agent.Agent
	for _, p := range participants {
		if p.HasBackend() {
			owner = p
			break
		}
	}
	if owner == nil {
		return lastMessageContent(history)
	}

	prompt := s.summaryPrompt
	if prompt == "" {
		prompt = DefaultReflectionPrompt
	}

	messages := make([]interfaces.Message, len(history), len(history)+1)
	copy(messages, history)
	messages = append(messages, interfaces.Message{Role: interfaces.MessageRoleSystem, Content: prompt})

	completion, err := owner.GenerateReply(ctx, messages)
	if err != nil {
		s.logger.Warn(ctx, "Reflection summary failed, using last message", map[string]interface{}{
			"agent": owner.Name(),
			"error": err.Error(),
		})
		return lastMessageContent(history)
	}
	return completion.Content
}

func lastMessageContent(history []interfaces.Message) string {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Content
}
