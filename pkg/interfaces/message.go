package interfaces

// MessageRole represents the role of a message sender
type MessageRole string

const (
	// MessageRoleUser represents a user message
	MessageRoleUser MessageRole = "user"
	// MessageRoleAssistant represents an assistant message
	MessageRoleAssistant MessageRole = "assistant"
	// MessageRoleSystem represents a system message
	MessageRoleSystem MessageRole = "system"
)

// Message represents a single contribution to a conversation.
// Messages are treated as immutable once appended to a history;
// their position in the history is the only ordering signal.
type Message struct {
	// Sender is the name of the agent that produced the message
	Sender string `json:"sender"`

	// Role is the role of the message sender
	Role MessageRole `json:"role"`

	// Content is the content of the message
	Content string `json:"content"`

	// Metadata contains additional information about the message
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewUserMessage builds a user-role message from an agent
func NewUserMessage(sender, content string) Message {
	return Message{Sender: sender, Role: MessageRoleUser, Content: content}
}

// NewAssistantMessage builds an assistant-role message from an agent
func NewAssistantMessage(sender, content string) Message {
	return Message{Sender: sender, Role: MessageRoleAssistant, Content: content}
}
