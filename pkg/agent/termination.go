package agent

import (
	"strings"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// TerminationKeyword marks a message as a request to end the
// conversation when it closes the content
const TerminationKeyword = "TERMINATE"

// DefaultTerminationPredicate reports whether a message signals
// termination: its content, with trailing whitespace stripped, ends
// with the termination keyword.
func DefaultTerminationPredicate(message interfaces.Message) bool {
	return strings.HasSuffix(strings.TrimRight(message.Content, " \t\r\n"), TerminationKeyword)
}
