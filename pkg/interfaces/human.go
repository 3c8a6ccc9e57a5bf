package interfaces

import "context"

// HumanInput represents a channel for soliciting input from a human
// participant. Implementations block until input is available or the
// context is done.
type HumanInput interface {
	// Prompt asks the human for the next message given the conversation
	// so far. An empty reply (or the literal "exit") is the terminate
	// signal.
	Prompt(ctx context.Context, history []Message) (string, error)
}
