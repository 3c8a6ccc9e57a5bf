package agentchat

import "errors"

var (
	// ErrNilParticipant is returned when a conversation is initiated
	// with a nil agent
	ErrNilParticipant = errors.New("conversation requires non-nil participants")

	// ErrSameParticipant is returned when both sides of a two-party
	// conversation are the same agent
	ErrSameParticipant = errors.New("conversation requires two distinct participants")

	// ErrTooFewParticipants is returned when a group chat is created
	// with fewer than two agents
	ErrTooFewParticipants = errors.New("group chat requires at least two participants")
)
