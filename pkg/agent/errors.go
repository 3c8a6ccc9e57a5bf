package agent

import "errors"

// Configuration errors reported at construction time
var (
	// ErrEmptyName is returned when an agent is created without a name
	ErrEmptyName = errors.New("agent name is required")

	// ErrNegativeAutoReplyBudget is returned when max consecutive auto
	// reply is negative
	ErrNegativeAutoReplyBudget = errors.New("max consecutive auto reply must be non-negative")

	// ErrHumanInputRequired is returned when the human input mode needs
	// a human input channel but none is wired
	ErrHumanInputRequired = errors.New("human input mode requires a human input channel")

	// ErrInvalidHumanInputMode is returned for an unknown input mode
	ErrInvalidHumanInputMode = errors.New("invalid human input mode")

	// ErrNoBackend is returned when a reply is requested from an agent
	// that has no model backend attached
	ErrNoBackend = errors.New("agent has no model backend")
)

// IsConfigurationError returns true if the error is a construction-time
// configuration error
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNegativeAutoReplyBudget) ||
		errors.Is(err, ErrHumanInputRequired) ||
		errors.Is(err, ErrInvalidHumanInputMode)
}
