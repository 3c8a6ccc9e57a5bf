package agentconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingName is returned when a definition has no name
	ErrMissingName = errors.New("agent definition requires a name")

	// ErrDuplicateAgent is returned when two definitions share a name
	ErrDuplicateAgent = errors.New("duplicate agent definition")

	// ErrUnknownHumanInputMode is returned for an unrecognized mode
	ErrUnknownHumanInputMode = errors.New("unknown human input mode")
)

// LoadFile parses and validates an agent definitions file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates agent definitions from YAML bytes
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	seen := make(map[string]bool, len(file.Agents))
	for _, def := range file.Agents {
		if err := Validate(def); err != nil {
			return nil, err
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, def.Name)
		}
		seen[def.Name] = true
	}
	return &file, nil
}

// Validate checks a single definition against the same rules agent
// construction enforces, so bad files fail at load time
func Validate(def AgentDefinition) error {
	if def.Name == "" {
		return ErrMissingName
	}
	switch def.HumanInputMode {
	case "", "ALWAYS", "NEVER", "TERMINATE":
	default:
		return fmt.Errorf("agent %q: %w: %s", def.Name, ErrUnknownHumanInputMode, def.HumanInputMode)
	}
	if def.MaxConsecutiveAutoReply != nil && *def.MaxConsecutiveAutoReply < 0 {
		return fmt.Errorf("agent %q: max_consecutive_auto_reply must be non-negative", def.Name)
	}
	return nil
}
