// Package agentconfig loads declarative agent definitions from YAML
// files and merges overlay files over base files.
package agentconfig

// AgentDefinition declares one agent in a definitions file. Fields map
// onto the corresponding agent construction options; zero values mean
// "not set" and inherit the library defaults.
type AgentDefinition struct {
	Name                    string `yaml:"name"`
	Description             string `yaml:"description,omitempty"`
	Provider                string `yaml:"provider,omitempty"`
	Model                   string `yaml:"model,omitempty"`
	SystemPrompt            string `yaml:"system_prompt,omitempty"`
	HumanInputMode          string `yaml:"human_input_mode,omitempty"`
	MaxConsecutiveAutoReply *int   `yaml:"max_consecutive_auto_reply,omitempty"`
	DefaultAutoReply        string `yaml:"default_auto_reply,omitempty"`
}

// File is a parsed agent definitions file
type File struct {
	Agents []AgentDefinition `yaml:"agents"`
}

// Lookup finds a definition by agent name
func (f *File) Lookup(name string) (AgentDefinition, bool) {
	for _, def := range f.Agents {
		if def.Name == name {
			return def, true
		}
	}
	return AgentDefinition{}, false
}
