package agentconfig

// Merge overlays one definition over a base. Overlay values win; base
// values fill whatever the overlay leaves unset.
func Merge(overlay, base AgentDefinition) AgentDefinition {
	result := overlay

	mergeString := func(overlayVal, baseVal string) string {
		if overlayVal != "" {
			return overlayVal
		}
		return baseVal
	}

	result.Name = mergeString(overlay.Name, base.Name)
	result.Description = mergeString(overlay.Description, base.Description)
	result.Provider = mergeString(overlay.Provider, base.Provider)
	result.Model = mergeString(overlay.Model, base.Model)
	result.SystemPrompt = mergeString(overlay.SystemPrompt, base.SystemPrompt)
	result.HumanInputMode = mergeString(overlay.HumanInputMode, base.HumanInputMode)
	result.DefaultAutoReply = mergeString(overlay.DefaultAutoReply, base.DefaultAutoReply)

	if result.MaxConsecutiveAutoReply == nil && base.MaxConsecutiveAutoReply != nil {
		result.MaxConsecutiveAutoReply = base.MaxConsecutiveAutoReply
	}

	return result
}

// MergeFiles overlays a definitions file over a base file, matching
// definitions by agent name. Agents present only in one file are kept
// as-is; base order is preserved, overlay-only agents append.
func MergeFiles(overlay, base *File) *File {
	if overlay == nil {
		return base
	}
	if base == nil {
		return overlay
	}

	merged := &File{Agents: make([]AgentDefinition, 0, len(base.Agents)+len(overlay.Agents))}
	used := make(map[string]bool, len(overlay.Agents))

	for _, baseDef := range base.Agents {
		if overlayDef, ok := overlay.Lookup(baseDef.Name); ok {
			merged.Agents = append(merged.Agents, Merge(overlayDef, baseDef))
			used[baseDef.Name] = true
			continue
		}
		merged.Agents = append(merged.Agents, baseDef)
	}
	for _, overlayDef := range overlay.Agents {
		if !used[overlayDef.Name] {
			merged.Agents = append(merged.Agents, overlayDef)
		}
	}
	return merged
}
