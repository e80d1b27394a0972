package entity

import (
	"github.com/google/uuid"
)

// Persona is a named agent configuration driving prompt construction.
// Immutable once created except by full replacement.
type Persona struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`        // e.g. "Research Assistant"
	SourceType       string    `json:"source_type"` // "File" | "URL"
	Source           string    `json:"source"`
	ShortDescription string    `json:"short_description"`
	Tone             string    `json:"tone,omitempty"`
	ToolsEnabled     []string  `json:"tools_enabled"`
	MemoryEnabled    bool      `json:"memory_enabled"`
	KnowledgeSources []string  `json:"knowledge_sources"`
}

// HasTool reports whether the persona enables the named capability.
func (p *Persona) HasTool(name string) bool {
	for _, t := range p.ToolsEnabled {
		if t == name {
			return true
		}
	}
	return false
}
