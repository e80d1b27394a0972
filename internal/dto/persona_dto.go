package dto

import (
	"github.com/google/uuid"
)

type CreatePersonaRequest struct {
	Name             string   `json:"name" validate:"required"`
	Type             string   `json:"type" validate:"required"`
	SourceType       string   `json:"source_type" validate:"required"`
	Source           string   `json:"source" validate:"required"`
	ShortDescription string   `json:"short_description"`
	Tone             string   `json:"tone"`
	ToolsEnabled     []string `json:"tools_enabled"`
	MemoryEnabled    bool     `json:"memory_enabled"`
	KnowledgeSources []string `json:"knowledge_sources"`
}

type CreatePersonaResponse struct {
	Id               uuid.UUID `json:"id"`
	ShortDescription string    `json:"short_description"`
}

type ShowPersonaResponse struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	SourceType       string    `json:"source_type"`
	Source           string    `json:"source"`
	ShortDescription string    `json:"short_description"`
	Tone             string    `json:"tone"`
	ToolsEnabled     []string  `json:"tools_enabled"`
	MemoryEnabled    bool      `json:"memory_enabled"`
	KnowledgeSources []string  `json:"knowledge_sources"`
}
