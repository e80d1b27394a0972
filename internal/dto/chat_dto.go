package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	PersonaId uuid.UUID
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	ToolUsed string `json:"tool_used,omitempty"`
}

type HistoryTurnResponse struct {
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}
