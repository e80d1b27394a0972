package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolSchema declares a function tool offered to the model.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON schema for the arguments
}

// ToolCall is the model asking for an external capability before answering.
type ToolCall struct {
	Name      string
	Arguments map[string]interface{}
}

// Completion is a tagged variant: either a direct answer (ToolCall == nil)
// or a tool invocation request. Checked via IsToolCall, never by probing
// provider-specific fields.
type Completion struct {
	Text     string
	ToolCall *ToolCall
}

func (c *Completion) IsToolCall() bool {
	return c != nil && c.ToolCall != nil
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string       // Override default model
	Tools       []ToolSchema // Empty means the model cannot request tools
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTools(tools []ToolSchema) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// Provider defines the contract for any chat completion backend
type Provider interface {
	// Chat sends a chat history to the model and returns either a direct
	// answer or a tool call request.
	Chat(ctx context.Context, history []Message, options ...Option) (*Completion, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
