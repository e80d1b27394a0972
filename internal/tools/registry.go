package tools

import (
	"context"
	"fmt"
	"sync"

	"agentclone-be/internal/apperror"
	"agentclone-be/pkg/llm"
)

// Registry is a closed map of tool name to implementation. Only names
// registered here may ever be executed, whatever the model asks for.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Has reports whether name is a registered capability.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names lists the registered capability set.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Schemas returns the schemas for the named tools, skipping names that are
// not registered. An empty result means the model is offered no tools.
func (r *Registry) Schemas(names []string) []llm.ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var schemas []llm.ToolSchema
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			schemas = append(schemas, Schema(t))
		}
	}
	return schemas
}

// Execute runs a tool by name with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", apperror.ErrUnknownTool, name)
	}
	return tool.Execute(ctx, args)
}
