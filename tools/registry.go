// Package tools provides tool management and registration.
//
// Information Hiding:
// - Tool storage and lookup implementation hidden
// - Tool lifecycle management hidden
// - Registration and discovery mechanisms abstracted

package tools

import (
	"fmt"
	"sort"
	"sync"

	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/size"
)

// Registry manages available tools with dynamic registration.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates a new empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a new tool to the registry.
// Returns error if a tool with the same name already exists.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Metadata().Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool '%s' already registered", name)
	}
	r.tools[name] = tool
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// Has checks if a tool exists in the registry.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.tools[name]
	return exists
}

// Names returns all registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns metadata for all registered tools in name order.
func (r *Registry) List() []ToolMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	metadata := make([]ToolMetadata, 0, len(names))
	for _, name := range names {
		metadata = append(metadata, r.tools[name].Metadata())
	}
	return metadata
}

// Definitions converts the registered tools to LLM tool definitions for
// native tool calling, in name order.
func (r *Registry) Definitions() []llm.ToolDefinition {
	metadata := r.List()

	defs := make([]llm.ToolDefinition, len(metadata))
	for i, meta := range metadata {
		params := make(map[string]interface{})
		required := []string{}
		for _, p := range meta.Parameters {
			params[p.Name] = map[string]interface{}{
				"type":        p.ParamType,
				"description": p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		defs[i] = llm.ToolDefinition{
			Name:        meta.Name,
			Description: meta.Description,
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": params,
				"required":   required,
			},
		}
	}
	return defs
}

// ForSizeGovernance creates a registry holding exactly the two size tools
// an agent-assisted generation run is given: count_size and validate_size.
// Returns error if registration fails.
func ForSizeGovernance(measurer *size.Measurer, unit size.Unit, maxSize int) (*Registry, error) {
	registry := NewRegistry()

	sizeTools := []Tool{
		NewCountSizeTool(measurer, unit),
		NewValidateSizeTool(measurer, unit, maxSize),
	}

	for _, t := range sizeTools {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("failed to register size tools: %w", err)
		}
	}

	return registry, nil
}
