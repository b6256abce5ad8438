// Agent configuration types.
//
// Information Hiding:
// - Configuration validation logic hidden
// - Default values hidden

package agent

import (
	"github.com/richinex/procrustes/tools"
)

// DefaultMaxIterations bounds the tool loop when Config.MaxIterations is zero.
const DefaultMaxIterations = 6

// Config holds agent configuration.
type Config struct {
	// Name is a unique identifier for the agent (used in verbose output).
	Name string

	// SystemPrompt guides the agent's behavior.
	SystemPrompt string

	// Registry holds the tools available to this agent.
	Registry *tools.Registry

	// MaxIterations caps the tool loop. Zero means DefaultMaxIterations.
	MaxIterations int

	// ToolConfig controls per-tool execution (timeout, retries).
	ToolConfig tools.ToolConfig
}

// DefaultConfig returns a basic agent configuration.
func DefaultConfig() Config {
	return Config{
		Name:         "agent",
		SystemPrompt: "You are a helpful assistant.",
		Registry:     tools.NewRegistry(),
		ToolConfig:   tools.DefaultToolConfig(),
	}
}

// HasTools returns true if the agent has tools configured.
func (c *Config) HasTools() bool {
	return c.Registry != nil && len(c.Registry.Names()) > 0
}

// Iterations returns the iteration cap, applying the default if unset.
func (c *Config) Iterations() int {
	if c.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return c.MaxIterations
}
