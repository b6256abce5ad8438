// Package llm provides LLM provider abstractions.
//
// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error handling

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM providers.
// Implementations hide provider-specific details while exposing
// a consistent interface for completions.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Complete sends a completion request.
	Complete(ctx context.Context, messages []Message) (Completion, error)

	// CompleteWithTools sends a completion request with tool definitions.
	// The model may respond with tool calls in Completion.ToolCalls.
	CompleteWithTools(ctx context.Context, messages []Message, tools []ToolDefinition) (Completion, error)
}
