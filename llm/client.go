// Client - prompt-level wrapper around providers.
//
// Information Hiding:
// - Response normalization (JSON content envelopes)
// - Call option attachment and rebinding

package llm

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/richinex/procrustes/internal/jsonutil"
)

// CallOptions carries opaque per-run labels attached to generation calls.
// Callers that correlate results across runs (caching, tracing) read them
// back via Client.Options; providers never see them.
type CallOptions struct {
	RunID  string
	Labels map[string]string
}

// NewCallOptions creates call options with a fresh run ID.
func NewCallOptions() CallOptions {
	return CallOptions{RunID: uuid.NewString()}
}

// Client wraps a Provider with a prompt-in, text-out interface.
type Client struct {
	provider Provider
	opts     CallOptions
}

// NewClient creates a new LLM client from a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// WithOptions returns a new client carrying the given call options.
// The receiver is not modified.
func (c *Client) WithOptions(opts CallOptions) *Client {
	return &Client{provider: c.provider, opts: opts}
}

// Options returns the call options attached to this client.
func (c *Client) Options() CallOptions {
	return c.opts
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Generate sends a single prompt and returns the completion normalized to
// plain text. Provider failures are wrapped in a GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := c.provider.Complete(ctx, []Message{UserMessage(prompt)})
	if err != nil {
		return "", &GenerationError{Provider: c.provider.Name(), Err: err}
	}
	return Normalize(completion.Content), nil
}

// Normalize reduces raw model output to plain text. Models occasionally
// wrap their answer in a JSON envelope like {"content": "..."}; the inner
// text is unwrapped only when the entire trimmed response is such an
// object with a string content field. Anything else passes through
// trimmed but otherwise untouched.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if content, ok := jsonutil.ContentField(trimmed); ok {
		return content
	}
	return trimmed
}
