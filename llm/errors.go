package llm

import "fmt"

// GenerationError wraps an underlying provider failure during text
// generation. Batching and size-retry layers treat it as fatal: a failed
// generation aborts the enclosing work and is never retried as a size
// violation.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}
