// Output size governance: validation and bounded regeneration.
//
// Information Hiding:
// - Retry loop state and template escalation
// - Best-attempt selection when the budget cannot be met
package summarize

import (
	"context"
	"fmt"

	"github.com/richinex/procrustes/llm"
	"github.com/richinex/procrustes/size"
)

// maxSizeRetries bounds the regeneration loop.
const maxSizeRetries = 3

// governor checks generated text against the configured budget and drives
// regeneration when it does not fit.
type governor struct {
	client   *llm.Client
	measurer *size.Measurer
	maxSize  int
	unit     size.Unit
}

// validate measures text and reports whether it fits. With no budget
// configured every text is valid. The same text and configuration always
// produce the same result.
func (g *governor) validate(text string) SizeValidation {
	validation := SizeValidation{
		Valid:      true,
		ActualSize: g.measurer.Measure(text, g.unit),
		Unit:       g.unit.String(),
	}
	if g.maxSize <= 0 {
		return validation
	}
	validation.MaxSize = g.maxSize
	if validation.ActualSize > g.maxSize {
		validation.Valid = false
		validation.Warning = fmt.Sprintf(
			"summary is %d %s, exceeding the limit of %d by %d",
			validation.ActualSize, g.unit, g.maxSize, validation.ActualSize-g.maxSize,
		)
	}
	return validation
}

// enforce validates text and, when it exceeds the budget, regenerates it
// under progressively stricter instructions. Each attempt compresses the
// most recent oversized text, sequentially, stopping as soon as an
// attempt fits; after the final attempt the smallest text seen is
// returned regardless of validity. Only size violations are retried; a
// generation failure propagates immediately.
func (g *governor) enforce(ctx context.Context, text string) (string, SizeValidation, error) {
	validation := g.validate(text)
	if validation.Valid {
		return text, validation, nil
	}

	current := text
	best, bestValidation := text, validation
	attempts := 0
	for attempt := 1; attempt <= maxSizeRetries; attempt++ {
		regenerated, err := g.client.Generate(ctx, retryPrompt(current, attempt, g.maxSize, g.unit))
		if err != nil {
			return "", SizeValidation{}, err
		}
		attempts = attempt
		candidate := g.validate(regenerated)
		if candidate.ActualSize < bestValidation.ActualSize {
			best, bestValidation = regenerated, candidate
		}
		if candidate.Valid {
			break
		}
		current = regenerated
	}

	bestValidation.RetryCount = 1
	bestValidation.Attempts = attempts
	return best, bestValidation, nil
}
