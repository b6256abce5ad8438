// Package size measures generated text against a configured budget unit.
//
// Information Hiding:
// - Tokenizer selection and loading hidden behind Measurer
// - Approximation fallback applied internally, never surfaced as an error
package size

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Unit selects how text size is measured.
type Unit int

const (
	// UnitCharacters counts Unicode code points.
	UnitCharacters Unit = iota
	// UnitTokens counts subword tokens under a BPE encoding.
	UnitTokens
)

// String returns the unit name as it appears in validation reports.
func (u Unit) String() string {
	switch u {
	case UnitTokens:
		return "tokens"
	default:
		return "characters"
	}
}

// ParseUnit converts a unit name to a Unit.
// Accepts "characters" (alias "chars") and "tokens"; empty means characters.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "characters", "chars":
		return UnitCharacters, nil
	case "tokens":
		return UnitTokens, nil
	default:
		return 0, fmt.Errorf("unknown size unit: %s (supported: characters, tokens)", s)
	}
}

// defaultEncoding is the BPE encoding used for exact token counts.
const defaultEncoding = "cl100k_base"

// approxBytesPerToken is the fallback ratio when the encoding is unavailable.
const approxBytesPerToken = 4

// Measurer converts text into a scalar size under a Unit.
// Create one with NewMeasurer; the zero value has no encoding configured.
type Measurer struct {
	encoding string

	once   sync.Once
	enc    *tiktoken.Tiktoken
	encErr error
}

// NewMeasurer returns a Measurer using the default encoding for token counts.
func NewMeasurer() *Measurer {
	return &Measurer{encoding: defaultEncoding}
}

// NewMeasurerWithEncoding returns a Measurer using the named BPE encoding.
func NewMeasurerWithEncoding(encoding string) *Measurer {
	return &Measurer{encoding: encoding}
}

// Measure returns the size of text under the given unit.
//
// Characters are Unicode code points, not grapheme clusters or bytes.
// Token counts use the configured encoding; if the encoding cannot be
// loaded the count falls back to ceil(bytes/4), a deterministic
// approximation rather than an error.
func (m *Measurer) Measure(text string, unit Unit) int {
	if unit == UnitTokens {
		return m.tokens(text)
	}
	return utf8.RuneCountInString(text)
}

func (m *Measurer) tokens(text string) int {
	if text == "" {
		return 0
	}
	m.once.Do(func() {
		m.enc, m.encErr = tiktoken.GetEncoding(m.encoding)
	})
	if m.encErr != nil || m.enc == nil {
		return approxTokens(text)
	}
	return len(m.enc.Encode(text, nil, nil))
}

// approxTokens estimates a token count as ceil(bytes/4).
func approxTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + approxBytesPerToken - 1) / approxBytesPerToken
}
