// Package jsonutil provides tolerant JSON extraction from LLM responses.
//
// Models sometimes wrap a plain-text answer in a JSON envelope such as
// {"content": "..."} even when asked for prose. This package recognizes
// that shape without ever mangling responses that merely mention JSON.
package jsonutil

import (
	"encoding/json"
	"strings"
)

// ContentField reports the string "content" field of a response that is
// in its entirety a JSON object, e.g. {"content": "..."}.
//
// The match is deliberately strict:
//   - the whole trimmed response must parse as a single JSON object
//   - the object must carry a "content" field holding a string
//
// Prose that happens to contain braces, JSON arrays, and objects whose
// content field is not a string all return ok=false untouched.
func ContentField(response string) (string, bool) {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "{") {
		return "", false
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return "", false
	}

	raw, ok := envelope["content"]
	if !ok {
		return "", false
	}

	var content string
	if err := json.Unmarshal(raw, &content); err != nil {
		return "", false
	}
	return content, true
}
