// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when a response contains no {...} span at all
var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject returns the greedy span from the first '{' to the last '}' in text.
// Code fences, preambles and trailing chatter around the object are dropped.
// Braces inside the span are not balanced; parsing reports malformed content.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}
