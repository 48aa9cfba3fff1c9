// Package llm - extractor.go turns raw model output into a parsed JSON object.
package llm

import (
	"encoding/json"
	"fmt"
)

// MalformedJSONError reports an extracted span that is not a valid JSON object
type MalformedJSONError struct {
	// Snippet is the extracted text, truncated for logging
	Snippet string
	Cause   error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in response: %v", e.Cause)
}

func (e *MalformedJSONError) Unwrap() error {
	return e.Cause
}

const maxSnippet = 200

// ExtractObject extracts the JSON object from text and parses its top-level fields.
// It returns ErrNoJSONObject or a *MalformedJSONError on failure.
func ExtractObject(text string) (map[string]json.RawMessage, error) {
	span, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		snippet := span
		if len(snippet) > maxSnippet {
			snippet = snippet[:maxSnippet] + "..."
		}
		return nil, &MalformedJSONError{Snippet: snippet, Cause: err}
	}
	return fields, nil
}
