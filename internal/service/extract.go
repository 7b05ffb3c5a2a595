package service

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONPayload indicates the model reply contained nothing parseable.
var ErrNoJSONPayload = errors.New("no JSON payload in model response")

// JSONExtractor pulls a JSON object out of free-text model output.
// Vision model replies sometimes wrap the payload in markdown code
// fences or surround it with prose; everything downstream of the model
// call depends only on this one type, keeping the fragile string
// handling in one tested place.
type JSONExtractor struct{}

// Extract returns the JSON object in text, tolerating ```json fences,
// bare ``` fences, and leading/trailing prose. It fails rather than
// guessing when no decodable object is present.
func (JSONExtractor) Extract(text string) (json.RawMessage, error) {
	candidate := strings.TrimSpace(text)

	if i := strings.Index(candidate, "```json"); i >= 0 {
		candidate = candidate[i+len("```json"):]
		if j := strings.Index(candidate, "```"); j >= 0 {
			candidate = candidate[:j]
		}
	} else if i := strings.Index(candidate, "```"); i >= 0 {
		candidate = candidate[i+len("```"):]
		if j := strings.Index(candidate, "```"); j >= 0 {
			candidate = candidate[:j]
		}
	}
	candidate = strings.TrimSpace(candidate)

	if raw, ok := decodeObject(candidate); ok {
		return raw, nil
	}

	// Prose around an unfenced object: scan for the outermost braces.
	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start >= 0 && end > start {
		if raw, ok := decodeObject(candidate[start : end+1]); ok {
			return raw, nil
		}
	}

	return nil, ErrNoJSONPayload
}

// Unmarshal extracts and decodes in one step.
func (e JSONExtractor) Unmarshal(text string, v interface{}) error {
	raw, err := e.Extract(text)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func decodeObject(s string) (json.RawMessage, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}
