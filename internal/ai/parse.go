package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseResult is the outcome of extracting JSON from model output: either
// a value, or the raw text for the caller to substitute its own default.
type ParseResult struct {
	Value json.RawMessage
	Raw   string
	OK    bool
}

// ParseArray extracts the first JSON array from model output, tolerating
// leading/trailing prose and markdown fences. It never fails hard; the
// caller decides what a miss means.
func ParseArray(raw string) ParseResult {
	cleaned := stripCodeFence(raw)
	if match := jsonArrayPattern.FindString(cleaned); match != "" && json.Valid([]byte(match)) {
		return ParseResult{Value: json.RawMessage(match), Raw: raw, OK: true}
	}
	return ParseResult{Raw: raw}
}

// ParseObject extracts the first JSON object from model output.
func ParseObject(raw string) ParseResult {
	cleaned := stripCodeFence(raw)
	if match := jsonObjectPattern.FindString(cleaned); match != "" && json.Valid([]byte(match)) {
		return ParseResult{Value: json.RawMessage(match), Raw: raw, OK: true}
	}
	return ParseResult{Raw: raw}
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
