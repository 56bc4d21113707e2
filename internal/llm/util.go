// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

const fence = "```"

// languageTag matches a bare info string such as "json", "yaml" or "c++"
var languageTag = regexp.MustCompile(`^[A-Za-z0-9_+.-]+$`)

// StripCodeFences returns the body of the first fenced code block in text.
// A block tagged with lang is preferred over an untagged or differently tagged one.
// The second return value reports whether a fence was found; when it is false the
// text is returned unchanged.
func StripCodeFences(text, lang string) (string, bool) {
	if lang != "" {
		if body, ok := fencedBody(text, fence+lang); ok {
			return body, true
		}
	}

	body, ok := fencedBody(text, fence)
	if !ok {
		return text, false
	}

	// Drop the info string of a tagged block
	if idx := strings.Index(body, "\n"); idx >= 0 {
		if first := strings.TrimSpace(body[:idx]); languageTag.MatchString(first) {
			body = body[idx+1:]
		}
	}
	return strings.TrimSpace(body), true
}

// fencedBody returns the text between the first occurrence of open and the next
// closing fence after it.
func fencedBody(text, open string) (string, bool) {
	start := strings.Index(text, open)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(open):]
	end := strings.Index(rest, fence)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// ExtractJSON pulls a JSON document out of a model reply.
// Fenced blocks win; otherwise the whole reply is used when it parses, and as a last
// resort the span from the first '{' to the last '}'.
func ExtractJSON(text string) string {
	if body, ok := StripCodeFences(text, "json"); ok {
		return body
	}

	trimmed := strings.TrimSpace(text)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return trimmed[start : end+1]
	}
	return trimmed
}
