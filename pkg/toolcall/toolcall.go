// Package toolcall canonicalizes the textual tool-invocation dialects found
// in synthesized conversations and validates the canonical form against the
// support-tool registry.
package toolcall

import (
	"regexp"
	"strings"
)

// Invocation is the canonical (name, arguments) form of a tool call.
// Constructed fresh per parse and never mutated afterwards.
type Invocation struct {
	Name      string
	Arguments map[string]any

	// Raw preserves the original span payload for diagnostics.
	Raw string

	// Parsed is false when no dialect matched; the invocation then acts as
	// the parse-failed sentinel and Name/Arguments are empty.
	Parsed bool
}

var spanRe = regexp.MustCompile(`(?s)<tool_call>\s*(.*?)\s*</tool_call>`)

// Spans returns the payloads of every tool-invocation span in text, in order.
func Spans(text string) []string {
	matches := spanRe.FindAllStringSubmatch(text, -1)
	if matches == nil {
		return nil
	}
	ret := make([]string, 0, len(matches))
	for _, m := range matches {
		ret = append(ret, unescapePayload(m[1]))
	}
	return ret
}

// FirstSpan returns the payload of the first tool-invocation span, if any.
func FirstSpan(text string) (string, bool) {
	match := spanRe.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return unescapePayload(match[1]), true
}

// HasSpan reports whether text contains a tool-invocation span marker.
func HasSpan(text string) bool {
	return strings.Contains(text, "<tool_call>")
}

// unescapePayload tolerates payloads that arrive re-serialized with escaped
// quotes or wrapped in an extra pair of quotes.
func unescapePayload(payload string) string {
	payload = strings.ReplaceAll(payload, `\"`, `"`)
	return strings.Trim(payload, `"`)
}
