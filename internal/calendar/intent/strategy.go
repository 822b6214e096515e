package intent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Strategy recovers a JSON object from model output, or reports false.
type Strategy struct {
	Name    string
	Recover func(raw string) (map[string]any, bool)
}

var (
	// Direct parses the whole text.
	Direct = Strategy{Name: "direct", Recover: recoverDirect}
	// Fenced parses the contents of markdown code fences.
	Fenced = Strategy{Name: "fenced", Recover: recoverFenced}
	// BraceScan parses the first balanced {...} span that is valid JSON.
	BraceScan = Strategy{Name: "brace_scan", Recover: recoverBraceScan}
)

// DefaultStrategies returns the strategies in the order they are tried.
func DefaultStrategies() []Strategy {
	return []Strategy{Direct, Fenced, BraceScan}
}

var fenceRe = regexp.MustCompile("(?s)```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)```")

func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func recoverDirect(raw string) (map[string]any, bool) {
	return decodeObject(raw)
}

func recoverFenced(raw string) (map[string]any, bool) {
	for _, m := range fenceRe.FindAllStringSubmatch(raw, -1) {
		if obj, ok := decodeObject(m[1]); ok {
			return obj, true
		}
	}

	// Unterminated fence: drop the opening line and any trailing backticks.
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return nil, false
	}
	body := trimmed[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	return decodeObject(strings.TrimRight(strings.TrimSpace(body), "`"))
}

func recoverBraceScan(raw string) (map[string]any, bool) {
	// Well-formed JSON with a non-object top level is an answer, not prose.
	if trimmed := strings.TrimSpace(raw); json.Valid([]byte(trimmed)) && !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	for offset := 0; offset < len(raw); {
		start := strings.IndexByte(raw[offset:], '{')
		if start < 0 {
			return nil, false
		}
		start += offset

		end, ok := matchBrace(raw, start)
		if ok {
			if obj, ok := decodeObject(raw[start : end+1]); ok {
				return obj, true
			}
		}
		offset = start + 1
	}
	return nil, false
}

// matchBrace returns the index of the '}' closing the '{' at start. Braces
// inside JSON strings are ignored.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
