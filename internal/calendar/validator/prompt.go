package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/pkg/sanitize"
)

const promptField = "prompt"

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(system|assistant|developer)\s*:`),
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(the\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)\bdisregard\b`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(your\s+)?(previous\s+)?instructions`),
	regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe|object|embed|style)`),
	regexp.MustCompile(`(?i)(javascript|vbscript)\s*:`),
	regexp.MustCompile(`(?i)\[/?(inst|system)\]`),
	regexp.MustCompile(`(?i)<\|?(im_start|im_end|endoftext)\|?>`),
}

// Prompt validates a raw prompt and returns it sanitized. Type, emptiness and
// length are checked before the injection denylist.
func Prompt(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", NewError(promptField, RuleType, "prompt must be a string")
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", NewError(promptField, RuleRequired, "prompt is required")
	}
	if n := utf8.RuneCountInString(trimmed); n > calendar.MaxPromptLength {
		return "", NewError(promptField, RuleMaxLength, "prompt must be at most %d characters, got %d", calendar.MaxPromptLength, n)
	}

	// Stripping characters can rejoin a banned phrase, so both forms are checked.
	clean := sanitize.String(trimmed)
	if hasInjection(trimmed) || hasInjection(clean) {
		return "", NewError(promptField, RuleInjection, "prompt contains a disallowed instruction pattern")
	}
	if clean == "" {
		return "", NewError(promptField, RuleRequired, "prompt is required")
	}
	return clean, nil
}

func hasInjection(s string) bool {
	for _, re := range injectionPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
