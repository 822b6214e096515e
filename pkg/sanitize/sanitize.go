// Package sanitize strips markup and script vectors from free text before it
// is stored or forwarded to a model. It is not an HTML sanitizer: rendering
// layers still encode output for their own context.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLength is the hard cap, in characters, on sanitized output.
const MaxLength = 10000

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Attribute-style handlers are only stripped after a non-alphanumeric
// character, so words such as location= survive. Known DOM event names are
// stripped wherever they appear.
var dangerous = []rule{
	{re: regexp.MustCompile(`[<>]`)},
	{re: regexp.MustCompile(`(?i)javascript:`)},
	{re: regexp.MustCompile(`(?i)vbscript:`)},
	{re: regexp.MustCompile(`(?i)data:`)},
	{re: regexp.MustCompile(`(?i)(^|[^a-z0-9])on[a-z0-9_]+\s*=`), repl: "$1"},
	{re: regexp.MustCompile(`(?i)on(abort|animation\w*|blur|change|click|contextmenu|dblclick|drag\w*|drop|error|focus\w*|input|key(down|press|up)|load\w*|mouse\w*|pointer\w*|reset|resize|scroll|select|submit|toggle|touch\w*|transition\w*|unload|wheel)\s*=`)},
}

// String removes dangerous substrings, trims surrounding whitespace and caps
// the result at MaxLength characters. Removal repeats until nothing matches,
// so fragments cannot be spliced back into a dangerous sequence.
func String(input string) string {
	out := input
	for {
		before := out
		for _, r := range dangerous {
			out = r.re.ReplaceAllString(out, r.repl)
		}
		if out == before {
			break
		}
	}

	out = strings.TrimSpace(out)
	if utf8.RuneCountInString(out) > MaxLength {
		out = string([]rune(out)[:MaxLength])
	}
	return out
}

// Any sanitizes v when it is a string and returns "" for anything else.
func Any(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return String(s)
}

// Truncate caps s at max characters.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
