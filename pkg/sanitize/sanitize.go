package sanitize

import (
	"regexp"
	"strings"
)

// Denylist patterns, applied in this order on every pass.
var (
	tagPattern          = regexp.MustCompile(`<[^>]*>`)
	jsURIPattern        = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
	dataURIPattern      = regexp.MustCompile(`(?i)data:\s*[^,]*;base64`)
)

// Normalize strips tag-like substrings, javascript: URIs, inline event
// handler attributes and base64 data URIs, then trims whitespace.
//
// It is a denylist filter, not an HTML sanitizer. The passes repeat until
// the output stops changing so that a removal cannot leave behind a new match.
func Normalize(input string) string {
	out := input
	for {
		next := normalizeOnce(out)
		if next == out {
			return out
		}
		out = next
	}
}

func normalizeOnce(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = jsURIPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	s = dataURIPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
