package sanitize

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxSearchLength bounds SanitizeSearch output when the caller
// passes a non-positive maxLen.
const DefaultMaxSearchLength = 200

// SanitizeSearch turns freeform query text into something safe to log,
// index, or echo back: markup is stripped, control characters removed,
// whitespace collapsed, and the result trimmed and truncated to maxLen
// characters (DefaultMaxSearchLength when maxLen <= 0).
func SanitizeSearch(input string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxSearchLength
	}
	s, err := StripTags(input)
	if err != nil {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
		s = strings.TrimSpace(s)
	}
	return s
}
