package sanitize

import "strings"

// EscapePattern escapes every regexp metacharacter in text so the
// result, spliced into a dynamically built pattern, matches only the
// literal input.
func EscapePattern(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '.', '*', '+', '?', '^', '$', '{', '}', '(', ')', '|', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
