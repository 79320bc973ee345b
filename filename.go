package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength is the longest name SanitizeFilename will return,
// matching the common filesystem component limit.
const MaxFilenameLength = 255

// Pre-compiled regular expressions for performance.
var (
	// filenameUnsafe matches filesystem-hostile characters and all
	// control characters including DEL.
	filenameUnsafe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)

	// whitespaceRun matches runs of whitespace.
	whitespaceRun = regexp.MustCompile(`\s+`)

	// underscoreRun matches runs of underscores.
	underscoreRun = regexp.MustCompile(`_+`)
)

// SanitizeFilename neutralizes path traversal and filesystem-hostile
// characters in name. Traversal sequences are removed before character
// replacement so replacement can never reassemble one from adjacent
// fragments. The result contains no path separator and no "..", and is
// at most MaxFilenameLength characters.
func SanitizeFilename(name string) string {
	s := strings.ReplaceAll(name, "..", "")
	s = filenameUnsafe.ReplaceAllString(s, "_")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_ ")
	if utf8.RuneCountInString(s) > MaxFilenameLength {
		s = string([]rune(s)[:MaxFilenameLength])
		s = strings.Trim(s, "_ ")
	}
	return s
}
