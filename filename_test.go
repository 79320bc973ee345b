package sanitize_test

import (
	"strings"
	"testing"

	"github.com/njchilds90/sanitize"
)

func TestSanitizeFilename_Traversal(t *testing.T) {
	got := sanitize.SanitizeFilename("../../../etc/passwd")
	if got != "etc_passwd" {
		t.Errorf("got %q, want %q", got, "etc_passwd")
	}
}

func TestSanitizeFilename_Spacing(t *testing.T) {
	got := sanitize.SanitizeFilename("my file.txt")
	if got != "my_file.txt" {
		t.Errorf("got %q, want %q", got, "my_file.txt")
	}
}

func TestSanitizeFilename_HostileCharacters(t *testing.T) {
	got := sanitize.SanitizeFilename(`a<b>c:d"e|f?g*h.txt`)
	if strings.ContainsAny(got, `<>:"/\|?*`) {
		t.Errorf("hostile characters survived: %q", got)
	}
}

func TestSanitizeFilename_Separators(t *testing.T) {
	got := sanitize.SanitizeFilename(`dir/sub\file.txt`)
	if strings.ContainsAny(got, `/\`) {
		t.Errorf("path separators survived: %q", got)
	}
}

func TestSanitizeFilename_ControlCharacters(t *testing.T) {
	got := sanitize.SanitizeFilename("a\x00b\x1fc\x7fd")
	if got != "a_b_c_d" {
		t.Errorf("got %q, want %q", got, "a_b_c_d")
	}
}

func TestSanitizeFilename_NoTraversalEver(t *testing.T) {
	for _, input := range []string{"....//etc", "..\\..\\win", "a..b..c", ". . /x"} {
		got := sanitize.SanitizeFilename(input)
		if strings.Contains(got, "..") {
			t.Errorf("SanitizeFilename(%q) = %q still contains ..", input, got)
		}
	}
}

func TestSanitizeFilename_Truncated(t *testing.T) {
	got := sanitize.SanitizeFilename(strings.Repeat("a", 400))
	if len(got) != sanitize.MaxFilenameLength {
		t.Errorf("got length %d, want %d", len(got), sanitize.MaxFilenameLength)
	}
}

func TestSanitizeFilename_Empty(t *testing.T) {
	if got := sanitize.SanitizeFilename(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
