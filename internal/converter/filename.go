package converter

import (
	"fmt"
	"strings"
	"unicode"

	gh "github.com/johnqtcg/ghdump/internal/github"
)

// MaxTitleLength caps the sanitized title segment of a file name, in characters.
const MaxTitleLength = 120

// ThreadFileName builds "<kind><number>_<title>.md" from the first line of title.
func ThreadFileName(kind gh.ResourceKind, number int, title string) string {
	firstLine, _, _ := strings.Cut(title, "\n")
	return fmt.Sprintf("%s%03d_%s.md", kind, number, TruncateFileName(SanitizeFileName(firstLine), MaxTitleLength))
}

// CommitFileName names the document of a single commit.
func CommitFileName(oid string) string {
	return fmt.Sprintf("commit_%s.md", oid)
}

// HistoryFileName names the history document of a branch. Branch separators
// such as "/" are sanitized like titles.
func HistoryFileName(branch string) string {
	return fmt.Sprintf("commits_%s.md", SanitizeFileName(branch))
}

// SanitizeFileName replaces every character other than letters, digits,
// underscore, hyphen, period and space with an underscore.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if isFileNameRune(r) {
			return r
		}
		return '_'
	}, name)
}

func isFileNameRune(r rune) bool {
	switch r {
	case '_', '-', '.', ' ':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// TruncateFileName shortens name to at most max characters. It backs up to
// the last space, underscore or hyphen so words are not split, then trims
// trailing separators. Names within the limit are returned unchanged.
func TruncateFileName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}

	truncated := runes[:max]
	cut := -1
	for i := len(truncated) - 1; i >= 0; i-- {
		if truncated[i] == ' ' || truncated[i] == '_' || truncated[i] == '-' {
			cut = i
			break
		}
	}
	if cut <= 0 {
		return string(truncated)
	}
	return strings.TrimRight(string(truncated[:cut]), "_- ")
}
