package policy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize trims, lower-cases and collapses internal whitespace runs to a
// single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// FoldAccents strips combining marks so "não" and "nao" compare equal.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isSingleWord(normalized string) bool {
	return normalized != "" && !strings.Contains(normalized, " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
