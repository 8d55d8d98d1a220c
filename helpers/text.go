package helpers

import (
	"strings"
	"unicode"
)

// CleanText collapses internal whitespace runs to a single space and trims
// leading/trailing whitespace and separator punctuation from a field value.
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimFunc(s, func(r rune) bool {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case ':', ';', ',', '-', '–', '—', '|', '/':
			return true
		}
		return false
	})
}

// NormalizeKey folds a value for identity comparison: lowercase with every
// non-alphanumeric rune removed.
func NormalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
