package analysis

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes question text for comparison: lower-cased,
// punctuation stripped (question marks kept, since they carry meaning for
// question matching), runs of whitespace collapsed to a single space.
// The normalized form is used only for similarity comparison — the original
// text is always what gets stored and displayed.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	for _, r := range strings.ToLower(raw) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case r != '?' && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
			// dropped
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
	}

	return b.String()
}

// TokenCount returns the number of whitespace-separated tokens in s.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}
