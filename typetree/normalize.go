package typetree

import (
	"strings"
	"unicode"
)

// Normalize returns a whitespace- and formatting-insensitive canonical
// form of a signature. A single space survives only between two word
// characters (where it separates tokens); all other whitespace,
// including newlines from pretty-printed signatures, is dropped.
// Quoted literal types are preserved verbatim.
func Normalize(signature string) string {
	var b strings.Builder
	b.Grow(len(signature))

	var quote rune
	pendingSpace := false
	var last rune

	for _, r := range signature {
		if quote != 0 {
			b.WriteRune(r)
			if r == quote {
				quote = 0
			}
			last = r
			continue
		}
		switch {
		case r == '\'' || r == '"' || r == '`':
			quote = r
			b.WriteRune(r)
			last = r
			pendingSpace = false
		case unicode.IsSpace(r):
			pendingSpace = true
		default:
			if pendingSpace && isWordRune(last) && isWordRune(r) {
				b.WriteRune(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			last = r
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
