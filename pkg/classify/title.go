package classify

import (
	"strings"
	"unicode"
)

// CleanTitle turns a file name into a display title: the last extension is
// removed, dashes and underscores become spaces, the first character of
// every word is upper-cased, and the result is trimmed.
//
// Word characters are ASCII letters, digits and underscore, so a non-ASCII
// letter ends a word: "naïve" becomes "NaïVe". Only the first rune of a
// word changes case. CleanTitle never fails.
func CleanTitle(filename string) string {
	name := stripExt(filename)

	var b strings.Builder
	b.Grow(len(name))
	prevWord := false
	for _, r := range name {
		if r == '-' || r == '_' {
			r = ' '
		}
		word := isWordRune(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		prevWord = word
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// stripExt removes a trailing ".ext" where ext is at least one non-dot character.
func stripExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return name
	}
	return name[:i]
}

func isWordRune(r rune) bool {
	switch {
	case r == '_', '0' <= r && r <= '9':
		return true
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		return true
	}
	return false
}
