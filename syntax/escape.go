package syntax

import "strings"

// Characters escaped by Escape. Everything else passes through untouched;
// unrecognized punctuation escapes are accepted by every backtracking engine
// this package targets, unknown word-character escapes are not, so the set
// stays limited to metacharacters and whitespace.
const escaped = "()[]{}?*+-|^$\\.&~# "

// Escape returns pattern text that matches s literally.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteString(escapeRune(r, false))
	}
	return b.String()
}

// EscapeClassRune renders a single rune for inclusion in a character class
// body, escaping the class-reserved characters and control whitespace.
func EscapeClassRune(r rune) string {
	return escapeRune(r, true)
}

func escapeRune(r rune, inClass bool) string {
	switch r {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\v':
		return `\v`
	case '\f':
		return `\f`
	}
	if inClass {
		if strings.ContainsRune(ClassReserved, r) {
			return `\` + string(r)
		}
		return string(r)
	}
	if strings.ContainsRune(escaped, r) {
		return `\` + string(r)
	}
	return string(r)
}
