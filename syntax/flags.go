package syntax

import (
	"slices"
	"strings"
)

// Inline flag vocabulary. The single-character spellings follow the
// conventional scoped-flag syntax (?flags:...).
const (
	// AllFlags lists every recognized flag character.
	AllFlags = "aiLmsux"

	// ExclusiveFlags are mutually exclusive: at most one of the
	// ASCII/locale/unicode matching modes may be active in a scope.
	ExclusiveFlags = "aLu"

	// NonNegatableFlags may not appear in the disabled half of a scope;
	// one of them is always in effect, so disabling is expressed by
	// enabling another.
	NonNegatableFlags = "aLu"
)

// ValidFlag reports whether c is a recognized flag character.
func ValidFlag(c rune) bool {
	return strings.ContainsRune(AllFlags, c)
}

// FlagName returns the long name of a flag character, or "" if unknown.
func FlagName(c rune) string {
	switch c {
	case 'a':
		return "ASCII"
	case 'i':
		return "IGNORECASE"
	case 'L':
		return "LOCALE"
	case 'm':
		return "MULTILINE"
	case 's':
		return "DOTALL"
	case 'u':
		return "UNICODE"
	case 'x':
		return "VERBOSE"
	}
	return ""
}

// SortFlags returns the flag characters of s sorted and deduplicated.
func SortFlags(s string) string {
	rs := []rune(s)
	slices.Sort(rs)
	rs = slices.Compact(rs)
	return string(rs)
}

// ScopePrefix renders the flag half of a (?pos-neg:...) scope: sorted
// enabled flags, then "-" and sorted disabled flags when any are disabled.
func ScopePrefix(pos, neg string) string {
	return strings.TrimRight(SortFlags(pos)+"-"+SortFlags(neg), "-")
}
