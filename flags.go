package rex

import (
	"strings"

	"github.com/rexlang/rex/syntax"
)

// Flag is a matching-mode flag. Flags apply to a subexpression through
// WithFlags and WithoutFlags, or to a whole compiled pattern through
// Compile.
type Flag rune

const (
	// ASCII restricts \w, \d, \s and friends to ASCII.
	ASCII Flag = 'a'
	// IgnoreCase matches case-insensitively.
	IgnoreCase Flag = 'i'
	// Locale makes \w and word boundaries depend on the current locale.
	Locale Flag = 'L'
	// Multiline lets ^ and $ also match at line boundaries.
	Multiline Flag = 'm'
	// DotAll lets . match newlines too.
	DotAll Flag = 's'
	// Unicode selects Unicode semantics for \w, \d, \s and friends.
	Unicode Flag = 'u'
	// Verbose ignores unescaped whitespace and # comments in the pattern.
	Verbose Flag = 'x'
)

// WithFlags enables flags for x only: (?i:x) for WithFlags(IgnoreCase).
// Applied to an existing flag scope it extends that scope instead of
// nesting a new one.
func (x *Expr) WithFlags(flags ...Flag) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	s, err := flagChars(flags)
	if err != nil {
		return invalid(err)
	}
	if x.kind == KindFlagScope {
		return flagScope(x.sub[0], x.posFlags+s, x.negFlags)
	}
	return flagScope(x, s, "")
}

// WithoutFlags disables flags for x only: (?-i:x) for
// WithoutFlags(IgnoreCase). The ASCII, Locale, and Unicode modes cannot be
// disabled; one of them is always in effect, so switch by enabling another.
func (x *Expr) WithoutFlags(flags ...Flag) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	s, err := flagChars(flags)
	if err != nil {
		return invalid(err)
	}
	if x.kind == KindFlagScope {
		return flagScope(x.sub[0], x.posFlags, x.negFlags+s)
	}
	return flagScope(x, "", s)
}

func flagChars(flags []Flag) (string, *Error) {
	var b strings.Builder
	for _, f := range flags {
		if !syntax.ValidFlag(rune(f)) {
			return "", newError(CodeInvalidFlags, "unknown flag %q", rune(f))
		}
		b.WriteRune(rune(f))
	}
	return b.String(), nil
}

func flagScope(child *Expr, pos, neg string) *Expr {
	pos, neg = syntax.SortFlags(pos), syntax.SortFlags(neg)
	var badNeg []string
	for _, c := range neg {
		if strings.ContainsRune(syntax.NonNegatableFlags, c) {
			badNeg = append(badNeg, syntax.FlagName(c))
		}
	}
	if len(badNeg) > 0 {
		return invalid(newError(CodeInvalidFlags,
			"flags %s cannot be disabled; enable another matching mode instead",
			strings.Join(badNeg, ", ")))
	}
	var exclusive []string
	for _, c := range pos {
		if strings.ContainsRune(syntax.ExclusiveFlags, c) {
			exclusive = append(exclusive, syntax.FlagName(c))
		}
	}
	if len(exclusive) > 1 {
		return invalid(newError(CodeInvalidFlags,
			"flags %s are mutually exclusive", strings.Join(exclusive, ", ")))
	}
	// Enabling and disabling the same flag cancels out.
	var posOut strings.Builder
	for _, c := range pos {
		if !strings.ContainsRune(neg, c) {
			posOut.WriteRune(c)
		}
	}
	var negOut strings.Builder
	for _, c := range neg {
		if !strings.ContainsRune(pos, c) {
			negOut.WriteRune(c)
		}
	}
	return &Expr{kind: KindFlagScope, sub: []*Expr{child}, posFlags: posOut.String(), negFlags: negOut.String()}
}
