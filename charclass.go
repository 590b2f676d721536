package rex

import (
	"cmp"
	"iter"
	"slices"
	"strings"
	"unicode"

	"github.com/rexlang/rex/syntax"
)

// Chars matches any single character of s: [abc] for Chars("abc").
// Duplicates are ignored.
func Chars(s string) *Expr {
	set, err := syntax.NewCharSet([]rune(s)...)
	if err != nil {
		return invalid(newError(CodeInvalidCodepoint, "%v", err))
	}
	return &Expr{kind: KindCharSet, set: set}
}

// CharRange matches any single character between lo and hi inclusive:
// [a-z] for CharRange('a', 'z').
func CharRange(lo, hi rune) *Expr {
	r, err := syntax.NewCharRange(lo, hi)
	if err != nil {
		if !syntax.ValidCodepoint(lo) || !syntax.ValidCodepoint(hi) {
			return invalid(newError(CodeInvalidCodepoint, "%v", err))
		}
		return invalid(newError(CodeInvalidCharRange, "%v", err))
	}
	return &Expr{kind: KindCharRange, rng: r}
}

// Class builds a character class from members: character sets, ranges,
// shorthand classes, other positive classes, and single-character literals.
// Set members are merged and deduplicated; ranges are kept sorted by start
// but never merged with each other; shorthands keep insertion order.
func Class(members ...*Expr) *Expr {
	var (
		runes      []rune
		ranges     []syntax.CharRange
		shorthands []rune
	)
	for _, m := range members {
		switch m.kind {
		case KindInvalid:
			return m
		case KindCharSet:
			for r := range m.set.Runes() {
				runes = append(runes, r)
			}
		case KindCharRange:
			ranges = append(ranges, m.rng)
		case KindShorthand:
			shorthands = append(shorthands, m.ch)
		case KindCharClass:
			for r := range m.set.Runes() {
				runes = append(runes, r)
			}
			ranges = append(ranges, m.ranges...)
			shorthands = append(shorthands, m.shorthands...)
		case KindLiteral:
			rs := []rune(m.str)
			if len(rs) != 1 {
				return invalid(newError(CodeInvalidKind,
					"only single-character literals may join a character class; got %q", m.str))
			}
			runes = append(runes, rs[0])
		default:
			return invalid(newError(CodeInvalidKind,
				"%s is not acceptable in a character class", m.kind))
		}
	}
	set, err := syntax.NewCharSet(runes...)
	if err != nil {
		return invalid(newError(CodeInvalidCodepoint, "%v", err))
	}
	slices.SortStableFunc(ranges, func(a, b syntax.CharRange) int {
		return cmp.Compare(a.Lo, b.Lo)
	})
	return &Expr{kind: KindCharClass, set: set, ranges: ranges, shorthands: shorthands}
}

// Negate complements a character class: [abc] becomes [^abc]. Negating a
// negated class restores the positive class. Only class-shaped expressions
// can be negated; use AnythingBut for the general complement.
func (x *Expr) Negate() *Expr {
	switch x.kind {
	case KindInvalid:
		return x
	case KindCharSet:
		return &Expr{kind: KindNegatedClass, set: x.set}
	case KindCharRange:
		return &Expr{kind: KindNegatedClass, ranges: []syntax.CharRange{x.rng}}
	case KindShorthand:
		return &Expr{kind: KindNegatedClass, shorthands: []rune{x.ch}}
	case KindCharClass:
		return &Expr{kind: KindNegatedClass, set: x.set, ranges: x.ranges, shorthands: x.shorthands}
	case KindNegatedClass:
		return &Expr{kind: KindCharClass, set: x.set, ranges: x.ranges, shorthands: x.shorthands}
	}
	return invalid(newError(CodeInvalidKind,
		"cannot negate %s as a character class; use AnythingBut for a general complement", x.kind))
}

// ContainsRune reports whether a class-shaped expression matches r.
// Shorthand members are tested semantically (\d via unicode.IsDigit and so
// on). Non-class kinds report false.
func (x *Expr) ContainsRune(r rune) bool {
	switch x.kind {
	case KindCharSet:
		return x.set.Contains(r)
	case KindCharRange:
		return x.rng.Contains(r)
	case KindShorthand:
		return shorthandContains(x.ch, r)
	case KindCharClass:
		return classContains(x, r)
	case KindNegatedClass:
		return !classContains(x, r)
	}
	return false
}

func classContains(x *Expr, r rune) bool {
	if x.set.Contains(r) {
		return true
	}
	for _, rg := range x.ranges {
		if rg.Contains(r) {
			return true
		}
	}
	for _, c := range x.shorthands {
		if shorthandContains(c, r) {
			return true
		}
	}
	return false
}

func shorthandContains(class, r rune) bool {
	switch class {
	case 'd':
		return unicode.IsDigit(r)
	case 'D':
		return !unicode.IsDigit(r)
	case 's':
		return unicode.IsSpace(r)
	case 'S':
		return !unicode.IsSpace(r)
	case 'w':
		return isWordRune(r)
	case 'W':
		return !isWordRune(r)
	case 't':
		return r == '\t'
	case 'n':
		return r == '\n'
	case 'b':
		return r == '\b'
	case 'r':
		return r == '\r'
	}
	return false
}

// isWordRune mirrors the \w semantics of Unicode-aware engines: letters,
// decimal digits, combining marks, connector punctuation, and the
// zero-width (non-)joiners.
func isWordRune(r rune) bool {
	return unicode.In(r, unicode.L, unicode.Mn, unicode.Nd, unicode.Pc) ||
		r == 0x200C || r == 0x200D
}

// Runes iterates the characters a class-shaped expression matches. For
// positive classes the explicit set members come first in code point order,
// then range members, deduplicated; shorthand members are symbolic and are
// not expanded. A negated class enumerates its full complement up to
// syntax.MaxCodepoint, which accounts for shorthand members. Other kinds
// iterate nothing.
func (x *Expr) Runes() iter.Seq[rune] {
	switch x.kind {
	case KindCharSet:
		return x.set.Runes()
	case KindCharRange:
		return x.rng.Runes()
	case KindCharClass:
		return func(yield func(rune) bool) {
			seen := make(map[rune]bool)
			var members []rune
			for r := range x.set.Runes() {
				members = append(members, r)
			}
			slices.Sort(members)
			for _, r := range members {
				seen[r] = true
				if !yield(r) {
					return
				}
			}
			for _, rg := range x.ranges {
				for r := rg.Lo; r <= rg.Hi; r++ {
					if seen[r] {
						continue
					}
					seen[r] = true
					if !yield(r) {
						return
					}
				}
			}
		}
	case KindNegatedClass:
		return func(yield func(rune) bool) {
			for r := rune(0); r <= syntax.MaxCodepoint; r++ {
				if classContains(x, r) {
					continue
				}
				if !yield(r) {
					return
				}
			}
		}
	}
	return func(yield func(rune) bool) {}
}

// classBody renders the bracket-interior of a class-shaped node: set
// members, then shorthands, then ranges.
func (x *Expr) classBody() string {
	var b strings.Builder
	b.WriteString(x.set.ClassBody())
	for _, c := range x.shorthands {
		b.WriteByte('\\')
		b.WriteRune(c)
	}
	for _, r := range x.ranges {
		b.WriteString(r.ClassBody())
	}
	return b.String()
}

func runeSet(r rune) syntax.CharSet {
	set, _ := syntax.NewCharSet(r)
	return set
}
