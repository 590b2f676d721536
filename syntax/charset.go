// Package syntax implements the pattern-text level machinery shared by the
// expression builder: rune set and range algebra for character classes,
// literal escaping, the inline flag vocabulary, and per-flavor spellings of
// named-group constructs.
package syntax

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// MaxCodepoint is the largest valid Unicode code point.
const MaxCodepoint rune = 0x10FFFF

// ClassReserved lists the characters that must be escaped inside a character
// class body. Their order here is also their rendering order when present in
// a CharSet.
const ClassReserved = `-^\]`

// ValidCodepoint reports whether r is a valid Unicode code point.
func ValidCodepoint(r rune) bool {
	return r >= 0 && r <= MaxCodepoint
}

// CharSet is an immutable set of single characters. Members of ClassReserved
// are tracked apart from ordinary characters so class bodies can render them
// escaped and first.
type CharSet struct {
	reserved []rune // subset of ClassReserved, in ClassReserved order
	chars    []rune // sorted, unique, non-reserved
}

// NewCharSet builds a set from the given runes, deduplicating by code point.
func NewCharSet(rs ...rune) (CharSet, error) {
	var s CharSet
	for _, r := range rs {
		if !ValidCodepoint(r) {
			return CharSet{}, fmt.Errorf("invalid code point %d; must be in 0-%d", r, MaxCodepoint)
		}
	}
	for _, res := range ClassReserved {
		if slices.Contains(rs, res) {
			s.reserved = append(s.reserved, res)
		}
	}
	for _, r := range rs {
		if strings.ContainsRune(ClassReserved, r) {
			continue
		}
		if i, found := slices.BinarySearch(s.chars, r); !found {
			s.chars = slices.Insert(s.chars, i, r)
		}
	}
	return s, nil
}

// Union returns the set holding every member of s and o.
func (s CharSet) Union(o CharSet) CharSet {
	merged := make([]rune, 0, s.Len()+o.Len())
	for r := range s.Runes() {
		merged = append(merged, r)
	}
	for r := range o.Runes() {
		merged = append(merged, r)
	}
	u, _ := NewCharSet(merged...) // members were validated on construction
	return u
}

// Contains reports whether r is a member of the set.
func (s CharSet) Contains(r rune) bool {
	if strings.ContainsRune(ClassReserved, r) {
		return slices.Contains(s.reserved, r)
	}
	_, found := slices.BinarySearch(s.chars, r)
	return found
}

// Runes iterates the members: reserved characters first, then ordinary
// characters in code point order. The sequence is finite and restartable.
func (s CharSet) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s.reserved {
			if !yield(r) {
				return
			}
		}
		for _, r := range s.chars {
			if !yield(r) {
				return
			}
		}
	}
}

// Len returns the number of members.
func (s CharSet) Len() int { return len(s.reserved) + len(s.chars) }

// Empty reports whether the set has no members.
func (s CharSet) Empty() bool { return s.Len() == 0 }

// ClassBody renders the members for inclusion in a [...] class.
func (s CharSet) ClassBody() string {
	var b strings.Builder
	for r := range s.Runes() {
		b.WriteString(EscapeClassRune(r))
	}
	return b.String()
}

func (s CharSet) String() string { return "[" + s.ClassBody() + "]" }

// CharRange is an inclusive code point range.
type CharRange struct {
	Lo, Hi rune
}

// NewCharRange builds the inclusive range lo-hi.
func NewCharRange(lo, hi rune) (CharRange, error) {
	if !ValidCodepoint(lo) || !ValidCodepoint(hi) {
		return CharRange{}, fmt.Errorf("invalid code point in range %d-%d; must be in 0-%d", lo, hi, MaxCodepoint)
	}
	if lo > hi {
		return CharRange{}, errors.New("range start " + RuneDescription(lo) + " is greater than range end " + RuneDescription(hi))
	}
	return CharRange{Lo: lo, Hi: hi}, nil
}

// Contains reports whether r falls inside the range.
func (r CharRange) Contains(rn rune) bool {
	return rn >= r.Lo && rn <= r.Hi
}

// Merge combines two ranges into one when they overlap or are adjacent
// (gap of at most one code point on either side). The condition is
// symmetric: r.Hi+1 >= o.Lo && o.Hi+1 >= r.Lo.
func (r CharRange) Merge(o CharRange) (CharRange, bool) {
	if r.Hi+1 >= o.Lo && o.Hi+1 >= r.Lo {
		return CharRange{Lo: min(r.Lo, o.Lo), Hi: max(r.Hi, o.Hi)}, true
	}
	return CharRange{}, false
}

// Runes iterates every code point in the range in order.
func (r CharRange) Runes() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for rn := r.Lo; rn <= r.Hi; rn++ {
			if !yield(rn) {
				return
			}
		}
	}
}

// ClassBody renders the range as start-stop for inclusion in a [...] class.
func (r CharRange) ClassBody() string {
	return EscapeClassRune(r.Lo) + "-" + EscapeClassRune(r.Hi)
}

func (r CharRange) String() string { return "[" + r.ClassBody() + "]" }

// RuneDescription returns a readable description of a rune for error text
// and tree dumps: the quoted character when printable, U+XXXX otherwise.
func RuneDescription(r rune) string {
	if r > 0x20 && r < 0x7f {
		return "'" + string(r) + "'"
	}
	return fmt.Sprintf("U+%04X", r)
}
