/*
Package rex builds regular expressions as immutable typed trees instead of
hand-written pattern syntax.

An Expr is assembled bottom-up from literals, character classes, repetition,
grouping, alternation, lookaround, backreferences, and conditionals; Validate
checks the structural invariants (group numbering, name uniqueness,
backreference order, fixed-length lookbehind) and Pattern renders the tree to
conventional pattern text. Matching is delegated to the regexp2 engine
through the Compile facade.

Character-class unions normalize their contents: set members are
deduplicated and sorted, and ranges are ordered by starting code point. A
union may therefore render its operands in a different order than they were
written — CharRange('a', 'z').Or(CharRange('A', 'Z')) is [A-Za-z] — without
changing what it matches.
*/
package rex

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"strconv"
	"sync"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/rexlang/rex/syntax"
)

// Kind tags the variant of an expression node.
type Kind int32

const (
	KindInvalid Kind = iota // construction error, poisons the tree

	// Leaves
	KindLiteral      // abc
	KindCharSet      // [abc]
	KindCharRange    // [a-z]
	KindCharClass    // [ab0-9\d]
	KindNegatedClass // [^ab0-9\d]
	KindShorthand    // \d \s \w \t \n \b \r (class-acceptable)
	KindAnchor       // \A \b \B \Z
	KindSymbol       // ^ $ .
	KindComment      // (?#...)

	// Composites
	KindSequence    // ab
	KindAlternation // a|b
	KindRepeat      // a{n}
	KindRepeatRange // a{m,n} a{m,}
	KindZeroOrMore  // a*
	KindOneOrMore   // a+
	KindZeroOrOne   // a?
	KindCapture     // (a)
	KindNamedCapture
	KindLookahead  // a(?=b) a(?!b)
	KindLookbehind // (?<=a)b (?<!a)b
	KindNegAssert  // marks the negative half of a lookaround
	KindFlagScope  // (?flags:a)
	KindAtomicGroup

	// References
	KindIntBackref      // \1
	KindNamedBackref    // (?P=name)
	KindRefBackref      // identity reference to a capture group
	KindNamedRefBackref // identity reference to a named group
	KindConditional     // (?(ref)yes|no)
)

var kindNames = []string{
	"Invalid",
	"Literal", "CharSet", "CharRange", "CharClass", "NegatedClass",
	"Shorthand", "Anchor", "Symbol", "Comment",
	"Sequence", "Alternation",
	"Repeat", "RepeatRange", "ZeroOrMore", "OneOrMore", "ZeroOrOne",
	"Capture", "NamedCapture",
	"Lookahead", "Lookbehind", "NegAssert", "FlagScope", "AtomicGroup",
	"IntBackref", "NamedBackref", "RefBackref", "NamedRefBackref",
	"Conditional",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Expr is a node in an expression tree. Nodes are immutable once
// constructed; every composition method returns a new node. The only
// internal mutable state is the memoized compiled matcher and the per-group
// rename cache, both populated at most once.
type Expr struct {
	kind Kind

	str string // literal text, comment text, or group name
	ch  rune   // shorthand / anchor designator

	sub []*Expr // children, in pattern order

	set        syntax.CharSet
	rng        syntax.CharRange
	ranges     []syntax.CharRange
	shorthands []rune // symbolic class members, in insertion order

	m, n int // repetition bounds (n == Unbounded for open ranges); symbol length

	refIndex int    // KindIntBackref
	refName  string // KindNamedBackref
	target   *Expr  // identity backreference target

	posFlags, negFlags string // KindFlagScope

	err *Error // KindInvalid

	renameMu sync.Mutex
	renames  map[renameKey]*Expr

	compiled atomic.Pointer[Matcher]
}

// Unbounded marks an absent upper repetition bound.
const Unbounded = -1

// Kind returns the variant tag of the node.
func (x *Expr) Kind() Kind { return x.kind }

// Err returns the construction error carried by an invalid node, or nil.
func (x *Expr) Err() error {
	if x.err != nil {
		return x.err
	}
	return nil
}

func invalid(e *Error) *Expr {
	return &Expr{kind: KindInvalid, err: e}
}

// Literal returns a node matching s verbatim; metacharacters in s are
// escaped on render.
func Literal(s string) *Expr {
	return &Expr{kind: KindLiteral, str: s}
}

// L is shorthand for Literal.
func L(s string) *Expr { return Literal(s) }

// Char returns a literal matching the single code point r.
func Char(r rune) *Expr {
	if !syntax.ValidCodepoint(r) {
		return invalid(newError(CodeInvalidCodepoint, "invalid code point %d; must be in 0-%d", r, syntax.MaxCodepoint))
	}
	return Literal(string(r))
}

// Comment returns a zero-width comment node rendered as (?#text).
func Comment(text string) *Expr {
	return &Expr{kind: KindComment, str: text}
}

func anchor(c rune) *Expr {
	return &Expr{kind: KindAnchor, ch: c}
}

func shorthand(c rune) *Expr {
	return &Expr{kind: KindShorthand, ch: c}
}

func symbol(s string, fixedLen int) *Expr {
	return &Expr{kind: KindSymbol, str: s, m: fixedLen}
}

// Zero-width anchors.
var (
	StartString  = anchor('A') // \A
	WordBoundary = anchor('b') // \b
	WordInternal = anchor('B') // \B
	EndString    = anchor('Z') // \Z
)

// Shorthand classes, acceptable both standalone and inside character
// classes.
var (
	Digit          = shorthand('d')
	NonDigit       = shorthand('D')
	Whitespace     = shorthand('s')
	NonWhitespace  = shorthand('S')
	WordChar       = shorthand('w')
	NonWordChar    = shorthand('W')
	Tab            = shorthand('t')
	Endline        = shorthand('n')
	Backspace      = shorthand('b')
	CarriageReturn = shorthand('r')
)

// Bare symbols.
var (
	Start   = symbol("^", 0)
	End     = symbol("$", 0)
	AnyChar = symbol(".", 1)
)

// Subexprs returns the direct children of the node in pattern order: a
// lookbehind yields (behind, subject), a lookahead (subject, assertion), a
// conditional (reference, then, else).
func (x *Expr) Subexprs() []*Expr {
	out := make([]*Expr, len(x.sub))
	copy(out, x.sub)
	return out
}

// Walk iterates the node and every descendant depth-first in pattern order.
// The sequence is finite and restartable.
func (x *Expr) Walk() iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		x.walk(yield)
	}
}

func (x *Expr) walk(yield func(*Expr) bool) bool {
	if !yield(x) {
		return false
	}
	for _, c := range x.sub {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// CaptureGroups iterates every capture group (named or not) in the tree in
// pattern order; a group's 1-based position in this sequence is its number
// in the rendered pattern.
func (x *Expr) CaptureGroups() iter.Seq[*Expr] {
	return x.filtered(func(n *Expr) bool {
		return n.kind == KindCapture || n.kind == KindNamedCapture
	})
}

// NamedGroups iterates every named capture group in the tree.
func (x *Expr) NamedGroups() iter.Seq[*Expr] {
	return x.filtered(func(n *Expr) bool { return n.kind == KindNamedCapture })
}

// Backrefs iterates every backreference node in the tree.
func (x *Expr) Backrefs() iter.Seq[*Expr] {
	return x.filtered((*Expr).isBackref)
}

func (x *Expr) isBackref() bool {
	switch x.kind {
	case KindIntBackref, KindNamedBackref, KindRefBackref, KindNamedRefBackref:
		return true
	}
	return false
}

func (x *Expr) filtered(keep func(*Expr) bool) iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		x.walk(func(n *Expr) bool {
			if keep(n) {
				return yield(n)
			}
			return true
		})
	}
}

// GroupName returns the name of a named capture group and whether the node
// is one.
func (x *Expr) GroupName() (string, bool) {
	if x.kind == KindNamedCapture {
		return x.str, true
	}
	return "", false
}

// FixedLength returns the match length of the expression when every
// possible match has the same character count. ok is false for
// variable-length expressions. Lookbehind validation relies on this.
func (x *Expr) FixedLength() (int, bool) {
	switch x.kind {
	case KindLiteral:
		return utf8.RuneCountInString(x.str), true
	case KindCharSet, KindCharRange, KindCharClass, KindNegatedClass, KindShorthand:
		return 1, true
	case KindAnchor, KindComment:
		return 0, true
	case KindSymbol:
		return x.m, true
	case KindSequence:
		sum := 0
		for _, c := range x.sub {
			l, ok := c.FixedLength()
			if !ok {
				return 0, false
			}
			sum += l
		}
		return sum, true
	case KindAlternation:
		// Fixed only when every branch has the same fixed length.
		if len(x.sub) == 0 {
			return 0, true
		}
		first, ok := x.sub[0].FixedLength()
		if !ok {
			return 0, false
		}
		for _, c := range x.sub[1:] {
			l, ok := c.FixedLength()
			if !ok || l != first {
				return 0, false
			}
		}
		return first, true
	case KindRepeat:
		l, ok := x.sub[0].FixedLength()
		if !ok {
			return 0, false
		}
		return l * x.m, true
	case KindRepeatRange:
		if x.n != x.m {
			return 0, false
		}
		l, ok := x.sub[0].FixedLength()
		if !ok {
			return 0, false
		}
		return l * x.m, true
	case KindCapture, KindNamedCapture, KindFlagScope, KindNegAssert, KindAtomicGroup:
		return x.sub[0].FixedLength()
	case KindLookahead:
		return x.sub[0].FixedLength() // subject
	case KindLookbehind:
		return x.sub[1].FixedLength() // subject
	case KindRefBackref, KindNamedRefBackref:
		return x.target.FixedLength()
	case KindConditional:
		tl, ok := x.sub[1].FixedLength()
		if !ok {
			return 0, false
		}
		el, ok := x.sub[2].FixedLength()
		if !ok || tl != el {
			return 0, false
		}
		return tl, true
	}
	return 0, false
}

// String renders the pattern in the default flavor. Trees that cannot be
// rendered yield a bracketed error code instead; use Pattern for the error.
func (x *Expr) String() string {
	p, err := x.Pattern()
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return "<" + e.Code.String() + ">"
		}
		return "<" + err.Error() + ">"
	}
	return p
}

// Describe returns a one-line description of the node for debugging.
func (x *Expr) Describe() string {
	buf := &bytes.Buffer{}
	buf.WriteString(x.kind.String())

	switch x.kind {
	case KindInvalid:
		fmt.Fprintf(buf, "(Err = %v)", x.err)
	case KindLiteral:
		fmt.Fprintf(buf, "(Str = %q)", x.str)
	case KindComment:
		fmt.Fprintf(buf, "(Text = %q)", x.str)
	case KindShorthand, KindAnchor:
		buf.WriteString(`(\` + string(x.ch) + ")")
	case KindSymbol:
		buf.WriteString("(" + x.str + ")")
	case KindCharSet:
		buf.WriteString("(Set = " + x.set.String() + ")")
	case KindCharRange:
		buf.WriteString("(Range = " + x.rng.String() + ")")
	case KindCharClass, KindNegatedClass:
		buf.WriteString("(Body = " + x.classBody() + ")")
	case KindNamedCapture:
		fmt.Fprintf(buf, "(Name = %s)", x.str)
	case KindRepeat:
		fmt.Fprintf(buf, "(N = %d)", x.m)
	case KindRepeatRange:
		buf.WriteString("(Min = " + strconv.Itoa(x.m) + ", Max = ")
		if x.n == Unbounded {
			buf.WriteString("inf)")
		} else {
			buf.WriteString(strconv.Itoa(x.n) + ")")
		}
	case KindFlagScope:
		fmt.Fprintf(buf, "(Flags = %q)", syntax.ScopePrefix(x.posFlags, x.negFlags))
	case KindIntBackref:
		fmt.Fprintf(buf, "(Index = %d)", x.refIndex)
	case KindNamedBackref:
		fmt.Fprintf(buf, "(Name = %s)", x.refName)
	case KindRefBackref, KindNamedRefBackref:
		fmt.Fprintf(buf, "(Target = %s)", x.target.kind)
	}

	return buf.String()
}

var dumpPad = []byte("                                ")

// Dump returns an indented description of the whole tree.
func (x *Expr) Dump() string {
	buf := &bytes.Buffer{}
	x.dump(buf, 0)
	return buf.String()
}

func (x *Expr) dump(buf *bytes.Buffer, depth int) {
	if depth > len(dumpPad) {
		depth = len(dumpPad)
	}
	buf.Write(dumpPad[:depth])
	buf.WriteString(x.Describe())
	buf.WriteRune('\n')
	for _, c := range x.sub {
		c.dump(buf, depth+1)
	}
}

// validIdentifier reports whether name is usable as a group name.
func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
