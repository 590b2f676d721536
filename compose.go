package rex

// Seq concatenates parts in order. Nested sequences are flattened into a
// single level, so Seq(Seq(a, b), c) has three direct children.
func Seq(parts ...*Expr) *Expr {
	return &Expr{kind: KindSequence, sub: flatten(KindSequence, parts)}
}

// Alt matches any one of parts. Nested alternations are flattened like
// sequences. Unlike Or, Alt never merges class-acceptable operands into a
// character class.
func Alt(parts ...*Expr) *Expr {
	return &Expr{kind: KindAlternation, sub: flatten(KindAlternation, parts)}
}

func flatten(k Kind, parts []*Expr) []*Expr {
	out := make([]*Expr, 0, len(parts))
	for _, p := range parts {
		if p.kind == k {
			out = append(out, p.sub...)
		} else {
			out = append(out, p)
		}
	}
	return out
}

// Concat returns the sequence of x followed by parts.
func (x *Expr) Concat(parts ...*Expr) *Expr {
	return Seq(append([]*Expr{x}, parts...)...)
}

// Or returns an expression matching x or any of others. When both operands
// are acceptable inside a character class (sets, ranges, classes, shorthand
// classes, single-character literals on the right) the result is a merged
// class rather than an alternation.
func (x *Expr) Or(others ...*Expr) *Expr {
	out := x
	for _, o := range others {
		out = or2(out, o)
	}
	return out
}

func or2(x, y *Expr) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	if y.kind == KindInvalid {
		return y
	}
	switch x.kind {
	case KindCharSet:
		if y.kind == KindCharSet {
			return &Expr{kind: KindCharSet, set: x.set.Union(y.set)}
		}
		if r, ok := singleRune(y); ok {
			return &Expr{kind: KindCharSet, set: x.set.Union(runeSet(r))}
		}
		if classAcceptable(y) {
			return Class(x, y)
		}
	case KindCharRange:
		if y.kind == KindCharRange {
			if merged, ok := x.rng.Merge(y.rng); ok {
				return &Expr{kind: KindCharRange, rng: merged}
			}
			return Class(x, y)
		}
		if r, ok := singleRune(y); ok {
			if x.rng.Contains(r) {
				return x
			}
			return Class(x, Chars(string(r)))
		}
		if classAcceptable(y) {
			return Class(x, y)
		}
	case KindCharClass, KindShorthand:
		if classAcceptable(y) {
			return Class(x, y)
		}
		if r, ok := singleRune(y); ok {
			return Class(x, Chars(string(r)))
		}
	}
	return Alt(x, y)
}

func singleRune(x *Expr) (rune, bool) {
	if x.kind != KindLiteral {
		return 0, false
	}
	rs := []rune(x.str)
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}

func classAcceptable(x *Expr) bool {
	switch x.kind {
	case KindCharSet, KindCharRange, KindCharClass, KindShorthand:
		return true
	}
	return false
}

// FollowedBy asserts that ahead matches immediately after x without
// consuming it: x(?=ahead).
func (x *Expr) FollowedBy(ahead *Expr) *Expr {
	return &Expr{kind: KindLookahead, sub: []*Expr{x, ahead}}
}

// NotFollowedBy asserts that ahead does not match after x: x(?!ahead).
func (x *Expr) NotFollowedBy(ahead *Expr) *Expr {
	return &Expr{kind: KindLookahead, sub: []*Expr{x, Not(ahead)}}
}

// PrecededBy asserts that behind matches immediately before x:
// (?<=behind)x. The assertion must have a fixed match length to validate.
func (x *Expr) PrecededBy(behind *Expr) *Expr {
	return &Expr{kind: KindLookbehind, sub: []*Expr{behind, x}}
}

// NotPrecededBy asserts that behind does not match before x: (?<!behind)x.
func (x *Expr) NotPrecededBy(behind *Expr) *Expr {
	return &Expr{kind: KindLookbehind, sub: []*Expr{Not(behind), x}}
}

// Not marks x as the negative half of a lookaround. Applying Not twice
// returns the original expression. A negative assertion is only renderable
// inside a lookahead or lookbehind.
func Not(x *Expr) *Expr {
	if x.kind == KindNegAssert {
		return x.sub[0]
	}
	return &Expr{kind: KindNegAssert, sub: []*Expr{x}}
}

// AnythingBut matches any string except those matched by x, as a negative
// lookahead followed by an unconstrained consumer: (?!x)(?:.)*
func AnythingBut(x *Expr) *Expr {
	return Seq(Literal("").FollowedBy(Not(x)), AnyChar.ZeroOrMore())
}

// WithComment appends a zero-width (?#text) comment after x.
func (x *Expr) WithComment(text string) *Expr {
	return Seq(x, Comment(text))
}
