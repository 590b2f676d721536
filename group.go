package rex

// Capture wraps x in an anonymous capture group. Each call creates a
// distinct group; the group's identity is the returned node, which RefTo
// and If accept directly.
func (x *Expr) Capture() *Expr {
	if x.kind == KindInvalid {
		return x
	}
	return &Expr{kind: KindCapture, sub: []*Expr{x}}
}

// As wraps x in a capture group named name. The name must be a letter or
// underscore followed by letters, digits, or underscores.
func (x *Expr) As(name string) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	if !validIdentifier(name) {
		return invalid(newError(CodeInvalidGroupName, "invalid group name %q", name))
	}
	return &Expr{kind: KindNamedCapture, str: name, sub: []*Expr{x}}
}

// Ref matches the text captured by the n-th group of the containing
// pattern, counting from 1 in order of opening parentheses.
func Ref(n int) *Expr {
	if n < 1 {
		return invalid(newError(CodeInvalidGroupName, "group index must be positive; got %d", n))
	}
	return &Expr{kind: KindIntBackref, refIndex: n}
}

// RefName matches the text captured by the group named name.
func RefName(name string) *Expr {
	if !validIdentifier(name) {
		return invalid(newError(CodeInvalidGroupName, "invalid group name %q", name))
	}
	return &Expr{kind: KindNamedBackref, refName: name}
}

// RefTo matches the text captured by the given group node, wherever it ends
// up in the containing pattern. The reference keeps tracking the group
// through renames, because it points at the node rather than at a name or
// index. Rendering resolves it against the enclosing tree, so a RefTo
// backreference cannot be rendered standalone.
func RefTo(group *Expr) *Expr {
	switch group.kind {
	case KindInvalid:
		return group
	case KindCapture:
		return &Expr{kind: KindRefBackref, target: group}
	case KindNamedCapture:
		return &Expr{kind: KindNamedRefBackref, target: group}
	}
	return invalid(newError(CodeInvalidKind, "RefTo requires a capture group; got %s", group.kind))
}

// IfRef is the head of a conditional expression under construction; see If.
type IfRef struct {
	ref *Expr
}

// If starts a conditional on whether ref participated in the match so far.
// ref may be a capture group node or any backreference. Complete the
// conditional with Then, and optionally Else:
//
//	g := Literal("foo").Capture()
//	p := Seq(g.Optional(), If(g).Then(Literal("bar")))
func If(ref *Expr) IfRef {
	switch ref.kind {
	case KindCapture, KindNamedCapture:
		return IfRef{ref: RefTo(ref)}
	case KindIntBackref, KindNamedBackref, KindRefBackref, KindNamedRefBackref, KindInvalid:
		return IfRef{ref: ref}
	}
	return IfRef{ref: invalid(newError(CodeInvalidKind,
		"conditional requires a capture group or backreference; got %s", ref.kind))}
}

// IfName starts a conditional on the group named name.
func IfName(name string) IfRef {
	return IfRef{ref: RefName(name)}
}

// IfIndex starts a conditional on the n-th group.
func IfIndex(n int) IfRef {
	return IfRef{ref: Ref(n)}
}

// Then completes the conditional with the branch taken when the referenced
// group matched. The alternative branch is empty unless set with Else.
func (c IfRef) Then(then *Expr) *Expr {
	return &Expr{kind: KindConditional, sub: []*Expr{c.ref, then, Literal("")}}
}

// Else sets the branch taken when the referenced group did not match. It is
// only valid on a conditional built with Then.
func (x *Expr) Else(els *Expr) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	if x.kind != KindConditional {
		return invalid(newError(CodeInvalidKind, "Else requires a conditional; got %s", x.kind))
	}
	return &Expr{kind: KindConditional, sub: []*Expr{x.sub[0], x.sub[1], els}}
}

// Atomic matches x without backtracking into it once it has matched, using
// only widely portable syntax: the expression is captured inside a
// lookahead and then consumed by a backreference, (?=(x))\1. The extra
// group participates in numbering.
func Atomic(x *Expr) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	g := x.Capture()
	return Seq(Literal("").FollowedBy(g), RefTo(g))
}

// AtomicGroup matches x without backtracking using the native (?>x) syntax.
// Not every engine accepts it; Atomic is the portable form.
func AtomicGroup(x *Expr) *Expr {
	if x.kind == KindInvalid {
		return x
	}
	return &Expr{kind: KindAtomicGroup, sub: []*Expr{x}}
}
