package rex

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rexlang/rex/syntax"
)

// Pattern renders the tree to pattern text in the default (PCRE) flavor.
func (x *Expr) Pattern() (string, error) {
	return x.Render(syntax.FlavorPCRE)
}

// Render renders the tree to pattern text in the given flavor. Rendering
// fails if the tree carries a construction error, if an identity
// backreference's target is not part of the tree, or if a scoped flag has
// no spelling in the flavor.
func (x *Expr) Render(f syntax.Flavor) (string, error) {
	var b strings.Builder
	if err := render(&b, x, nil, f); err != nil {
		return "", err
	}
	return b.String(), nil
}

// render writes the pattern for x. ctx is the outermost node of the tree
// being rendered, used to resolve identity backreferences to group numbers
// and names; nil means x is the outermost node itself.
func render(b *strings.Builder, x, ctx *Expr, f syntax.Flavor) *Error {
	in := ctx
	if in == nil {
		in = x
	}
	switch x.kind {
	case KindInvalid:
		return x.err

	case KindLiteral:
		b.WriteString(syntax.Escape(x.str))
	case KindCharSet:
		b.WriteString("[" + x.set.ClassBody() + "]")
	case KindCharRange:
		b.WriteString("[" + x.rng.ClassBody() + "]")
	case KindCharClass:
		b.WriteString("[" + x.classBody() + "]")
	case KindNegatedClass:
		b.WriteString("[^" + x.classBody() + "]")
	case KindShorthand, KindAnchor:
		b.WriteByte('\\')
		b.WriteRune(x.ch)
	case KindSymbol:
		b.WriteString(x.str)
	case KindComment:
		b.WriteString("(?#" + x.str + ")")

	case KindSequence:
		for _, c := range x.sub {
			if err := render(b, c, in, f); err != nil {
				return err
			}
		}
	case KindAlternation:
		// Bare at the top level, grouped when nested.
		nested := ctx != nil
		if nested {
			b.WriteString("(?:")
		}
		for i, c := range x.sub {
			if i > 0 {
				b.WriteByte('|')
			}
			if err := render(b, c, in, f); err != nil {
				return err
			}
		}
		if nested {
			b.WriteByte(')')
		}

	case KindRepeat:
		if err := renderQuant(b, x.sub[0], in, f); err != nil {
			return err
		}
		b.WriteString("{" + strconv.Itoa(x.m) + "}")
	case KindRepeatRange:
		if err := renderQuant(b, x.sub[0], in, f); err != nil {
			return err
		}
		b.WriteString("{" + strconv.Itoa(x.m) + ",")
		if x.n != Unbounded {
			b.WriteString(strconv.Itoa(x.n))
		}
		b.WriteByte('}')
	case KindZeroOrMore, KindOneOrMore, KindZeroOrOne:
		if err := renderQuant(b, x.sub[0], in, f); err != nil {
			return err
		}
		switch x.kind {
		case KindZeroOrMore:
			b.WriteByte('*')
		case KindOneOrMore:
			b.WriteByte('+')
		default:
			b.WriteByte('?')
		}

	case KindCapture:
		b.WriteByte('(')
		if err := render(b, x.sub[0], in, f); err != nil {
			return err
		}
		b.WriteByte(')')
	case KindNamedCapture:
		var body strings.Builder
		if err := render(&body, x.sub[0], in, f); err != nil {
			return err
		}
		b.WriteString(f.NamedGroup(x.str, body.String()))

	case KindLookahead:
		if err := render(b, x.sub[0], in, f); err != nil {
			return err
		}
		op, ahead := "=", x.sub[1]
		if ahead.kind == KindNegAssert {
			op, ahead = "!", ahead.sub[0]
		}
		b.WriteString("(?" + op)
		if err := render(b, ahead, in, f); err != nil {
			return err
		}
		b.WriteByte(')')
	case KindLookbehind:
		op, behind := "=", x.sub[0]
		if behind.kind == KindNegAssert {
			op, behind = "!", behind.sub[0]
		}
		b.WriteString("(?<" + op)
		if err := render(b, behind, in, f); err != nil {
			return err
		}
		b.WriteByte(')')
		if err := render(b, x.sub[1], in, f); err != nil {
			return err
		}
	case KindNegAssert:
		return newError(CodeInvalidKind, "negative assertion is only renderable inside a lookaround")

	case KindFlagScope:
		for _, c := range x.posFlags + x.negFlags {
			if !f.SupportsFlag(c) {
				return newError(CodeUnsupportedFlag,
					"flag %s has no inline spelling in the %s flavor", syntax.FlagName(c), f)
			}
		}
		b.WriteString("(?" + syntax.ScopePrefix(x.posFlags, x.negFlags) + ":")
		if err := render(b, x.sub[0], in, f); err != nil {
			return err
		}
		b.WriteByte(')')
	case KindAtomicGroup:
		b.WriteString("(?>")
		if err := render(b, x.sub[0], in, f); err != nil {
			return err
		}
		b.WriteByte(')')

	case KindIntBackref:
		b.WriteString(`\` + strconv.Itoa(x.refIndex))
	case KindNamedBackref:
		b.WriteString(f.NamedBackref(x.refName))
	case KindRefBackref:
		if ctx == nil {
			return newError(CodeContextRequired,
				"backreference to an anonymous group can only be rendered inside a containing pattern")
		}
		idx := groupNumberIn(ctx, x.target)
		if idx == 0 {
			return newError(CodeDetachedReference,
				"backreference target group is not part of the pattern")
		}
		b.WriteString(`\` + strconv.Itoa(idx))
	case KindNamedRefBackref:
		if ctx == nil {
			return newError(CodeContextRequired,
				"backreference to a group node can only be rendered inside a containing pattern")
		}
		if !containsGroup(ctx, x.target) {
			return newError(CodeDetachedReference,
				"backreference target group %q is not part of the pattern", x.target.str)
		}
		b.WriteString(f.NamedBackref(x.target.str))

	case KindConditional:
		ref, err := conditionalRef(x.sub[0], in, f)
		if err != nil {
			return err
		}
		b.WriteString("(?(" + ref + ")")
		if err := render(b, x.sub[1], in, f); err != nil {
			return err
		}
		b.WriteByte('|')
		if err := render(b, x.sub[2], in, f); err != nil {
			return err
		}
		b.WriteByte(')')

	default:
		return newError(CodeInvalidKind, "cannot render %s", x.kind)
	}
	return nil
}

// renderQuant renders x so that a following quantifier binds to the whole
// expression, adding a non-capturing group when the bare pattern would not
// quantify as a unit.
func renderQuant(b *strings.Builder, x, ctx *Expr, f syntax.Flavor) *Error {
	if !quantifiesAsUnit(x) {
		b.WriteString("(?:")
		if err := render(b, x, ctx, f); err != nil {
			return err
		}
		b.WriteByte(')')
		return nil
	}
	return render(b, x, ctx, f)
}

// quantifiesAsUnit reports whether the rendered pattern of x is a single
// quantifiable token: one character, a bracket class, a group, or a
// backreference. Alternations render grouped when nested, so they qualify.
func quantifiesAsUnit(x *Expr) bool {
	switch x.kind {
	case KindLiteral:
		return utf8.RuneCountInString(x.str) == 1
	case KindCharSet, KindCharRange, KindCharClass, KindNegatedClass,
		KindShorthand, KindAnchor,
		KindAlternation, KindCapture, KindNamedCapture,
		KindIntBackref, KindNamedBackref, KindRefBackref, KindNamedRefBackref,
		KindConditional:
		return true
	}
	return false
}

// groupNumberIn returns the 1-based number of group within the tree rooted
// at ctx, or 0 when the group is not in the tree.
func groupNumberIn(ctx, group *Expr) int {
	i := 0
	for g := range ctx.CaptureGroups() {
		i++
		if g == group {
			return i
		}
	}
	return 0
}

func containsGroup(ctx, group *Expr) bool {
	return groupNumberIn(ctx, group) != 0
}

func conditionalRef(ref, in *Expr, f syntax.Flavor) (string, *Error) {
	switch ref.kind {
	case KindInvalid:
		return "", ref.err
	case KindIntBackref:
		return strconv.Itoa(ref.refIndex), nil
	case KindNamedBackref:
		return ref.refName, nil
	case KindRefBackref:
		idx := groupNumberIn(in, ref.target)
		if idx == 0 {
			return "", newError(CodeDetachedReference,
				"conditional reference group is not part of the pattern")
		}
		return strconv.Itoa(idx), nil
	case KindNamedRefBackref:
		if !containsGroup(in, ref.target) {
			return "", newError(CodeDetachedReference,
				"conditional reference group %q is not part of the pattern", ref.target.str)
		}
		return ref.target.str, nil
	}
	return "", newError(CodeInvalidKind, "conditional reference must be a backreference; got %s", ref.kind)
}
