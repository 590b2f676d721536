package rex

// ValidateOption adjusts what Validate enforces.
type ValidateOption func(*validateOptions)

type validateOptions struct {
	allowDuplicateNames     bool
	allowVariableLookbehind bool
}

// AllowDuplicateNames lets two named groups share a name. Engines that
// number duplicate names separately can still compile such patterns; by
// default sharing a name is an error.
func AllowDuplicateNames() ValidateOption {
	return func(o *validateOptions) { o.allowDuplicateNames = true }
}

// AllowVariableLengthLookbehind skips the fixed-length check on lookbehind
// assertions, for engines that support variable-length lookbehind.
func AllowVariableLengthLookbehind() ValidateOption {
	return func(o *validateOptions) { o.allowVariableLookbehind = true }
}

// Validate checks the structural invariants of the tree: no construction
// errors, unique group names, backreferences resolving to groups that occur
// earlier in pattern order, and fixed-length lookbehind assertions. It
// walks depth-first in pattern order, so group numbering matches the
// rendered pattern.
func (x *Expr) Validate(opts ...ValidateOption) error {
	var o validateOptions
	for _, opt := range opts {
		opt(&o)
	}

	named := make(map[string]*Expr)
	numbered := make(map[int]*Expr)
	seen := make(map[*Expr]bool)
	lastIndex := 0
	var failure *Error

	fail := func(e *Error) bool {
		failure = e
		return false
	}

	x.walk(func(n *Expr) bool {
		switch n.kind {
		case KindInvalid:
			return fail(n.err)

		case KindCapture:
			seen[n] = true
			lastIndex++
			numbered[lastIndex] = n

		case KindNamedCapture:
			if _, dup := named[n.str]; dup && !o.allowDuplicateNames {
				return fail(newError(CodeDuplicateName, "group name %q is used more than once", n.str))
			}
			seen[n] = true
			named[n.str] = n
			lastIndex++
			numbered[lastIndex] = n

		case KindIntBackref:
			if n.refIndex > lastIndex {
				return fail(newError(CodeUnresolvedReference,
					"backreference to group %d, but only %d groups occur before it", n.refIndex, lastIndex))
			}

		case KindNamedBackref:
			if _, ok := named[n.refName]; !ok {
				return fail(newError(CodeUnresolvedReference,
					"backreference to group %q, which does not occur before it", n.refName))
			}

		case KindRefBackref, KindNamedRefBackref:
			if !seen[n.target] {
				return fail(newError(CodeUnresolvedReference,
					"backreference to a group that does not occur before it in the pattern"))
			}

		case KindLookbehind:
			if o.allowVariableLookbehind {
				break
			}
			behind := n.sub[0]
			if _, ok := behind.FixedLength(); ok {
				break
			}
			// A by-name or by-index assertion can still be fixed through
			// the group it references.
			resolved := false
			switch behind.kind {
			case KindNamedBackref:
				if g := named[behind.refName]; g != nil {
					_, resolved = g.FixedLength()
				}
			case KindIntBackref:
				if g := numbered[behind.refIndex]; g != nil {
					_, resolved = g.FixedLength()
				}
			}
			if !resolved {
				return fail(newError(CodeVariableLengthAssertion,
					"lookbehind assertion must have a fixed match length"))
			}
		}
		return true
	})

	if failure != nil {
		return failure
	}
	return nil
}
