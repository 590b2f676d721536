package rex

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/dlclark/regexp2"
)

// PartialPatterns iterates prefixes of the expression in growing order of
// coverage, ending with the expression itself. A literal yields each of its
// character prefixes; a sequence grows child by child, expanding each
// child's own prefixes in turn; repetitions grow one repetition at a time.
// Comments yield nothing. Matching the prefixes in order against an input
// shows where a failing pattern stops matching; see DebugMatch.
func (x *Expr) PartialPatterns() iter.Seq[*Expr] {
	return func(yield func(*Expr) bool) {
		x.partials(yield)
	}
}

func (x *Expr) partials(yield func(*Expr) bool) bool {
	switch x.kind {
	case KindComment:
		return true

	case KindLiteral:
		rs := []rune(x.str)
		for i := 1; i <= len(rs); i++ {
			if !yield(Literal(string(rs[:i]))) {
				return false
			}
		}
		return true

	case KindSequence, KindAlternation:
		var done []*Expr
		for _, c := range x.sub {
			ok := c.partials(func(p *Expr) bool {
				parts := append(slices.Clone(done), p)
				if x.kind == KindSequence {
					return yield(Seq(parts...))
				}
				return yield(Alt(parts...))
			})
			if !ok {
				return false
			}
			done = append(done, c)
		}
		return true

	case KindCapture:
		return x.sub[0].partials(func(p *Expr) bool {
			return yield(p.Capture())
		})
	case KindNamedCapture:
		return x.sub[0].partials(func(p *Expr) bool {
			return yield(p.As(x.str))
		})

	case KindLookahead:
		if !x.sub[0].partials(yield) {
			return false
		}
		return x.sub[1].partials(func(p *Expr) bool {
			return yield(&Expr{kind: KindLookahead, sub: []*Expr{x.sub[0], p}})
		})
	case KindLookbehind:
		empty := Literal("")
		if ok := x.sub[0].partials(func(p *Expr) bool {
			return yield(&Expr{kind: KindLookbehind, sub: []*Expr{p, empty}})
		}); !ok {
			return false
		}
		return x.sub[1].partials(func(p *Expr) bool {
			return yield(&Expr{kind: KindLookbehind, sub: []*Expr{x.sub[0], p}})
		})

	case KindZeroOrMore, KindOneOrMore, KindZeroOrOne:
		if !x.sub[0].partials(yield) {
			return false
		}
		return yield(x)

	case KindRepeatRange:
		if x.m > 0 {
			if !x.sub[0].Times(x.m).partials(yield) {
				return false
			}
		}
		return yield(x)

	case KindRepeat:
		// Strict prefixes of one repetition, used to pad between whole
		// repetitions.
		var prefixes []*Expr
		x.sub[0].partials(func(p *Expr) bool {
			prefixes = append(prefixes, p)
			return true
		})
		if len(prefixes) > 0 {
			prefixes = prefixes[:len(prefixes)-1]
		}
		for _, p := range prefixes {
			if !yield(p) {
				return false
			}
		}
		for i := 1; i < x.m; i++ {
			whole := x.sub[0].Times(i)
			if !yield(whole) {
				return false
			}
			for _, p := range prefixes {
				if !yield(whole.Concat(p)) {
					return false
				}
			}
		}
		return yield(x)
	}
	return yield(x)
}

// DebugMatch matches each partial pattern of the expression against s,
// anchored at the start, writing a line per attempt to w. With showFailures
// set, non-matching prefixes are reported too; otherwise only the matches
// appear. It returns the result of the last attempt, nil when that prefix
// did not match.
func (x *Expr) DebugMatch(w io.Writer, s string, showFailures bool) (*regexp2.Match, error) {
	var match *regexp2.Match
	for p := range x.PartialPatterns() {
		m, err := p.Match(s)
		if err != nil {
			return nil, err
		}
		match = m
		if m == nil {
			if showFailures {
				fmt.Fprintf(w, "FAIL %s\n\n", p)
			}
			continue
		}
		fmt.Fprintf(w, "MATCH in %s:\n    %q\n\n", p, m.String())
	}
	return match, nil
}
