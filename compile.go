package rex

import (
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/rexlang/rex/syntax"
)

// Compile validates the tree, renders it for the regexp2 engine, and
// returns a Matcher over it. Whole-pattern flags translate to engine
// options; ASCII and Locale have no engine equivalent and are rejected,
// Unicode is the engine default and is accepted as a no-op.
func (x *Expr) Compile(flags ...Flag) (*Matcher, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}
	opts, perr := engineOptions(flags)
	if perr != nil {
		return nil, perr
	}
	pattern, err := x.Render(syntax.FlavorDotNet)
	if err != nil {
		return nil, err
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Matcher{expr: x, pattern: pattern, opts: opts, search: re}, nil
}

// MustCompile is Compile but panics on error, for patterns known good at
// program start.
func (x *Expr) MustCompile(flags ...Flag) *Matcher {
	m, err := x.Compile(flags...)
	if err != nil {
		panic("rex: Compile(" + x.String() + "): " + err.Error())
	}
	return m
}

// Matcher returns the flagless compiled matcher for the tree, compiling it
// on first use and memoizing the result. Concurrent first calls may compile
// twice; all callers still observe a single published matcher.
func (x *Expr) Matcher() (*Matcher, error) {
	if m := x.compiled.Load(); m != nil {
		return m, nil
	}
	m, err := x.Compile()
	if err != nil {
		return nil, err
	}
	if !x.compiled.CompareAndSwap(nil, m) {
		return x.compiled.Load(), nil
	}
	return m, nil
}

func engineOptions(flags []Flag) (regexp2.RegexOptions, *Error) {
	var opts regexp2.RegexOptions
	for _, f := range flags {
		switch f {
		case IgnoreCase:
			opts |= regexp2.IgnoreCase
		case Multiline:
			opts |= regexp2.Multiline
		case DotAll:
			opts |= regexp2.Singleline
		case Verbose:
			opts |= regexp2.IgnorePatternWhitespace
		case Unicode:
			// engine default
		case ASCII, Locale:
			return 0, newError(CodeUnsupportedFlag,
				"flag %s is not supported by the matching engine", syntax.FlagName(rune(f)))
		default:
			return 0, newError(CodeInvalidFlags, "unknown flag %q", rune(f))
		}
	}
	return opts, nil
}

// Matcher wraps a compiled engine pattern. The anchored variants used by
// Match and FullMatch compile lazily on first use.
type Matcher struct {
	expr    *Expr
	pattern string
	opts    regexp2.RegexOptions

	search *regexp2.Regexp

	matchOnce sync.Once
	matchRe   *regexp2.Regexp
	matchErr  error

	fullOnce sync.Once
	fullRe   *regexp2.Regexp
	fullErr  error
}

// Expr returns the expression tree the matcher was compiled from.
func (m *Matcher) Expr() *Expr { return m.expr }

// Pattern returns the engine-flavor pattern text the matcher runs.
func (m *Matcher) Pattern() string { return m.pattern }

func (m *Matcher) String() string { return m.pattern }

func (m *Matcher) matchRegexp() (*regexp2.Regexp, error) {
	m.matchOnce.Do(func() {
		m.matchRe, m.matchErr = regexp2.Compile(`\A(?:`+m.pattern+`)`, m.opts)
	})
	return m.matchRe, m.matchErr
}

func (m *Matcher) fullRegexp() (*regexp2.Regexp, error) {
	m.fullOnce.Do(func() {
		m.fullRe, m.fullErr = regexp2.Compile(`\A(?:`+m.pattern+`)\z`, m.opts)
	})
	return m.fullRe, m.fullErr
}
