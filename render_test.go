package rex

import (
	"testing"

	"github.com/rexlang/rex/syntax"
)

func TestPatternBasics(t *testing.T) {
	cases := []struct {
		x    *Expr
		want string
	}{
		{Seq(Literal("a"), Literal("b")), "ab"},
		{Literal("a.b+c"), `a\.b\+c`},
		{L("shorthand"), "shorthand"},
		{Char('7'), "7"},
		{Chars("ab"), "[ab]"},
		{CharRange('a', 'z'), "[a-z]"},
		{Digit, `\d`},
		{NonWordChar, `\W`},
		{StartString, `\A`},
		{EndString, `\Z`},
		{WordBoundary, `\b`},
		{Start, "^"},
		{End, "$"},
		{AnyChar, "."},
		{Comment("a note"), "(?#a note)"},
		{Literal("a").WithComment("why"), "a(?#why)"},
		{Seq(Start, Literal("go"), End), "^go$"},
	}
	for _, c := range cases {
		if got := mustPattern(t, c.x); got != c.want {
			t.Errorf("pattern = %q, want %q", got, c.want)
		}
	}
}

func TestAlternationGrouping(t *testing.T) {
	alt := Alt(Literal("foo"), Literal("bar"))
	if got, want := mustPattern(t, alt), "foo|bar"; got != want {
		t.Fatalf("top-level pattern = %q, want %q", got, want)
	}
	nested := Seq(Literal("x"), alt)
	if got, want := mustPattern(t, nested), "x(?:foo|bar)"; got != want {
		t.Fatalf("nested pattern = %q, want %q", got, want)
	}
	captured := alt.Capture()
	if got, want := mustPattern(t, captured), "((?:foo|bar))"; got != want {
		t.Fatalf("captured pattern = %q, want %q", got, want)
	}
}

func TestGroupsAndBackrefs(t *testing.T) {
	g := Literal("foo").Capture()
	if got, want := mustPattern(t, Seq(g, RefTo(g))), `(foo)\1`; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}

	named := Literal("foo").As("g")
	if got, want := mustPattern(t, named), "(?P<g>foo)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
	tree := Seq(named, RefName("g"))
	if got, want := mustPattern(t, tree), "(?P<g>foo)(?P=g)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
	dotnet, err := tree.Render(syntax.FlavorDotNet)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if want := `(?<g>foo)\k<g>`; dotnet != want {
		t.Fatalf("dotnet pattern = %q, want %q", dotnet, want)
	}

	byNode := Seq(named, RefTo(named))
	if got, want := mustPattern(t, byNode), "(?P<g>foo)(?P=g)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
	if got, want := mustPattern(t, Seq(Literal("n"), Ref(1))), `n\1`; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
}

func TestIdentityBackrefNeedsContext(t *testing.T) {
	g := Literal("foo").Capture()

	_, err := RefTo(g).Pattern()
	wantCode(t, err, CodeContextRequired)

	// Target group absent from the rendered tree.
	_, err = Seq(Literal("x"), RefTo(g)).Pattern()
	wantCode(t, err, CodeDetachedReference)

	named := Literal("foo").As("g")
	_, err = Seq(Literal("x"), RefTo(named)).Pattern()
	wantCode(t, err, CodeDetachedReference)
}

func TestLookarounds(t *testing.T) {
	cases := []struct {
		x    *Expr
		want string
	}{
		{Literal("foo").FollowedBy(Literal("bar")), "foo(?=bar)"},
		{Literal("foo").NotFollowedBy(Literal("bar")), "foo(?!bar)"},
		{Literal("foo").PrecededBy(Literal("bar")), "(?<=bar)foo"},
		{Literal("foo").NotPrecededBy(Literal("bar")), "(?<!bar)foo"},
		{Literal("foo").FollowedBy(Not(Literal("bar"))), "foo(?!bar)"},
		{Literal("foo").FollowedBy(Not(Not(Literal("bar")))), "foo(?=bar)"},
		{AnythingBut(Literal("foo")), "(?!foo)(?:.)*"},
	}
	for _, c := range cases {
		if got := mustPattern(t, c.x); got != c.want {
			t.Errorf("pattern = %q, want %q", got, c.want)
		}
	}

	_, err := Not(Literal("a")).Pattern()
	wantCode(t, err, CodeInvalidKind)
}

func TestAtomic(t *testing.T) {
	if got, want := mustPattern(t, AtomicGroup(Literal("ab"))), "(?>ab)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
	if got, want := mustPattern(t, Atomic(Literal("ab"))), `(?=(ab))\1`; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
	// The emulation group takes part in numbering.
	tree := Seq(Literal("x").Capture(), Atomic(Literal("ab")), Ref(2))
	if got, want := mustPattern(t, tree), `(x)(?=(ab))\2\2`; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
}

func TestFlagScopes(t *testing.T) {
	foo := Literal("foo")
	cases := []struct {
		x    *Expr
		want string
	}{
		{foo.WithFlags(IgnoreCase), "(?i:foo)"},
		{foo.WithFlags(Multiline, Verbose), "(?mx:foo)"},
		{foo.WithoutFlags(IgnoreCase), "(?-i:foo)"},
		{foo.WithFlags(IgnoreCase).WithoutFlags(Multiline), "(?i-m:foo)"},
		// extending a scope merges rather than nesting
		{foo.WithFlags(IgnoreCase).WithFlags(Multiline), "(?im:foo)"},
		// enable and disable of the same flag cancel out
		{foo.WithFlags(IgnoreCase, Multiline).WithoutFlags(Multiline), "(?i:foo)"},
		{foo.WithoutFlags(Verbose, Multiline).WithFlags(ASCII, Verbose), "(?a-m:foo)"},
		{foo.WithFlags(IgnoreCase).WithoutFlags(IgnoreCase), "(?:foo)"},
	}
	for _, c := range cases {
		if got := mustPattern(t, c.x); got != c.want {
			t.Errorf("pattern = %q, want %q", got, c.want)
		}
	}
}

func TestFlagScopeErrors(t *testing.T) {
	foo := Literal("foo")
	wantCode(t, foo.WithoutFlags(Unicode).Err(), CodeInvalidFlags)
	wantCode(t, foo.WithoutFlags(ASCII).Err(), CodeInvalidFlags)
	wantCode(t, foo.WithFlags(ASCII, Unicode).Err(), CodeInvalidFlags)
	wantCode(t, foo.WithFlags(Flag('z')).Err(), CodeInvalidFlags)

	_, err := foo.WithFlags(ASCII).Render(syntax.FlavorDotNet)
	wantCode(t, err, CodeUnsupportedFlag)
	if _, err := foo.WithFlags(ASCII).Pattern(); err != nil {
		t.Fatalf("pcre flavor should accept the ASCII flag: %v", err)
	}
}

func TestConditionalRendering(t *testing.T) {
	g := Literal("foo").As("g1")
	tree := Seq(g.Optional(), IfName("g1").Then(Literal("bar")).Else(Literal("baz")))
	if got, want := mustPattern(t, tree), "(?P<g1>foo)?(?(g1)bar|baz)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}

	// Without Else the alternative is empty.
	anon := Literal("foo").Capture()
	tree = Seq(anon.Optional(), If(anon).Then(Literal("bar")))
	if got, want := mustPattern(t, tree), "(foo)?(?(1)bar|)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}

	tree = Seq(Literal("x").Capture().Optional(), IfIndex(1).Then(Literal("y")))
	if got, want := mustPattern(t, tree), "(x)?(?(1)y|)"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}

	wantCode(t, If(Literal("x")).Then(Literal("y")).Err(), CodeInvalidKind)
	wantCode(t, Literal("x").Else(Literal("y")).Err(), CodeInvalidKind)
}

func TestQuantifierGrouping(t *testing.T) {
	g := Literal("foo").Capture()
	cases := []struct {
		x    *Expr
		want string
	}{
		{g.Optional(), "(foo)?"},
		{Literal("foo").As("g").Optional(), "(?P<g>foo)?"},
		{Seq(g, RefTo(g).Optional()), `(foo)\1?`},
		{Alt(Literal("a"), Literal("b")).OneOrMore(), "(?:a|b)+"},
		{Chars("ab").Negate().OneOrMore(), "[^ab]+"},
		{Seq(Literal("a"), Literal("b")).Times(2), "(?:ab){2}"},
		{Literal("foo").WithFlags(IgnoreCase).Optional(), "(?:(?i:foo))?"},
	}
	for _, c := range cases {
		if got := mustPattern(t, c.x); got != c.want {
			t.Errorf("pattern = %q, want %q", got, c.want)
		}
	}
}
