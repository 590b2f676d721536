package rex

import "testing"

func TestRepetitionPatterns(t *testing.T) {
	foo := Literal("foo")
	cases := []struct {
		x    *Expr
		want string
	}{
		{foo.Times(3), "(?:foo){3}"},
		{Literal("a").Times(3), "a{3}"},
		{Chars("ab").Times(2), "[ab]{2}"},
		{foo.Times(0), "(?:foo){0}"},
		{foo.Optional(), "(?:foo)?"},
		{Literal("a").Optional(), "a?"},
		{foo.ZeroOrMore(), "(?:foo)*"},
		{foo.OneOrMore(), "(?:foo)+"},
		{AnyChar.ZeroOrMore(), "(?:.)*"},
		{Digit.OneOrMore(), `\d+`},
		{foo.Between(2, 5), "(?:foo){2,5}"},
		{foo.Between(2, Unbounded), "(?:foo){2,}"},
		{foo.AtLeast(2), "(?:foo){2,}"},
		{foo.AtMost(3), "(?:foo){0,3}"},
		{Literal("x").As("g").Times(2), "(?P<g>x){2}"},
	}
	for _, c := range cases {
		if got := mustPattern(t, c.x); got != c.want {
			t.Errorf("pattern = %q, want %q", got, c.want)
		}
	}
}

func TestRepeatDispatch(t *testing.T) {
	foo := Literal("foo")
	cases := []struct {
		x    *Expr
		want string
	}{
		{foo.Repeat(0, Unbounded, 1), "(?:foo)*"},
		{foo.Repeat(1, Unbounded, 1), "(?:foo)+"},
		{foo.Repeat(2, Unbounded, 1), "(?:foo){2,}"},
		{foo.Repeat(0, 1, 1), "(?:foo)?"},
		{foo.Repeat(2, 2, 1), "(?:foo){2}"},
		{foo.Repeat(2, 5, 1), "(?:foo){2,5}"},
		// step > 1 decomposes into whole blocks
		{foo.Repeat(2, 6, 2), "(?:foo){2}(?:(?:foo){2}){0,2}"},
		{foo.Repeat(0, 6, 2), "(?:(?:foo){2}){0,3}"},
		{foo.Repeat(0, Unbounded, 2), "(?:(?:foo){2})*"},
		{foo.Repeat(3, Unbounded, 3), "(?:foo){3}(?:(?:foo){3})*"},
	}
	for _, c := range cases {
		if got := mustPattern(t, c.x); got != c.want {
			t.Errorf("pattern = %q, want %q", got, c.want)
		}
	}
}

func TestTimesMultiplies(t *testing.T) {
	x := Literal("foo").Times(2).Times(3)
	if got, want := mustPattern(t, x), "(?:foo){6}"; got != want {
		t.Fatalf("pattern = %q, want %q", got, want)
	}
}

func TestRepetitionErrors(t *testing.T) {
	foo := Literal("foo")
	wantCode(t, foo.Times(-1).Err(), CodeInvalidRepetition)
	wantCode(t, foo.Repeat(-1, 3, 1).Err(), CodeInvalidRepetition)
	wantCode(t, foo.Repeat(0, -2, 1).Err(), CodeInvalidRepetition)
	wantCode(t, foo.Repeat(5, 3, 1).Err(), CodeInvalidRepetition)
	wantCode(t, foo.Repeat(0, 3, 0).Err(), CodeInvalidRepetition)
}
