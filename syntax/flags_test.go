package syntax

import "testing"

func TestSortFlags(t *testing.T) {
	if got, want := SortFlags("xmi"), "imx"; got != want {
		t.Errorf("SortFlags(\"xmi\") = %q, want %q", got, want)
	}
	if got, want := SortFlags("iii"), "i"; got != want {
		t.Errorf("SortFlags(\"iii\") = %q, want %q", got, want)
	}
	if got, want := SortFlags("aL"), "La"; got != want {
		// rune order: 'L' sorts before lowercase
		t.Errorf("SortFlags(\"aL\") = %q, want %q", got, want)
	}
}

func TestScopePrefix(t *testing.T) {
	cases := []struct {
		pos, neg, want string
	}{
		{"i", "", "i"},
		{"mi", "", "im"},
		{"i", "m", "i-m"},
		{"", "xm", "-mx"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := ScopePrefix(c.pos, c.neg); got != c.want {
			t.Errorf("ScopePrefix(%q, %q) = %q, want %q", c.pos, c.neg, got, c.want)
		}
	}
}

func TestFlavorSpellings(t *testing.T) {
	if got, want := FlavorPCRE.NamedGroup("g", "x"), "(?P<g>x)"; got != want {
		t.Errorf("pcre NamedGroup = %q, want %q", got, want)
	}
	if got, want := FlavorDotNet.NamedGroup("g", "x"), "(?<g>x)"; got != want {
		t.Errorf("dotnet NamedGroup = %q, want %q", got, want)
	}
	if got, want := FlavorPCRE.NamedBackref("g"), "(?P=g)"; got != want {
		t.Errorf("pcre NamedBackref = %q, want %q", got, want)
	}
	if got, want := FlavorDotNet.NamedBackref("g"), `\k<g>`; got != want {
		t.Errorf("dotnet NamedBackref = %q, want %q", got, want)
	}
	for _, c := range "aiLmsux" {
		if !FlavorPCRE.SupportsFlag(c) {
			t.Errorf("pcre SupportsFlag(%q) = false, want true", c)
		}
	}
	for _, c := range "imsx" {
		if !FlavorDotNet.SupportsFlag(c) {
			t.Errorf("dotnet SupportsFlag(%q) = false, want true", c)
		}
	}
	for _, c := range "aLu" {
		if FlavorDotNet.SupportsFlag(c) {
			t.Errorf("dotnet SupportsFlag(%q) = true, want false", c)
		}
	}
}
