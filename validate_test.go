package rex

import "testing"

func TestValidateDuplicateNames(t *testing.T) {
	tree := Seq(Literal("a").As("x"), Literal("b").As("x"))
	wantCode(t, tree.Validate(), CodeDuplicateName)

	if err := tree.Validate(AllowDuplicateNames()); err != nil {
		t.Fatalf("AllowDuplicateNames: unexpected error: %v", err)
	}

	distinct := Seq(Literal("a").As("x"), Literal("b").As("y"))
	if err := distinct.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBackrefOrder(t *testing.T) {
	g := Literal("foo").Capture()

	if err := Seq(g, RefTo(g)).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCode(t, Seq(RefTo(g), g).Validate(), CodeUnresolvedReference)

	named := Literal("foo").As("g")
	if err := Seq(named, RefName("g")).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCode(t, Seq(RefName("g"), named).Validate(), CodeUnresolvedReference)
	wantCode(t, Seq(named, RefName("other")).Validate(), CodeUnresolvedReference)

	if err := Seq(g, Ref(1)).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCode(t, Seq(g, Ref(2)).Validate(), CodeUnresolvedReference)
	wantCode(t, Seq(Ref(1), g).Validate(), CodeUnresolvedReference)
}

func TestValidateLookbehindLength(t *testing.T) {
	if err := Literal("x").PrecededBy(Literal("foo")).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	variable := Literal("x").PrecededBy(Alt(Literal("foo"), Literal("fo")))
	wantCode(t, variable.Validate(), CodeVariableLengthAssertion)
	if err := variable.Validate(AllowVariableLengthLookbehind()); err != nil {
		t.Fatalf("AllowVariableLengthLookbehind: unexpected error: %v", err)
	}

	// Same-length branches are fine.
	if err := Literal("x").PrecededBy(Alt(Literal("ab"), Literal("cd"))).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCode(t, Literal("x").PrecededBy(Literal("a").OneOrMore()).Validate(), CodeVariableLengthAssertion)
	if err := Literal("x").NotPrecededBy(Literal("ab")).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateLookbehindBackrefLength(t *testing.T) {
	// A by-name assertion resolves its length through the referenced group.
	fixed := Literal("ab").As("p")
	if err := Seq(fixed, Literal("x").PrecededBy(RefName("p"))).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Seq(fixed.Capture(), Literal("x").PrecededBy(Ref(1))).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := Literal("ab").Capture()
	if err := Seq(g, Literal("x").PrecededBy(RefTo(g))).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	varGroup := Alt(Literal("a"), Literal("ab")).Capture()
	wantCode(t,
		Seq(varGroup, Literal("x").PrecededBy(RefTo(varGroup))).Validate(),
		CodeVariableLengthAssertion)
}

func TestValidateSurfacesConstructionErrors(t *testing.T) {
	tree := Seq(Literal("a"), Chars("b").Or(CharRange('z', 'a')))
	wantCode(t, tree.Validate(), CodeInvalidCharRange)
}

func TestValidateScenarioTree(t *testing.T) {
	// A bigger tree exercising numbering across nesting.
	inner := Literal("b").As("inner")
	tree := Seq(
		Seq(Literal("a"), inner).Capture(),
		Literal("c").Capture(),
		Ref(3),
	)
	// Groups in pattern order: outer (1), inner (2), (c) (3).
	if err := tree.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := Seq(
		Seq(Literal("a"), inner).Capture(),
		Ref(3),
		Literal("c").Capture(),
	)
	wantCode(t, bad.Validate(), CodeUnresolvedReference)
}
