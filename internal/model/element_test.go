package model_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
)

func TestQualifiedNameSkipsMemberships(t *testing.T) {
	a, _ := build(t, "package P { package Q { class R; } }")
	r := find(t, a, "P::Q::R")
	if r.Kind() != metamodel.KClass {
		t.Fatalf("kind: got %s, want Class", r.Kind())
	}
	// The owner chain passes through an owning membership, which must
	// not contribute a segment.
	if r.Owner() == nil || !r.Owner().Is(metamodel.KMembership) {
		t.Fatal("class must be owned via a membership wrapper")
	}
}

func TestRenameRoundTrip(t *testing.T) {
	a, _ := build(t, "package P { package Q { class R; } }")
	q := find(t, a, "P::Q")
	r := find(t, a, "P::Q::R")

	before := q.NS.Lookup("R")
	if before == nil || before.Membership == nil || !before.Membership.Is(metamodel.KMembership) {
		t.Fatal("declared member must carry its membership wrapper")
	}

	r.SetName("R2")

	if got := r.QualifiedName(); got != "P::Q::R2" {
		t.Errorf("qualified name after rename: got %q, want %q", got, "P::Q::R2")
	}
	d := q.NS.Lookup("R2")
	if d == nil || d.Element != r {
		t.Fatal("owning namespace must re-key the renamed member")
	}
	if d.Membership != before.Membership {
		t.Error("rename must keep the membership back-pointer")
	}
	if q.NS.Lookup("R") != nil {
		t.Error("old key must be gone after rename")
	}
}

func TestShortNameLookup(t *testing.T) {
	a, _ := build(t, "package P { class <C> Component; }")
	p := find(t, a, "P")
	c := find(t, a, "P::Component")

	if d := p.NS.Lookup("C"); d == nil || d.Element != c || !d.IsShort {
		t.Error("member must be visible under its short name")
	}
	if c.ShortName() != "C" {
		t.Errorf("short name: got %q", c.ShortName())
	}
}

func TestQuotedNameSanitized(t *testing.T) {
	a, _ := build(t, "package P { class 'two words'; }")
	c := find(t, a, "P::two words")
	if c.RawName() != "'two words'" {
		t.Errorf("raw name must keep quoting, got %q", c.RawName())
	}
	if c.Name() != "two words" {
		t.Errorf("sanitized name: got %q", c.Name())
	}
}

func TestClassifierString(t *testing.T) {
	a, _ := build(t, "class C; datatype D; struct S;")
	testCases := []struct{ name, want string }{
		{"C", "class"},
		{"D", "datatype"},
		{"S", "structure"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := find(t, a, tc.name)
			if got := e.Typ.ClassifierString(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestVisibilityDefaultsPublic(t *testing.T) {
	a, _ := build(t, "package P { class A; private class B; }")
	p := find(t, a, "P")
	if d := p.NS.Lookup("A"); d == nil || d.Visibility != ast.Public {
		t.Error("undecorated member must default to public")
	}
	if d := p.NS.Lookup("B"); d == nil || d.Visibility != ast.Private {
		t.Error("private member must stay private")
	}
}
