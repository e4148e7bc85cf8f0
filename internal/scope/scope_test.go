package scope_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/lexer"
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/parser"
	"github.com/sysmod-lang/sysmod/internal/scope"
)

// resolve parses, links and resolves source text with no library.
func resolve(t *testing.T, src string) (*model.Arena, []*diagnostics.Diagnostic) {
	t.Helper()
	a := model.NewArena(model.NewRegistry())
	p := parser.New(lexer.New(src).Tokenize())
	file := p.ParseFile("test.smod")
	if diags := p.Diagnostics(); len(diags) != 0 {
		t.Fatalf("parse: %v", diags[0])
	}
	model.Link(a, file)
	return a, scope.NewResolver(a, nil).Resolve()
}

func find(t *testing.T, a *model.Arena, qualified string) *model.Element {
	t.Helper()
	for _, e := range a.Elements() {
		if e.QualifiedName() == qualified {
			return e
		}
	}
	t.Fatalf("element %q not found", qualified)
	return nil
}

func supertype(t *testing.T, e *model.Element, kind model.EdgeKind) *model.Element {
	t.Helper()
	edges := e.Typ.Specializations().Edges(kind)
	if len(edges) != 1 {
		t.Fatalf("%s: got %d edges of kind %v, want 1", e.QualifiedName(), len(edges), kind)
	}
	return edges[0].Target
}

func TestResolveTyping(t *testing.T) {
	a, diags := resolve(t, `
datatype Real;
class A { feature x : Real; }
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	x := find(t, a, "A::x")
	if got := supertype(t, x, model.EdgeTyping); got != find(t, a, "Real") {
		t.Errorf("typing target: got %s", got.QualifiedName())
	}
}

func TestResolveQualifiedAcrossPackages(t *testing.T) {
	a, diags := resolve(t, `
package P { class X; }
package Q { class Y :> P::X; }
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	y := find(t, a, "Q::Y")
	if got := supertype(t, y, model.EdgeSubclassification); got != find(t, a, "P::X") {
		t.Errorf("supertype: got %s", got.QualifiedName())
	}
}

func TestForwardReference(t *testing.T) {
	// Declaration order must not matter.
	a, diags := resolve(t, `
class Late :> Early;
class Early;
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	late := find(t, a, "Late")
	if supertype(t, late, model.EdgeSubclassification) != find(t, a, "Early") {
		t.Error("forward reference must resolve")
	}
}

func TestInheritedMemberLookup(t *testing.T) {
	a, diags := resolve(t, `
class A { class Inner; }
class B :> A { feature f : Inner; }
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	f := find(t, a, "B::f")
	if supertype(t, f, model.EdgeTyping) != find(t, a, "A::Inner") {
		t.Error("inherited member must be in scope for specializing types")
	}
}

func TestPrivateMembersNotInherited(t *testing.T) {
	_, diags := resolve(t, `
class A { private class Inner; }
class B :> A { feature f : Inner; }
`)
	if len(diags) == 0 {
		t.Fatal("private inherited member must not resolve")
	}
	if diags[0].Code != diagnostics.ErrS001 {
		t.Errorf("code: got %s", diags[0].Code)
	}
}

func TestImportSpecific(t *testing.T) {
	a, diags := resolve(t, `
package P { class X; }
package Q {
	import P::X;
	class Y :> X;
}
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	y := find(t, a, "Q::Y")
	if supertype(t, y, model.EdgeSubclassification) != find(t, a, "P::X") {
		t.Error("specific import must bring the named element into scope")
	}
}

func TestImportWildcardSkipsPrivate(t *testing.T) {
	a, diags := resolve(t, `
package P { class A; private class B; }
package Q {
	import P::*;
	class UsesA :> A;
	class UsesB :> B;
}
`)
	if len(diags) == 0 {
		t.Fatal("private member must not be importable")
	}
	usesA := find(t, a, "Q::UsesA")
	if supertype(t, usesA, model.EdgeSubclassification) != find(t, a, "P::A") {
		t.Error("public member must be imported")
	}
	usesB := find(t, a, "Q::UsesB")
	if got := len(usesB.Typ.Specializations().Edges(model.EdgeAny)); got != 0 {
		t.Errorf("private member must stay unresolved, got %d edges", got)
	}
}

func TestImportRecursiveForms(t *testing.T) {
	a, diags := resolve(t, `
package P { class X; package M { class C; } }
package Q { import P::**; }
package R { import P::*::**; }
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	q := find(t, a, "Q")
	for _, name := range []string{"P", "X", "M", "C"} {
		if d := q.NS.Lookup(name); d == nil || !d.Imported {
			t.Errorf("recursive import must make %q visible", name)
		}
	}
	r := find(t, a, "R")
	if r.NS.Lookup("P") != nil {
		t.Error("exclusive recursive import must not import the root namespace itself")
	}
	for _, name := range []string{"X", "M", "C"} {
		if d := r.NS.Lookup(name); d == nil || !d.Imported {
			t.Errorf("exclusive recursive import must make %q visible", name)
		}
	}
}

func TestImportCycleSettles(t *testing.T) {
	a, diags := resolve(t, `
package A { import B::*; class X; }
package B { import A::*; class Y; }
`)
	if len(diags) != 0 {
		t.Fatalf("mutual imports must settle cleanly, got %v", diags[0])
	}
	if d := find(t, a, "A").NS.Lookup("Y"); d == nil || !d.Imported {
		t.Error("A must see B's members")
	}
	if d := find(t, a, "B").NS.Lookup("X"); d == nil || !d.Imported {
		t.Error("B must see A's members")
	}
}

func TestImportsNotReexported(t *testing.T) {
	_, diags := resolve(t, `
package P { class X; }
package Q { import P::*; }
package R {
	import Q::*;
	class Y :> X;
}
`)
	if len(diags) == 0 {
		t.Fatal("imported names must not be visible through a further import")
	}
}

func TestAliasFollowed(t *testing.T) {
	a, diags := resolve(t, `
package P {
	class X;
	alias Y for X;
	class Z :> Y;
}
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	z := find(t, a, "P::Z")
	if supertype(t, z, model.EdgeSubclassification) != find(t, a, "P::X") {
		t.Error("alias must resolve to its final target")
	}
}

func TestAliasCycleTerminates(t *testing.T) {
	a, diags := resolve(t, `
package P {
	alias A for B;
	alias B for A;
	class C :> A;
}
`)
	if len(diags) == 0 {
		t.Fatal("cyclic alias chain must report an error")
	}
	c := find(t, a, "P::C")
	if got := len(c.Typ.Specializations().Edges(model.EdgeAny)); got != 0 {
		t.Errorf("cyclic alias must leave the reference unresolved, got %d edges", got)
	}
}

func TestRedefinitionFindsInherited(t *testing.T) {
	a, diags := resolve(t, `
class A { feature a; }
class B :> A { feature a :>> a; }
`)
	if len(diags) != 0 {
		t.Fatalf("diagnostics: %v", diags[0])
	}
	bA := find(t, a, "B::a")
	if supertype(t, bA, model.EdgeRedefinition) != find(t, a, "A::a") {
		t.Error("redefinition must target the inherited feature, not itself")
	}
}

func TestMutualSpecializationSettles(t *testing.T) {
	a, diags := resolve(t, `
class A :> B;
class B :> A;
`)
	cycles := 0
	for _, d := range diags {
		if d.Code == diagnostics.ErrS005 && d.Severity == diagnostics.Warning {
			cycles++
		}
	}
	if cycles != 2 {
		t.Errorf("cycle warnings: got %d, want one per participant", cycles)
	}
	aEl := find(t, a, "A")
	bEl := find(t, a, "B")
	if supertype(t, aEl, model.EdgeSubclassification) != bEl {
		t.Error("A must still record its explicit edge")
	}
	if supertype(t, bEl, model.EdgeSubclassification) != aEl {
		t.Error("B must still record its explicit edge")
	}
}

func TestDuplicateMemberWarning(t *testing.T) {
	_, diags := resolve(t, `
package P {
	class X;
	class X;
}
`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != diagnostics.ErrS002 || diags[0].Severity != diagnostics.Warning {
		t.Errorf("got %s/%v", diags[0].Code, diags[0].Severity)
	}
}

func TestUnresolvedReferenceDiagnostic(t *testing.T) {
	_, diags := resolve(t, `class A :> Missing;`)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Code != diagnostics.ErrS001 || diags[0].Severity != diagnostics.Error {
		t.Errorf("got %s/%v", diags[0].Code, diags[0].Severity)
	}
}

func TestPartialResolutionKeepsFound(t *testing.T) {
	a, diags := resolve(t, `
package P { class X; }
class A :> P::Nope;
`)
	if len(diags) == 0 {
		t.Fatal("want a diagnostic for the failing segment")
	}
	aEl := find(t, a, "A")
	var ref *model.Reference
	for _, c := range aEl.Children() {
		if c.Rel != nil && c.Rel.Reference() != nil {
			ref = c.Rel.Reference()
		}
	}
	if ref == nil {
		t.Fatal("relationship reference missing")
	}
	if ref.Target() != nil {
		t.Error("target must stay nil")
	}
	if found := ref.Found(); len(found) != 1 || found[0] != find(t, a, "P") {
		t.Errorf("intermediate segments must be kept, got %v", found)
	}
}
