package model_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/model"
)

func TestAllFeaturesInheritance(t *testing.T) {
	a, _ := buildResolved(t, `
class A { feature x; feature y; }
class B :> A { feature z; }
`)
	b := find(t, a, "B")
	feats := b.AllFeatures()
	names := make([]string, 0, len(feats))
	for _, f := range feats {
		names = append(names, f.Name())
	}
	want := map[string]bool{"x": true, "y": true, "z": true}
	if len(feats) != 3 {
		t.Fatalf("got features %v, want x y z", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected feature %q", n)
		}
	}
	// Own features come before inherited ones.
	if names[0] != "z" {
		t.Errorf("own feature must come first, got %v", names)
	}
}

func TestAllFeaturesRedefinitionSuppression(t *testing.T) {
	a, _ := buildResolved(t, `
class A { feature a; }
class B :> A { feature a :>> a; }
`)
	b := find(t, a, "B")
	feats := b.AllFeatures()
	count := 0
	for _, f := range feats {
		if f.Name() == "a" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("redefined feature must appear once, got %d", count)
	}
	bA := find(t, a, "B::a")
	if feats[0] != bA {
		t.Error("the redefining feature must win over the inherited one")
	}
}

func TestResultFeatureFirstWins(t *testing.T) {
	a, _ := buildResolved(t, `
function F { in feature p; return feature r1; return feature r2; }
`)
	f := find(t, a, "F")
	res := f.ResultFeature()
	if res == nil || res.Name() != "r1" {
		t.Fatalf("first return-like member must win, got %v", res)
	}
}

func TestEndFeatures(t *testing.T) {
	a, _ := buildResolved(t, `
assoc Owns { end feature owner; end feature owned; feature note; }
`)
	owns := find(t, a, "Owns")
	ends := owns.EndFeatures()
	if len(ends) != 2 {
		t.Fatalf("end count: got %d, want 2", len(ends))
	}
	if ends[0].Name() != "owner" || ends[1].Name() != "owned" {
		t.Errorf("ends out of order: %s, %s", ends[0].Name(), ends[1].Name())
	}
}

func TestBoundsOrder(t *testing.T) {
	a, _ := buildResolved(t, `class A { feature f [1..3]; }`)
	f := find(t, a, "A::f")
	m := f.Typ.Multiplicity()
	if m == nil {
		t.Fatal("multiplicity element missing")
	}
	bounds := m.Bounds()
	if len(bounds) != 2 {
		t.Fatalf("bound count: got %d, want 2", len(bounds))
	}
}

func TestHasDataType(t *testing.T) {
	a, _ := buildResolved(t, `
datatype Real;
struct Widget;
class Run;
class Holder {
	feature amount : Real;
	feature part : Widget;
	feature activity : Run;
}
`)
	testCases := []struct {
		name                  string
		data, structure, cls  bool
	}{
		{"Holder::amount", true, false, false},
		{"Holder::part", false, true, true}, // a structure is a class too
		{"Holder::activity", false, false, true},
	}
	for _, tc := range testCases {
		e := find(t, a, tc.name)
		if got := e.HasDataType(); got != tc.data {
			t.Errorf("%s HasDataType = %v, want %v", tc.name, got, tc.data)
		}
		if got := e.HasStructureType(); got != tc.structure {
			t.Errorf("%s HasStructureType = %v, want %v", tc.name, got, tc.structure)
		}
		if got := e.HasClassType(); got != tc.cls {
			t.Errorf("%s HasClassType = %v, want %v", tc.name, got, tc.cls)
		}
	}
}

func TestAllMetadataInherited(t *testing.T) {
	a, _ := buildResolved(t, `
class Tagged { @Marker; }
class Sub :> Tagged;
`)
	sub := find(t, a, "Sub")
	if got := len(sub.AllMetadata()); got != 1 {
		t.Fatalf("inherited metadata count: got %d, want 1", got)
	}
	if got := len(sub.Metadata()); got != 0 {
		t.Fatalf("own metadata count: got %d, want 0", got)
	}
}

func TestBasePositionalFeatures(t *testing.T) {
	a, _ := buildResolved(t, `
function Base { in feature p1; in feature p2; return feature r; }
function Sub :> Base { in feature q1; }
`)
	sub := find(t, a, "Sub")
	isIn := func(e *model.Element) bool {
		return e.Feat != nil && e.Feat.Direction == ast.DirectionIn && !e.Feat.IsReturn
	}
	params := sub.BasePositionalFeatures(isIn)
	// Sub's own q1 lines up with Base's p1, so only p2 is added from Base.
	if len(params) != 2 {
		names := make([]string, 0, len(params))
		for _, p := range params {
			names = append(names, p.Name())
		}
		t.Fatalf("got %v, want [q1 p2]", names)
	}
	if params[0].Name() != "q1" || params[1].Name() != "p2" {
		t.Errorf("got [%s %s], want [q1 p2]", params[0].Name(), params[1].Name())
	}
}
