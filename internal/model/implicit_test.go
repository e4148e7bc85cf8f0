package model_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/config"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
	"github.com/sysmod-lang/sysmod/internal/model"
)

// fakeLibrary serves library elements out of a map, standing in for a
// loaded standard library.
type fakeLibrary map[string]*model.Element

func (f fakeLibrary) ResolveQualified(name string) *model.Element { return f[name] }

func newFakeLibrary(names ...string) fakeLibrary {
	a := model.NewArena(model.NewRegistry())
	lib := make(fakeLibrary, len(names))
	for _, n := range names {
		e := a.Create(metamodel.KClass, nil)
		e.SetName(n)
		lib[n] = e
	}
	return lib
}

func TestDefaultSupertypeKey(t *testing.T) {
	a, _ := buildResolved(t, `
datatype D;
struct S;
class C;
behavior B { composite step s; feature f; }
struct Outer {
	composite feature p : S;
	feature q : S;
	feature d : D;
	feature o : C;
}
assoc Bin { end feature a; end feature b; }
assoc Tern { end feature x; end feature y; end feature z; }
`)
	testCases := []struct {
		name string
		want string
	}{
		{"C", metamodel.KeyBase},
		{"Bin", metamodel.KeyBinary},
		{"Tern", metamodel.KeyBase}, // binary needs exactly two ends
		{"Outer::d", metamodel.KeyDataValue},
		{"Outer::p", metamodel.KeySubobject},
		{"Outer::q", metamodel.KeyObject},
		{"Outer::o", metamodel.KeyOccurrence},
		{"B::s", metamodel.KeySubperformance},
		{"B::f", metamodel.KeySubperformance},
	}
	for _, tc := range testCases {
		e := find(t, a, tc.name)
		if got := model.DefaultSupertypeKey(e); got != tc.want {
			t.Errorf("DefaultSupertypeKey(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDefaultGeneralKeysParticipant(t *testing.T) {
	a, _ := buildResolved(t, `assoc Bin { end feature a; end feature b; feature note; }`)
	end := find(t, a, "Bin::a")
	keys := model.DefaultGeneralKeys(end)
	if len(keys) != 2 || keys[1] != metamodel.KeyParticipant {
		t.Fatalf("end feature keys: got %v, want default + participant", keys)
	}
	note := find(t, a, "Bin::note")
	for _, k := range model.DefaultGeneralKeys(note) {
		if k == metamodel.KeyParticipant {
			t.Error("non-end feature must not get the participant key")
		}
	}
}

func TestResolveImplicits(t *testing.T) {
	lib := newFakeLibrary(config.OccurrenceName, config.ThingsName)
	a, _ := buildResolved(t, `
class A;
class B :> A;
class C { feature f; }
`)
	model.ResolveImplicits(a, lib)

	occurrence := lib[config.OccurrenceName]
	aEl := find(t, a, "A")
	edges := aEl.Typ.Specializations().Edges(model.EdgeSubclassification)
	if len(edges) != 1 || edges[0].Target != occurrence || edges[0].Source != model.Implicit {
		t.Fatalf("a class must implicitly subclassify its library base, got %v", edges)
	}

	// B's explicit supertype suppresses the direct default, but the
	// library base is still reached transitively.
	bEl := find(t, a, "B")
	for _, e := range bEl.Typ.Specializations().Edges(model.EdgeAny) {
		if e.Target == occurrence {
			t.Error("explicit supertype must suppress the direct implicit edge")
		}
	}
	if !bEl.Typ.Specializations().Conforms(occurrence, model.EdgeSpecialization) {
		t.Error("B must conform to the library base through A")
	}

	// Features subset their implicit base feature.
	f := find(t, a, "C::f")
	fEdges := f.Typ.Specializations().Edges(model.EdgeSubsetting)
	if len(fEdges) != 1 || fEdges[0].Target != lib[config.ThingsName] {
		t.Fatalf("feature must implicitly subset the base feature, got %v", fEdges)
	}
}

func TestResolveImplicitsDegradesWithoutLibrary(t *testing.T) {
	a, _ := buildResolved(t, `class A;`)
	model.ResolveImplicits(a, nil)
	aEl := find(t, a, "A")
	if got := len(aEl.Typ.Specializations().Edges(model.EdgeAny)); got != 0 {
		t.Fatalf("no library must mean no implicit edges, got %d", got)
	}
}

func TestResolveImplicitsMissingLibraryEntry(t *testing.T) {
	// Library present but missing the needed name: the edge is simply
	// absent, nothing fails.
	lib := newFakeLibrary(config.AnythingName)
	a, _ := buildResolved(t, `class A;`)
	model.ResolveImplicits(a, lib)
	aEl := find(t, a, "A")
	if got := len(aEl.Typ.Specializations().Edges(model.EdgeAny)); got != 0 {
		t.Fatalf("missing library entry must degrade silently, got %d edges", got)
	}
}
