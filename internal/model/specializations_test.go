package model_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/metamodel"
	"github.com/sysmod-lang/sysmod/internal/model"
)

func newClass(a *model.Arena) *model.Element {
	return a.Create(metamodel.KClass, nil)
}

func TestAddSelfEdge(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	c := newClass(a)
	if c.Typ.Specializations().Add(c, model.EdgeSubclassification, model.Explicit) {
		t.Fatal("self-specialization must be rejected")
	}
	if got := len(c.Typ.Specializations().Edges(model.EdgeAny)); got != 0 {
		t.Fatalf("edge count: got %d, want 0", got)
	}
}

func TestAddNilTarget(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	c := newClass(a)
	if c.Typ.Specializations().Add(nil, model.EdgeSubclassification, model.Explicit) {
		t.Fatal("nil target must be rejected")
	}
}

func TestAddIdempotent(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	b, c := newClass(a), newClass(a)

	if !b.Typ.Specializations().Add(c, model.EdgeSubclassification, model.Explicit) {
		t.Fatal("first add must insert")
	}
	// A later implicit add to the same target must not override.
	if b.Typ.Specializations().Add(c, model.EdgeSubsetting, model.Implicit) {
		t.Fatal("second add to same target must be a no-op")
	}

	edges := b.Typ.Specializations().Edges(model.EdgeAny)
	if len(edges) != 1 {
		t.Fatalf("edge count: got %d, want 1", len(edges))
	}
	if edges[0].Kind != model.EdgeSubclassification || edges[0].Source != model.Explicit {
		t.Errorf("first-added kind and source must win, got %v/%v", edges[0].Kind, edges[0].Source)
	}
}

func TestKindContainment(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	f, redefined, subsetted := newClass(a), newClass(a), newClass(a)

	specs := f.Typ.Specializations()
	specs.Add(redefined, model.EdgeRedefinition, model.Explicit)
	specs.Add(subsetted, model.EdgeSubsetting, model.Explicit)

	if got := len(specs.Edges(model.EdgeSubsetting)); got != 2 {
		t.Errorf("subsetting query must include redefinitions: got %d, want 2", got)
	}
	if got := len(specs.Edges(model.EdgeSpecialization)); got != 2 {
		t.Errorf("specialization query must include both: got %d, want 2", got)
	}
	redef := specs.Edges(model.EdgeRedefinition)
	if len(redef) != 1 || redef[0].Target != redefined {
		t.Errorf("redefinition query must exclude plain subsetting: got %d edges", len(redef))
	}
}

func TestCycleTermination(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	x, y := newClass(a), newClass(a)
	x.Typ.Specializations().Add(y, model.EdgeSubclassification, model.Explicit)
	y.Typ.Specializations().Add(x, model.EdgeSubclassification, model.Explicit)

	all := x.Typ.Specializations().AllTypes(model.EdgeSpecialization, false)
	seen := make(map[*model.Element]int)
	for _, e := range all {
		seen[e]++
	}
	if seen[y] != 1 {
		t.Errorf("y must appear exactly once, got %d", seen[y])
	}
	if seen[x] != 0 {
		t.Errorf("x must not appear without includeSelf, got %d", seen[x])
	}

	withSelf := x.Typ.Specializations().AllTypes(model.EdgeSpecialization, true)
	if len(withSelf) == 0 || withSelf[0] != x {
		t.Errorf("includeSelf must prepend the owner")
	}
}

func TestConforms(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	top, mid, bottom := newClass(a), newClass(a), newClass(a)
	mid.Typ.Specializations().Add(top, model.EdgeSubclassification, model.Explicit)
	bottom.Typ.Specializations().Add(mid, model.EdgeSubclassification, model.Explicit)

	if !bottom.Typ.Specializations().Conforms(top, model.EdgeSpecialization) {
		t.Error("bottom must conform to top transitively")
	}
	if !bottom.Typ.Specializations().Conforms(bottom, model.EdgeSpecialization) {
		t.Error("a type conforms to itself")
	}
	// A plain subclassification chain is not a redefinition chain.
	if bottom.Typ.Specializations().Conforms(top, model.EdgeRedefinition) {
		t.Error("subclassification must not satisfy a redefinition query")
	}
	if top.Typ.Specializations().Conforms(bottom, model.EdgeSpecialization) {
		t.Error("conformance is directional")
	}
}

func TestClearResetsEdges(t *testing.T) {
	a := model.NewArena(model.NewRegistry())
	b, c := newClass(a), newClass(a)
	specs := b.Typ.Specializations()
	specs.Add(c, model.EdgeSubclassification, model.Explicit)
	specs.Clear()
	if got := len(specs.Edges(model.EdgeAny)); got != 0 {
		t.Fatalf("edges after Clear: got %d, want 0", got)
	}
	if !specs.Add(c, model.EdgeSubclassification, model.Implicit) {
		t.Fatal("re-add after Clear must insert")
	}
}
