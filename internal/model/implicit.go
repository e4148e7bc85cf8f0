package model

import (
	"github.com/sysmod-lang/sysmod/internal/metamodel"
)

// LibraryIndex resolves standard-library elements by qualified name.
// A nil result is the degraded no-library case, never an error.
type LibraryIndex interface {
	ResolveQualified(name string) *Element
}

// DefaultSupertypeKey selects the implicit-generalization key for a
// type element. Pure: it reads only the element's already-computed
// structural state (classifier flags, typing flavours, composite flag,
// owning context) and must be called after those are set.
func DefaultSupertypeKey(e *Element) string {
	if e.Typ == nil {
		return ""
	}
	if e.Feat != nil {
		return featureDefaultKey(e)
	}
	if e.Is(metamodel.KAssociation) && len(e.EndFeatures()) == 2 {
		return metamodel.KeyBinary
	}
	return metamodel.KeyBase
}

func featureDefaultKey(e *Element) string {
	f := e.Feat
	owning := e.owningType()
	switch {
	case e.Is(metamodel.KExpression):
		return metamodel.KeyBase
	case e.Is(metamodel.KStep):
		if f.Composite && owning != nil && owning.Typ.Classifier.Has(CkBehavior) {
			return metamodel.KeySubperformance
		}
		return metamodel.KeyBase
	case e.HasDataType():
		return metamodel.KeyDataValue
	case e.HasStructureType():
		if f.Composite && owning != nil && owning.Typ.Classifier.Has(CkStructure) {
			return metamodel.KeySubobject
		}
		return metamodel.KeyObject
	case e.HasClassType():
		if f.Composite && owning != nil && owning.Typ.Classifier.Has(CkClass) {
			return metamodel.KeySuboccurrence
		}
		return metamodel.KeyOccurrence
	default:
		if owning != nil && owning.Typ.Classifier.Has(CkBehavior) {
			return metamodel.KeySubperformance
		}
		return metamodel.KeyBase
	}
}

// DefaultGeneralKeys lists the implicit-generalization keys to resolve
// for an element: the default supertype key, composed with extras such
// as "participant" for association and connector ends.
func DefaultGeneralKeys(e *Element) []string {
	key := DefaultSupertypeKey(e)
	if key == "" {
		return nil
	}
	keys := []string{key}
	if e.Feat != nil && e.Feat.End {
		if owning := e.owningType(); owning != nil && owning.Typ.Classifier.Has(CkAssociation) {
			keys = append(keys, metamodel.KeyParticipant)
		}
	}
	return keys
}

// implicitEdgeKind picks the edge kind synthesized for an element:
// features subset their implicit base feature, other types subclassify.
func implicitEdgeKind(e *Element) EdgeKind {
	if e.Feat != nil {
		return EdgeSubsetting
	}
	return EdgeSubclassification
}

// ResolveImplicits injects implicit specialization edges for every type
// in the arena. The default supertype is only injected when the element
// has no explicit edge of the same category (an explicit supertype
// already carries the library generalization transitively); composed
// extras like "participant" are always resolved. A failed library
// lookup leaves the element without that edge, a degraded state flagged
// by validation, not a failure here. Idempotent adds keep an implicit
// edge from ever overriding an explicit one to the same target.
func ResolveImplicits(a *Arena, lib LibraryIndex) {
	if lib == nil {
		return
	}
	for _, e := range a.Elements() {
		if e.Typ == nil {
			continue
		}
		keys := DefaultGeneralKeys(e)
		for i, key := range keys {
			if i == 0 && hasExplicitOfCategory(e) {
				continue
			}
			name := a.registry.Defaults.Lookup(e.Kind(), key)
			if name == "" {
				continue
			}
			target := lib.ResolveQualified(name)
			if target == nil {
				continue
			}
			e.Typ.specs.Add(target, implicitEdgeKind(e), Implicit)
		}
	}
}

func hasExplicitOfCategory(e *Element) bool {
	category := EdgeSubclassification
	if e.Feat != nil {
		category = EdgeSubsetting
	}
	for _, edge := range e.Typ.specs.Edges(category) {
		if edge.Source == Explicit {
			return true
		}
	}
	return false
}
