package model

import (
	"fmt"

	"github.com/sysmod-lang/sysmod/internal/metamodel"
)

// setup is one facet initialization step.
type setup func(*Element)

// facetSetups sparsely declares, per metamodel kind, the facet setup
// steps the kind contributes. The registry expands this over the
// hierarchy into one ordered initialization list per kind, running
// general setups before specific ones (classifier setup runs before
// structure setup), replacing linearized-mixin method resolution with an
// explicit order.
var facetSetups = map[metamodel.Kind][]setup{
	metamodel.KNamespace: {func(e *Element) { e.NS = newNamespace(e) }},
	metamodel.KType:      {func(e *Element) { e.Typ = newType(e) }},
	metamodel.KFeature:   {func(e *Element) { e.Feat = newFeature(e) }},
	metamodel.KRelationship: {func(e *Element) { e.Rel = newRelationship(e) }},
	metamodel.KExpression:   {func(e *Element) { e.Expr = newExprData(e) }},
	metamodel.KDataType:    {func(e *Element) { e.Typ.Classifier |= CkDataType }},
	metamodel.KClass:       {func(e *Element) { e.Typ.Classifier |= CkClass }},
	metamodel.KStructure:   {func(e *Element) { e.Typ.Classifier |= CkStructure }},
	metamodel.KAssociation: {func(e *Element) { e.Typ.Classifier |= CkAssociation }},
	metamodel.KBehavior:    {func(e *Element) { e.Typ.Classifier |= CkBehavior }},
}

// Registry bundles the process-wide metamodel state: the hierarchy
// index, the implicit generalization tables, and the per-kind element
// factories. Built once at startup and passed by reference; nothing in
// it mutates afterwards.
type Registry struct {
	Hierarchy *metamodel.Hierarchy
	Defaults  *metamodel.Defaults

	factories map[metamodel.Kind][]setup
}

// NewRegistry builds the registry. A kind without a factory is a
// configuration error surfaced at first use, not at runtime deep in a
// build.
func NewRegistry() *Registry {
	h := metamodel.NewHierarchy()
	return &Registry{
		Hierarchy: h,
		Defaults:  metamodel.NewDefaults(h),
		factories: metamodel.ExpandAndMerge(h, facetSetups, true),
	}
}

// construct runs the kind's ordered initialization list on e.
func (r *Registry) construct(e *Element, kind metamodel.Kind) {
	if !r.Hierarchy.Known(kind) {
		panic(fmt.Sprintf("model: no factory for kind %s", kind))
	}
	for _, s := range r.factories[kind] {
		s(e)
	}
}
