package model

import (
	"github.com/sysmod-lang/sysmod/internal/metamodel"
)

// ownedMembers returns the elements owned through transparent wrappers:
// membership children contribute their member, other children
// contribute themselves.
func (e *Element) ownedMembers() []*Element {
	var out []*Element
	for _, c := range e.Children() {
		if c.transparent() {
			for _, m := range c.Children() {
				out = append(out, m)
			}
			continue
		}
		out = append(out, c)
	}
	return out
}

// OwnedFeatures returns the feature-kinded members declared directly on
// this element, in declaration order.
func (e *Element) OwnedFeatures() []*Element {
	var out []*Element
	for _, m := range e.ownedMembers() {
		if m.Feat != nil {
			out = append(out, m)
		}
	}
	return out
}

// AllFeatures transitively merges the owned features of every type in
// AllTypes(includeSelf), deduplicating by identity and suppressing any
// feature redefined by one already collected: redefinition replaces the
// inherited feature, it does not add to it. Requires the type facet.
func (e *Element) AllFeatures() []*Element {
	if e.Typ == nil {
		return nil
	}
	var out []*Element
	seen := make(map[*Element]bool)
	redefined := make(map[*Element]bool)
	for _, t := range e.Typ.specs.AllTypes(EdgeSpecialization, true) {
		for _, f := range t.OwnedFeatures() {
			if seen[f] || redefined[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
			if f.Typ != nil {
				for _, r := range f.Typ.specs.All(EdgeRedefinition) {
					redefined[r.Target] = true
				}
			}
		}
	}
	return out
}

// AllMetadata returns the element's own metadata annotations plus those
// inherited from every transitively specialized type.
func (e *Element) AllMetadata() []*Element {
	out := append([]*Element(nil), e.Metadata()...)
	if e.Typ == nil {
		return out
	}
	seen := make(map[*Element]bool)
	for _, m := range out {
		seen[m] = true
	}
	for _, t := range e.Typ.specs.AllTypes(EdgeSpecialization, false) {
		for _, m := range t.Metadata() {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// BasePositionalFeatures matches positional parameters across a
// multi-level hierarchy: own features matching pred are counted, and
// when descending into each direct specialized type that many leading
// matches are skipped, so a redefining parameter lines up with the base
// parameter it replaces. Direct specializations are visited in declared
// order, which makes the resolution deterministic.
func (e *Element) BasePositionalFeatures(pred func(*Element) bool) []*Element {
	if e.Typ == nil {
		return nil
	}
	visited := map[*Element]bool{e: true}
	var out []*Element
	basePositional(e, pred, 0, visited, &out)
	return out
}

func basePositional(e *Element, pred func(*Element) bool, skip int, visited map[*Element]bool, out *[]*Element) {
	matched := 0
	for _, f := range e.OwnedFeatures() {
		if !pred(f) {
			continue
		}
		matched++
		if matched > skip {
			*out = append(*out, f)
		}
	}
	if matched < skip {
		matched = skip
	}
	for _, sup := range e.Typ.specs.Types(EdgeSpecialization) {
		if visited[sup] || sup.Typ == nil {
			continue
		}
		visited[sup] = true
		basePositional(sup, pred, matched, visited, out)
	}
}

// Bounds returns the bound expressions of a multiplicity range element
// in declaration order: lower then upper when both are present, the
// single upper bound otherwise.
func (e *Element) Bounds() []*Element {
	var out []*Element
	for _, c := range e.Children() {
		if c.Expr != nil {
			out = append(out, c)
		}
	}
	return out
}

// EndFeatures returns the owned end features (connector/association
// ends) in declaration order.
func (e *Element) EndFeatures() []*Element {
	var out []*Element
	for _, f := range e.OwnedFeatures() {
		if f.Feat.End {
			out = append(out, f)
		}
	}
	return out
}

// ResultFeature returns the element's result parameter. When several
// return-like members are declared the first in declaration order wins;
// later ones are ignored.
func (e *Element) ResultFeature() *Element {
	for _, f := range e.OwnedFeatures() {
		if f.Feat.IsReturn {
			return f
		}
	}
	return nil
}

// ReturnType returns the resolved type of the result parameter of an
// invocation-like element, or nil.
func (e *Element) ReturnType() *Element {
	fn := e.GetFunction()
	if fn == nil {
		return nil
	}
	res := fn.ResultFeature()
	if res == nil || res.Typ == nil {
		return nil
	}
	types := res.Typ.specs.Types(EdgeTyping)
	if len(types) == 0 {
		return nil
	}
	return types[0]
}

// GetFunction returns the function invoked by an invocation-like
// expression element: the resolved reference target for invocations,
// the element itself for functions.
func (e *Element) GetFunction() *Element {
	if e.Is(metamodel.KFunction) {
		return e
	}
	if e.Rel != nil {
		return e.Rel.Target()
	}
	return nil
}

// hasTypeFlavour reports whether any resolved typing of the feature
// conforms to a type carrying the given classifier bits.
func (e *Element) hasTypeFlavour(bits ClassifierKind) bool {
	if e.Typ == nil {
		return false
	}
	for _, t := range e.Typ.specs.Types(EdgeTyping) {
		if t.Typ == nil {
			continue
		}
		for _, c := range t.Typ.specs.AllTypes(EdgeAny, true) {
			if c.Typ != nil && c.Typ.Classifier.Has(bits) {
				return true
			}
		}
	}
	return false
}

// HasDataType reports whether the feature is typed by a data type.
func (e *Element) HasDataType() bool { return e.hasTypeFlavour(CkDataType) }

// HasClassType reports whether the feature is typed by a class
// (occurrence-flavoured) type.
func (e *Element) HasClassType() bool { return e.hasTypeFlavour(CkClass) }

// HasStructureType reports whether the feature is typed by a structure.
func (e *Element) HasStructureType() bool { return e.hasTypeFlavour(CkStructure) }

// owningType returns the nearest ancestor with a type facet, skipping
// transparent wrappers.
func (e *Element) owningType() *Element {
	for o := e.Owner(); o != nil; o = o.Owner() {
		if o.transparent() {
			continue
		}
		if o.Typ != nil {
			return o
		}
		return nil
	}
	return nil
}
