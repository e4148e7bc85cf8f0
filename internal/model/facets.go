package model

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
)

// ImportState tracks a namespace's import resolution progress. The
// active state doubles as the cycle guard: a namespace asked to resolve
// imports while already active is being imported cyclically and must
// contribute nothing further.
type ImportState int

const (
	ImportsNone ImportState = iota
	ImportsActive
	ImportsCompleted
)

// Descriptor is one visible name in a namespace's child table.
type Descriptor struct {
	Name       string
	Element    *Element // the member itself; aliases are followed by the resolver
	Membership *Element // transparent wrapper introducing the member, if any
	Visibility ast.Visibility
	IsShort    bool // keyed under the member's short name
	IsAlias    bool
	Imported   bool // brought in by an import, not declared here
}

// Namespace is the facet of elements that own named members.
type Namespace struct {
	owner *Element

	imports []ID
	aliases []ID
	state   ImportState

	members     map[string]*Descriptor
	memberOrder []*Descriptor // declaration order, full-name entries only
}

func newNamespace(e *Element) *Namespace {
	return &Namespace{owner: e, members: make(map[string]*Descriptor)}
}

// ImportState returns the namespace's import resolution state.
func (n *Namespace) ImportState() ImportState { return n.state }

// SetImportState advances the import state machine.
func (n *Namespace) SetImportState(s ImportState) { n.state = s }

// Imports returns the namespace's import relationships in order.
func (n *Namespace) Imports() []*Element { return n.owner.arena.resolve(n.imports) }

// Aliases returns the namespace's alias members in order.
func (n *Namespace) Aliases() []*Element { return n.owner.arena.resolve(n.aliases) }

// Lookup finds a direct member descriptor by full or short name.
func (n *Namespace) Lookup(name string) *Descriptor {
	return n.members[name]
}

// Members returns the declared member descriptors in declaration order.
func (n *Namespace) Members() []*Descriptor { return n.memberOrder }

// registerVia inserts a member under both its full and short names,
// recording the membership wrapper that introduced it. The visibility
// recorded is the member's own; renames must unregister first.
func (n *Namespace) registerVia(e *Element, membership *Element) {
	if e.Name() != "" {
		d := &Descriptor{Name: e.Name(), Element: e, Membership: membership, Visibility: e.visibility}
		n.members[e.Name()] = d
		n.memberOrder = append(n.memberOrder, d)
	}
	if e.ShortName() != "" && e.ShortName() != e.Name() {
		n.members[e.ShortName()] = &Descriptor{
			Name: e.ShortName(), Element: e, Membership: membership,
			Visibility: e.visibility, IsShort: true,
		}
	}
}

// RegisterImported records a name made visible by an import. Declared
// members shadow imported ones; the first import of a name wins.
func (n *Namespace) RegisterImported(name string, e *Element, vis ast.Visibility) {
	if _, taken := n.members[name]; taken {
		return
	}
	n.members[name] = &Descriptor{Name: name, Element: e, Visibility: vis, Imported: true}
}

// registerAlias records an alias member under the alias's own names.
func (n *Namespace) registerAlias(alias *Element) {
	if alias.Name() != "" {
		d := &Descriptor{Name: alias.Name(), Element: alias, Visibility: alias.visibility, IsAlias: true}
		n.members[alias.Name()] = d
		n.memberOrder = append(n.memberOrder, d)
	}
	if alias.ShortName() != "" && alias.ShortName() != alias.Name() {
		n.members[alias.ShortName()] = &Descriptor{
			Name: alias.ShortName(), Element: alias, Visibility: alias.visibility,
			IsAlias: true, IsShort: true,
		}
	}
	n.aliases = append(n.aliases, alias.id)
}

// unregister removes a member's entries atomically ahead of a rename,
// returning the membership back-pointer so re-registration keeps it.
func (n *Namespace) unregister(e *Element) *Element {
	var membership *Element
	for _, key := range []string{e.Name(), e.ShortName()} {
		if key == "" {
			continue
		}
		if d, ok := n.members[key]; ok && d.Element == e {
			membership = d.Membership
			delete(n.members, key)
			if !d.IsShort {
				for i, od := range n.memberOrder {
					if od == d {
						n.memberOrder = append(n.memberOrder[:i], n.memberOrder[i+1:]...)
						break
					}
				}
			}
		}
	}
	return membership
}

// ResetImports drops import-derived entries and rewinds the state
// machine so imports can re-resolve after an edit. Part of the reset
// protocol; declared members are untouched.
func (n *Namespace) ResetImports() {
	for k, d := range n.members {
		if d.Imported {
			delete(n.members, k)
		}
	}
	n.state = ImportsNone
}

// ClassifierKind is the fast structural-category bitmask carried by
// types, so "is this a structure-flavoured type" checks need no graph
// walk.
type ClassifierKind uint8

const (
	CkDataType ClassifierKind = 1 << iota
	CkClass
	CkStructure
	CkAssociation
	CkBehavior

	CkAssociationStruct = CkStructure | CkAssociation
)

// Has reports whether all bits of k are set.
func (c ClassifierKind) Has(k ClassifierKind) bool { return c&k == k }

// String is the diagnostic label for the structural category.
func (c ClassifierKind) String() string {
	switch {
	case c.Has(CkAssociationStruct):
		return "association structure"
	case c.Has(CkAssociation):
		return "association"
	case c.Has(CkStructure):
		return "structure"
	case c.Has(CkBehavior):
		return "behavior"
	case c.Has(CkClass):
		return "class"
	case c.Has(CkDataType):
		return "datatype"
	}
	return "type"
}

// Type is the facet of specialization-graph nodes.
type Type struct {
	owner *Element

	Abstract   bool
	Classifier ClassifierKind

	multiplicity ID
	specs        *Specializations

	classifierString string // cached diagnostic label
}

func newType(e *Element) *Type {
	t := &Type{owner: e}
	t.specs = newSpecializations(e)
	return t
}

// Specializations returns the type's outgoing edge container.
func (t *Type) Specializations() *Specializations { return t.specs }

// ClassifierString returns the diagnostic label for the type's
// structural category, cached after first use.
func (t *Type) ClassifierString() string {
	if t.classifierString == "" {
		t.classifierString = t.Classifier.String()
	}
	return t.classifierString
}

// Multiplicity returns the owned multiplicity element, or nil.
func (t *Type) Multiplicity() *Element { return t.owner.arena.Get(t.multiplicity) }

// SetMultiplicity records the owned multiplicity.
func (t *Type) SetMultiplicity(m *Element) {
	if m != nil {
		t.multiplicity = m.id
	}
}

// Feature is the facet of feature-kinded elements.
type Feature struct {
	owner *Element

	Direction ast.FeatureDirection
	Composite bool
	Portion   bool
	Readonly  bool
	Derived   bool
	End       bool
	Ordered   bool
	NonUnique bool
	IsReturn  bool

	featuredBy []*Element // featuring (owning-context) types
	value      ID         // assigned value expression element
	chain      []*Reference
}

func newFeature(e *Element) *Feature {
	return &Feature{owner: e}
}

// Value returns the assigned value expression element, or nil.
func (f *Feature) Value() *Element { return f.owner.arena.Get(f.value) }

// SetValue records the assigned value expression.
func (f *Feature) SetValue(v *Element) {
	if v != nil {
		f.value = v.id
	}
}

// FeaturedBy returns the explicit featuring types.
func (f *Feature) FeaturedBy() []*Element { return f.featuredBy }

// AddFeaturing records an explicit featuring context.
func (f *Feature) AddFeaturing(t *Element) {
	f.featuredBy = append(f.featuredBy, t)
}

// Chain returns the feature-chaining references for chain-valued
// features, in order.
func (f *Feature) Chain() []*Reference { return f.chain }

// SetChain records the chaining references.
func (f *Feature) SetChain(refs []*Reference) { f.chain = refs }

// Relationship is the facet of directed-edge elements.
type Relationship struct {
	owner *Element

	reference  *Reference
	importKind ast.ImportKind
}

func newRelationship(e *Element) *Relationship {
	return &Relationship{owner: e}
}

// Reference returns the unresolved-or-resolved textual reference carried
// by this relationship, or nil for relationships without one.
func (r *Relationship) Reference() *Reference { return r.reference }

// SetReference attaches the parsed reference.
func (r *Relationship) SetReference(ref *Reference) { r.reference = ref }

// Target returns the resolved target element, or nil.
func (r *Relationship) Target() *Element {
	if r.reference == nil {
		return nil
	}
	return r.reference.Target()
}

// ImportKind returns the import form for import relationships.
func (r *Relationship) ImportKind() ast.ImportKind { return r.importKind }

// SetImportKind records the import form.
func (r *Relationship) SetImportKind(k ast.ImportKind) { r.importKind = k }

// ExprData is the facet of expression-kinded elements: the operator or
// invoked-function reference plus the operand elements, in order.
// Literal values stay on the syntax node; the evaluator reads them from
// there.
type ExprData struct {
	owner *Element

	Operator string
	Ref      *Reference // invoked function, referenced feature, or type operand
	operands []ID
}

func newExprData(e *Element) *ExprData {
	return &ExprData{owner: e}
}

// Operands returns the operand expression elements in order.
func (x *ExprData) Operands() []*Element { return x.owner.arena.resolve(x.operands) }

// AddOperand appends an operand expression element.
func (x *ExprData) AddOperand(e *Element) {
	if e != nil {
		x.operands = append(x.operands, e.id)
	}
}

// Reference is an unresolved textual reference: the name chain as
// parsed, the per-segment elements found so far, and the final target.
// Reset clears resolution state but preserves the text.
type Reference struct {
	text   string
	parts  []string
	found  []*Element
	target *Element
}

// NewReference builds a reference from cooked name segments.
func NewReference(text string, parts []string) *Reference {
	return &Reference{text: text, parts: parts}
}

// Text returns the reference as written.
func (r *Reference) Text() string { return r.text }

// Parts returns the cooked name segments.
func (r *Reference) Parts() []string { return r.parts }

// Found returns the intermediate targets resolved per segment; shorter
// than Parts when resolution stopped early. Useful for building
// completion scopes even when final resolution fails.
func (r *Reference) Found() []*Element { return r.found }

// AddFound appends a resolved intermediate segment target.
func (r *Reference) AddFound(e *Element) { r.found = append(r.found, e) }

// Target returns the final resolved element, or nil when unresolved.
func (r *Reference) Target() *Element { return r.target }

// Resolve records the final target.
func (r *Reference) Resolve(e *Element) { r.target = e }

// Reset clears the resolved target and found segments, keeping the text.
func (r *Reference) Reset() {
	r.found = nil
	r.target = nil
}
