package scope

import (
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
	"github.com/sysmod-lang/sysmod/internal/model"
)

// Resolver links the textual references of one document's arena against
// its own scopes, the import graph, and the shared standard library.
// Resolution failures are recorded in the data (nil targets) and
// reported as diagnostics; they never abort the build.
type Resolver struct {
	arena *model.Arena
	lib   model.LibraryIndex // may be nil: degraded, not an error

	heritage map[*model.Element]resolveState
	aliases  map[*model.Element]resolveState
	diags    []*diagnostics.Diagnostic
}

type resolveState int

const (
	stateNone resolveState = iota
	stateActive
	stateDone
)

// NewResolver builds a resolver over one arena.
func NewResolver(a *model.Arena, lib model.LibraryIndex) *Resolver {
	return &Resolver{
		arena:    a,
		lib:      lib,
		heritage: make(map[*model.Element]resolveState),
		aliases:  make(map[*model.Element]resolveState),
	}
}

// Resolve links every reference in the arena and populates the
// specialization graph from the explicit relationship elements.
// Returns the diagnostics collected along the way.
func (r *Resolver) Resolve() []*diagnostics.Diagnostic {
	// Heritage first: inherited-member lookup depends on it. The state
	// machine makes the order safe regardless of declaration order.
	for _, e := range r.arena.Elements() {
		if e.Typ != nil {
			r.ensureHeritage(e)
		}
	}
	for _, e := range r.arena.Elements() {
		if e.Rel != nil && e.Rel.Reference() != nil && e.Rel.Reference().Target() == nil {
			if !e.Is(metamodel.KImport) { // imports resolve through their own state machine
				r.resolveReference(e, e.Rel.Reference())
			}
		}
		if e.Expr != nil && e.Expr.Ref != nil && e.Expr.Ref.Target() == nil {
			if e.Is(metamodel.KFeatureChainExpression) {
				r.resolveChainTarget(e)
			} else {
				r.resolveReference(e, e.Expr.Ref)
			}
		}
		if e.Feat != nil {
			for _, cr := range e.Feat.Chain() {
				if cr.Target() == nil {
					r.resolveReference(e, cr)
				}
			}
		}
		if e.NS != nil && e.NS.ImportState() == model.ImportsNone {
			r.resolveImports(e)
		}
	}
	r.applyNonHeritageRelations()
	r.validate()
	return r.diags
}

// validate reports structural problems resolution tolerated: duplicate
// member names and explicit specialization cycles.
func (r *Resolver) validate() {
	for _, e := range r.arena.Elements() {
		if e.NS != nil {
			seen := make(map[string]bool)
			for _, d := range e.NS.Members() {
				if d.IsShort || d.Name == "" {
					continue
				}
				if seen[d.Name] {
					r.diags = append(r.diags, diagnostics.NewWarning(
						diagnostics.ErrS002, d.Element.Syntax().GetToken(),
						"duplicate member name %q in %q", d.Name, e.Name()))
				}
				seen[d.Name] = true
			}
		}
		if e.Typ == nil {
			continue
		}
		for _, edge := range e.Typ.Specializations().Edges(model.EdgeSpecialization) {
			if edge.Source != model.Explicit || edge.Target.Typ == nil {
				continue
			}
			if conformsExplicit(edge.Target, e, make(map[*model.Element]bool)) {
				r.diags = append(r.diags, diagnostics.NewWarning(
					diagnostics.ErrS005, e.Syntax().GetToken(),
					"%s %q participates in a specialization cycle",
					e.Typ.ClassifierString(), e.Name()))
				break
			}
		}
	}
}

// conformsExplicit walks only author-written edges. Implicit edges point
// into the library and cannot close a user cycle; considering them would
// misfire on the library's own intentional root loop.
func conformsExplicit(from, to *model.Element, visited map[*model.Element]bool) bool {
	if visited[from] {
		return false
	}
	visited[from] = true
	for _, edge := range from.Typ.Specializations().Edges(model.EdgeSpecialization) {
		if edge.Source != model.Explicit {
			continue
		}
		if edge.Target == to {
			return true
		}
		if edge.Target.Typ != nil && conformsExplicit(edge.Target, to, visited) {
			return true
		}
	}
	return false
}

// ensureHeritage resolves a type's specialization-family relationships
// and inserts the explicit edges. Active-state re-entry means the
// heritage of this type is needed while it is being computed (mutual
// specialization); it is short-circuited here and left for validation.
func (r *Resolver) ensureHeritage(t *model.Element) {
	switch r.heritage[t] {
	case stateActive, stateDone:
		return
	}
	r.heritage[t] = stateActive
	for _, c := range t.Children() {
		kind, ok := heritageEdgeKinds(c)
		if !ok {
			continue
		}
		ref := c.Rel.Reference()
		if ref == nil {
			continue
		}
		if ref.Target() == nil {
			r.resolveReference(c, ref)
		}
		if target := ref.Target(); target != nil && target.Typ != nil {
			t.Typ.Specializations().Add(target, kind, model.Explicit)
		}
	}
	r.heritage[t] = stateDone
}

// heritageEdgeKinds maps relationship children that contribute
// specialization-graph edges.
func heritageEdgeKinds(c *model.Element) (model.EdgeKind, bool) {
	if c.Rel == nil {
		return 0, false
	}
	switch {
	case c.Is(metamodel.KRedefinition):
		return model.EdgeRedefinition, true
	case c.Is(metamodel.KReferenceSubsetting):
		return model.EdgeReference, true
	case c.Is(metamodel.KSubsetting):
		return model.EdgeSubsetting, true
	case c.Is(metamodel.KSubclassification):
		return model.EdgeSubclassification, true
	case c.Is(metamodel.KConjugatedPortTyping):
		return model.EdgeConjugatedPortTyping, true
	case c.Is(metamodel.KFeatureTyping):
		return model.EdgeTyping, true
	case c.Is(metamodel.KConjugation):
		return model.EdgeConjugation, true
	case c.Is(metamodel.KSpecialization):
		return model.EdgeSpecialization, true
	default:
		return 0, false
	}
}

// applyNonHeritageRelations wires the remaining relationship kinds:
// disjoinings, inversions and featurings.
func (r *Resolver) applyNonHeritageRelations() {
	for _, e := range r.arena.Elements() {
		if e.Rel == nil {
			continue
		}
		target := e.Rel.Target()
		if target == nil {
			continue
		}
		owner := e.Owner()
		if owner == nil || owner.Typ == nil {
			continue
		}
		switch {
		case e.Is(metamodel.KDisjoining):
			owner.Typ.Specializations().Add(target, model.EdgeDisjoining, model.Explicit)
		case e.Is(metamodel.KFeatureInverting):
			owner.Typ.Specializations().Add(target, model.EdgeInverting, model.Explicit)
		case e.Is(metamodel.KTypeFeaturing):
			if owner.Feat != nil {
				owner.Feat.AddFeaturing(target)
				owner.Typ.Specializations().Add(target, model.EdgeFeaturing, model.Explicit)
			}
		}
	}
}

// resolveReference resolves a name chain from the scope of its owning
// element. Intermediate hits are recorded in the reference even when the
// final segment fails, so completion scopes survive partial resolution.
// The target of a heritage relationship is resolved as if from the
// declaring type's owner: "feature a :>> a" must find the inherited a,
// never the redefining feature itself.
func (r *Resolver) resolveReference(owner *model.Element, ref *model.Reference) {
	parts := ref.Parts()
	if len(parts) == 0 {
		return
	}
	var exclude *model.Element
	if owner.Rel != nil {
		if _, heritage := heritageEdgeKinds(owner); heritage {
			exclude = owner.Owner()
		}
	}
	cur := r.lookupUnqualified(owner, parts[0], exclude)
	if cur != nil {
		cur = r.followAlias(cur)
	}
	if cur == nil {
		r.reportUnresolved(owner, ref, parts[0])
		return
	}
	ref.AddFound(cur)
	for _, seg := range parts[1:] {
		next := r.lookupMember(cur, seg, owner)
		if next != nil {
			next = r.followAlias(next)
		}
		if next == nil {
			r.reportUnresolved(owner, ref, seg)
			return
		}
		ref.AddFound(next)
		cur = next
	}
	ref.Resolve(cur)
}

// resolveChainTarget resolves the member segment of a feature chain
// expression against the receiver's declared types, not the lexical
// scope: in "c.port" the name port lives in c's type.
func (r *Resolver) resolveChainTarget(e *model.Element) {
	ref := e.Expr.Ref
	operands := e.Expr.Operands()
	if ref == nil || len(operands) == 0 {
		return
	}
	recv := operands[0]
	if recv.Expr == nil || recv.Expr.Ref == nil {
		return
	}
	if recv.Expr.Ref.Target() == nil {
		if recv.Is(metamodel.KFeatureChainExpression) {
			r.resolveChainTarget(recv)
		} else {
			r.resolveReference(recv, recv.Expr.Ref)
		}
	}
	base := recv.Expr.Ref.Target()
	parts := ref.Parts()
	if base == nil || base.Typ == nil || len(parts) == 0 {
		return
	}
	for _, typ := range base.Typ.Specializations().Types(model.EdgeTyping) {
		if m := r.lookupMember(typ, parts[0], e); m != nil {
			ref.AddFound(m)
			ref.Resolve(m)
			return
		}
	}
	r.reportUnresolved(e, ref, parts[0])
}

func (r *Resolver) reportUnresolved(owner *model.Element, ref *model.Reference, seg string) {
	r.diags = append(r.diags, diagnostics.NewError(
		diagnostics.ErrS001, owner.Syntax().GetToken(),
		"could not resolve %q in %q", seg, ref.Text()))
}

// lookupUnqualified walks the owner chain outward: local members,
// inherited members, imported names, then enclosing namespaces, and
// finally the standard library's top-level packages. exclude suppresses
// one element from direct-member hits so a heritage clause cannot
// resolve to its own declaring feature.
func (r *Resolver) lookupUnqualified(from *model.Element, name string, exclude *model.Element) *model.Element {
	start := from
	if start.NS == nil {
		start = owningNamespace(from)
	}
	for ns := start; ns != nil; ns = owningNamespace(ns) {
		if ns.NS == nil {
			continue
		}
		if d := ns.NS.Lookup(name); d != nil && d.Element != exclude {
			return d.Element
		}
		if ns.Typ != nil {
			if m := r.lookupInherited(ns, name); m != nil {
				return m
			}
		}
		if m := r.lookupImported(ns, name, from); m != nil {
			return m
		}
	}
	if r.lib != nil {
		if e := r.lib.ResolveQualified(name); e != nil {
			return e
		}
	}
	return nil
}

// lookupInherited searches the members of every transitively
// specialized type. Private members are not inheritable.
func (r *Resolver) lookupInherited(t *model.Element, name string) *model.Element {
	r.ensureHeritage(t)
	for _, sup := range t.Typ.Specializations().AllTypes(model.EdgeSpecialization, false) {
		if sup.NS == nil {
			continue
		}
		if d := sup.NS.Lookup(name); d != nil && Inheritable(d) {
			return d.Element
		}
	}
	return nil
}

// lookupMember resolves one qualified-name segment inside container.
// Members are visible from outside only when public, unless the lookup
// originates inside the container itself.
func (r *Resolver) lookupMember(container *model.Element, name string, from *model.Element) *model.Element {
	if container.NS == nil {
		return nil
	}
	if container.NS.ImportState() == model.ImportsNone {
		r.resolveImports(container)
	}
	d := container.NS.Lookup(name)
	if d == nil && container.Typ != nil {
		r.ensureHeritage(container)
		for _, sup := range container.Typ.Specializations().AllTypes(model.EdgeSpecialization, false) {
			if sup.NS == nil {
				continue
			}
			if sd := sup.NS.Lookup(name); sd != nil && Inheritable(sd) {
				d = sd
				break
			}
		}
	}
	if d == nil {
		return nil
	}
	if !Visible(d) && !encloses(container, from) {
		return nil
	}
	return d.Element
}

// followAlias chases alias members to their final target, resolving the
// alias's own reference on demand. Alias cycles short-circuit to nil.
func (r *Resolver) followAlias(e *model.Element) *model.Element {
	for e != nil && e.Is(metamodel.KAlias) {
		switch r.aliases[e] {
		case stateActive:
			return nil // cyclic alias chain
		}
		r.aliases[e] = stateActive
		ref := e.Rel.Reference()
		if ref != nil && ref.Target() == nil {
			r.resolveReference(e, ref)
		}
		r.aliases[e] = stateDone
		if ref == nil {
			return nil
		}
		e = ref.Target()
	}
	return e
}

func owningNamespace(e *model.Element) *model.Element {
	for o := e.Owner(); o != nil; o = o.Owner() {
		if o.NS != nil {
			return o
		}
	}
	return nil
}

// encloses reports whether inner is within outer's owner chain.
func encloses(outer, inner *model.Element) bool {
	for e := inner; e != nil; e = e.Owner() {
		if e == outer {
			return true
		}
	}
	return false
}
