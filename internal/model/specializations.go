package model

// EdgeKind tags a specialization edge. Kinds compose as a bitmask
// lattice: Redefinition is-a Subsetting is-a Specialization, so a
// Redefinition edge satisfies queries for any of the three. Containment
// is e&k == k; the zero kind EdgeAny matches every edge.
type EdgeKind uint32

const (
	EdgeAny EdgeKind = 0

	EdgeSpecialization EdgeKind = 1 << 0

	EdgeSubclassification = EdgeSpecialization | 1<<1
	EdgeSubsetting        = EdgeSpecialization | 1<<2
	EdgeRedefinition      = EdgeSubsetting | 1<<3
	EdgeReference         = EdgeSubsetting | 1<<4
	EdgeTyping            = EdgeSpecialization | 1<<5
	EdgeConjugatedPortTyping = EdgeTyping | 1<<6

	EdgeConjugation  EdgeKind = 1 << 7
	EdgeDisjoining   EdgeKind = 1 << 8
	EdgeInverting    EdgeKind = 1 << 9
	EdgeFeaturing    EdgeKind = 1 << 10
	EdgeUnioning     EdgeKind = 1 << 11
	EdgeIntersecting EdgeKind = 1 << 12
	EdgeDifferencing EdgeKind = 1 << 13
)

// Contains reports whether an edge of kind k satisfies a query for q.
func (k EdgeKind) Contains(q EdgeKind) bool { return k&q == q }

func (k EdgeKind) String() string {
	switch k {
	case EdgeSpecialization:
		return "specialization"
	case EdgeSubclassification:
		return "subclassification"
	case EdgeSubsetting:
		return "subsetting"
	case EdgeRedefinition:
		return "redefinition"
	case EdgeReference:
		return "reference subsetting"
	case EdgeTyping:
		return "typing"
	case EdgeConjugatedPortTyping:
		return "conjugated port typing"
	case EdgeConjugation:
		return "conjugation"
	case EdgeDisjoining:
		return "disjoining"
	case EdgeInverting:
		return "inverting"
	case EdgeFeaturing:
		return "featuring"
	case EdgeUnioning:
		return "unioning"
	case EdgeIntersecting:
		return "intersecting"
	case EdgeDifferencing:
		return "differencing"
	default:
		return "edge"
	}
}

// EdgeSource records whether an edge was written by the model author or
// synthesized by the implicit generalization resolver.
type EdgeSource int

const (
	Explicit EdgeSource = iota
	Implicit
)

// Edge is one outgoing specialization of a type.
type Edge struct {
	Target *Element
	Kind   EdgeKind
	Source EdgeSource
}

// Specializations is a type's outgoing edge container: an
// insertion-ordered set keyed by target identity, with a lazily built
// by-kind cache invalidated on every mutation.
type Specializations struct {
	owner  *Element
	order  []*Edge
	index  map[*Element]*Edge
	byKind map[EdgeKind][]*Edge
}

func newSpecializations(owner *Element) *Specializations {
	return &Specializations{owner: owner, index: make(map[*Element]*Edge)}
}

// Add inserts an edge to target. Self-edges are rejected, and the add is
// idempotent per target: the first-added kind and source win, so an
// implicit add after an explicit edge to the same target is a no-op.
// Reports whether a new edge was inserted.
func (s *Specializations) Add(target *Element, kind EdgeKind, source EdgeSource) bool {
	if target == nil || target == s.owner {
		return false
	}
	if _, ok := s.index[target]; ok {
		return false
	}
	e := &Edge{Target: target, Kind: kind, Source: source}
	s.index[target] = e
	s.order = append(s.order, e)
	s.byKind = nil
	return true
}

// Clear drops all edges and caches. Part of the reset protocol.
func (s *Specializations) Clear() {
	s.order = nil
	s.index = make(map[*Element]*Edge)
	s.byKind = nil
}

// Edges returns the direct edges whose kind satisfies kind, in insertion
// order. EdgeAny returns all edges. The result is cached per kind until
// the next mutation and must not be modified.
func (s *Specializations) Edges(kind EdgeKind) []*Edge {
	if s.byKind == nil {
		s.byKind = make(map[EdgeKind][]*Edge)
	} else if cached, ok := s.byKind[kind]; ok {
		return cached
	}
	var out []*Edge
	for _, e := range s.order {
		if e.Kind.Contains(kind) {
			out = append(out, e)
		}
	}
	s.byKind[kind] = out
	return out
}

// Types returns the direct target types of edges matching kind,
// dropping unresolved targets.
func (s *Specializations) Types(kind EdgeKind) []*Element {
	edges := s.Edges(kind)
	out := make([]*Element, 0, len(edges))
	for _, e := range edges {
		if e.Target != nil {
			out = append(out, e.Target)
		}
	}
	return out
}

// All returns the transitive edges matching kind. The traversal starts
// from a synthetic self-edge and skips any target already visited, so it
// terminates on cyclic graphs; cyclic specialization is a semantic
// defect for validators, not a traversal failure.
func (s *Specializations) All(kind EdgeKind) []*Edge {
	visited := map[*Element]bool{s.owner: true}
	var out []*Edge
	s.collect(kind, visited, &out)
	return out
}

func (s *Specializations) collect(kind EdgeKind, visited map[*Element]bool, out *[]*Edge) {
	for _, e := range s.Edges(kind) {
		if e.Target == nil || visited[e.Target] {
			continue
		}
		visited[e.Target] = true
		*out = append(*out, e)
		if e.Target.Typ != nil {
			e.Target.Typ.specs.collect(kind, visited, out)
		}
	}
}

// AllTypes returns the transitive target types matching kind, optionally
// prefixed with the owning type itself.
func (s *Specializations) AllTypes(kind EdgeKind, includeSelf bool) []*Element {
	edges := s.All(kind)
	out := make([]*Element, 0, len(edges)+1)
	if includeSelf {
		out = append(out, s.owner)
	}
	for _, e := range edges {
		out = append(out, e.Target)
	}
	return out
}

// Conforms reports whether the owning type transitively specializes t
// (or is t), following edges matching kind.
func (s *Specializations) Conforms(t *Element, kind EdgeKind) bool {
	for _, c := range s.AllTypes(kind, true) {
		if c == t {
			return true
		}
	}
	return false
}

// ConformsName is Conforms by qualified name, needed when the target
// type object cannot be resolved yet (forward references to library
// types).
func (s *Specializations) ConformsName(qualified string, kind EdgeKind) bool {
	for _, c := range s.AllTypes(kind, true) {
		if c.QualifiedName() == qualified {
			return true
		}
	}
	return false
}
