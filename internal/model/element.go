package model

import (
	"strings"

	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/config"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
)

// ID addresses an element inside its arena. The zero ID is invalid.
type ID uint32

// InvalidID marks an absent element.
const InvalidID ID = 0

// Element is the universal semantic entity: one per linked syntax node,
// exclusively owned by that node for the document's lifetime. Composite
// metamodel kinds are represented by the union of facet records rather
// than type hierarchies; the kind's factory decides which facets exist
// and in which order their setup runs.
type Element struct {
	arena  *Arena
	id     ID
	kind   metamodel.Kind
	syntax ast.Node
	owner  ID

	declaredName  string // raw form, quoting preserved
	declaredShort string
	name          string // sanitized form used for lookup
	short         string

	visibility ast.Visibility

	children []ID // owned elements in declaration order
	comments []ID
	docs     []ID
	reps     []ID
	metadata []ID

	// Facets. Nil when the kind does not carry the aspect.
	NS   *Namespace
	Typ  *Type
	Feat *Feature
	Rel  *Relationship
	Expr *ExprData
}

// ID returns the element's arena-unique identifier.
func (e *Element) ID() ID { return e.id }

// Kind returns the metamodel kind.
func (e *Element) Kind() metamodel.Kind { return e.kind }

// Syntax returns the syntax node this element was linked from.
func (e *Element) Syntax() ast.Node { return e.syntax }

// Is reports whether the element's kind is k or a subtype of k.
func (e *Element) Is(k metamodel.Kind) bool {
	return e.arena.registry.Hierarchy.IsSubtype(e.kind, k)
}

// IsAny reports whether the element's kind matches any of kinds.
func (e *Element) IsAny(kinds ...metamodel.Kind) bool {
	for _, k := range kinds {
		if e.Is(k) {
			return true
		}
	}
	return false
}

// Owner returns the owning element, or nil at the root.
func (e *Element) Owner() *Element {
	return e.arena.Get(e.owner)
}

// Children returns the owned elements in declaration order.
func (e *Element) Children() []*Element {
	out := make([]*Element, 0, len(e.children))
	for _, id := range e.children {
		if c := e.arena.Get(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (e *Element) addChild(c *Element) {
	c.owner = e.id
	e.children = append(e.children, c.id)
}

// removeChild detaches c from the child list. Used by rename and
// membership rewrites; the element itself stays alive in the arena.
func (e *Element) removeChild(c *Element) {
	for i, id := range e.children {
		if id == c.id {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.owner = InvalidID
			return
		}
	}
}

// Name returns the sanitized declared name, or "".
func (e *Element) Name() string { return e.name }

// ShortName returns the sanitized declared short name, or "".
func (e *Element) ShortName() string { return e.short }

// RawName returns the declared name as written, quoting preserved.
func (e *Element) RawName() string { return e.declaredName }

// Visibility returns the member visibility (public by default).
func (e *Element) Visibility() ast.Visibility { return e.visibility }

// SetName updates the declared name, re-keying the owning namespace's
// child table. Qualified names of descendants are not touched: they are
// recomputed from the live owner chain on demand.
func (e *Element) SetName(raw string) {
	owning := e.owningNamespace()
	var membership *Element
	if owning != nil {
		membership = owning.NS.unregister(e)
	}
	e.declaredName = raw
	e.name = SanitizeName(raw)
	if owning != nil {
		owning.NS.registerVia(e, membership)
	}
}

// SetShortName updates the declared short name, re-keying the owning
// namespace's child table.
func (e *Element) SetShortName(raw string) {
	owning := e.owningNamespace()
	var membership *Element
	if owning != nil {
		membership = owning.NS.unregister(e)
	}
	e.declaredShort = raw
	e.short = SanitizeName(raw)
	if owning != nil {
		owning.NS.registerVia(e, membership)
	}
}

// owningNamespace walks up to the nearest ancestor namespace, skipping
// transparent wrappers such as memberships.
func (e *Element) owningNamespace() *Element {
	for o := e.Owner(); o != nil; o = o.Owner() {
		if o.NS != nil {
			return o
		}
	}
	return nil
}

// transparent elements exist structurally but are not nameable scopes;
// they contribute no qualified-name segment.
func (e *Element) transparent() bool {
	return e.Is(metamodel.KMembership) || e.Is(metamodel.KImport)
}

// segmentName is the qualified-name contribution of this element:
// name, else short name, else an identifier fallback.
func (e *Element) segmentName() string {
	if e.name != "" {
		return e.name
	}
	if e.short != "" {
		return e.short
	}
	return "<" + string(e.kind) + ">"
}

// QualifiedName computes the scope-separated path from the model root,
// skipping transparent wrappers and the unnamed file root. Recomputed
// from the live owner chain on every call.
func (e *Element) QualifiedName() string {
	if e.transparent() {
		return ""
	}
	var segs []string
	for cur := e; cur != nil; cur = cur.Owner() {
		if cur.transparent() {
			continue
		}
		if cur.Owner() == nil && cur.name == "" && cur.short == "" {
			break // unnamed document root
		}
		segs = append(segs, cur.segmentName())
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, config.ScopeSeparator)
}

// Comments returns owned annotating comments.
func (e *Element) Comments() []*Element { return e.arena.resolve(e.comments) }

// Docs returns owned documentation.
func (e *Element) Docs() []*Element { return e.arena.resolve(e.docs) }

// TextualReps returns owned textual representations.
func (e *Element) TextualReps() []*Element { return e.arena.resolve(e.reps) }

// Metadata returns the element's own metadata annotations.
func (e *Element) Metadata() []*Element { return e.arena.resolve(e.metadata) }

// SanitizeName strips unrestricted-name quoting and cooks escapes,
// producing the form used in lookup tables and qualified names. The raw
// form is kept separately for display.
func SanitizeName(raw string) string {
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		inner := raw[1 : len(raw)-1]
		var sb strings.Builder
		for i := 0; i < len(inner); i++ {
			if inner[i] == '\\' && i+1 < len(inner) {
				i++
				switch inner[i] {
				case 'n':
					sb.WriteByte('\n')
				case 't':
					sb.WriteByte('\t')
				default:
					sb.WriteByte(inner[i])
				}
				continue
			}
			sb.WriteByte(inner[i])
		}
		return sb.String()
	}
	return raw
}
