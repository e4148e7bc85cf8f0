package model

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
)

// Arena owns every semantic element of one document. Elements reference
// each other by ID inside the arena (owner and child can point at each
// other without cyclic garbage), and by pointer across arenas only for
// read-only library targets. Discarding the arena discards the whole
// graph; that is the document-level reset.
type Arena struct {
	registry *Registry
	elements []*Element
}

// NewArena creates an empty arena bound to the shared registry.
func NewArena(registry *Registry) *Arena {
	return &Arena{registry: registry}
}

// Registry returns the shared metamodel registry.
func (a *Arena) Registry() *Registry { return a.registry }

// Create allocates an element of the given kind linked to its syntax
// node and runs the kind's facet initialization list.
func (a *Arena) Create(kind metamodel.Kind, syntax ast.Node) *Element {
	e := &Element{
		arena:  a,
		id:     ID(len(a.elements) + 1),
		kind:   kind,
		syntax: syntax,
	}
	a.registry.construct(e, kind)
	a.elements = append(a.elements, e)
	return e
}

// Get returns the element with the given ID, or nil.
func (a *Arena) Get(id ID) *Element {
	if id == InvalidID || int(id) > len(a.elements) {
		return nil
	}
	return a.elements[id-1]
}

// Len returns the number of live elements.
func (a *Arena) Len() int { return len(a.elements) }

// Elements iterates all elements in creation order.
func (a *Arena) Elements() []*Element { return a.elements }

// Reset discards every element. Callers must drop any pointers obtained
// before the reset; a rebuilt document starts from a clean arena so no
// cross-rebuild state can leak.
func (a *Arena) Reset() {
	a.elements = nil
}

func (a *Arena) resolve(ids []ID) []*Element {
	out := make([]*Element, 0, len(ids))
	for _, id := range ids {
		if e := a.Get(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}
