package metamodel

import (
	"fmt"
	"sort"
)

// Hierarchy is the process-wide, immutable subtype index over the
// metamodel kinds. It is built once from the static parents table and is
// safe for unsynchronized concurrent reads afterwards.
//
// A contradictory table (unknown parent, cyclic is-a) is a programming
// error: construction panics rather than degrading.
type Hierarchy struct {
	ancestors map[Kind][]Kind        // most-specific to most-general, excluding the kind itself
	ancestorSet map[Kind]map[Kind]bool
	depth     map[Kind]int
	kinds     []Kind // all kinds in deterministic order
}

// NewHierarchy builds the index from the static metamodel description.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{
		ancestors:   make(map[Kind][]Kind, len(parents)),
		ancestorSet: make(map[Kind]map[Kind]bool, len(parents)),
		depth:       make(map[Kind]int, len(parents)),
	}

	for k := range parents {
		h.kinds = append(h.kinds, k)
	}
	sort.Slice(h.kinds, func(i, j int) bool { return h.kinds[i] < h.kinds[j] })

	for _, k := range h.kinds {
		h.computeDepth(k, make(map[Kind]bool))
	}
	for _, k := range h.kinds {
		h.linearize(k)
	}
	return h
}

// computeDepth is the cycle check: depth is the longest is-a path to the
// root, and a kind revisited while on the stack means the table is cyclic.
func (h *Hierarchy) computeDepth(k Kind, onStack map[Kind]bool) int {
	if d, ok := h.depth[k]; ok {
		return d
	}
	if onStack[k] {
		panic(fmt.Sprintf("metamodel: cyclic is-a declaration involving %s", k))
	}
	ps, declared := parents[k]
	if !declared {
		panic(fmt.Sprintf("metamodel: kind %s is not declared", k))
	}
	onStack[k] = true
	d := 0
	for _, p := range ps {
		if _, ok := parents[p]; !ok {
			panic(fmt.Sprintf("metamodel: %s declares unknown parent %s", k, p))
		}
		if pd := h.computeDepth(p, onStack) + 1; pd > d {
			d = pd
		}
	}
	delete(onStack, k)
	h.depth[k] = d
	return d
}

// linearize orders every ancestor of k so that any kind precedes all of
// its own ancestors (depth descending, ties by first encounter).
func (h *Hierarchy) linearize(k Kind) {
	var order []Kind
	seen := map[Kind]bool{k: true}
	var visit func(Kind)
	visit = func(c Kind) {
		for _, p := range parents[c] {
			if !seen[p] {
				seen[p] = true
				order = append(order, p)
			}
		}
		for _, p := range parents[c] {
			visit(p)
		}
	}
	visit(k)
	sort.SliceStable(order, func(i, j int) bool {
		return h.depth[order[i]] > h.depth[order[j]]
	})

	set := make(map[Kind]bool, len(order))
	for _, a := range order {
		set[a] = true
	}
	h.ancestors[k] = order
	h.ancestorSet[k] = set
}

// IsSubtype reports whether sub is sup or inherits from it. O(1).
func (h *Hierarchy) IsSubtype(sub, sup Kind) bool {
	return sub == sup || h.ancestorSet[sub][sup]
}

// InheritanceChain returns kind followed by its ancestors, most specific
// first. The returned slice must not be mutated.
func (h *Hierarchy) InheritanceChain(k Kind) []Kind {
	chain := make([]Kind, 0, len(h.ancestors[k])+1)
	chain = append(chain, k)
	chain = append(chain, h.ancestors[k]...)
	return chain
}

// Kinds returns every declared kind in deterministic order.
func (h *Hierarchy) Kinds() []Kind {
	return h.kinds
}

// Known reports whether k is a declared kind.
func (h *Hierarchy) Known(k Kind) bool {
	_, ok := parents[k]
	return ok
}

// ExpandToDerived fills a sparse per-kind table out to every kind: each
// kind takes the value declared for the nearest kind on its inheritance
// chain, falling back to def. Lets callers register once against a general
// kind and have the registration apply to all subtypes unless a more
// specific entry overrides it.
func ExpandToDerived[V any](h *Hierarchy, sparse map[Kind]V, def V) map[Kind]V {
	full := make(map[Kind]V, len(h.kinds))
	for _, k := range h.kinds {
		v := def
		for _, c := range h.InheritanceChain(k) {
			if declared, ok := sparse[c]; ok {
				v = declared
				break
			}
		}
		full[k] = v
	}
	return full
}

// ExpandAndMerge concatenates the values declared at every level of each
// kind's inheritance chain instead of overriding. With reverse=false the
// result runs most-specific to most-general; reverse=true flips that,
// which is the order validation rule chains want (general rules first).
func ExpandAndMerge[V any](h *Hierarchy, sparse map[Kind][]V, reverse bool) map[Kind][]V {
	full := make(map[Kind][]V, len(h.kinds))
	for _, k := range h.kinds {
		chain := h.InheritanceChain(k)
		var merged []V
		if reverse {
			for i := len(chain) - 1; i >= 0; i-- {
				merged = append(merged, sparse[chain[i]]...)
			}
		} else {
			for _, c := range chain {
				merged = append(merged, sparse[c]...)
			}
		}
		full[k] = merged
	}
	return full
}
