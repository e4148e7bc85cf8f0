package scope

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/model"
)

// resolveImports advances a namespace through the import state machine:
// none -> active -> completed. The active state is the cycle guard:
// lookupImported refuses to consult a namespace whose imports are being
// resolved right now, so "N imports M imports N" settles into a stable,
// possibly partial, completed state instead of recursing.
func (r *Resolver) resolveImports(ns *model.Element) {
	if ns.NS == nil || ns.NS.ImportState() != model.ImportsNone {
		return
	}
	ns.NS.SetImportState(model.ImportsActive)
	for _, imp := range ns.NS.Imports() {
		ref := imp.Rel.Reference()
		if ref == nil {
			continue
		}
		if ref.Target() == nil {
			r.resolveReference(imp, ref)
		}
		target := ref.Target()
		if target == nil {
			continue
		}
		switch imp.Rel.ImportKind() {
		case ast.ImportSpecific:
			r.importSpecific(ns, imp, target)
		case ast.ImportWildcard:
			r.importMembers(ns, target)
		case ast.ImportRecursive:
			r.importNamespaceItself(ns, target)
			r.importRecursive(ns, target, map[*model.Element]bool{})
		case ast.ImportRecursiveExclusive:
			r.importRecursive(ns, target, map[*model.Element]bool{})
		}
	}
	ns.NS.SetImportState(model.ImportsCompleted)
}

// lookupImported consults the names an import made visible. Called only
// from scope walks; the active guard makes cyclic imports terminate. A
// lookup that starts inside ns while its own imports are being resolved
// is normal (the import target's name walks outward through ns), so only
// cross-namespace re-entry is reported.
func (r *Resolver) lookupImported(ns *model.Element, name string, from *model.Element) *model.Element {
	switch ns.NS.ImportState() {
	case model.ImportsActive:
		if !encloses(ns, from) {
			r.diags = append(r.diags, diagnostics.NewWarning(
				diagnostics.ErrS003, ns.Syntax().GetToken(),
				"cyclic import through %q", ns.Name()))
		}
		return nil
	case model.ImportsNone:
		r.resolveImports(ns)
	}
	if d := ns.NS.Lookup(name); d != nil && d.Imported {
		return d.Element
	}
	return nil
}

func (r *Resolver) importSpecific(ns, imp, target *model.Element) {
	name := target.Name()
	if name == "" {
		name = target.ShortName()
	}
	if name == "" {
		return
	}
	ns.NS.RegisterImported(name, target, imp.Visibility())
}

// importMembers brings target's direct members in. Only public members
// are importable; aliases are followed to their final target first.
func (r *Resolver) importMembers(ns, target *model.Element) {
	if target.NS == nil {
		return
	}
	for _, d := range target.NS.Members() {
		if !Importable(d) {
			continue
		}
		e := r.followAlias(d.Element)
		if e == nil {
			continue
		}
		ns.NS.RegisterImported(d.Name, e, ast.Private)
	}
}

func (r *Resolver) importNamespaceItself(ns, target *model.Element) {
	name := target.Name()
	if name == "" {
		name = target.ShortName()
	}
	if name != "" {
		ns.NS.RegisterImported(name, target, ast.Private)
	}
}

// importRecursive imports all nested public members of target,
// excluding target itself. The visited set guards against ownership
// cycles through aliases.
func (r *Resolver) importRecursive(ns, target *model.Element, visited map[*model.Element]bool) {
	if target.NS == nil || visited[target] {
		return
	}
	visited[target] = true
	for _, d := range target.NS.Members() {
		if !Importable(d) {
			continue
		}
		e := r.followAlias(d.Element)
		if e == nil {
			continue
		}
		ns.NS.RegisterImported(d.Name, e, ast.Private)
		if e.NS != nil {
			r.importRecursive(ns, e, visited)
		}
	}
}
