// Package document manages open model files: each build produces a
// fresh arena from source text, and edits either rebuild from scratch
// or re-resolve in place through the reset protocol.
package document

import (
	"github.com/google/uuid"

	"github.com/sysmod-lang/sysmod/internal/analyzer"
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/lexer"
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/parser"
	"github.com/sysmod-lang/sysmod/internal/pipeline"
	"github.com/sysmod-lang/sysmod/internal/scope"
)

// Document is one open model file and its latest build.
type Document struct {
	ID      uuid.UUID
	Path    string
	Text    string
	Version int

	File        *ast.File
	Arena       *model.Arena
	Root        *model.Element
	Diagnostics []*diagnostics.Diagnostic
}

// Workspace owns the open documents. All documents share one metamodel
// registry and one standard library.
type Workspace struct {
	registry *model.Registry
	lib      model.LibraryIndex // may be nil
	docs     map[string]*Document
}

// NewWorkspace creates a workspace over the given library. lib may be
// nil; builds then run in the degraded no-library mode.
func NewWorkspace(lib model.LibraryIndex) *Workspace {
	return &Workspace{
		registry: model.NewRegistry(),
		lib:      lib,
		docs:     make(map[string]*Document),
	}
}

// Registry returns the shared metamodel registry.
func (w *Workspace) Registry() *model.Registry { return w.registry }

// SetLibrary swaps the standard library used by subsequent builds.
// Existing documents keep their edges into the old one until rebuilt
// or re-resolved.
func (w *Workspace) SetLibrary(lib model.LibraryIndex) { w.lib = lib }

// Get returns the open document at path, or nil.
func (w *Workspace) Get(path string) *Document { return w.docs[path] }

// Documents returns all open documents.
func (w *Workspace) Documents() []*Document {
	out := make([]*Document, 0, len(w.docs))
	for _, d := range w.docs {
		out = append(out, d)
	}
	return out
}

// Open builds a new document from source text. Reopening a path
// replaces the previous document wholesale.
func (w *Workspace) Open(path, text string) *Document {
	doc := &Document{ID: uuid.New(), Path: path, Text: text, Version: 1}
	w.docs[path] = doc
	w.build(doc)
	return doc
}

// Update rebuilds a document with new text. An update carrying a
// version at or below the current one was superseded by a newer edit
// and is dropped without building.
func (w *Workspace) Update(path, text string, version int) *Document {
	doc := w.docs[path]
	if doc == nil {
		return w.Open(path, text)
	}
	if version <= doc.Version {
		return doc
	}
	doc.Text = text
	doc.Version = version
	w.build(doc)
	return doc
}

// Close drops a document. Its arena and every element in it become
// garbage together.
func (w *Workspace) Close(path string) {
	delete(w.docs, path)
}

// build runs the full pipeline into a fresh arena. Nothing from the
// previous build survives; pointers into the old arena are the
// caller's problem, which is why consumers re-query after edits.
func (w *Workspace) build(doc *Document) {
	arena := model.NewArena(w.registry)
	stages := append([]pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	}, analyzer.Stages()...)
	ctx := pipeline.New(stages...).Run(pipeline.NewContext(doc.Path, doc.Text, arena, w.lib))

	doc.File = ctx.AstRoot
	doc.Arena = ctx.Arena
	doc.Root = ctx.Root
	doc.Diagnostics = ctx.Errors
}

// Reresolve re-runs name resolution and implicit generalization over
// the existing element graph without re-parsing: references, import
// tables and specialization edges are reset in place first. Used when
// the cross-document world changed (say, the library appeared) but the
// document text did not.
func (w *Workspace) Reresolve(doc *Document) {
	if doc.Arena == nil {
		return
	}
	for _, e := range doc.Arena.Elements() {
		if e.NS != nil {
			e.NS.ResetImports()
		}
		if e.Typ != nil {
			e.Typ.Specializations().Clear()
		}
		if e.Rel != nil && e.Rel.Reference() != nil {
			e.Rel.Reference().Reset()
		}
		if e.Expr != nil && e.Expr.Ref != nil {
			e.Expr.Ref.Reset()
		}
		if e.Feat != nil {
			for _, cr := range e.Feat.Chain() {
				cr.Reset()
			}
		}
	}
	doc.Diagnostics = nil
	r := scope.NewResolver(doc.Arena, w.lib)
	doc.Diagnostics = append(doc.Diagnostics, r.Resolve()...)
	model.ResolveImplicits(doc.Arena, w.lib)
}
