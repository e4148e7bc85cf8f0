// Package library loads the standard model library: the packages that
// implicit generalization and builtin-function dispatch resolve
// against. The library lives in its own arena; documents point into it
// with plain pointers and never mutate it.
package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysmod-lang/sysmod/internal/config"
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/lexer"
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/parser"
	"github.com/sysmod-lang/sysmod/internal/scope"
)

// Library is a loaded standard library, resolvable by qualified name.
type Library struct {
	dir      string
	registry *model.Registry
	arena    *model.Arena
	manifest *Manifest

	index  map[string]*model.Element // qualified name -> element
	decls  map[string]string         // qualified name -> declaring file
	loaded map[string]bool

	db   *indexDB // nil: cache unusable, eager loading only
	lazy bool

	diags []*diagnostics.Diagnostic
}

// Open prepares a library rooted at dir. When the on-disk index cache
// is fresh the library loads lazily, parsing files only as their names
// are first resolved; otherwise everything is loaded eagerly and the
// cache rebuilt.
func Open(dir string, registry *model.Registry) (*Library, error) {
	manifest, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}
	l := &Library{
		dir:      dir,
		registry: registry,
		arena:    model.NewArena(registry),
		manifest: manifest,
		index:    make(map[string]*model.Element),
		decls:    make(map[string]string),
		loaded:   make(map[string]bool),
	}
	if db, dbErr := openIndex(dir); dbErr == nil {
		l.db = db
		l.lazy = db.fresh(dir, manifest.Files)
	}
	if !l.lazy {
		if err := l.loadAll(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// OpenDefault opens the library named by the environment. A missing
// configuration yields a nil library: the degraded no-library mode.
func OpenDefault(registry *model.Registry) (*Library, error) {
	dir := os.Getenv(config.LibraryEnvVar)
	if dir == "" {
		return nil, nil
	}
	return Open(dir, registry)
}

// Close releases the index cache handle.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

// Diagnostics returns the problems found while loading library files.
func (l *Library) Diagnostics() []*diagnostics.Diagnostic { return l.diags }

// Manifest returns the manifest the library was opened with.
func (l *Library) Manifest() *Manifest { return l.manifest }

// ResolveQualified finds a library element by qualified name. In lazy
// mode the declaring file is located through the index cache and loaded
// on first use. A nil result means the name is not in the library.
func (l *Library) ResolveQualified(name string) *model.Element {
	if e, ok := l.index[name]; ok {
		return e
	}
	if !l.lazy || l.db == nil {
		return nil
	}
	file := l.db.fileFor(name)
	if file == "" || l.loaded[file] {
		return nil
	}
	l.loadFile(file)
	l.resolveLoaded()
	return l.index[name]
}

func (l *Library) loadAll() error {
	for _, f := range l.manifest.Files {
		if err := l.loadFileErr(f); err != nil {
			return err
		}
	}
	l.resolveLoaded()
	if l.db != nil {
		if err := l.db.rebuild(l.dir, l.decls, l.manifest.Files); err == nil {
			l.lazy = true
		}
	}
	return nil
}

func (l *Library) loadFile(f string) {
	// A file the cache promised but the disk no longer has is just an
	// unresolvable name; noted, not fatal.
	if err := l.loadFileErr(f); err != nil {
		l.diags = append(l.diags, &diagnostics.Diagnostic{
			Code:     diagnostics.ErrS004,
			Severity: diagnostics.Warning,
			Message:  fmt.Sprintf("library file unreadable: %v", err),
			File:     f,
		})
	}
}

func (l *Library) loadFileErr(f string) error {
	if l.loaded[f] {
		return nil
	}
	l.loaded[f] = true

	data, err := os.ReadFile(filepath.Join(l.dir, f))
	if err != nil {
		return err
	}
	toks := lexer.New(string(data)).Tokenize()
	p := parser.New(toks)
	fileAst := p.ParseFile(f)
	for _, d := range p.Diagnostics() {
		if d.File == "" {
			d.File = f
		}
		l.diags = append(l.diags, d)
	}
	root := model.Link(l.arena, fileAst)
	l.indexFrom(root, f)
	return nil
}

// indexFrom registers the qualified name of every named element below
// root. First declaration of a name wins across files.
func (l *Library) indexFrom(root *model.Element, file string) {
	var walk func(e *model.Element)
	walk = func(e *model.Element) {
		if qn := e.QualifiedName(); qn != "" {
			if _, taken := l.index[qn]; !taken {
				l.index[qn] = e
				l.decls[qn] = file
			}
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	for _, c := range root.Children() {
		walk(c)
	}
}

// resolveLoaded resolves references across everything loaded so far.
// Already-resolved references are skipped and edge insertion is
// idempotent, so re-running after each lazy load is safe.
func (l *Library) resolveLoaded() {
	r := scope.NewResolver(l.arena, l)
	for _, d := range r.Resolve() {
		l.diags = append(l.diags, d)
	}
	model.ResolveImplicits(l.arena, l)
}
