package model_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/lexer"
	"github.com/sysmod-lang/sysmod/internal/model"
	"github.com/sysmod-lang/sysmod/internal/parser"
	"github.com/sysmod-lang/sysmod/internal/scope"
)

// build parses and links source text into a fresh arena.
func build(t *testing.T, src string) (*model.Arena, *model.Element) {
	t.Helper()
	a := model.NewArena(model.NewRegistry())
	p := parser.New(lexer.New(src).Tokenize())
	file := p.ParseFile("test.smod")
	if diags := p.Diagnostics(); len(diags) != 0 {
		t.Fatalf("parse: %v", diags[0])
	}
	return a, model.Link(a, file)
}

// buildResolved additionally runs name resolution with no library.
func buildResolved(t *testing.T, src string) (*model.Arena, *model.Element) {
	t.Helper()
	a, root := build(t, src)
	scope.NewResolver(a, nil).Resolve()
	return a, root
}

// find returns the arena element with the given qualified name.
func find(t *testing.T, a *model.Arena, qualified string) *model.Element {
	t.Helper()
	for _, e := range a.Elements() {
		if e.QualifiedName() == qualified {
			return e
		}
	}
	t.Fatalf("element %q not found", qualified)
	return nil
}
