package ast

import (
	"strings"

	"github.com/sysmod-lang/sysmod/internal/config"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// Node is the base interface for all syntax nodes.
type Node interface {
	GetToken() token.Token
}

// Decl is a Node that can appear in a namespace body.
type Decl interface {
	Node
	declNode()
}

// Expression is a Node in expression position.
type Expression interface {
	Node
	expressionNode()
}

// Visibility of a member relative to its owning namespace.
type Visibility int

const (
	Public Visibility = iota // default
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// QualifiedName is a parsed scope-separated name chain. Segments keep
// their tokens so both the raw (possibly quoted) and cooked forms survive.
type QualifiedName struct {
	Segments []token.Token
}

func (q *QualifiedName) GetToken() token.Token {
	if q == nil || len(q.Segments) == 0 {
		return token.Token{}
	}
	return q.Segments[0]
}

// Parts returns the cooked segment names.
func (q *QualifiedName) Parts() []string {
	parts := make([]string, len(q.Segments))
	for i, s := range q.Segments {
		parts[i] = s.Literal
	}
	return parts
}

// Text reconstructs the reference as written, with cooked segments.
func (q *QualifiedName) Text() string {
	return strings.Join(q.Parts(), config.ScopeSeparator)
}

// File is the root node of every parse.
type File struct {
	Path         string
	Declarations []Decl
}

func (f *File) GetToken() token.Token {
	if len(f.Declarations) > 0 {
		return f.Declarations[0].GetToken()
	}
	return token.Token{}
}
