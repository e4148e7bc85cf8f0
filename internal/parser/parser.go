package parser

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/diagnostics"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// Parser is a recursive-descent parser over a lexed token stream. It
// collects diagnostics instead of stopping: a file with errors still
// yields a partial tree so the semantic layer has something to work on.
type Parser struct {
	toks  []token.Token
	pos   int
	diags []*diagnostics.Diagnostic
}

// New creates a parser for a token stream ending in EOF.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Diagnostics returns the parse diagnostics collected so far.
func (p *Parser) Diagnostics() []*diagnostics.Diagnostic { return p.diags }

// ParseFile parses the whole stream into a file node.
func (p *Parser) ParseFile(path string) *ast.File {
	f := &ast.File{Path: path}
	for !p.at(token.EOF) {
		d := p.parseDeclaration()
		if d != nil {
			f.Declarations = append(f.Declarations, d)
		} else {
			p.recover()
		}
	}
	return f
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) accept(t token.Type) bool {
	if p.at(t) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(t token.Type) (token.Token, bool) {
	if p.at(t) {
		return p.advance(), true
	}
	p.diags = append(p.diags, diagnostics.NewError(
		diagnostics.ErrP002, p.cur(), "expected %q, found %q", string(t), p.cur().Lexeme))
	return p.cur(), false
}

func (p *Parser) errorHere(format string, args ...interface{}) {
	p.diags = append(p.diags, diagnostics.NewError(diagnostics.ErrP001, p.cur(), format, args...))
}

// recover skips to the next plausible declaration boundary.
func (p *Parser) recover() {
	for !p.at(token.EOF) {
		if p.accept(token.SEMI) || p.accept(token.RBRACE) {
			return
		}
		p.advance()
	}
}

// parseQualifiedName parses IDENT ("::" IDENT)*.
func (p *Parser) parseQualifiedName() *ast.QualifiedName {
	seg, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	q := &ast.QualifiedName{Segments: []token.Token{seg}}
	for p.at(token.SCOPE) && p.peek().Type == token.IDENT {
		p.advance()
		q.Segments = append(q.Segments, p.advance())
	}
	return q
}

// parseNames parses the optional "<short> name" identification pair.
func (p *Parser) parseNames() (short, name token.Token) {
	if p.accept(token.LT) {
		short, _ = p.expect(token.IDENT)
		p.expect(token.GT)
	}
	if p.at(token.IDENT) {
		name = p.advance()
	}
	return short, name
}
