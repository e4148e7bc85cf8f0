package parser

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/token"
)

func (p *Parser) parseVisibility() ast.Visibility {
	switch {
	case p.accept(token.PUBLIC):
		return ast.Public
	case p.accept(token.PROTECTED):
		return ast.Protected
	case p.accept(token.PRIVATE):
		return ast.Private
	default:
		return ast.Public
	}
}

func (p *Parser) parseDeclaration() ast.Decl {
	vis := p.parseVisibility()
	switch p.cur().Type {
	case token.LIBRARY, token.PACKAGE:
		return p.parsePackage(vis)
	case token.IMPORT:
		return p.parseImport(vis)
	case token.ALIAS:
		return p.parseAlias(vis)
	case token.COMMENT_KW:
		return p.parseComment()
	case token.DOC:
		return p.parseDoc()
	case token.REP:
		return p.parseRep()
	case token.AT, token.METADATA:
		return p.parseMetadata()
	case token.ABSTRACT:
		// abstract prefixes both type and feature declarations
		if isFeatureStart(p.peek().Type) {
			return p.parseFeature(vis)
		}
		return p.parseType(vis)
	case token.CLASS, token.DATATYPE, token.STRUCT, token.ASSOC, token.BEHAVIOR, token.FUNCTION:
		return p.parseType(vis)
	default:
		if isFeatureStart(p.cur().Type) {
			return p.parseFeature(vis)
		}
		p.errorHere("unexpected token %q", p.cur().Lexeme)
		return nil
	}
}

func isFeatureStart(t token.Type) bool {
	switch t {
	case token.FEATURE, token.STEP, token.EXPR,
		token.IN, token.OUT, token.INOUT, token.RETURN,
		token.COMPOSITE, token.PORTION, token.READONLY, token.DERIVED, token.END:
		return true
	}
	return false
}

func (p *Parser) parsePackage(vis ast.Visibility) ast.Decl {
	tok := p.cur()
	library := p.accept(token.LIBRARY)
	p.expect(token.PACKAGE)
	short, name := p.parseNames()
	d := &ast.PackageDecl{Token: tok, Library: library, Visibility: vis, ShortName: short, Name: name}
	d.Body = p.parseBodyOrSemi()
	return d
}

func (p *Parser) parseType(vis ast.Visibility) ast.Decl {
	tok := p.cur()
	abstract := p.accept(token.ABSTRACT)
	kw := p.advance() // class, datatype, struct, assoc, behavior, function
	short, name := p.parseNames()
	d := &ast.TypeDecl{
		Token: tok, Keyword: kw.Type, Visibility: vis, Abstract: abstract,
		ShortName: short, Name: name,
	}
	d.Multiplicity = p.parseMultiplicity()
	d.Relations = p.parseRelations()
	d.Body = p.parseBodyOrSemi()
	return d
}

func (p *Parser) parseFeature(vis ast.Visibility) ast.Decl {
	tok := p.cur()
	d := &ast.FeatureDecl{Token: tok, Keyword: token.FEATURE, Visibility: vis}

prefixes:
	for {
		switch {
		case p.accept(token.IN):
			d.Direction = ast.DirectionIn
		case p.accept(token.OUT):
			d.Direction = ast.DirectionOut
		case p.accept(token.INOUT):
			d.Direction = ast.DirectionInOut
		case p.accept(token.ABSTRACT):
			d.Abstract = true
		case p.accept(token.COMPOSITE):
			d.Composite = true
		case p.accept(token.PORTION):
			d.Portion = true
		case p.accept(token.READONLY):
			d.Readonly = true
		case p.accept(token.DERIVED):
			d.Derived = true
		case p.accept(token.END):
			d.End = true
		case p.accept(token.RETURN):
			d.Return = true
		default:
			break prefixes
		}
	}

	switch p.cur().Type {
	case token.FEATURE, token.STEP, token.EXPR:
		d.Keyword = p.advance().Type
	}

	d.ShortName, d.Name = p.parseNames()

	if p.accept(token.CHAINS) {
		d.Chain = p.parseQualifiedName()
	}

	d.Relations = p.parseRelations()
	d.Multiplicity = p.parseMultiplicity()

	// ordered / nonunique suffix after the multiplicity
suffix:
	for {
		switch {
		case p.accept(token.ORDERED):
			d.Ordered = true
		case p.accept(token.NONUNIQUE):
			d.NonUnique = true
		default:
			break suffix
		}
	}

	// late relation clauses may follow the multiplicity too
	d.Relations = append(d.Relations, p.parseRelations()...)

	if p.accept(token.ASSIGN) {
		d.Value = p.parseExpression()
	}
	d.Body = p.parseBodyOrSemi()
	return d
}

// parseRelations parses zero or more relationship clauses. Each clause
// may name several comma-separated targets; they flatten to one
// Relation per target.
func (p *Parser) parseRelations() []*ast.Relation {
	var out []*ast.Relation
	for {
		tok := p.cur()
		var kind ast.RelationKind
		switch {
		case p.accept(token.SPECIALIZES):
			kind = ast.RelSpecializes
		case p.accept(token.SPECIALIZES_KW):
			kind = ast.RelSpecializes
		case p.accept(token.SUBSETS):
			kind = ast.RelSubsets
		case p.accept(token.REDEFINES):
			kind = ast.RelRedefines
		case p.accept(token.REDEFINES_KW):
			kind = ast.RelRedefines
		case p.accept(token.COLON):
			kind = ast.RelTypedBy
		case p.accept(token.TYPED):
			p.expect(token.BY)
			kind = ast.RelTypedBy
		case p.accept(token.CONJUGATES):
			kind = ast.RelConjugates
		case p.at(token.DISJOINT):
			p.advance()
			p.expect(token.FROM)
			kind = ast.RelDisjoins
		case p.at(token.INVERSE):
			p.advance()
			p.expect(token.OF)
			kind = ast.RelInverseOf
		case p.accept(token.FEATURING):
			kind = ast.RelFeaturedBy
		default:
			return out
		}
		for {
			target := p.parseQualifiedName()
			if target == nil {
				return out
			}
			out = append(out, &ast.Relation{Token: tok, Kind: kind, Target: target})
			if !p.accept(token.COMMA) {
				break
			}
		}
	}
}

// parseMultiplicity parses "[" bound ("**".."]") or nothing.
func (p *Parser) parseMultiplicity() *ast.MultiplicityRange {
	if !p.at(token.LBRACKET) {
		return nil
	}
	tok := p.advance()
	m := &ast.MultiplicityRange{Token: tok}
	first := p.parseBound()
	if p.accept(token.DOTDOT) {
		m.Lower = first
		m.Upper = p.parseBound()
	} else {
		m.Upper = first
	}
	p.expect(token.RBRACKET)
	return m
}

// parseBound parses a multiplicity bound; "*" is the unbounded literal.
func (p *Parser) parseBound() ast.Expression {
	if p.at(token.STAR) {
		return &ast.InfinityLiteral{Token: p.advance()}
	}
	return p.parseExpression()
}

func (p *Parser) parseBodyOrSemi() []ast.Decl {
	if p.accept(token.SEMI) {
		return nil
	}
	if !p.accept(token.LBRACE) {
		p.errorHere("expected %q or %q, found %q", ";", "{", p.cur().Lexeme)
		return nil
	}
	var body []ast.Decl
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		d := p.parseDeclaration()
		if d != nil {
			body = append(body, d)
		} else {
			p.recover()
		}
	}
	p.expect(token.RBRACE)
	return body
}

// parseImport handles the four import forms:
// import P::X; import P::*; import P::**; import P::*::**;
func (p *Parser) parseImport(vis ast.Visibility) ast.Decl {
	tok := p.advance()
	d := &ast.ImportDecl{Token: tok, Visibility: vis, Kind: ast.ImportSpecific}

	seg, ok := p.expect(token.IDENT)
	if !ok {
		p.recover()
		return nil
	}
	q := &ast.QualifiedName{Segments: []token.Token{seg}}
	for p.accept(token.SCOPE) {
		switch {
		case p.at(token.IDENT):
			q.Segments = append(q.Segments, p.advance())
		case p.accept(token.STAR):
			if p.accept(token.SCOPE) {
				p.expect(token.POWER)
				d.Kind = ast.ImportRecursiveExclusive
			} else {
				d.Kind = ast.ImportWildcard
			}
		case p.accept(token.POWER):
			d.Kind = ast.ImportRecursive
		default:
			p.errorHere("expected name, %q or %q in import", "*", "**")
		}
	}
	d.Target = q
	p.expect(token.SEMI)
	return d
}

func (p *Parser) parseAlias(vis ast.Visibility) ast.Decl {
	tok := p.advance()
	short, name := p.parseNames()
	d := &ast.AliasDecl{Token: tok, Visibility: vis, ShortName: short, Name: name}
	p.expect(token.FOR)
	d.Target = p.parseQualifiedName()
	p.expect(token.SEMI)
	return d
}

func (p *Parser) parseComment() ast.Decl {
	tok := p.advance()
	d := &ast.CommentDecl{Token: tok}
	if p.at(token.IDENT) {
		d.Name = p.advance()
	}
	if body, ok := p.expect(token.STRING); ok {
		d.Body = body.Literal
	}
	p.accept(token.SEMI)
	return d
}

func (p *Parser) parseDoc() ast.Decl {
	tok := p.advance()
	d := &ast.DocDecl{Token: tok}
	if p.at(token.IDENT) {
		d.Name = p.advance()
	}
	if body, ok := p.expect(token.STRING); ok {
		d.Body = body.Literal
	}
	p.accept(token.SEMI)
	return d
}

// parseRep parses: rep name? "language" "body";
func (p *Parser) parseRep() ast.Decl {
	tok := p.advance()
	d := &ast.RepDecl{Token: tok}
	if p.at(token.IDENT) {
		d.Name = p.advance()
	}
	if lang, ok := p.expect(token.STRING); ok {
		d.Language = lang.Literal
	}
	if body, ok := p.expect(token.STRING); ok {
		d.Body = body.Literal
	}
	p.accept(token.SEMI)
	return d
}

// parseMetadata parses "@Some::Annotation;" or "metadata m : Annotation;"
func (p *Parser) parseMetadata() ast.Decl {
	tok := p.cur()
	d := &ast.MetadataDecl{Token: tok}
	if p.accept(token.AT) {
		d.Type = p.parseQualifiedName()
	} else {
		p.expect(token.METADATA)
		if p.at(token.IDENT) {
			d.Name = p.advance()
		}
		if p.accept(token.COLON) {
			d.Type = p.parseQualifiedName()
		}
	}
	p.expect(token.SEMI)
	return d
}
