package parser

import (
	"strconv"

	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// Expression grammar, loosest binding first:
//
//	conditional   if c ? a else b
//	implies
//	or xor
//	and
//	not
//	== !=
//	istype hastype
//	< <= > >=
//	+ -
//	* / %
//	** (right associative)
//	unary -
//	postfix . and #( )
//	primary
func (p *Parser) parseExpression() ast.Expression {
	if p.at(token.IF) {
		return p.parseConditional()
	}
	return p.parseImplies()
}

func (p *Parser) parseConditional() ast.Expression {
	tok := p.advance() // 'if'
	cond := p.parseImplies()
	p.expect(token.QUESTION)
	then := p.parseExpression()
	p.expect(token.ELSE)
	alt := p.parseExpression()
	return &ast.OperatorExpr{Token: tok, Operator: "if", Operands: []ast.Expression{cond, then, alt}}
}

func (p *Parser) parseImplies() ast.Expression {
	left := p.parseOr()
	for p.at(token.IMPLIES) {
		tok := p.advance()
		right := p.parseOr()
		left = &ast.OperatorExpr{Token: tok, Operator: "implies", Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.OR) || p.at(token.XOR) {
		tok := p.advance()
		right := p.parseAnd()
		left = &ast.OperatorExpr{Token: tok, Operator: tok.Lexeme, Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.at(token.AND) {
		tok := p.advance()
		right := p.parseNot()
		left = &ast.OperatorExpr{Token: tok, Operator: "and", Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.at(token.NOT) {
		tok := p.advance()
		operand := p.parseNot()
		return &ast.OperatorExpr{Token: tok, Operator: "not", Operands: []ast.Expression{operand}}
	}
	return p.parseEquality()
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseClassification()
	for p.at(token.EQ) || p.at(token.NOT_EQ) {
		tok := p.advance()
		right := p.parseClassification()
		left = &ast.OperatorExpr{Token: tok, Operator: tok.Lexeme, Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseClassification() ast.Expression {
	left := p.parseRelational()
	for p.at(token.ISTYPE) || p.at(token.HASTYPE) {
		tok := p.advance()
		typ := p.parseQualifiedName()
		left = &ast.ClassificationExpr{Token: tok, Operator: tok.Lexeme, Operand: left, Type: typ}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		tok := p.advance()
		right := p.parseAdditive()
		left = &ast.OperatorExpr{Token: tok, Operator: tok.Lexeme, Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		tok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.OperatorExpr{Token: tok, Operator: tok.Lexeme, Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parsePower()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		tok := p.advance()
		right := p.parsePower()
		left = &ast.OperatorExpr{Token: tok, Operator: tok.Lexeme, Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parsePower() ast.Expression {
	left := p.parseUnary()
	if p.at(token.POWER) {
		tok := p.advance()
		right := p.parsePower()
		return &ast.OperatorExpr{Token: tok, Operator: "**", Operands: []ast.Expression{left, right}}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.MINUS) {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.OperatorExpr{Token: tok, Operator: "-", Operands: []ast.Expression{operand}}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	e := p.parsePrimary()
	for {
		switch {
		case p.at(token.DOT):
			tok := p.advance()
			ref := p.parseQualifiedName()
			if ref == nil {
				return e
			}
			e = &ast.FeatureChainExpr{Token: tok, Receiver: e, Ref: ref}
		case p.at(token.HASH):
			tok := p.advance()
			p.expect(token.LPAREN)
			idx := p.parseExpression()
			p.expect(token.RPAREN)
			e = &ast.OperatorExpr{Token: tok, Operator: "#", Operands: []ast.Expression{e, idx}}
		default:
			return e
		}
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur().Type {
	case token.NULL:
		return &ast.NullLiteral{Token: p.advance()}
	case token.TRUE:
		return &ast.BooleanLiteral{Token: p.advance(), Value: true}
	case token.FALSE:
		return &ast.BooleanLiteral{Token: p.advance(), Value: false}
	case token.INT:
		tok := p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errorHere("integer literal %q out of range", tok.Lexeme)
		}
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case token.REAL:
		tok := p.advance()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.errorHere("invalid decimal literal %q", tok.Lexeme)
		}
		return &ast.RationalLiteral{Token: tok, Value: v}
	case token.STRING:
		tok := p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case token.STAR:
		return &ast.InfinityLiteral{Token: p.advance()}
	case token.AT:
		tok := p.advance()
		return &ast.MetadataAccessExpr{Token: tok, Ref: p.parseQualifiedName()}
	case token.LPAREN:
		return p.parseSequence()
	case token.IDENT:
		return p.parseReferenceOrInvocation()
	default:
		p.errorHere("unexpected token %q in expression", p.cur().Lexeme)
		p.advance()
		return nil
	}
}

// parseSequence parses a parenthesized expression. A lone expression is
// plain grouping; a comma makes it a sequence, and "()" is the empty
// sequence.
func (p *Parser) parseSequence() ast.Expression {
	tok := p.advance() // '('
	if p.accept(token.RPAREN) {
		return &ast.SequenceExpr{Token: tok}
	}
	first := p.parseExpression()
	if !p.at(token.COMMA) {
		p.expect(token.RPAREN)
		return first
	}
	seq := &ast.SequenceExpr{Token: tok, Elements: []ast.Expression{first}}
	for p.accept(token.COMMA) {
		seq.Elements = append(seq.Elements, p.parseExpression())
	}
	p.expect(token.RPAREN)
	return seq
}

func (p *Parser) parseReferenceOrInvocation() ast.Expression {
	tok := p.cur()
	ref := p.parseQualifiedName()
	if ref == nil {
		return nil
	}
	if !p.at(token.LPAREN) {
		return &ast.FeatureReferenceExpr{Ref: ref}
	}
	p.advance()
	inv := &ast.InvocationExpr{Token: tok, Target: ref}
	if !p.at(token.RPAREN) {
		inv.Args = append(inv.Args, p.parseExpression())
		for p.accept(token.COMMA) {
			inv.Args = append(inv.Args, p.parseExpression())
		}
	}
	p.expect(token.RPAREN)
	return inv
}
