package ast

import "github.com/sysmod-lang/sysmod/internal/token"

// NullLiteral is the 'null' expression.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode() {}
func (n *NullLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// BooleanLiteral is 'true' or 'false'.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode() {}
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// IntegerLiteral is a whole-number literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (i *IntegerLiteral) expressionNode() {}
func (i *IntegerLiteral) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// RationalLiteral is a decimal literal.
type RationalLiteral struct {
	Token token.Token
	Value float64
}

func (r *RationalLiteral) expressionNode() {}
func (r *RationalLiteral) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode() {}
func (s *StringLiteral) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// InfinityLiteral is the '*' unbounded literal in multiplicity position.
type InfinityLiteral struct {
	Token token.Token
}

func (i *InfinityLiteral) expressionNode() {}
func (i *InfinityLiteral) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// FeatureReferenceExpr references an element by (possibly qualified) name.
type FeatureReferenceExpr struct {
	Ref *QualifiedName
}

func (f *FeatureReferenceExpr) expressionNode() {}
func (f *FeatureReferenceExpr) GetToken() token.Token {
	return f.Ref.GetToken()
}

// OperatorExpr applies a named operator to its operands. Unary operators
// have one operand, binary two; the conditional operator has three.
// Indexing is the '#' operator with the collection and index as operands.
type OperatorExpr struct {
	Token    token.Token
	Operator string
	Operands []Expression
}

func (o *OperatorExpr) expressionNode() {}
func (o *OperatorExpr) GetToken() token.Token {
	if o == nil {
		return token.Token{}
	}
	return o.Token
}

// InvocationExpr calls a function by qualified name.
type InvocationExpr struct {
	Token  token.Token
	Target *QualifiedName
	Args   []Expression
}

func (i *InvocationExpr) expressionNode() {}
func (i *InvocationExpr) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// FeatureChainExpr navigates from a receiver through a feature: a.b
type FeatureChainExpr struct {
	Token    token.Token // '.'
	Receiver Expression
	Ref      *QualifiedName
}

func (f *FeatureChainExpr) expressionNode() {}
func (f *FeatureChainExpr) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// MetadataAccessExpr reads the metadata annotations of an element: @X
type MetadataAccessExpr struct {
	Token token.Token // '@'
	Ref   *QualifiedName
}

func (m *MetadataAccessExpr) expressionNode() {}
func (m *MetadataAccessExpr) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// ClassificationExpr tests the type of its operand: x istype T, x hastype T.
type ClassificationExpr struct {
	Token    token.Token // 'istype' or 'hastype'
	Operator string
	Operand  Expression
	Type     *QualifiedName
}

func (c *ClassificationExpr) expressionNode() {}
func (c *ClassificationExpr) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// SequenceExpr is a parenthesized sequence: (1, 2, 3).
type SequenceExpr struct {
	Token    token.Token // '('
	Elements []Expression
}

func (s *SequenceExpr) expressionNode() {}
func (s *SequenceExpr) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}
