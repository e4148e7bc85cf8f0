package model

import (
	"github.com/sysmod-lang/sysmod/internal/ast"
	"github.com/sysmod-lang/sysmod/internal/metamodel"
	"github.com/sysmod-lang/sysmod/internal/token"
)

// Link builds the metadata layer for a parsed file: one element per
// syntax node, memberships wrapping named members, references recorded
// but not yet resolved. Returns the document root namespace.
func Link(a *Arena, file *ast.File) *Element {
	root := a.Create(metamodel.KNamespace, file)
	for _, d := range file.Declarations {
		linkDecl(a, root, d)
	}
	return root
}

func linkDecl(a *Arena, parent *Element, decl ast.Decl) *Element {
	switch d := decl.(type) {
	case *ast.PackageDecl:
		return linkPackage(a, parent, d)
	case *ast.TypeDecl:
		return linkType(a, parent, d)
	case *ast.FeatureDecl:
		return linkFeature(a, parent, d)
	case *ast.ImportDecl:
		return linkImport(a, parent, d)
	case *ast.AliasDecl:
		return linkAlias(a, parent, d)
	case *ast.CommentDecl:
		e := a.Create(metamodel.KComment, d)
		e.SetName(d.Name.Lexeme)
		parent.addChild(e)
		parent.comments = append(parent.comments, e.id)
		return e
	case *ast.DocDecl:
		e := a.Create(metamodel.KDocumentation, d)
		e.SetName(d.Name.Lexeme)
		parent.addChild(e)
		parent.docs = append(parent.docs, e.id)
		return e
	case *ast.RepDecl:
		e := a.Create(metamodel.KTextualRepresentation, d)
		e.SetName(d.Name.Lexeme)
		parent.addChild(e)
		parent.reps = append(parent.reps, e.id)
		return e
	case *ast.MetadataDecl:
		e := a.Create(metamodel.KMetadataFeature, d)
		e.SetName(d.Name.Lexeme)
		parent.addChild(e)
		parent.metadata = append(parent.metadata, e.id)
		if d.Type != nil {
			typing := a.Create(metamodel.KFeatureTyping, d)
			typing.Rel.SetReference(refFromName(d.Type))
			e.addChild(typing)
		}
		return e
	default:
		return nil
	}
}

func linkPackage(a *Arena, parent *Element, d *ast.PackageDecl) *Element {
	kind := metamodel.KPackage
	if d.Library {
		kind = metamodel.KLibraryPackage
	}
	e := a.Create(kind, d)
	addMember(a, parent, e, d.Name, d.ShortName, d.Visibility)
	for _, child := range d.Body {
		linkDecl(a, e, child)
	}
	return e
}

var typeKeywordKinds = map[token.Type]metamodel.Kind{
	token.CLASS:    metamodel.KClass,
	token.DATATYPE: metamodel.KDataType,
	token.STRUCT:   metamodel.KStructure,
	token.ASSOC:    metamodel.KAssociation,
	token.BEHAVIOR: metamodel.KBehavior,
	token.FUNCTION: metamodel.KFunction,
}

func linkType(a *Arena, parent *Element, d *ast.TypeDecl) *Element {
	kind, ok := typeKeywordKinds[d.Keyword]
	if !ok {
		kind = metamodel.KClassifier
	}
	e := a.Create(kind, d)
	e.Typ.Abstract = d.Abstract
	addMember(a, parent, e, d.Name, d.ShortName, d.Visibility)
	linkRelations(a, e, d.Relations, false)
	linkMultiplicity(a, e, d.Multiplicity)
	for _, child := range d.Body {
		linkDecl(a, e, child)
	}
	return e
}

var featureKeywordKinds = map[token.Type]metamodel.Kind{
	token.FEATURE: metamodel.KFeature,
	token.STEP:    metamodel.KStep,
	token.EXPR:    metamodel.KExpression,
}

func linkFeature(a *Arena, parent *Element, d *ast.FeatureDecl) *Element {
	kind, ok := featureKeywordKinds[d.Keyword]
	if !ok {
		kind = metamodel.KFeature
	}
	e := a.Create(kind, d)
	e.Typ.Abstract = d.Abstract
	f := e.Feat
	f.Direction = d.Direction
	f.Composite = d.Composite
	f.Portion = d.Portion
	f.Readonly = d.Readonly
	f.Derived = d.Derived
	f.End = d.End
	f.Ordered = d.Ordered
	f.NonUnique = d.NonUnique
	f.IsReturn = d.Return

	addMember(a, parent, e, d.Name, d.ShortName, d.Visibility)
	linkRelations(a, e, d.Relations, true)
	linkMultiplicity(a, e, d.Multiplicity)
	if d.Chain != nil {
		f.SetChain(chainRefs(d.Chain))
	}
	if d.Value != nil {
		v := linkExpr(a, e, d.Value)
		f.SetValue(v)
	}
	for _, child := range d.Body {
		linkDecl(a, e, child)
	}
	return e
}

func linkImport(a *Arena, parent *Element, d *ast.ImportDecl) *Element {
	e := a.Create(metamodel.KImport, d)
	e.visibility = d.Visibility
	e.Rel.SetReference(refFromName(d.Target))
	e.Rel.SetImportKind(d.Kind)
	parent.addChild(e)
	if parent.NS != nil {
		parent.NS.imports = append(parent.NS.imports, e.id)
	}
	return e
}

func linkAlias(a *Arena, parent *Element, d *ast.AliasDecl) *Element {
	e := a.Create(metamodel.KAlias, d)
	e.visibility = d.Visibility
	e.declaredName = d.Name.Lexeme
	e.name = SanitizeName(d.Name.Lexeme)
	if d.ShortName.Type != "" {
		e.declaredShort = d.ShortName.Lexeme
		e.short = SanitizeName(d.ShortName.Lexeme)
	}
	e.Rel.SetReference(refFromName(d.Target))
	parent.addChild(e)
	if parent.NS != nil {
		parent.NS.registerAlias(e)
	}
	return e
}

// relationKinds maps a clause kind to the relationship element kind.
// ':>' means subclassification on a type but subsetting on a feature.
func relationKind(k ast.RelationKind, onFeature bool) metamodel.Kind {
	switch k {
	case ast.RelSpecializes:
		if onFeature {
			return metamodel.KSubsetting
		}
		return metamodel.KSubclassification
	case ast.RelSubsets:
		return metamodel.KSubsetting
	case ast.RelRedefines:
		return metamodel.KRedefinition
	case ast.RelTypedBy:
		return metamodel.KFeatureTyping
	case ast.RelConjugates:
		return metamodel.KConjugation
	case ast.RelDisjoins:
		return metamodel.KDisjoining
	case ast.RelInverseOf:
		return metamodel.KFeatureInverting
	case ast.RelFeaturedBy:
		return metamodel.KTypeFeaturing
	default:
		return metamodel.KSpecialization
	}
}

func linkRelations(a *Arena, owner *Element, rels []*ast.Relation, onFeature bool) {
	for _, r := range rels {
		e := a.Create(relationKind(r.Kind, onFeature), r)
		e.Rel.SetReference(refFromName(r.Target))
		owner.addChild(e)
	}
}

func linkMultiplicity(a *Arena, owner *Element, m *ast.MultiplicityRange) {
	if m == nil {
		return
	}
	e := a.Create(metamodel.KMultiplicityRange, m)
	owner.addChild(e)
	owner.Typ.SetMultiplicity(e)
	// Bound expressions become owned children; Bounds reads them back.
	if m.Lower != nil {
		linkExpr(a, e, m.Lower)
	}
	if m.Upper != nil {
		linkExpr(a, e, m.Upper)
	}
}

// linkExpr builds expression elements. Missing optional fields never
// crash the link; they surface later as unresolved references.
func linkExpr(a *Arena, owner *Element, expr ast.Expression) *Element {
	var e *Element
	switch x := expr.(type) {
	case *ast.NullLiteral:
		e = a.Create(metamodel.KNullExpression, x)
	case *ast.BooleanLiteral:
		e = a.Create(metamodel.KLiteralBoolean, x)
	case *ast.IntegerLiteral:
		e = a.Create(metamodel.KLiteralInteger, x)
	case *ast.RationalLiteral:
		e = a.Create(metamodel.KLiteralRational, x)
	case *ast.StringLiteral:
		e = a.Create(metamodel.KLiteralString, x)
	case *ast.InfinityLiteral:
		e = a.Create(metamodel.KLiteralInfinity, x)
	case *ast.FeatureReferenceExpr:
		e = a.Create(metamodel.KFeatureReferenceExpression, x)
		e.Expr.Ref = refFromName(x.Ref)
	case *ast.OperatorExpr:
		e = a.Create(metamodel.KOperatorExpression, x)
		e.Expr.Operator = x.Operator
		for _, op := range x.Operands {
			e.Expr.AddOperand(linkExpr(a, e, op))
		}
	case *ast.InvocationExpr:
		e = a.Create(metamodel.KInvocationExpression, x)
		e.Expr.Ref = refFromName(x.Target)
		for _, arg := range x.Args {
			e.Expr.AddOperand(linkExpr(a, e, arg))
		}
	case *ast.FeatureChainExpr:
		e = a.Create(metamodel.KFeatureChainExpression, x)
		e.Expr.Ref = refFromName(x.Ref)
		e.Expr.AddOperand(linkExpr(a, e, x.Receiver))
	case *ast.MetadataAccessExpr:
		e = a.Create(metamodel.KMetadataAccessExpression, x)
		e.Expr.Ref = refFromName(x.Ref)
	case *ast.ClassificationExpr:
		e = a.Create(metamodel.KOperatorExpression, x)
		e.Expr.Operator = x.Operator
		e.Expr.Ref = refFromName(x.Type)
		e.Expr.AddOperand(linkExpr(a, e, x.Operand))
	case *ast.SequenceExpr:
		e = a.Create(metamodel.KOperatorExpression, x)
		e.Expr.Operator = ","
		for _, el := range x.Elements {
			e.Expr.AddOperand(linkExpr(a, e, el))
		}
	default:
		return nil
	}
	owner.addChild(e)
	return e
}

// addMember wraps e in an owning membership under parent and registers
// its names in the parent's child table. The membership is transparent:
// it exists structurally but contributes no qualified-name segment.
func addMember(a *Arena, parent *Element, e *Element, name, short token.Token, vis ast.Visibility) {
	membership := a.Create(metamodel.KOwningMembership, e.syntax)
	parent.addChild(membership)
	membership.addChild(e)

	e.visibility = vis
	if name.Type != "" {
		e.declaredName = name.Lexeme
		e.name = SanitizeName(name.Literal)
	}
	if short.Type != "" {
		e.declaredShort = short.Lexeme
		e.short = SanitizeName(short.Literal)
	}
	if parent.NS != nil {
		parent.NS.registerVia(e, membership)
	}
}

func refFromName(q *ast.QualifiedName) *Reference {
	if q == nil {
		return nil
	}
	return NewReference(q.Text(), q.Parts())
}

func chainRefs(q *ast.QualifiedName) []*Reference {
	if q == nil {
		return nil
	}
	parts := q.Parts()
	refs := make([]*Reference, 0, len(parts))
	for _, p := range parts {
		refs = append(refs, NewReference(p, []string{p}))
	}
	return refs
}
