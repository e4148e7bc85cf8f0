package ast

import "github.com/sysmod-lang/sysmod/internal/token"

// RelationKind tags a heritage/relationship clause on a declaration.
type RelationKind int

const (
	RelSpecializes RelationKind = iota // class B :> A / specializes A
	RelSubsets                         // feature g :> f / subsets f
	RelRedefines                       // feature h :>> f / redefines f
	RelTypedBy                         // feature f : T / typed by T
	RelConjugates                      // class C ~ A
	RelDisjoins                        // disjoint from X
	RelInverseOf                       // inverse of X
	RelFeaturedBy                      // featuring X
)

func (k RelationKind) String() string {
	switch k {
	case RelSpecializes:
		return "specializes"
	case RelSubsets:
		return "subsets"
	case RelRedefines:
		return "redefines"
	case RelTypedBy:
		return "typed by"
	case RelConjugates:
		return "conjugates"
	case RelDisjoins:
		return "disjoint from"
	case RelInverseOf:
		return "inverse of"
	case RelFeaturedBy:
		return "featuring"
	default:
		return "unknown"
	}
}

// Relation is one relationship clause with a single target.
// "class B :> A, C" flattens to two Relations.
type Relation struct {
	Token  token.Token
	Kind   RelationKind
	Target *QualifiedName
}

func (r *Relation) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// PackageDecl declares a package or library package.
type PackageDecl struct {
	Token      token.Token // 'package' or 'library'
	Library    bool
	Visibility Visibility
	ShortName  token.Token // optional, zero Type when absent
	Name       token.Token // optional
	Body       []Decl
}

func (p *PackageDecl) declNode() {}
func (p *PackageDecl) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// TypeDecl declares a non-feature type. The Keyword token type selects the
// metamodel kind: class, datatype, struct, assoc, behavior, function.
type TypeDecl struct {
	Token      token.Token
	Keyword    token.Type
	Visibility Visibility
	Abstract   bool
	ShortName  token.Token
	Name       token.Token
	Relations  []*Relation
	Multiplicity *MultiplicityRange
	Body       []Decl
}

func (t *TypeDecl) declNode() {}
func (t *TypeDecl) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// FeatureDirection of a feature declaration.
type FeatureDirection int

const (
	DirectionNone FeatureDirection = iota
	DirectionIn
	DirectionOut
	DirectionInOut
)

func (d FeatureDirection) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionInOut:
		return "inout"
	default:
		return "none"
	}
}

// FeatureDecl declares a feature, step, expr or return member.
type FeatureDecl struct {
	Token      token.Token
	Keyword    token.Type // feature, step, expr
	Visibility Visibility
	Direction  FeatureDirection
	Abstract   bool
	Composite  bool
	Portion    bool
	Readonly   bool
	Derived    bool
	End        bool
	Ordered    bool
	NonUnique  bool
	Return     bool // declared with the 'return' prefix
	ShortName  token.Token
	Name       token.Token
	Relations  []*Relation
	Multiplicity *MultiplicityRange
	Value      Expression // optional '=' value
	Chain      *QualifiedName // optional chained form: feature c chains a.b
	Body       []Decl
}

func (f *FeatureDecl) declNode() {}
func (f *FeatureDecl) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// MultiplicityRange bounds a type or feature: [upper] or [lower..upper].
type MultiplicityRange struct {
	Token token.Token // '['
	Lower Expression  // nil when only one bound is given
	Upper Expression
}

func (m *MultiplicityRange) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// ImportKind distinguishes the four import forms.
type ImportKind int

const (
	ImportSpecific          ImportKind = iota // import P::X;
	ImportWildcard                            // import P::*;
	ImportRecursive                           // import P::**;
	ImportRecursiveExclusive                  // import P::*::**;
)

func (k ImportKind) String() string {
	switch k {
	case ImportWildcard:
		return "wildcard"
	case ImportRecursive:
		return "recursive"
	case ImportRecursiveExclusive:
		return "recursiveExclusive"
	default:
		return "specific"
	}
}

// ImportDecl brings external members into scope.
type ImportDecl struct {
	Token      token.Token
	Visibility Visibility
	Kind       ImportKind
	Target     *QualifiedName
}

func (i *ImportDecl) declNode() {}
func (i *ImportDecl) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// AliasDecl introduces an alternative name for another element.
// alias Short for Some::Long::Name;
type AliasDecl struct {
	Token      token.Token
	Visibility Visibility
	ShortName  token.Token
	Name       token.Token
	Target     *QualifiedName
}

func (a *AliasDecl) declNode() {}
func (a *AliasDecl) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// CommentDecl is an annotating comment body, optionally named.
type CommentDecl struct {
	Token token.Token
	Name  token.Token
	Body  string
}

func (c *CommentDecl) declNode() {}
func (c *CommentDecl) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// DocDecl is documentation attached to its owning element.
type DocDecl struct {
	Token token.Token
	Name  token.Token
	Body  string
}

func (d *DocDecl) declNode() {}
func (d *DocDecl) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// RepDecl is a textual representation in another language.
type RepDecl struct {
	Token    token.Token
	Name     token.Token
	Language string
	Body     string
}

func (r *RepDecl) declNode() {}
func (r *RepDecl) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// MetadataDecl annotates the owning element with a metadata feature:
// @Annotation; or metadata m : Annotation;
type MetadataDecl struct {
	Token token.Token
	Name  token.Token
	Type  *QualifiedName
}

func (m *MetadataDecl) declNode() {}
func (m *MetadataDecl) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}
