package token

// Type identifies the lexical class of a token.
type Type string

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT  Type = "IDENT"  // unrestricted name, quoting stripped into Literal
	INT    Type = "INT"    // 42
	REAL   Type = "REAL"   // 3.14
	STRING Type = "STRING" // "text"

	// Delimiters
	LBRACE   Type = "{"
	RBRACE   Type = "}"
	LPAREN   Type = "("
	RPAREN   Type = ")"
	LBRACKET Type = "["
	RBRACKET Type = "]"
	SEMI     Type = ";"
	COMMA    Type = ","
	DOT      Type = "."
	DOTDOT   Type = ".."
	COLON    Type = ":"
	SCOPE    Type = "::"

	// Relationship tokens
	SPECIALIZES Type = ":>"
	REDEFINES   Type = ":>>"
	CONJUGATES  Type = "~"
	ASSIGN      Type = "="
	ARROW       Type = "->"

	// Operators
	PLUS    Type = "+"
	MINUS   Type = "-"
	STAR    Type = "*"
	SLASH   Type = "/"
	PERCENT Type = "%"
	POWER   Type = "**"
	EQ      Type = "=="
	NOT_EQ  Type = "!="
	LT      Type = "<"
	LE      Type = "<="
	GT      Type = ">"
	GE      Type = ">="
	AT       Type = "@"
	HASH     Type = "#"
	QUESTION Type = "?"

	// Keywords
	PACKAGE    Type = "package"
	LIBRARY    Type = "library"
	CLASS      Type = "class"
	DATATYPE   Type = "datatype"
	STRUCT     Type = "struct"
	ASSOC      Type = "assoc"
	BEHAVIOR   Type = "behavior"
	FUNCTION   Type = "function"
	FEATURE    Type = "feature"
	STEP       Type = "step"
	EXPR       Type = "expr"
	METADATA   Type = "metadata"
	MULTIPLICITY Type = "multiplicity"
	SPECIALIZES_KW Type = "specializes"
	SUBSETS    Type = "subsets"
	REDEFINES_KW Type = "redefines"
	TYPED      Type = "typed"
	BY         Type = "by"
	DISJOINT   Type = "disjoint"
	FROM       Type = "from"
	INVERSE    Type = "inverse"
	OF         Type = "of"
	FEATURING  Type = "featuring"
	CHAINS     Type = "chains"
	IMPORT     Type = "import"
	ALIAS      Type = "alias"
	FOR        Type = "for"
	ABSTRACT   Type = "abstract"
	COMPOSITE  Type = "composite"
	PORTION    Type = "portion"
	READONLY   Type = "readonly"
	DERIVED    Type = "derived"
	END        Type = "end"
	ORDERED    Type = "ordered"
	NONUNIQUE  Type = "nonunique"
	IN         Type = "in"
	OUT        Type = "out"
	INOUT      Type = "inout"
	RETURN     Type = "return"
	PUBLIC     Type = "public"
	PROTECTED  Type = "protected"
	PRIVATE    Type = "private"
	COMMENT_KW Type = "comment"
	DOC        Type = "doc"
	REP        Type = "rep"
	TRUE       Type = "true"
	FALSE      Type = "false"
	NULL       Type = "null"
	AND        Type = "and"
	OR         Type = "or"
	XOR        Type = "xor"
	NOT        Type = "not"
	IMPLIES    Type = "implies"
	IF         Type = "if"
	ELSE       Type = "else"
	ISTYPE     Type = "istype"
	HASTYPE    Type = "hastype"
)

// Token is a single lexical unit with its source position.
type Token struct {
	Type    Type
	Lexeme  string // raw source text, quoting preserved
	Literal string // cooked value: quotes stripped for names and strings
	Line    int
	Column  int
}

var keywords = map[string]Type{
	"package": PACKAGE, "library": LIBRARY, "class": CLASS,
	"datatype": DATATYPE, "struct": STRUCT, "assoc": ASSOC,
	"behavior": BEHAVIOR, "function": FUNCTION, "feature": FEATURE,
	"step": STEP, "expr": EXPR, "metadata": METADATA,
	"multiplicity": MULTIPLICITY,
	"specializes": SPECIALIZES_KW, "subsets": SUBSETS,
	"redefines": REDEFINES_KW, "typed": TYPED, "by": BY,
	"disjoint": DISJOINT, "from": FROM, "inverse": INVERSE, "of": OF,
	"featuring": FEATURING, "chains": CHAINS,
	"import": IMPORT, "alias": ALIAS, "for": FOR,
	"abstract": ABSTRACT, "composite": COMPOSITE, "portion": PORTION,
	"readonly": READONLY, "derived": DERIVED, "end": END,
	"ordered": ORDERED, "nonunique": NONUNIQUE,
	"in": IN, "out": OUT, "inout": INOUT, "return": RETURN,
	"public": PUBLIC, "protected": PROTECTED, "private": PRIVATE,
	"comment": COMMENT_KW, "doc": DOC, "rep": REP,
	"true": TRUE, "false": FALSE, "null": NULL,
	"and": AND, "or": OR, "xor": XOR, "not": NOT, "implies": IMPLIES,
	"if": IF, "else": ELSE, "istype": ISTYPE, "hastype": HASTYPE,
}

// LookupIdent maps an identifier to its keyword type, or IDENT.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}
