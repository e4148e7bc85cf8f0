package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sysmod-lang/sysmod/internal/token"
)

// Lexer turns source text into a token stream. Line comments (//) and
// block comments (//* *//) are skipped; note bodies belong to the parser's
// comment/doc declarations and arrive as strings.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// Tokenize consumes the whole input and returns the token stream,
// terminated by an EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()

	var tok token.Token
	line, col := l.line, l.column

	switch l.ch {
	case 0:
		tok = token.Token{Type: token.EOF, Line: line, Column: col}
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '[':
		tok = l.newToken(token.LBRACKET)
	case ']':
		tok = l.newToken(token.RBRACKET)
	case ';':
		tok = l.newToken(token.SEMI)
	case ',':
		tok = l.newToken(token.COMMA)
	case '@':
		tok = l.newToken(token.AT)
	case '#':
		tok = l.newToken(token.HASH)
	case '~':
		tok = l.newToken(token.CONJUGATES)
	case '+':
		tok = l.newToken(token.PLUS)
	case '%':
		tok = l.newToken(token.PERCENT)
	case '/':
		tok = l.newToken(token.SLASH)
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			tok = token.Token{Type: token.DOTDOT, Lexeme: "..", Literal: "..", Line: line, Column: col}
		} else {
			tok = l.newToken(token.DOT)
		}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: line, Column: col}
		} else {
			tok = l.newToken(token.MINUS)
		}
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = token.Token{Type: token.POWER, Lexeme: "**", Literal: "**", Line: line, Column: col}
		} else {
			tok = l.newToken(token.STAR)
		}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: line, Column: col}
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: line, Column: col}
		} else {
			tok = l.illegalToken()
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LE, Lexeme: "<=", Literal: "<=", Line: line, Column: col}
		} else {
			tok = l.newToken(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GE, Lexeme: ">=", Literal: ">=", Line: line, Column: col}
		} else {
			tok = l.newToken(token.GT)
		}
	case '?':
		tok = l.newToken(token.QUESTION)
	case ':':
		// :, ::, :>, :>>
		switch l.peekChar() {
		case ':':
			l.readChar()
			tok = token.Token{Type: token.SCOPE, Lexeme: "::", Literal: "::", Line: line, Column: col}
		case '>':
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				tok = token.Token{Type: token.REDEFINES, Lexeme: ":>>", Literal: ":>>", Line: line, Column: col}
			} else {
				tok = token.Token{Type: token.SPECIALIZES, Lexeme: ":>", Literal: ":>", Line: line, Column: col}
			}
		default:
			tok = l.newToken(token.COLON)
		}
	case '"':
		return l.readString()
	case '\'':
		return l.readQuotedName()
	default:
		if isNameStart(l.ch) {
			return l.readIdentifier()
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.illegalToken()
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.Type) token.Token {
	s := string(l.ch)
	return token.Token{Type: t, Lexeme: s, Literal: s, Line: l.line, Column: l.column}
}

func (l *Lexer) illegalToken() token.Token {
	s := string(l.ch)
	return token.Token{Type: token.ILLEGAL, Lexeme: s, Literal: s, Line: l.line, Column: l.column}
}

func (l *Lexer) skipTrivia() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			// Line or block comment. "//*" opens a block closed by "*//".
			l.readChar()
			l.readChar()
			if l.ch == '*' {
				l.skipBlockComment()
			} else {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
			}
			continue
		}
		return
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // consume '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // now on '/'
			l.readChar()
			if l.ch == '/' {
				l.readChar()
				return
			}
			continue
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() token.Token {
	line, col := l.line, l.column
	start := l.position
	for isNamePart(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	return token.Token{
		Type:    token.LookupIdent(lexeme),
		Lexeme:  lexeme,
		Literal: lexeme,
		Line:    line,
		Column:  col,
	}
}

// readQuotedName scans an unrestricted name: 'any text'. The Literal has
// the quotes stripped and escapes cooked; the Lexeme keeps the raw form.
func (l *Lexer) readQuotedName() token.Token {
	line, col := l.line, l.column
	start := l.position
	var sb strings.Builder
	l.readChar() // consume opening quote
	for l.ch != '\'' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Line: line, Column: col}
		}
		if l.ch == '\\' {
			l.readChar()
			sb.WriteRune(unescape(l.ch))
		} else {
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:    token.IDENT,
		Lexeme:  l.input[start:l.position],
		Literal: sb.String(),
		Line:    line,
		Column:  col,
	}
}

func (l *Lexer) readString() token.Token {
	line, col := l.line, l.column
	start := l.position
	var sb strings.Builder
	l.readChar() // consume opening quote
	for l.ch != '"' {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Line: line, Column: col}
		}
		if l.ch == '\\' {
			l.readChar()
			sb.WriteRune(unescape(l.ch))
		} else {
			sb.WriteRune(l.ch)
		}
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[start:l.position],
		Literal: sb.String(),
		Line:    line,
		Column:  col,
	}
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	start := l.position
	typ := token.INT
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	// A '.' only makes a real if a digit follows; "1..3" stays INT DOTDOT INT.
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		typ = token.REAL
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
		if l.ch == 'e' || l.ch == 'E' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for unicode.IsDigit(l.ch) {
				l.readChar()
			}
		}
	}
	lexeme := l.input[start:l.position]
	return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return ch
	}
}

func isNameStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isNamePart(ch rune) bool {
	return isNameStart(ch) || unicode.IsDigit(ch)
}
