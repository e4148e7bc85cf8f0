package diagnostics

import (
	"fmt"

	"github.com/sysmod-lang/sysmod/internal/token"
)

// Severity ranks a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "info"
	}
}

// Error codes. Lexer codes are L###, parser P###, semantic S###.
const (
	ErrL001 = "L001" // illegal character
	ErrL002 = "L002" // unterminated string
	ErrL003 = "L003" // unterminated quoted name
	ErrL004 = "L004" // unterminated comment

	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // expected token
	ErrP003 = "P003" // token stream missing

	ErrS001 = "S001" // unresolved reference
	ErrS002 = "S002" // duplicate member name
	ErrS003 = "S003" // cyclic import
	ErrS004 = "S004" // library element missing
	ErrS005 = "S005" // cyclic specialization
)

// Diagnostic is a coded message anchored to a source position. Diagnostics
// are collected through the pipeline context, never raised.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	File     string
	Line     int
	Column   int
}

func (d *Diagnostic) Error() string {
	if d.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s[%s]: %s", d.File, d.Line, d.Column, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s[%s]: %s", d.Line, d.Column, d.Severity, d.Code, d.Message)
}

// NewError builds an error diagnostic positioned at tok.
func NewError(code string, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// NewWarning builds a warning diagnostic positioned at tok.
func NewWarning(code string, tok token.Token, format string, args ...interface{}) *Diagnostic {
	d := NewError(code, tok, format, args...)
	d.Severity = Warning
	return d
}
