package hdql

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a ParseError.
type ErrorKind string

const (
	// LexicalError means a character in the query matched no lexical rule.
	LexicalError ErrorKind = "lexical"
	// SyntacticError means a required token was missing or input remained
	// after a complete expression.
	SyntacticError ErrorKind = "syntactic"
)

// ParseError is the single error type surfaced by the front end. It carries
// enough position information to reconstruct a caret-style diagnostic
// pointing into the original query string. Errors are terminal: parsing
// stops at the first failure and no partial tree is returned.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Position int
	Line     int
	Column   int
	Lexeme   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("hdql: %s error: %s at position %d", e.Kind, e.Message, e.Position)
}

// Diagnostic renders the error together with the offending source line and
// a caret pointing at the failure column.
func (e *ParseError) Diagnostic(query string) string {
	lines := strings.Split(query, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return e.Error()
	}

	col := e.Column
	if col < 1 {
		col = 1
	}
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("%s\n%s\n%s", e.Error(), lines[e.Line-1], caret)
}
