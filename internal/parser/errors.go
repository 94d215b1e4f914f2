package parser

import "fmt"

// ErrorKind distinguishes the two failure modes of the front end.
type ErrorKind int

const (
	// KindLexical means no lexical rule matched at the current offset.
	KindLexical ErrorKind = iota
	// KindSyntactic means a required token was not found where expected,
	// or input remained after a complete expression.
	KindSyntactic
)

// String returns the kind name.
func (k ErrorKind) String() string {
	if k == KindLexical {
		return "lexical"
	}
	return "syntactic"
}

// Error is a structured parse failure. Both the lexer and the parser abort
// on the first error; there is no recovery and no partial result.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     int
	Line    int
	Col     int
	Lexeme  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// newLexicalError reports an unmatchable character at the given offset.
func newLexicalError(ch rune, pos, line, col int) *Error {
	return &Error{
		Kind:    KindLexical,
		Message: fmt.Sprintf("Unknown character: %q", ch),
		Pos:     pos,
		Line:    line,
		Col:     col,
		Lexeme:  string(ch),
	}
}

// newSyntacticError reports an expectation failure at the given token.
func newSyntacticError(message string, tok *Token) *Error {
	err := &Error{
		Kind:    KindSyntactic,
		Message: message,
	}
	if tok != nil {
		err.Pos = tok.Pos
		err.Line = tok.Line
		err.Col = tok.Col
		err.Lexeme = tok.Value
	}
	return err
}
