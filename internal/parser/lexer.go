package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes HDQL query strings. Positions are byte offsets into the
// input; columns count runes so multi-byte characters advance them by one.
type Lexer struct {
	input string
	pos   int // byte offset of ch
	width int // byte width of ch
	line  int
	col   int
	ch    rune
}

// NewLexer creates a new lexer over the full query string.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
	if len(input) > 0 {
		l.ch, l.width = utf8.DecodeRuneInString(input)
	}
	return l
}

// advance moves to the next character
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos += l.width
	if l.pos >= len(l.input) {
		l.ch = 0 // EOF
		l.width = 0
	} else {
		l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	}
}

// peek looks ahead without advancing
func (l *Lexer) peek() rune {
	next := l.pos + l.width
	if next >= len(l.input) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.input[next:])
	return ch
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

// readString reads a quoted string and reports whether the closing quote
// was found. Single and double quotes both delimit; there is no escape
// processing beyond the closing quote.
func (l *Lexer) readString() (string, bool) {
	quote := l.ch
	l.advance() // skip opening quote

	var result strings.Builder
	for l.ch != 0 && l.ch != quote {
		result.WriteRune(l.ch)
		l.advance()
	}

	if l.ch != quote {
		return "", false
	}
	l.advance() // skip closing quote

	return result.String(), true
}

// readNumber reads a numeric lexeme and reports whether it is a float.
// The fractional part is only consumed when a digit follows the dot, so
// "3.x" tokenizes as INTEGER DOT IDENTIFIER.
func (l *Lexer) readNumber() (string, bool) {
	var result strings.Builder

	for unicode.IsDigit(l.ch) {
		result.WriteRune(l.ch)
		l.advance()
	}

	if l.ch == '.' && unicode.IsDigit(l.peek()) {
		result.WriteRune(l.ch)
		l.advance()
		for unicode.IsDigit(l.ch) {
			result.WriteRune(l.ch)
			l.advance()
		}
		return result.String(), true
	}

	return result.String(), false
}

// readIdentifier reads an identifier lexeme, including at most one trailing
// wildcard marker, and reports whether a marker was consumed.
func (l *Lexer) readIdentifier() (string, bool) {
	var result strings.Builder

	for l.ch != 0 && (unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '-') {
		// A minus starts the arrow operator, never continues an identifier.
		if l.ch == '-' && l.peek() == '>' {
			break
		}
		result.WriteRune(l.ch)
		l.advance()
	}

	if l.ch == '*' || l.ch == '?' || l.ch == '~' {
		result.WriteRune(l.ch)
		l.advance()
		return result.String(), true
	}

	return result.String(), false
}

// NextToken returns the next token
func (l *Lexer) NextToken() (*Token, error) {
	l.skipWhitespace()

	if l.ch == 0 {
		return &Token{Type: TokenEOF, Pos: l.pos, Line: l.line, Col: l.col}, nil
	}

	pos, line, col := l.pos, l.line, l.col

	if l.ch == '\'' || l.ch == '"' {
		quote := l.ch
		value, closed := l.readString()
		if !closed {
			// An unclosed quote matches no lexical rule; report it at
			// the opening delimiter.
			return nil, newLexicalError(quote, pos, line, col)
		}
		return &Token{Type: TokenString, Value: value, Pos: pos, Line: line, Col: col}, nil
	}

	if unicode.IsDigit(l.ch) {
		value, isFloat := l.readNumber()
		typ := TokenInteger
		if isFloat {
			typ = TokenFloat
		}
		return &Token{Type: typ, Value: value, Pos: pos, Line: line, Col: col}, nil
	}

	if token := l.tokenizeOperator(pos, line, col); token != nil {
		return token, nil
	}

	if unicode.IsLetter(l.ch) || l.ch == '_' {
		value, wildcard := l.readIdentifier()
		if wildcard {
			return &Token{Type: TokenWildcard, Value: value, Pos: pos, Line: line, Col: col}, nil
		}
		return l.classifyKeyword(value, pos, line, col), nil
	}

	// The analogy unknown sentinel: a bare '?' is an identifier whose
	// lexeme is the question mark itself.
	if l.ch == '?' {
		l.advance()
		return &Token{Type: TokenIdentifier, Value: "?", Pos: pos, Line: line, Col: col}, nil
	}

	return nil, newLexicalError(l.ch, pos, line, col)
}

// tokenizeOperator tokenizes operators and punctuation. Two-character
// operators are checked before their single-character prefixes.
func (l *Lexer) tokenizeOperator(pos, line, col int) *Token {
	emit := func(typ TokenType, value string) *Token {
		for range value {
			l.advance()
		}
		return &Token{Type: typ, Value: value, Pos: pos, Line: line, Col: col}
	}

	switch l.ch {
	case '-':
		if l.peek() == '>' {
			return emit(TokenArrow, "->")
		}
		return emit(TokenArithmetic, "-")
	case '=':
		if l.peek() == '=' {
			return emit(TokenOperator, "==")
		}
		return emit(TokenAssign, "=")
	case '!':
		if l.peek() == '=' {
			return emit(TokenOperator, "!=")
		}
		return nil
	case '>':
		if l.peek() == '=' {
			return emit(TokenOperator, ">=")
		}
		return emit(TokenOperator, ">")
	case '<':
		if l.peek() == '=' {
			return emit(TokenOperator, "<=")
		}
		return emit(TokenOperator, "<")
	case '+':
		return emit(TokenArithmetic, "+")
	case '*':
		return emit(TokenArithmetic, "*")
	case '/':
		return emit(TokenArithmetic, "/")
	case '.':
		return emit(TokenDot, ".")
	case '(':
		return emit(TokenLParen, "(")
	case ')':
		return emit(TokenRParen, ")")
	case ',':
		return emit(TokenComma, ",")
	}
	return nil
}

// classifyKeyword classifies a full identifier lexeme. Matching whole
// lexemes means longer keywords can never be shadowed by their prefixes.
// Keywords are case-sensitive: AND, OR and NOT are upper-case only.
func (l *Lexer) classifyKeyword(value string, pos, line, col int) *Token {
	emit := func(typ TokenType) *Token {
		return &Token{Type: typ, Value: value, Pos: pos, Line: line, Col: col}
	}

	switch value {
	case "command", "job", "feature", "outcome", "constraint":
		return emit(TokenEntity)
	case "AND", "OR":
		return emit(TokenLogical)
	case "NOT":
		return emit(TokenNot)
	case "is_to":
		return emit(TokenIsTo)
	case "as":
		return emit(TokenAs)
	case "similar_to":
		return emit(TokenSimilarTo)
	case "maximize", "minimize":
		return emit(TokenObjective)
	case "subject_to":
		return emit(TokenSubjectTo)
	case "commands_for_job", "features_for_job", "outcomes_for_job",
		"commands_similar_to", "features_satisfying", "outcomes_matching",
		"count", "avg", "sum", "max", "min":
		return emit(TokenFunction)
	case "true", "false":
		return emit(TokenBoolean)
	}

	return emit(TokenIdentifier)
}

// TokenizeAll returns all tokens from the input, terminated by a single EOF
// token, or the first lexical error.
func (l *Lexer) TokenizeAll() ([]*Token, error) {
	var tokens []*Token

	for {
		token, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}
