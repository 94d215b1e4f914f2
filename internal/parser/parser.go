package parser

import (
	"fmt"

	"github.com/hyperdim/hdql/ast"
)

// Parser is a recursive descent parser over a token stream. It consumes
// tokens left to right with one-token lookahead and never backtracks.
type Parser struct {
	tokens  []*Token
	current int
}

// NewParser creates a new parser over a token stream ending in EOF.
func NewParser(tokens []*Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
	}
}

// currentToken returns the current token
func (p *Parser) currentToken() *Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

// peek looks ahead at the token at the given offset without advancing
func (p *Parser) peek(offset int) *Token {
	pos := p.current + offset
	if pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[pos]
}

// advance consumes and returns the current token
func (p *Parser) advance() *Token {
	token := p.currentToken()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return token
}

// expect consumes a token of the expected type or fails
func (p *Parser) expect(tokenType TokenType) (*Token, error) {
	token := p.currentToken()
	if token.Type != tokenType {
		msg := fmt.Sprintf("Expected %s, got %s", tokenType, token.Type)
		return nil, newSyntacticError(msg, token)
	}
	return p.advance(), nil
}

// Parse parses the token stream into a single AST root, requiring the
// entire stream be consumed up to and including EOF.
func (p *Parser) Parse() (ast.Node, error) {
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}

	return node, nil
}

// parseExpr parses an expression at the loosest precedence level.
func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseOr()
}
