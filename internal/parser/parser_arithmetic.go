package parser

import (
	"fmt"
	"strconv"

	"github.com/hyperdim/hdql/ast"
)

// parseRelational handles the arrow relation. The arrow is right-associative:
// a -> b -> c parses as a -> (b -> c).
func (p *Parser) parseRelational() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if p.currentToken().Type == TokenArrow {
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		return &ast.Relational{
			Left:  left,
			Right: right,
		}, nil
	}

	return left, nil
}

// parseAdditive handles addition and subtraction
func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenArithmetic &&
		(p.currentToken().Value == "+" || p.currentToken().Value == "-") {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{
			Operator: op.Value,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

// parseMultiplicative handles multiplication and division
func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenArithmetic &&
		(p.currentToken().Value == "*" || p.currentToken().Value == "/") {
		op := p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{
			Operator: op.Value,
			Left:     left,
			Right:    right,
		}
	}

	return left, nil
}

// parsePrimary handles primary expressions: parenthesized expressions,
// entity lookups, similarity/optimization queries, function calls, literals
// and identifiers. Parentheses reset precedence to the top level.
func (p *Parser) parsePrimary() (ast.Node, error) {
	token := p.currentToken()

	switch token.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case TokenEntity:
		node, err := p.parseAtomic()
		if err != nil {
			return nil, err
		}
		// An entity lookup may open an analogy chain.
		if p.currentToken().Type == TokenIsTo {
			return p.parseAnalogy(node)
		}
		return node, nil

	case TokenSimilarTo:
		return p.parseSimilarity()

	case TokenObjective:
		return p.parseOptimization()

	case TokenFunction:
		return p.parseFunctionCall()

	case TokenString, TokenInteger, TokenFloat, TokenBoolean:
		return p.parseLiteral()

	case TokenIdentifier:
		return p.parseIdentifier()
	}

	msg := fmt.Sprintf("Unexpected token: %s %q", token.Type, token.Value)
	return nil, newSyntacticError(msg, token)
}

// parseLiteral converts a literal token into a typed literal node. Numeric
// conversion happens here rather than in the lexer, which keeps token values
// as raw lexemes.
func (p *Parser) parseLiteral() (ast.Node, error) {
	token := p.advance()
	value, kind, err := literalValue(token)
	if err != nil {
		return nil, err
	}
	return &ast.Literal{Value: value, Kind: kind}, nil
}

// literalValue converts a literal token into its payload and kind name.
func literalValue(token *Token) (any, string, error) {
	switch token.Type {
	case TokenString:
		return token.Value, ast.KindString, nil
	case TokenInteger:
		v, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			msg := fmt.Sprintf("Integer literal out of range: %s", token.Value)
			return nil, "", newSyntacticError(msg, token)
		}
		return v, ast.KindInteger, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			msg := fmt.Sprintf("Invalid float literal: %s", token.Value)
			return nil, "", newSyntacticError(msg, token)
		}
		return v, ast.KindFloat, nil
	case TokenBoolean:
		return token.Value == "true", ast.KindBoolean, nil
	}
	msg := fmt.Sprintf("Expected literal value, got %s", token.Type)
	return nil, "", newSyntacticError(msg, token)
}

// parseIdentifier handles a bare identifier with optional attribute access
func (p *Parser) parseIdentifier() (ast.Node, error) {
	token := p.advance()
	var node ast.Node = &ast.Identifier{Name: token.Value}

	if p.currentToken().Type == TokenDot {
		p.advance()
		attr, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}
		node = &ast.Attribute{Base: node, Attribute: attr.Value}
	}

	return node, nil
}
