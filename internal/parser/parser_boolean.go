package parser

import "github.com/hyperdim/hdql/ast"

// parseOr handles OR expressions (lowest precedence)
func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenLogical && p.currentToken().Value == "OR" {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{
			Operator: "OR",
			Operands: []ast.Node{left, right},
		}
	}

	return left, nil
}

// parseAnd handles AND expressions
func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenLogical && p.currentToken().Value == "AND" {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{
			Operator: "AND",
			Operands: []ast.Node{left, right},
		}
	}

	return left, nil
}

// parseNot handles the NOT prefix, which binds tighter than AND
func (p *Parser) parseNot() (ast.Node, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Logical{
			Operator: "NOT",
			Operands: []ast.Node{operand},
		}, nil
	}

	return p.parseComparison()
}

// parseComparison handles comparison expressions. Comparisons do not chain:
// after one operator the level returns, so "a == b == c" leaves the second
// operator for the enclosing layer to reject.
func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}

	if p.currentToken().Type == TokenOperator {
		op := p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{
			Left:     left,
			Operator: op.Value,
			Right:    right,
		}, nil
	}

	return left, nil
}
