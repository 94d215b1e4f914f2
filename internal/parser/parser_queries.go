package parser

import (
	"fmt"

	"github.com/hyperdim/hdql/ast"
)

// parseAtomic parses an entity lookup: entity("identifier"), with optional
// attribute access. Analogy chaining is handled by the caller so that terms
// inside an analogy cannot swallow the following is_to.
func (p *Parser) parseAtomic() (ast.Node, error) {
	entity := p.advance()

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	identifier := p.currentToken()
	if identifier.Type != TokenString && identifier.Type != TokenIdentifier && identifier.Type != TokenWildcard {
		msg := fmt.Sprintf("Expected string or identifier, got %s", identifier.Type)
		return nil, newSyntacticError(msg, identifier)
	}
	p.advance()

	end := p.currentToken().Pos
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	var node ast.Node = &ast.Atomic{
		EntityType: entity.Value,
		Identifier: identifier.Value,
		Pos:        entity.Pos,
		End:        end,
	}

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

// parseAnalogy parses "sourceA is_to b as c is_to ?" with sourceA already
// consumed. A bare "?" as the final term leaves TargetB nil.
func (p *Parser) parseAnalogy(sourceA ast.Node) (ast.Node, error) {
	if _, err := p.expect(TokenIsTo); err != nil {
		return nil, err
	}
	sourceB, err := p.parseAnalogyTerm()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenAs); err != nil {
		return nil, err
	}
	targetA, err := p.parseAnalogyTerm()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenIsTo); err != nil {
		return nil, err
	}

	var targetB ast.Node
	cur := p.currentToken()
	if cur.Type == TokenIdentifier && cur.Value == "?" {
		p.advance()
	} else {
		targetB, err = p.parseAnalogyTerm()
		if err != nil {
			return nil, err
		}
	}

	return &ast.Analogy{
		SourceA: sourceA,
		SourceB: sourceB,
		TargetA: targetA,
		TargetB: targetB,
	}, nil
}

// parseAnalogyTerm parses one primary expression without re-entering
// analogy chaining, so the enclosing analogy keeps its is_to tokens.
func (p *Parser) parseAnalogyTerm() (ast.Node, error) {
	if p.currentToken().Type == TokenEntity {
		return p.parseAtomic()
	}
	return p.parsePrimary()
}

// parseSimilarity parses similar_to(reference, key=value, ...). Parameter
// values must be literal tokens, never sub-expressions.
func (p *Parser) parseSimilarity() (ast.Node, error) {
	if _, err := p.expect(TokenSimilarTo); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	reference, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	parameters := map[string]any{}
	if p.currentToken().Type == TokenComma {
		p.advance()
		parameters, err = p.parseParameters()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &ast.Similarity{
		Reference:  reference,
		Parameters: parameters,
	}, nil
}

// parseParameters parses a literal-only parameter list: key=value, key=value
func (p *Parser) parseParameters() (map[string]any, error) {
	parameters := map[string]any{}

	for p.currentToken().Type == TokenIdentifier {
		key := p.advance().Value

		if _, err := p.expect(TokenAssign); err != nil {
			return nil, err
		}

		value, _, err := literalValue(p.currentToken())
		if err != nil {
			return nil, err
		}
		p.advance()
		parameters[key] = value

		if p.currentToken().Type != TokenComma {
			break
		}
		p.advance()
	}

	return parameters, nil
}

// parseOptimization parses maximize(obj)/minimize(obj) with an optional
// subject_to(c1, c2, ...) constraint list.
func (p *Parser) parseOptimization() (ast.Node, error) {
	kind := p.advance().Value

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	objective, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	var constraints []ast.Node
	if p.currentToken().Type == TokenSubjectTo {
		p.advance()
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}

		constraint, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, constraint)

		for p.currentToken().Type == TokenComma {
			p.advance()
			constraint, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			constraints = append(constraints, constraint)
		}

		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}

	return &ast.Optimization{
		Kind:        kind,
		Objective:   objective,
		Constraints: constraints,
	}, nil
}

// parseFunctionCall parses a builtin-style call with a mix of positional
// arguments and keyword pairs. Keyword-ness is decided by one-token
// lookahead before committing, so an identifier-led positional expression
// still parses.
func (p *Parser) parseFunctionCall() (ast.Node, error) {
	name := p.advance().Value

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	var args []ast.Node
	kwargs := map[string]ast.Node{}

	if p.currentToken().Type != TokenRParen {
		for {
			if p.currentToken().Type == TokenIdentifier && p.peek(1).Type == TokenAssign {
				key := p.advance().Value
				p.advance() // consume '='
				value, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				kwargs[key] = value
			} else {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}

			if p.currentToken().Type != TokenComma {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	return &ast.FunctionCall{
		Name:   name,
		Args:   args,
		Kwargs: kwargs,
	}, nil
}
