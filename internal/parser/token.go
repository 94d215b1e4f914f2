package parser

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenWildcard
	TokenString
	TokenInteger
	TokenFloat
	TokenBoolean
	TokenEntity
	TokenFunction
	TokenLogical
	TokenNot
	TokenOperator
	TokenArrow
	TokenAssign
	TokenArithmetic
	TokenDot
	TokenLParen
	TokenRParen
	TokenComma
	TokenIsTo
	TokenAs
	TokenSimilarTo
	TokenObjective
	TokenSubjectTo
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "IDENTIFIER",
	TokenWildcard:   "WILDCARD",
	TokenString:     "STRING",
	TokenInteger:    "INTEGER",
	TokenFloat:      "FLOAT",
	TokenBoolean:    "BOOLEAN",
	TokenEntity:     "ENTITY",
	TokenFunction:   "FUNCTION",
	TokenLogical:    "LOGICAL",
	TokenNot:        "NOT",
	TokenOperator:   "OPERATOR",
	TokenArrow:      "ARROW",
	TokenAssign:     "ASSIGN",
	TokenArithmetic: "ARITHMETIC",
	TokenDot:        "DOT",
	TokenLParen:     "LPAREN",
	TokenRParen:     "RPAREN",
	TokenComma:      "COMMA",
	TokenIsTo:       "IS_TO",
	TokenAs:         "AS",
	TokenSimilarTo:  "SIMILAR_TO",
	TokenObjective:  "OBJECTIVE",
	TokenSubjectTo:  "SUBJECT_TO",
}

// String returns the token type name used in error messages.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a single token in an HDQL query.
// Value holds the lexical payload: the unquoted string content for string
// literals, the raw lexeme for numbers, keywords, operators and identifiers.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
	Line  int
	Col   int
}
