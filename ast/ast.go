// Package ast defines the abstract syntax tree produced by the HDQL front
// end. Nodes are created bottom-up during parsing and never mutated
// afterwards; every node owns its children exclusively, so a parsed tree can
// be shared freely across goroutines.
package ast

// Node represents a node in the abstract syntax tree
type Node interface {
	astNode()
	String() string
}

// Literal kind names carried by Literal.Kind.
const (
	KindString  = "string"
	KindInteger = "integer"
	KindFloat   = "float"
	KindBoolean = "boolean"
)

// Atomic represents an entity lookup like command("build"). EntityType is
// one of command, job, feature, outcome, constraint; the identifier may
// carry wildcard markers. Pos and End delimit the lookup in the source.
type Atomic struct {
	EntityType string
	Identifier string
	Pos        int
	End        int
}

func (e *Atomic) astNode() {}

// Attribute represents attribute access on a base expression, e.g.
// feature("x").coverage or a bare identifier like effort.remaining.
type Attribute struct {
	Base      Node
	Attribute string
}

func (e *Attribute) astNode() {}

// Literal represents a literal constant. Value holds a string, int64,
// float64 or bool matching Kind.
type Literal struct {
	Value any
	Kind  string
}

func (e *Literal) astNode() {}

// Identifier represents a bare name reference
type Identifier struct {
	Name string
}

func (e *Identifier) astNode() {}

// Logical represents a boolean combination. Operands holds one node for NOT
// and two for AND/OR.
type Logical struct {
	Operator string // AND, OR, NOT
	Operands []Node
}

func (e *Logical) astNode() {}

// Comparison represents a single, non-chaining comparison
type Comparison struct {
	Left     Node
	Operator string // ==, !=, >, >=, <, <=
	Right    Node
}

func (e *Comparison) astNode() {}

// Relational represents the arrow relation a -> b. The arrow is
// right-associative, so chains nest into the right side.
type Relational struct {
	Left  Node
	Right Node
}

func (e *Relational) astNode() {}

// BinaryOp represents an arithmetic expression
type BinaryOp struct {
	Operator string // +, -, *, /
	Left     Node
	Right    Node
}

func (e *BinaryOp) astNode() {}

// FunctionCall represents a builtin-style call with positional and keyword
// arguments. The front end does not validate Name against a registry of
// builtins; that is the executor's concern.
type FunctionCall struct {
	Name   string
	Args   []Node
	Kwargs map[string]Node
}

func (e *FunctionCall) astNode() {}

// Analogy represents "a is_to b as c is_to d". A nil TargetB means the
// fourth term is the unknown the executor should solve for.
type Analogy struct {
	SourceA Node
	SourceB Node
	TargetA Node
	TargetB Node
}

func (e *Analogy) astNode() {}

// Similarity represents similar_to(reference, key=value, ...). Parameter
// values are literal payloads only (string, int64, float64, bool); the
// parser rejects anything else, so no later validation pass is needed.
type Similarity struct {
	Reference  Node
	Parameters map[string]any
}

func (e *Similarity) astNode() {}

// Threshold returns the distance threshold, preferring the "distance"
// parameter over "within_distance" and defaulting to 0.3.
func (e *Similarity) Threshold() float64 {
	if v, ok := toFloat(e.Parameters["distance"]); ok {
		return v
	}
	if v, ok := toFloat(e.Parameters["within_distance"]); ok {
		return v
	}
	return 0.3
}

// TopK returns the top_k parameter and whether it was given.
func (e *Similarity) TopK() (int64, bool) {
	switch v := e.Parameters["top_k"].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Metric returns the similarity metric, defaulting to "cosine".
func (e *Similarity) Metric() string {
	if v, ok := e.Parameters["metric"].(string); ok {
		return v
	}
	return "cosine"
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Optimization represents maximize(...)/minimize(...) with optional
// subject_to constraints. Constraints is empty when subject_to is absent.
type Optimization struct {
	Kind        string // maximize, minimize
	Objective   Node
	Constraints []Node
}

func (e *Optimization) astNode() {}

// Kind returns the variant name of a node, useful for executors dispatching
// on node type without a type switch.
func Kind(n Node) string {
	switch n.(type) {
	case *Atomic:
		return "atomic"
	case *Attribute:
		return "attribute"
	case *Literal:
		return "literal"
	case *Identifier:
		return "identifier"
	case *Logical:
		return "logical"
	case *Comparison:
		return "comparison"
	case *Relational:
		return "relational"
	case *BinaryOp:
		return "binary_op"
	case *FunctionCall:
		return "function_call"
	case *Analogy:
		return "analogy"
	case *Similarity:
		return "similarity"
	case *Optimization:
		return "optimization"
	}
	return "unknown"
}
