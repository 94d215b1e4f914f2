package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the returned visitor is non-nil, Walk visits the node's children with
// it, followed by a call of Visit(nil).
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses the tree rooted at node in depth-first order, visiting
// children in syntactic order. Keyword arguments and similarity parameters
// are visited in sorted key order so traversal is deterministic.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Atomic, *Identifier, *Literal:
		// leaves

	case *Attribute:
		Walk(v, n.Base)

	case *Similarity:
		// Parameters are literal payloads, not nodes.
		Walk(v, n.Reference)

	case *Logical:
		for _, operand := range n.Operands {
			Walk(v, operand)
		}

	case *Comparison:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *Relational:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *BinaryOp:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(v, arg)
		}
		for _, key := range sortedKeys(n.Kwargs) {
			Walk(v, n.Kwargs[key])
		}

	case *Analogy:
		Walk(v, n.SourceA)
		Walk(v, n.SourceB)
		Walk(v, n.TargetA)
		if n.TargetB != nil {
			Walk(v, n.TargetB)
		}

	case *Optimization:
		Walk(v, n.Objective)
		for _, c := range n.Constraints {
			Walk(v, c)
		}
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node != nil && f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree rooted at node, calling f for each node. If f
// returns false for a node, its children are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
