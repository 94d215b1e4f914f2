package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonical rendering of the tree. The output re-parses to a structurally
// identical tree for every construct except redundant parentheses.

func (e *Atomic) String() string {
	return fmt.Sprintf("%s(%q)", e.EntityType, e.Identifier)
}

func (e *Attribute) String() string {
	return e.Base.String() + "." + e.Attribute
}

func (e *Literal) String() string {
	return formatValue(e.Value)
}

func (e *Identifier) String() string {
	return e.Name
}

func (e *Logical) String() string {
	if e.Operator == "NOT" {
		return "NOT " + e.Operands[0].String()
	}
	return fmt.Sprintf("(%s %s %s)", e.Operands[0], e.Operator, e.Operands[1])
}

func (e *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

func (e *Relational) String() string {
	return fmt.Sprintf("(%s -> %s)", e.Left, e.Right)
}

func (e *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

func (e *FunctionCall) String() string {
	parts := make([]string, 0, len(e.Args)+len(e.Kwargs))
	for _, arg := range e.Args {
		parts = append(parts, arg.String())
	}
	for _, key := range sortedKeys(e.Kwargs) {
		parts = append(parts, key+"="+e.Kwargs[key].String())
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (e *Analogy) String() string {
	targetB := "?"
	if e.TargetB != nil {
		targetB = e.TargetB.String()
	}
	return fmt.Sprintf("(%s is_to %s as %s is_to %s)", e.SourceA, e.SourceB, e.TargetA, targetB)
}

func (e *Similarity) String() string {
	keys := make([]string, 0, len(e.Parameters))
	for k := range e.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("similar_to(")
	b.WriteString(e.Reference.String())
	for _, k := range keys {
		b.WriteString(", ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(formatValue(e.Parameters[k]))
	}
	b.WriteString(")")
	return b.String()
}

func (e *Optimization) String() string {
	if len(e.Constraints) == 0 {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Objective)
	}
	constraints := make([]string, len(e.Constraints))
	for i, c := range e.Constraints {
		constraints[i] = c.String()
	}
	return fmt.Sprintf("%s(%s) subject_to(%s)", e.Kind, e.Objective, strings.Join(constraints, ", "))
}

// formatValue renders a literal payload the way it appears in a query.
func formatValue(v any) string {
	switch n := v.(type) {
	case string:
		return strconv.Quote(n)
	case bool:
		return strconv.FormatBool(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func sortedKeys(m map[string]Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
