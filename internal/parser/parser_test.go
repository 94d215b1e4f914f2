package parser

import (
	"testing"

	"github.com/hyperdim/hdql/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) ast.Node {
	t.Helper()
	tokens, err := NewLexer(input).TokenizeAll()
	require.NoError(t, err)
	node, err := NewParser(tokens).Parse()
	require.NoError(t, err)
	return node
}

func parseErr(t *testing.T, input string) *Error {
	t.Helper()
	tokens, err := NewLexer(input).TokenizeAll()
	require.NoError(t, err)
	_, err = NewParser(tokens).Parse()
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	return perr
}

func TestParseAtomicQueries(t *testing.T) {
	tests := []struct {
		input      string
		entityType string
		identifier string
	}{
		{`command("deps")`, "command", "deps"},
		{`job("python-developer")`, "job", "python-developer"},
		{`feature("cache")`, "feature", "cache"},
		{`outcome("test-coverage")`, "outcome", "test-coverage"},
		{`constraint("three-tier")`, "constraint", "three-tier"},
		{`command("dep*")`, "command", "dep*"},
		{`command('deps')`, "command", "deps"},
		{`command(deps)`, "command", "deps"},
		{`command(dep*)`, "command", "dep*"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parse(t, tt.input)
			atomic, ok := node.(*ast.Atomic)
			require.True(t, ok, "expected *ast.Atomic, got %T", node)
			assert.Equal(t, tt.entityType, atomic.EntityType)
			assert.Equal(t, tt.identifier, atomic.Identifier)
		})
	}
}

func TestParseAtomicSpan(t *testing.T) {
	node := parse(t, `  command("deps")`)
	atomic := node.(*ast.Atomic)
	assert.Equal(t, 2, atomic.Pos)
	assert.Equal(t, 16, atomic.End)
}

func TestParseAtomicAttribute(t *testing.T) {
	node := parse(t, `feature("x").coverage`)
	attr, ok := node.(*ast.Attribute)
	require.True(t, ok, "expected *ast.Attribute, got %T", node)
	assert.Equal(t, "coverage", attr.Attribute)

	atomic, ok := attr.Base.(*ast.Atomic)
	require.True(t, ok)
	assert.Equal(t, "feature", atomic.EntityType)
}

func TestParseIdentifierAttribute(t *testing.T) {
	node := parse(t, `effort.remaining`)
	attr, ok := node.(*ast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "remaining", attr.Attribute)

	ident, ok := attr.Base.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "effort", ident.Name)
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input string
		value any
		kind  string
	}{
		{`"hello"`, "hello", ast.KindString},
		{`42`, int64(42), ast.KindInteger},
		{`3.14`, 3.14, ast.KindFloat},
		{`true`, true, ast.KindBoolean},
		{`false`, false, ast.KindBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parse(t, tt.input)
			lit, ok := node.(*ast.Literal)
			require.True(t, ok, "expected *ast.Literal, got %T", node)
			assert.Equal(t, tt.value, lit.Value)
			assert.Equal(t, tt.kind, lit.Kind)
		})
	}
}

func TestParseRelational(t *testing.T) {
	node := parse(t, `command("deps") -> job("python-dev")`)
	rel, ok := node.(*ast.Relational)
	require.True(t, ok)
	assert.IsType(t, &ast.Atomic{}, rel.Left)
	assert.IsType(t, &ast.Atomic{}, rel.Right)
}

func TestParseRelationalRightAssociative(t *testing.T) {
	node := parse(t, `a -> b -> c`)
	rel, ok := node.(*ast.Relational)
	require.True(t, ok)

	left, ok := rel.Left.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", left.Name)

	inner, ok := rel.Right.(*ast.Relational)
	require.True(t, ok, "a -> b -> c must nest to the right")
	assert.Equal(t, "b", inner.Left.(*ast.Identifier).Name)
	assert.Equal(t, "c", inner.Right.(*ast.Identifier).Name)
}

func TestParseLogical(t *testing.T) {
	t.Run("AND", func(t *testing.T) {
		node := parse(t, `command("deps") AND command("cache")`)
		logical, ok := node.(*ast.Logical)
		require.True(t, ok)
		assert.Equal(t, "AND", logical.Operator)
		assert.Len(t, logical.Operands, 2)
	})

	t.Run("OR", func(t *testing.T) {
		node := parse(t, `command("deps") OR command("cache")`)
		logical, ok := node.(*ast.Logical)
		require.True(t, ok)
		assert.Equal(t, "OR", logical.Operator)
	})

	t.Run("NOT", func(t *testing.T) {
		node := parse(t, `NOT command("legacy*")`)
		logical, ok := node.(*ast.Logical)
		require.True(t, ok)
		assert.Equal(t, "NOT", logical.Operator)
		assert.Len(t, logical.Operands, 1)
	})

	t.Run("double NOT", func(t *testing.T) {
		node := parse(t, `NOT NOT command("x")`)
		outer := node.(*ast.Logical)
		require.Equal(t, "NOT", outer.Operator)
		inner, ok := outer.Operands[0].(*ast.Logical)
		require.True(t, ok)
		assert.Equal(t, "NOT", inner.Operator)
	})
}

func TestParsePrecedenceAndBeforeOr(t *testing.T) {
	// x AND y OR z parses as (x AND y) OR z.
	node := parse(t, `feature("x") AND feature("y") OR feature("z")`)
	or, ok := node.(*ast.Logical)
	require.True(t, ok)
	require.Equal(t, "OR", or.Operator)

	and, ok := or.Operands[0].(*ast.Logical)
	require.True(t, ok, "left operand of OR must be the AND")
	assert.Equal(t, "AND", and.Operator)
	assert.Equal(t, "z", or.Operands[1].(*ast.Atomic).Identifier)
}

func TestParseNotBindsTighterThanAnd(t *testing.T) {
	node := parse(t, `NOT feature("x") AND feature("y")`)
	and, ok := node.(*ast.Logical)
	require.True(t, ok)
	require.Equal(t, "AND", and.Operator)
	not, ok := and.Operands[0].(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, "NOT", not.Operator)
}

func TestParseOrLeftAssociative(t *testing.T) {
	node := parse(t, `a OR b OR c`)
	outer := node.(*ast.Logical)
	require.Equal(t, "OR", outer.Operator)
	inner, ok := outer.Operands[0].(*ast.Logical)
	require.True(t, ok, "a OR b OR c must nest to the left")
	assert.Equal(t, "a", inner.Operands[0].(*ast.Identifier).Name)
	assert.Equal(t, "c", outer.Operands[1].(*ast.Identifier).Name)
}

func TestParseParenthesesResetPrecedence(t *testing.T) {
	node := parse(t, `command("deps") AND (command("cache") OR command("build"))`)
	and, ok := node.(*ast.Logical)
	require.True(t, ok)
	require.Equal(t, "AND", and.Operator)

	or, ok := and.Operands[1].(*ast.Logical)
	require.True(t, ok)
	assert.Equal(t, "OR", or.Operator)
}

func TestParseComparisons(t *testing.T) {
	tests := []struct {
		input    string
		operator string
	}{
		{`feature("*").coverage == 0.8`, "=="},
		{`feature("*").coverage != 0.8`, "!="},
		{`job("*").frequency > 10`, ">"},
		{`job("*").frequency >= 10`, ">="},
		{`feature("*").effort < 100`, "<"},
		{`feature("*").effort <= 100`, "<="},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parse(t, tt.input)
			cmp, ok := node.(*ast.Comparison)
			require.True(t, ok, "expected *ast.Comparison, got %T", node)
			assert.Equal(t, tt.operator, cmp.Operator)
			assert.IsType(t, &ast.Attribute{}, cmp.Left)
			assert.IsType(t, &ast.Literal{}, cmp.Right)
		})
	}
}

func TestParseComparisonsDoNotChain(t *testing.T) {
	perr := parseErr(t, `1 == 1 == 1`)
	assert.Equal(t, KindSyntactic, perr.Kind)
	assert.Contains(t, perr.Message, "Expected EOF")
}

func TestParseArithmetic(t *testing.T) {
	t.Run("multiplication binds tighter", func(t *testing.T) {
		node := parse(t, `a + b * c`)
		add, ok := node.(*ast.BinaryOp)
		require.True(t, ok)
		require.Equal(t, "+", add.Operator)
		mul, ok := add.Right.(*ast.BinaryOp)
		require.True(t, ok)
		assert.Equal(t, "*", mul.Operator)
	})

	t.Run("left associative", func(t *testing.T) {
		node := parse(t, `a - b - c`)
		outer := node.(*ast.BinaryOp)
		require.Equal(t, "-", outer.Operator)
		inner, ok := outer.Left.(*ast.BinaryOp)
		require.True(t, ok, "a - b - c must nest to the left")
		assert.Equal(t, "a", inner.Left.(*ast.Identifier).Name)
	})

	t.Run("objective expression", func(t *testing.T) {
		node := parse(t, `maximize(outcome_coverage + job_frequency - implementation_effort)`)
		opt, ok := node.(*ast.Optimization)
		require.True(t, ok)
		assert.IsType(t, &ast.BinaryOp{}, opt.Objective)
	})
}

func TestParseAnalogy(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		node := parse(t, `command("deps") is_to feature("add") as command("cache") is_to ?`)
		analogy, ok := node.(*ast.Analogy)
		require.True(t, ok)
		assert.IsType(t, &ast.Atomic{}, analogy.SourceA)
		assert.IsType(t, &ast.Atomic{}, analogy.SourceB)
		assert.IsType(t, &ast.Atomic{}, analogy.TargetA)
		assert.Nil(t, analogy.TargetB)
	})

	t.Run("complete", func(t *testing.T) {
		node := parse(t, `command("deps") is_to feature("add") as command("cache") is_to feature("optimize")`)
		analogy, ok := node.(*ast.Analogy)
		require.True(t, ok)
		require.NotNil(t, analogy.TargetB)
		target := analogy.TargetB.(*ast.Atomic)
		assert.Equal(t, "feature", target.EntityType)
		assert.Equal(t, "optimize", target.Identifier)
	})

	t.Run("attribute source", func(t *testing.T) {
		node := parse(t, `command("a").duration is_to command("b") as command("c") is_to ?`)
		analogy, ok := node.(*ast.Analogy)
		require.True(t, ok)
		assert.IsType(t, &ast.Attribute{}, analogy.SourceA)
	})

	t.Run("missing as", func(t *testing.T) {
		perr := parseErr(t, `command("a") is_to command("b") command("c")`)
		assert.Contains(t, perr.Message, "Expected AS")
	})
}

func TestParseSimilarity(t *testing.T) {
	t.Run("no parameters", func(t *testing.T) {
		node := parse(t, `similar_to(command("deps"))`)
		sim, ok := node.(*ast.Similarity)
		require.True(t, ok)
		assert.IsType(t, &ast.Atomic{}, sim.Reference)
		assert.Empty(t, sim.Parameters)
	})

	t.Run("distance", func(t *testing.T) {
		node := parse(t, `similar_to(command("deps"), distance=0.2)`)
		sim := node.(*ast.Similarity)
		assert.Equal(t, map[string]any{"distance": 0.2}, sim.Parameters)
	})

	t.Run("multiple parameters", func(t *testing.T) {
		node := parse(t, `similar_to(command("deps"), distance=0.2, top_k=10, metric="euclidean")`)
		sim := node.(*ast.Similarity)
		assert.Equal(t, map[string]any{
			"distance": 0.2,
			"top_k":    int64(10),
			"metric":   "euclidean",
		}, sim.Parameters)
	})

	t.Run("values must be literals", func(t *testing.T) {
		perr := parseErr(t, `similar_to(command("x"), near=command("y"))`)
		assert.Equal(t, KindSyntactic, perr.Kind)
		assert.Contains(t, perr.Message, "Expected literal value")
	})

	t.Run("positional extra argument rejected", func(t *testing.T) {
		perr := parseErr(t, `similar_to(command("x"), 5)`)
		assert.Contains(t, perr.Message, "Expected RPAREN")
	})
}

func TestParseOptimization(t *testing.T) {
	t.Run("maximize", func(t *testing.T) {
		node := parse(t, `maximize(outcome_coverage)`)
		opt, ok := node.(*ast.Optimization)
		require.True(t, ok)
		assert.Equal(t, "maximize", opt.Kind)
		assert.Empty(t, opt.Constraints)
	})

	t.Run("minimize", func(t *testing.T) {
		node := parse(t, `minimize(implementation_effort)`)
		opt := node.(*ast.Optimization)
		assert.Equal(t, "minimize", opt.Kind)
	})

	t.Run("single constraint", func(t *testing.T) {
		node := parse(t, `maximize(outcome_coverage) subject_to(effort <= 100)`)
		opt := node.(*ast.Optimization)
		require.Len(t, opt.Constraints, 1)
		assert.IsType(t, &ast.Comparison{}, opt.Constraints[0])
	})

	t.Run("multiple constraints", func(t *testing.T) {
		node := parse(t, `maximize(count(feature("x"))) subject_to(feature("x") -> outcome("y"), effort <= 100)`)
		opt := node.(*ast.Optimization)
		assert.IsType(t, &ast.FunctionCall{}, opt.Objective)
		require.Len(t, opt.Constraints, 2)
		assert.IsType(t, &ast.Relational{}, opt.Constraints[0])
		assert.IsType(t, &ast.Comparison{}, opt.Constraints[1])
	})
}

func TestParseFunctionCall(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		node := parse(t, `count()`)
		call, ok := node.(*ast.FunctionCall)
		require.True(t, ok)
		assert.Equal(t, "count", call.Name)
		assert.Empty(t, call.Args)
		assert.Empty(t, call.Kwargs)
	})

	t.Run("positional", func(t *testing.T) {
		node := parse(t, `commands_for_job(job("python-dev"))`)
		call := node.(*ast.FunctionCall)
		require.Len(t, call.Args, 1)
		assert.IsType(t, &ast.Atomic{}, call.Args[0])
	})

	t.Run("mixed positional and keyword", func(t *testing.T) {
		node := parse(t, `count(feature("x"), limit=10)`)
		call := node.(*ast.FunctionCall)
		require.Len(t, call.Args, 1)
		atomic := call.Args[0].(*ast.Atomic)
		assert.Equal(t, "feature", atomic.EntityType)
		assert.Equal(t, "x", atomic.Identifier)

		require.Contains(t, call.Kwargs, "limit")
		lit := call.Kwargs["limit"].(*ast.Literal)
		assert.Equal(t, int64(10), lit.Value)
		assert.Equal(t, ast.KindInteger, lit.Kind)
	})

	t.Run("keyword value may be an expression", func(t *testing.T) {
		node := parse(t, `outcomes_matching(threshold=0.5 + 0.1)`)
		call := node.(*ast.FunctionCall)
		assert.IsType(t, &ast.BinaryOp{}, call.Kwargs["threshold"])
	})

	t.Run("identifier-led positional stays positional", func(t *testing.T) {
		// One-token lookahead: an identifier not followed by '=' is the
		// start of a positional expression.
		node := parse(t, `avg(effort.remaining, weight=2)`)
		call := node.(*ast.FunctionCall)
		require.Len(t, call.Args, 1)
		assert.IsType(t, &ast.Attribute{}, call.Args[0])
		assert.Contains(t, call.Kwargs, "weight")
	})

	t.Run("nested calls", func(t *testing.T) {
		node := parse(t, `count(commands_similar_to(command("deps")))`)
		call := node.(*ast.FunctionCall)
		require.Len(t, call.Args, 1)
		inner := call.Args[0].(*ast.FunctionCall)
		assert.Equal(t, "commands_similar_to", inner.Name)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"missing closing paren", `command("deps"`, "Expected RPAREN"},
		{"unknown entity keyword", `invalid("test")`, "Expected EOF"},
		{"trailing tokens", `command("x"))`, "Expected EOF"},
		{"empty input", ``, "Unexpected token"},
		{"dangling operator", `command("x") AND`, "Unexpected token"},
		{"entity without identifier", `command()`, "Expected string or identifier"},
		{"entity with number", `command(42)`, "Expected string or identifier"},
		{"lone wildcard", `dep*`, "Unexpected token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.input)
			assert.Equal(t, KindSyntactic, perr.Kind)
			assert.Contains(t, perr.Message, tt.message)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	perr := parseErr(t, `command("x") == == 5`)
	assert.Equal(t, KindSyntactic, perr.Kind)
	assert.Equal(t, 16, perr.Pos)
	assert.Equal(t, "==", perr.Lexeme)
}

func TestParseComplexQueries(t *testing.T) {
	t.Run("relations and comparisons mixed", func(t *testing.T) {
		node := parse(t, `(command("deps") -> job("python-dev")) AND (feature("*").coverage >= 0.8)`)
		and, ok := node.(*ast.Logical)
		require.True(t, ok)
		assert.Equal(t, "AND", and.Operator)
		assert.IsType(t, &ast.Relational{}, and.Operands[0])
		assert.IsType(t, &ast.Comparison{}, and.Operands[1])
	})

	t.Run("similarity inside logical", func(t *testing.T) {
		node := parse(t, `similar_to(command("deps"), distance=0.2) AND feature("*").coverage > 0.5`)
		and, ok := node.(*ast.Logical)
		require.True(t, ok)
		assert.IsType(t, &ast.Similarity{}, and.Operands[0])
	})

	t.Run("comparison over relation", func(t *testing.T) {
		// The arrow binds tighter than comparison.
		node := parse(t, `a -> b == c -> d`)
		cmp, ok := node.(*ast.Comparison)
		require.True(t, ok)
		assert.IsType(t, &ast.Relational{}, cmp.Left)
		assert.IsType(t, &ast.Relational{}, cmp.Right)
	})
}
