// Package hdql implements the front end of the Hyperdimensional Query
// Language: a lexer and recursive descent parser turning a query string into
// an abstract syntax tree. The front end only recognizes syntactically valid
// input; resolving identifiers against a semantic store and executing the
// tree are the consumer's concern.
package hdql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyperdim/hdql/ast"
	"github.com/hyperdim/hdql/internal/observability"
	"github.com/hyperdim/hdql/internal/parser"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ParseQuery parses an HDQL query string and returns the AST root. It is a
// pure function of its input: identical input yields a structurally
// identical tree (or the same error), with no state shared across calls, so
// concurrent use needs no synchronization. On failure the returned error is
// a *ParseError.
func ParseQuery(query string) (ast.Node, error) {
	node, _, err := parseQuery(query)
	if err != nil {
		return nil, convertError(err)
	}
	return node, nil
}

// Explain parses a query and returns its canonical rendering, which makes
// precedence and associativity decisions explicit.
func Explain(query string) (string, error) {
	node, err := ParseQuery(query)
	if err != nil {
		return "", err
	}
	return node.String(), nil
}

// parseQuery wires the lexer to the parser and reports the token count.
func parseQuery(query string) (ast.Node, int, error) {
	lexer := parser.NewLexer(query)
	tokens, err := lexer.TokenizeAll()
	if err != nil {
		return nil, 0, fmt.Errorf("tokenization failed: %w", err)
	}

	p := parser.NewParser(tokens)
	node, err := p.Parse()
	if err != nil {
		return nil, len(tokens), fmt.Errorf("parsing failed: %w", err)
	}

	return node, len(tokens), nil
}

// convertError maps internal parser errors to the public ParseError.
func convertError(err error) error {
	var internal *parser.Error
	if !errors.As(err, &internal) {
		return err
	}

	kind := SyntacticError
	if internal.Kind == parser.KindLexical {
		kind = LexicalError
	}
	return &ParseError{
		Kind:     kind,
		Message:  internal.Message,
		Position: internal.Pos,
		Line:     internal.Line,
		Column:   internal.Col,
		Lexeme:   internal.Lexeme,
	}
}

// Parser is a configured parsing handle adding optional tracing, metrics,
// caching and debug logging around ParseQuery. The zero-cost path is the
// default: without options every instrument is a no-op and no cache exists.
type Parser struct {
	obs    *observability.Config
	cache  *parseCache
	logger *slog.Logger

	// obsOpts stages observability options until New initializes obs.
	obsOpts []observability.Option
}

// Option is a functional option for configuring a Parser.
type Option func(*Parser)

// WithTracerProvider enables tracing of parse calls.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Parser) {
		p.obsOpts = append(p.obsOpts, observability.WithTracerProvider(tp))
	}
}

// WithMeterProvider enables metrics collection for parse calls.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(p *Parser) {
		p.obsOpts = append(p.obsOpts, observability.WithMeterProvider(mp))
	}
}

// WithServiceName sets the service name reported in traces and metrics.
func WithServiceName(name string) Option {
	return func(p *Parser) {
		p.obsOpts = append(p.obsOpts, observability.WithServiceName(name))
	}
}

// WithCache enables a bounded parse cache holding up to size entries.
func WithCache(size int) Option {
	return func(p *Parser) {
		if size > 0 {
			p.cache = newParseCache(size)
		}
	}
}

// WithLogger enables debug logging of parse calls.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// New creates a configured Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}

	p.obs = observability.NewConfig(p.obsOpts...)
	p.obs.Initialize()
	p.obsOpts = nil
	return p
}

// Parse parses a query with the handle's tracing, metrics, cache and
// logging applied. The context carries the span; parsing itself is bounded
// by input length and needs no cancellation.
func (p *Parser) Parse(ctx context.Context, query string) (ast.Node, error) {
	start := time.Now()
	ctx, span := p.obs.Tracer().StartParse(ctx, len(query))
	defer span.End()

	if p.cache != nil {
		if node, ok := p.cache.get(query); ok {
			span.SetAttributes(
				observability.CacheHitAttr(true),
				observability.QueryKindAttr(ast.Kind(node)),
			)
			p.obs.Metrics().RecordCacheHit(ctx)
			return node, nil
		}
	}

	node, tokens, err := parseQuery(query)
	duration := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		perr, ok := convertError(err).(*ParseError)
		if !ok {
			return nil, err
		}
		p.obs.Tracer().RecordError(span, perr, string(perr.Kind), perr.Position)
		p.obs.Metrics().RecordError(ctx, string(perr.Kind))
		if p.logger != nil {
			p.logger.Debug("hdql parse failed",
				"kind", string(perr.Kind),
				"position", perr.Position,
				"message", perr.Message,
			)
		}
		return nil, perr
	}

	span.SetAttributes(
		observability.CacheHitAttr(false),
		observability.TokenCountAttr(tokens),
		observability.QueryKindAttr(ast.Kind(node)),
	)
	p.obs.Metrics().RecordParse(ctx, duration, tokens)
	if p.logger != nil {
		p.logger.Debug("hdql parse ok",
			"tokens", tokens,
			"kind", ast.Kind(node),
			"duration_ms", duration,
		)
	}

	if p.cache != nil {
		p.cache.put(query, node)
	}
	return node, nil
}

// Explain parses a query with the handle's instrumentation and returns the
// canonical rendering of the tree.
func (p *Parser) Explain(ctx context.Context, query string) (string, error) {
	node, err := p.Parse(ctx, query)
	if err != nil {
		return "", err
	}
	return node.String(), nil
}
