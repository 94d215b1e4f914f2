package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with HDQL-specific span creation methods.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartSpan starts a new span with the given name and attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartParse starts a span for parsing a query string.
func (t *Tracer) StartParse(ctx context.Context, queryLength int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "hdql.parse", trace.WithAttributes(
		QueryLengthAttr(queryLength),
	))
}

// RecordError marks the span as failed with the given error details.
func (t *Tracer) RecordError(span trace.Span, err error, kind string, pos int) {
	span.SetAttributes(
		ErrorKindAttr(kind),
		attribute.Int(AttrErrorPos, pos),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
