// Package observability provides OpenTelemetry-based instrumentation for the
// HDQL front end.
//
// All observability features are opt-in. When not configured, no-op
// implementations are used with zero performance overhead.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/hyperdim/hdql"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/hyperdim/hdql"
)

// HDQL semantic attribute keys following OpenTelemetry conventions.
const (
	AttrQueryLength  = "hdql.query.length"
	AttrTokenCount   = "hdql.token.count"
	AttrQueryKind    = "hdql.query.kind"
	AttrCacheHit     = "hdql.cache.hit"
	AttrErrorKind    = "hdql.error.kind"
	AttrErrorPos     = "hdql.error.position"
	AttrErrorMessage = "hdql.error.message"
)

// QueryLengthAttr returns the query length attribute.
func QueryLengthAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrQueryLength, n)
}

// TokenCountAttr returns the token count attribute.
func TokenCountAttr(n int) attribute.KeyValue {
	return attribute.Int(AttrTokenCount, n)
}

// QueryKindAttr returns the attribute naming the root node kind of a parse.
func QueryKindAttr(kind string) attribute.KeyValue {
	return attribute.String(AttrQueryKind, kind)
}

// CacheHitAttr returns the cache hit attribute.
func CacheHitAttr(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}

// ErrorKindAttr returns the error kind attribute (lexical or syntactic).
func ErrorKindAttr(kind string) attribute.KeyValue {
	return attribute.String(AttrErrorKind, kind)
}
