package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the HDQL-specific metric instruments.
type Metrics struct {
	parseDuration metric.Float64Histogram
	parseCount    metric.Int64Counter
	tokenCount    metric.Int64Histogram
	errorCount    metric.Int64Counter
	cacheHits     metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back to an
	// undescribed instrument so partial metrics still work.
	var err error

	m.parseDuration, err = meter.Float64Histogram(
		"hdql.parse.duration",
		metric.WithDescription("Duration of HDQL parse calls in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.parseDuration, _ = meter.Float64Histogram("hdql.parse.duration")
	}

	m.parseCount, err = meter.Int64Counter(
		"hdql.parse.count",
		metric.WithDescription("Total number of HDQL parse calls"),
		metric.WithUnit("{parse}"),
	)
	if err != nil {
		m.parseCount, _ = meter.Int64Counter("hdql.parse.count")
	}

	m.tokenCount, err = meter.Int64Histogram(
		"hdql.parse.tokens",
		metric.WithDescription("Number of tokens produced per parsed query"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		m.tokenCount, _ = meter.Int64Histogram("hdql.parse.tokens")
	}

	m.errorCount, err = meter.Int64Counter(
		"hdql.error.count",
		metric.WithDescription("Total number of HDQL parse errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("hdql.error.count")
	}

	m.cacheHits, err = meter.Int64Counter(
		"hdql.cache.hits",
		metric.WithDescription("Total number of parse cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		m.cacheHits, _ = meter.Int64Counter("hdql.cache.hits")
	}

	return m
}

// RecordParse records the outcome of one parse call.
func (m *Metrics) RecordParse(ctx context.Context, durationMs float64, tokens int) {
	m.parseDuration.Record(ctx, durationMs)
	m.parseCount.Add(ctx, 1)
	if tokens > 0 {
		m.tokenCount.Record(ctx, int64(tokens))
	}
}

// RecordError records a parse failure of the given kind.
func (m *Metrics) RecordError(ctx context.Context, kind string) {
	m.errorCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorKind, kind),
	))
}

// RecordCacheHit records a parse cache hit.
func (m *Metrics) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}
