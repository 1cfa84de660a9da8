package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
const (
	attrReport    = attribute.Key("report")
	attrOutcome   = attribute.Key("outcome")
	attrEventType = attribute.Key("event_type")
	attrResult    = attribute.Key("result")
)

// CacheOutcome classifies a report cache lookup
type CacheOutcome string

const (
	CacheHit   CacheOutcome = "hit"
	CacheMiss  CacheOutcome = "miss"
	CacheError CacheOutcome = "error"
)

// ReportMetrics records report cache lookups and build latency. All methods
// are no-ops on a nil receiver.
type ReportMetrics struct {
	lookups metric.Int64Counter
	builds  metric.Float64Histogram
}

// NewReportMetrics creates the report instruments on meter
func NewReportMetrics(meter metric.Meter) (*ReportMetrics, error) {
	lookups, err := meter.Int64Counter("invoicing_report_cache_lookups_total",
		metric.WithDescription("Report cache lookups by report and outcome"),
		metric.WithUnit("{lookups}"))
	if err != nil {
		return nil, fmt.Errorf("create report cache counter: %w", err)
	}
	builds, err := newDurationHistogram(meter, "invoicing_report_build_duration_seconds",
		"Time spent loading and aggregating a report on a cache miss")
	if err != nil {
		return nil, err
	}
	return &ReportMetrics{lookups: lookups, builds: builds}, nil
}

func (m *ReportMetrics) CacheLookup(ctx context.Context, report string, outcome CacheOutcome) {
	if m == nil {
		return
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(attrReport.String(report), attrOutcome.String(string(outcome))))
}

func (m *ReportMetrics) Built(ctx context.Context, report string, took time.Duration) {
	if m == nil {
		return
	}
	m.builds.Record(ctx, took.Seconds(), metric.WithAttributes(attrReport.String(report)))
}

// EventMetrics records domain event delivery. All methods are no-ops on a
// nil receiver.
type EventMetrics struct {
	published metric.Int64Counter
	handled   metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewEventMetrics creates the event bus instruments on meter
func NewEventMetrics(meter metric.Meter) (*EventMetrics, error) {
	published, err := meter.Int64Counter("invoicing_events_published_total",
		metric.WithDescription("Domain events published by type"),
		metric.WithUnit("{events}"))
	if err != nil {
		return nil, fmt.Errorf("create event counter: %w", err)
	}
	handled, err := meter.Int64Counter("invoicing_event_handler_calls_total",
		metric.WithDescription("Event handler invocations by type and result"),
		metric.WithUnit("{calls}"))
	if err != nil {
		return nil, fmt.Errorf("create event handler counter: %w", err)
	}
	duration, err := newDurationHistogram(meter, "invoicing_event_handler_duration_seconds",
		"Time spent in one event handler")
	if err != nil {
		return nil, err
	}
	return &EventMetrics{published: published, handled: handled, duration: duration}, nil
}

func (m *EventMetrics) Published(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.published.Add(ctx, 1, metric.WithAttributes(attrEventType.String(eventType)))
}

// Handled records one handler call; err decides the result attribute
func (m *EventMetrics) Handled(ctx context.Context, eventType string, took time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.handled.Add(ctx, 1, metric.WithAttributes(attrEventType.String(eventType), attrResult.String(result)))
	m.duration.Record(ctx, took.Seconds(), metric.WithAttributes(attrEventType.String(eventType)))
}
