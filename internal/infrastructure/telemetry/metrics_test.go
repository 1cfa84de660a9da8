package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/invoicing/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

// counterValue sums the data points of counter name carrying every attribute in attrs
func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", name)

	var total int64
	for _, dp := range sum.DataPoints {
		matches := true
		for _, kv := range attrs {
			if v, found := dp.Attributes.Value(kv.Key); !found || v.Emit() != kv.Value.Emit() {
				matches = false
				break
			}
		}
		if matches {
			total += dp.Value
		}
	}
	return total
}

func histogramCount(t *testing.T, rm metricdata.ResourceMetrics, name string) uint64 {
	t.Helper()
	m, ok := findMetric(rm, name)
	require.True(t, ok, "metric %s not recorded", name)
	h, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %s is not a float64 histogram", name)

	var n uint64
	for _, dp := range h.DataPoints {
		n += dp.Count
	}
	return n
}

func newTestMeterProvider(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return provider, reader
}

func TestSetupMetrics_Disabled(t *testing.T) {
	prev := otel.GetMeterProvider()

	for _, cfg := range []config.TelemetryConfig{
		{},
		{Enabled: true},
		{MetricsEnabled: true, MetricsInterval: time.Second},
	} {
		shutdown, err := SetupMetrics(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.Same(t, prev, otel.GetMeterProvider())
		assert.NoError(t, shutdown(context.Background()))
	}
}

func TestSetupMetrics_InstallsGlobalProvider(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	shutdown, err := SetupMetrics(ctx, config.TelemetryConfig{
		Enabled:         true,
		MetricsEnabled:  true,
		MetricsInterval: time.Minute,
		ServiceName:     "invoicing-test",
	}, zaptest.NewLogger(t), WithReader(reader))
	require.NoError(t, err)

	m, err := NewReportMetrics(Meter())
	require.NoError(t, err)
	m.CacheLookup(ctx, "pending", CacheMiss)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "invoicing_report_cache_lookups_total"))
	require.NoError(t, shutdown(ctx))
}

func TestReportMetrics(t *testing.T) {
	ctx := context.Background()
	provider, reader := newTestMeterProvider(t)
	m, err := NewReportMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.CacheLookup(ctx, "pending", CacheMiss)
	m.CacheLookup(ctx, "pending", CacheHit)
	m.CacheLookup(ctx, "pending", CacheHit)
	m.CacheLookup(ctx, "cashflow", CacheError)
	m.Built(ctx, "pending", 20*time.Millisecond)

	rm := collect(t, reader)
	const lookups = "invoicing_report_cache_lookups_total"
	assert.Equal(t, int64(2), counterValue(t, rm, lookups, attrReport.String("pending"), attrOutcome.String("hit")))
	assert.Equal(t, int64(1), counterValue(t, rm, lookups, attrOutcome.String("miss")))
	assert.Equal(t, int64(1), counterValue(t, rm, lookups, attrReport.String("cashflow"), attrOutcome.String("error")))
	assert.Equal(t, uint64(1), histogramCount(t, rm, "invoicing_report_build_duration_seconds"))
}

func TestEventMetrics(t *testing.T) {
	ctx := context.Background()
	provider, reader := newTestMeterProvider(t)
	m, err := NewEventMetrics(provider.Meter("test"))
	require.NoError(t, err)

	m.Published(ctx, "DocumentCreated")
	m.Handled(ctx, "DocumentCreated", time.Millisecond, nil)
	m.Handled(ctx, "DocumentCreated", time.Millisecond, errors.New("redis down"))

	rm := collect(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "invoicing_events_published_total", attrEventType.String("DocumentCreated")))
	const calls = "invoicing_event_handler_calls_total"
	assert.Equal(t, int64(1), counterValue(t, rm, calls, attrResult.String("ok")))
	assert.Equal(t, int64(1), counterValue(t, rm, calls, attrResult.String("error")))
	assert.Equal(t, uint64(2), histogramCount(t, rm, "invoicing_event_handler_duration_seconds"))
}

func TestNilMetricsRecordNothing(t *testing.T) {
	ctx := context.Background()
	var rm *ReportMetrics
	var em *EventMetrics
	assert.NotPanics(t, func() {
		rm.CacheLookup(ctx, "pending", CacheHit)
		rm.Built(ctx, "pending", time.Second)
		em.Published(ctx, "DocumentCreated")
		em.Handled(ctx, "DocumentCreated", time.Second, nil)
	})
}
